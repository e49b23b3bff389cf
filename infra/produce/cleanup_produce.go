package produce

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ImageExchange          = "image.exchange"
	ImageCleanupQueue      = "image.cleanup"
	ImageCleanupRoutingKey = "image.cleanup"
)

type CleanupService struct {
	channel *amqp.Channel
}

// CleanupMessage names an object that was written durably but whose
// metadata row never committed. The consumer removes the orphan.
type CleanupMessage struct {
	ObjectKey string `json:"object_key"`
	Reason    string `json:"reason"`
	Timestamp int64  `json:"timestamp"`
}

func InitCleanupService(channel *amqp.Channel) *CleanupService {
	service := &CleanupService{
		channel: channel,
	}

	err := channel.ExchangeDeclare(
		ImageExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to declare Image exchange: " + err.Error())
	}

	_, err = channel.QueueDeclare(
		ImageCleanupQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		panic("Failed to declare Image cleanup queue: " + err.Error())
	}

	err = channel.QueueBind(
		ImageCleanupQueue,
		ImageCleanupRoutingKey,
		ImageExchange,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to bind Image cleanup queue: " + err.Error())
	}

	return service
}

func (s *CleanupService) PublishOrphanObject(ctx context.Context, objectKey, reason string) error {
	message := CleanupMessage{
		ObjectKey: objectKey,
		Reason:    reason,
		Timestamp: time.Now().Unix(),
	}

	body, err := json.Marshal(message)
	if err != nil {
		return err
	}

	return s.channel.PublishWithContext(
		ctx,
		ImageExchange,
		ImageCleanupRoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
}
