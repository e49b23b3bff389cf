package repository

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/imgdose/imgdose-api/entity"
)

type AuditEventRepository struct {
	db *gorm.DB
}

func NewAuditEventRepository(db *gorm.DB) *AuditEventRepository {
	return &AuditEventRepository{db: db}
}

// Record stores one audit row; details is marshaled into the jsonb
// column as-is.
func (r *AuditEventRepository) Record(action, status string, details interface{}) error {
	payload, err := json.Marshal(details)
	if err != nil {
		return err
	}

	event := entity.AuditEvent{
		ID:      uuid.New(),
		Action:  action,
		Status:  status,
		Details: datatypes.JSON(payload),
	}
	return r.db.Create(&event).Error
}
