package infra

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/minio/madmin-go/v3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/imgdose/imgdose-api/config"
)

// ErrObjectNotFound is returned when the requested key has no object
// behind it.
var ErrObjectNotFound = errors.New("object not found in storage")

type MinioClient struct {
	Admin    *madmin.AdminClient
	Client   *minio.Client
	Endpoint string
	Bucket   string

	publicBaseURL string
	useSSL        bool
}

func InitMinioClient(cfg *config.EnvConfig) *MinioClient {
	endpoint := cfg.Minio.Endpoint
	if endpoint == "" {
		panic("MinIO endpoint is not configured")
	}

	rootUser := cfg.Minio.RootUser
	if rootUser == "" {
		panic("MinIO root user is not configured")
	}

	rootPassword := cfg.Minio.RootPassword
	if rootPassword == "" {
		panic("MinIO root password is not configured")
	}

	madminClient, err := madmin.New(endpoint, rootUser, rootPassword, cfg.Minio.UseSSL)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize MinIO admin client: %v", err))
	}

	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(rootUser, rootPassword, ""),
		Secure: cfg.Minio.UseSSL,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize MinIO client: %v", err))
	}

	return &MinioClient{
		Admin:         madminClient,
		Client:        minioClient,
		Endpoint:      endpoint,
		Bucket:        cfg.Minio.Bucket,
		publicBaseURL: cfg.Public.BaseURL,
		useSSL:        cfg.Minio.UseSSL,
	}
}

// EnsureBucket creates the configured bucket when it does not exist yet.
func (m *MinioClient) EnsureBucket(ctx context.Context) error {
	exists, err := m.Client.BucketExists(ctx, m.Bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %q: %w", m.Bucket, err)
	}
	if exists {
		return nil
	}
	if err := m.Client.MakeBucket(ctx, m.Bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %q: %w", m.Bucket, err)
	}
	return nil
}

// PutObject writes the object durably before any metadata row may
// reference its key.
func (m *MinioClient) PutObject(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) error {
	opts := minio.PutObjectOptions{ContentType: contentType}
	if _, err := m.Client.PutObject(ctx, m.Bucket, objectKey, reader, size, opts); err != nil {
		return fmt.Errorf("failed to store object %q: %w", objectKey, err)
	}
	return nil
}

// GetObject returns a readable stream of the object bytes. The caller
// must close it.
func (m *MinioClient) GetObject(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	object, err := m.Client.GetObject(ctx, m.Bucket, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %q: %w", objectKey, err)
	}

	// GetObject is lazy; Stat forces the round-trip so a missing key
	// surfaces here instead of on the first read.
	if _, err := object.Stat(); err != nil {
		_ = object.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("failed to stat object %q: %w", objectKey, err)
	}

	return object, nil
}

// RemoveObject deletes the object bytes. Removing a key that no longer
// exists is not an error, which keeps deletes retryable.
func (m *MinioClient) RemoveObject(ctx context.Context, objectKey string) error {
	if err := m.Client.RemoveObject(ctx, m.Bucket, objectKey, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object %q: %w", objectKey, err)
	}
	return nil
}

// ObjectURL derives the externally resolvable address for an object key.
func (m *MinioClient) ObjectURL(objectKey string) string {
	if m.publicBaseURL != "" {
		return strings.TrimRight(m.publicBaseURL, "/") + "/" + objectKey
	}
	scheme := "http"
	if m.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, m.Endpoint, m.Bucket, objectKey)
}

// DataUsage reports cluster-wide object count and byte totals via the
// admin API. Used by the storage health endpoint.
func (m *MinioClient) DataUsage(ctx context.Context) (madmin.DataUsageInfo, error) {
	usage, err := m.Admin.DataUsageInfo(ctx)
	if err != nil {
		return madmin.DataUsageInfo{}, fmt.Errorf("failed to fetch data usage info: %w", err)
	}
	return usage, nil
}
