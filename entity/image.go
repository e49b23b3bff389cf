package entity

import (
	"time"

	"github.com/google/uuid"
)

// Image is one stored file: the row in Postgres plus the key of its bytes
// in the object store. Rows are never mutated after creation.
type Image struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ObjectKey        string    `json:"objectKey" gorm:"type:varchar(1024);not null;uniqueIndex"`
	OriginalFilename string    `json:"originalFilename" gorm:"type:varchar(512);not null;index"`
	ContentType      string    `json:"contentType" gorm:"type:varchar(255);not null"`
	FileSize         int64     `json:"fileSize" gorm:"not null"`
	UploadedAt       time.Time `json:"uploadedAt" gorm:"not null;index"`
	FileExtension    string    `json:"fileExtension,omitempty" gorm:"type:varchar(32)"`
	PublicURL        string    `json:"publicUrl" gorm:"type:varchar(1024);not null"`
}

func (Image) TableName() string {
	return "images"
}
