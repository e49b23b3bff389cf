package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	AuditActionUpload  = "upload"
	AuditActionDelete  = "delete"
	AuditActionArchive = "archive"

	AuditStatusCompleted = "completed"
	AuditStatusPartial   = "partial"
)

// AuditEvent records one mutating operation against the image store.
// Written best-effort; a failed insert is logged, never surfaced.
type AuditEvent struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Action    string         `json:"action" gorm:"type:varchar(32);not null;index"`
	Status    string         `json:"status" gorm:"type:varchar(32);not null"`
	Details   datatypes.JSON `json:"details" gorm:"type:jsonb"`
	CreatedAt time.Time      `json:"created_at" gorm:"not null;autoCreateTime;index"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
