package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	AuditActionCreateFolder = "folder.create"
	AuditActionUpload       = "file.upload"
	AuditActionRename       = "object.rename"
	AuditActionSoftDelete   = "object.trash"
	AuditActionRestore      = "object.restore"
	AuditActionPurge        = "object.purge"
	AuditActionEmptyTrash   = "trash.empty"
)

// AuditEvent is an append-only record of a lifecycle action. Rows are
// never updated or deleted by the application.
type AuditEvent struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Action    string         `json:"action" gorm:"type:varchar(64);not null;index"`
	ObjectID  *uuid.UUID     `json:"object_id,omitempty" gorm:"type:uuid;index"`
	Actor     string         `json:"actor" gorm:"type:varchar(255)"`
	Details   datatypes.JSON `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at" gorm:"not null;autoCreateTime"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
