package types

import (
	"time"

	"github.com/google/uuid"
)

// AccessAuditRecord is an append-only trail of access decisions, written
// fire-and-forget. No read path depends on it.
type AccessAuditRecord struct {
	ID          uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
	ContentID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"content_id"`
	ContentType ContentType `gorm:"column:content_type;not null" json:"content_type"`
	Code        string      `gorm:"column:code;not null" json:"code"`
	Granted     bool        `gorm:"column:granted;not null" json:"granted"`
	CreatedAt   time.Time   `gorm:"not null;default:now()" json:"created_at"`
}

func (AccessAuditRecord) TableName() string { return "access_audit_record" }
