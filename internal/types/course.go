package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Course rows are created by authoring tools; read-only for the gating engine.
type Course struct {
	ID                   uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title                string         `gorm:"column:title;not null" json:"title"`
	Description          string         `gorm:"column:description" json:"description"`
	Level                Level          `gorm:"column:level;not null;default:'beginner';index" json:"level"`
	Published            bool           `gorm:"column:published;not null;default:false;index" json:"published"`
	IsFree               bool           `gorm:"column:is_free;not null;default:false" json:"is_free"`
	RequiresSubscription bool           `gorm:"column:requires_subscription;not null;default:true" json:"requires_subscription"`
	Prerequisites        datatypes.JSON `gorm:"column:prerequisites;type:jsonb" json:"prerequisites"`
	Metadata             datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata"`
	CreatedAt            time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt            time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Course) TableName() string { return "course" }

func (c *Course) PrerequisiteIDs() ([]uuid.UUID, error) {
	return decodeIDList(c.Prerequisites)
}
