package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressRecord is written by the learning-delivery subsystem whenever a
// user finishes interacting with a content node. One row per (user, node):
// a course-level row has null module_id and lesson_id, a module-level row
// has null lesson_id. The gating engine only reads these.
type ProgressRecord struct {
	ID                   uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID               uuid.UUID      `gorm:"type:uuid;not null;index:idx_user_node,unique" json:"user_id"`
	User                 *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	CourseID             uuid.UUID      `gorm:"type:uuid;not null;index:idx_user_node,unique" json:"course_id"`
	ModuleID             *uuid.UUID     `gorm:"type:uuid;index:idx_user_node,unique" json:"module_id,omitempty"`
	LessonID             *uuid.UUID     `gorm:"type:uuid;index:idx_user_node,unique" json:"lesson_id,omitempty"`
	Status               ProgressStatus `gorm:"column:status;not null;default:'not_started'" json:"status"`
	CompletionPercentage float64        `gorm:"column:completion_percentage;not null;default:0" json:"completion_percentage"`
	CreatedAt            time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt            time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ProgressRecord) TableName() string { return "progress_record" }
