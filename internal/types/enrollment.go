package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Enrollment rows are created exclusively by the enrollment service. The
// unique (user_id, course_id) index is the sole correctness mechanism for
// concurrent enroll attempts.
type Enrollment struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index:idx_user_course,unique" json:"user_id"`
	User       *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	CourseID   uuid.UUID      `gorm:"type:uuid;not null;index:idx_user_course,unique" json:"course_id"`
	Course     *Course        `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`
	Active     bool           `gorm:"column:active;not null;default:true" json:"active"`
	EnrolledAt time.Time      `gorm:"column:enrolled_at;not null;default:now()" json:"enrolled_at"`
	ExpiresAt  *time.Time     `gorm:"column:expires_at" json:"expires_at,omitempty"`
	CreatedAt  time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Enrollment) TableName() string { return "enrollment" }
