package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User rows are owned by the account and billing subsystems; the gating
// engine only reads them.
type User struct {
	ID                 uuid.UUID          `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email              string             `gorm:"uniqueIndex;not null;column:email" json:"email"`
	FirstName          string             `gorm:"column:first_name" json:"first_name"`
	LastName           string             `gorm:"column:last_name" json:"last_name"`
	Active             bool               `gorm:"column:active;not null;default:true" json:"active"`
	Verified           bool               `gorm:"column:verified;not null;default:false" json:"verified"`
	SubscriptionPlan   string             `gorm:"column:subscription_plan" json:"subscription_plan"`
	SubscriptionStatus SubscriptionStatus `gorm:"column:subscription_status;not null;default:'expired'" json:"subscription_status"`
	CurrentPeriodEnd   *time.Time         `gorm:"column:current_period_end" json:"current_period_end,omitempty"`
	TrialEnd           *time.Time         `gorm:"column:trial_end" json:"trial_end,omitempty"`
	CreatedAt          time.Time          `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt          time.Time          `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt          gorm.DeletedAt     `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "user" }

// HasActiveSubscription reports paid coverage at the given instant.
func (u *User) HasActiveSubscription(now time.Time) bool {
	if u.SubscriptionStatus != SubscriptionActive {
		return false
	}
	return u.CurrentPeriodEnd == nil || u.CurrentPeriodEnd.After(now)
}

// InTrial reports trial coverage; trial overrides an inactive paid status.
func (u *User) InTrial(now time.Time) bool {
	return u.TrialEnd != nil && u.TrialEnd.After(now)
}

// HadPaidPeriod reports whether a previously active period has elapsed,
// which distinguishes SUBSCRIPTION_EXPIRED from SUBSCRIPTION_REQUIRED.
func (u *User) HadPaidPeriod(now time.Time) bool {
	return u.CurrentPeriodEnd != nil && !u.CurrentPeriodEnd.After(now)
}
