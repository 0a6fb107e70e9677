package types

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ContentType string

const (
	ContentTypeCourse ContentType = "course"
	ContentTypeModule ContentType = "module"
	ContentTypeLesson ContentType = "lesson"
)

func (ct ContentType) Valid() bool {
	switch ct {
	case ContentTypeCourse, ContentTypeModule, ContentTypeLesson:
		return true
	}
	return false
}

type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// Below returns the next-lower difficulty level and false when there is none.
func (l Level) Below() (Level, bool) {
	switch l {
	case LevelIntermediate:
		return LevelBeginner, true
	case LevelAdvanced:
		return LevelIntermediate, true
	}
	return "", false
}

type ProgressStatus string

const (
	ProgressNotStarted ProgressStatus = "not_started"
	ProgressInProgress ProgressStatus = "in_progress"
	ProgressCompleted  ProgressStatus = "completed"
)

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
	SubscriptionExpired   SubscriptionStatus = "expired"
	SubscriptionTrial     SubscriptionStatus = "trial"
)

// Access decision codes. Business-rule denials are values, never errors.
const (
	CodeAccessGranted        = "ACCESS_GRANTED"
	CodeContentNotPublished  = "CONTENT_NOT_PUBLISHED"
	CodeUserNotVerified      = "USER_NOT_VERIFIED"
	CodeSubscriptionRequired = "SUBSCRIPTION_REQUIRED"
	CodeSubscriptionExpired  = "SUBSCRIPTION_EXPIRED"
	CodeLevelNotCompleted    = "PREREQUISITE_LEVEL_NOT_COMPLETED"
	CodePrerequisitesNotMet  = "PREREQUISITES_NOT_MET"
	CodeNotEnrolled          = "NOT_ENROLLED"
	CodeEnrollmentInactive   = "ENROLLMENT_INACTIVE"
	CodeEnrollmentExpired    = "ENROLLMENT_EXPIRED"
	CodeContentNotFound      = "CONTENT_NOT_FOUND"
	CodeUserNotFound         = "USER_NOT_FOUND"
	CodeAlreadyEnrolled      = "ALREADY_ENROLLED"
	CodeSystemError          = "SYSTEM_ERROR"
)

// AccessDecision is derived state. It is never persisted outside the cache.
type AccessDecision struct {
	Granted  bool                   `json:"granted"`
	Code     string                 `json:"code"`
	Message  string                 `json:"message"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

func decodeIDList(raw datatypes.JSON) ([]uuid.UUID, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var strs []string
	if err := json.Unmarshal(raw, &strs); err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(strs))
	for _, s := range strs {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
