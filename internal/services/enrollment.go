package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	redisclient "github.com/coursiva/coursiva-backend/internal/clients/redis"
	"github.com/coursiva/coursiva-backend/internal/logger"
	"github.com/coursiva/coursiva-backend/internal/repos"
	"github.com/coursiva/coursiva-backend/internal/types"
)

type EnrollmentResult struct {
	Success      bool       `json:"success"`
	Code         string     `json:"code,omitempty"`
	EnrollmentID *uuid.UUID `json:"enrollment_id,omitempty"`
}

// EnrollmentService gates and records new enrollments. It evaluates
// eligibility directly against stored state (never through the decision
// cache) before writing, and invalidates the user's cache entries after a
// successful insert so no cached decision outlives the write.
type EnrollmentService interface {
	Enroll(ctx context.Context, userID, courseID uuid.UUID) EnrollmentResult
}

type enrollmentService struct {
	log            *logger.Logger
	enrollmentRepo repos.EnrollmentRepo
	access         AccessService
	cache          redisclient.DecisionCache
}

func NewEnrollmentService(
	baseLog *logger.Logger,
	enrollmentRepo repos.EnrollmentRepo,
	access AccessService,
	cache redisclient.DecisionCache,
) EnrollmentService {
	serviceLog := baseLog.With("service", "EnrollmentService")
	return &enrollmentService{
		log:            serviceLog,
		enrollmentRepo: enrollmentRepo,
		access:         access,
		cache:          cache,
	}
}

func (s *enrollmentService) Enroll(ctx context.Context, userID, courseID uuid.UUID) EnrollmentResult {
	decision := s.access.EvaluateEnrollmentEligibility(ctx, userID, courseID)
	if !decision.Granted {
		return EnrollmentResult{Success: false, Code: decision.Code}
	}

	now := time.Now()
	row := &types.Enrollment{
		ID:         uuid.New(),
		UserID:     userID,
		CourseID:   courseID,
		Active:     true,
		EnrolledAt: now,
	}

	if err := s.enrollmentRepo.Create(ctx, nil, row); err != nil {
		if repos.IsDuplicateKey(err) {
			// Enrolling twice is a business outcome, not a fault.
			s.log.Debug("Duplicate enrollment attempt", "user_id", userID, "course_id", courseID)
			return EnrollmentResult{Success: false, Code: types.CodeAlreadyEnrolled}
		}
		s.log.Error("Enrollment insert failed", "error", err, "user_id", userID, "course_id", courseID)
		return EnrollmentResult{Success: false, Code: types.CodeSystemError}
	}

	if s.cache != nil {
		if err := s.cache.InvalidateUser(ctx, userID); err != nil {
			s.log.Warn("Cache invalidation after enrollment failed", "error", err, "user_id", userID)
		}
	}

	return EnrollmentResult{Success: true, EnrollmentID: &row.ID}
}
