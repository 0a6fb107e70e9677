package services

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	redisclient "github.com/coursiva/coursiva-backend/internal/clients/redis"
	"github.com/coursiva/coursiva-backend/internal/logger"
	"github.com/coursiva/coursiva-backend/internal/repos"
	"github.com/coursiva/coursiva-backend/internal/types"
)

type CourseSummary struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Level       types.Level `json:"level"`
}

// AccessService is the decision pipeline of the gating engine. Checks run
// in a fixed order and short-circuit on the first failure, so callers can
// rely on receiving the first failing reason:
//
//	published → verified → subscription/free → level gate → prerequisites
//	→ enrollment (courses only)
//
// Business denials are returned values; only infrastructure faults map to
// SYSTEM_ERROR, and internal error text never reaches the decision message.
type AccessService interface {
	// Evaluate recomputes the decision from stored state, bypassing the
	// decision cache entirely.
	Evaluate(ctx context.Context, userID, contentID uuid.UUID, contentType types.ContentType) types.AccessDecision
	// EvaluateEnrollmentEligibility runs the same pipeline minus the
	// enrollment check; it gates new enrollments on a course.
	EvaluateEnrollmentEligibility(ctx context.Context, userID, courseID uuid.UUID) types.AccessDecision
	// CheckAccess reads through the decision cache. A cached entry within
	// TTL is returned verbatim; cache faults degrade to direct evaluation.
	CheckAccess(ctx context.Context, userID, contentID uuid.UUID, contentType types.ContentType) types.AccessDecision
	// ListAccessibleContent enumerates the published courses at a level the
	// user may currently access, through the longer-lived list cache.
	ListAccessibleContent(ctx context.Context, userID uuid.UUID, level types.Level) ([]CourseSummary, error)
}

type accessService struct {
	log            *logger.Logger
	userRepo       repos.UserRepo
	courseRepo     repos.CourseRepo
	moduleRepo     repos.CourseModuleRepo
	lessonRepo     repos.LessonRepo
	enrollmentRepo repos.EnrollmentRepo
	levelGate      LevelGateService
	prereqs        PrerequisiteService
	cache          redisclient.DecisionCache
	audit          AuditService
}

func NewAccessService(
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	courseRepo repos.CourseRepo,
	moduleRepo repos.CourseModuleRepo,
	lessonRepo repos.LessonRepo,
	enrollmentRepo repos.EnrollmentRepo,
	levelGate LevelGateService,
	prereqs PrerequisiteService,
	cache redisclient.DecisionCache,
	audit AuditService,
) AccessService {
	serviceLog := baseLog.With("service", "AccessService")
	return &accessService{
		log:            serviceLog,
		userRepo:       userRepo,
		courseRepo:     courseRepo,
		moduleRepo:     moduleRepo,
		lessonRepo:     lessonRepo,
		enrollmentRepo: enrollmentRepo,
		levelGate:      levelGate,
		prereqs:        prereqs,
		cache:          cache,
		audit:          audit,
	}
}

// contentView is the granularity-independent projection the pipeline runs on.
type contentView struct {
	id                   uuid.UUID
	contentType          types.ContentType
	level                types.Level
	published            bool
	isFree               bool
	requiresSubscription bool
	prerequisites        []uuid.UUID
}

func deny(code, message string, metadata map[string]interface{}) types.AccessDecision {
	return types.AccessDecision{Granted: false, Code: code, Message: message, Metadata: metadata}
}

func grant() types.AccessDecision {
	return types.AccessDecision{Granted: true, Code: types.CodeAccessGranted, Message: "access granted"}
}

func (s *accessService) systemError(userID, contentID uuid.UUID, component string, err error) types.AccessDecision {
	s.log.Error("Access evaluation failed", "error", err, "component", component, "user_id", userID, "content_id", contentID)
	return deny(types.CodeSystemError, "internal error", nil)
}

func (s *accessService) Evaluate(ctx context.Context, userID, contentID uuid.UUID, contentType types.ContentType) types.AccessDecision {
	decision := s.evaluate(ctx, userID, contentID, contentType, false)
	if s.audit != nil {
		s.audit.Record(userID, contentID, contentType, decision)
	}
	return decision
}

func (s *accessService) EvaluateEnrollmentEligibility(ctx context.Context, userID, courseID uuid.UUID) types.AccessDecision {
	decision := s.evaluate(ctx, userID, courseID, types.ContentTypeCourse, true)
	if s.audit != nil {
		s.audit.Record(userID, courseID, types.ContentTypeCourse, decision)
	}
	return decision
}

func (s *accessService) evaluate(ctx context.Context, userID, contentID uuid.UUID, contentType types.ContentType, skipEnrollment bool) types.AccessDecision {
	user, err := s.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return s.systemError(userID, contentID, "UserRepo", err)
	}
	if user == nil {
		return deny(types.CodeUserNotFound, "user not found", nil)
	}

	content, err := s.loadContent(ctx, contentID, contentType)
	if err != nil {
		return s.systemError(userID, contentID, "ContentStore", err)
	}
	if content == nil {
		return deny(types.CodeContentNotFound, "content not found", nil)
	}

	// 1. Publication
	if !content.published {
		return deny(types.CodeContentNotPublished, "content is not published", nil)
	}

	// 2. Account verification
	if !user.Verified {
		return deny(types.CodeUserNotVerified, "account is not verified", nil)
	}

	// 3. Subscription, unless the content is free
	now := time.Now()
	if !content.isFree && content.requiresSubscription {
		if !user.HasActiveSubscription(now) && !user.InTrial(now) {
			if user.HadPaidPeriod(now) {
				return deny(types.CodeSubscriptionExpired, "subscription has expired", nil)
			}
			return deny(types.CodeSubscriptionRequired, "an active subscription is required", nil)
		}
	}

	// 4. Level gate
	gate, err := s.levelGate.CanEnterLevel(ctx, userID, content.level)
	if err != nil {
		return s.systemError(userID, contentID, "LevelGateService", err)
	}
	if !gate.Granted {
		return deny(types.CodeLevelNotCompleted, "lower level is not sufficiently completed", map[string]interface{}{
			"requiredCompletion": gate.RequiredCompletion,
			"currentCompletion":  math.Round(gate.CurrentCompletion),
		})
	}

	// 5. Prerequisites
	prereq, err := s.prereqs.CheckPrerequisites(ctx, userID, content.prerequisites)
	if err != nil {
		return s.systemError(userID, contentID, "PrerequisiteService", err)
	}
	if !prereq.Granted {
		return deny(types.CodePrerequisitesNotMet, "prerequisites are not completed", map[string]interface{}{
			"incompletePrerequisites": prereq.IncompleteIDs,
		})
	}

	// 6. Enrollment, for courses only
	if contentType == types.ContentTypeCourse && !skipEnrollment {
		enrollment, err := s.enrollmentRepo.GetByUserAndCourse(ctx, nil, userID, contentID)
		if err != nil {
			return s.systemError(userID, contentID, "EnrollmentRepo", err)
		}
		switch {
		case enrollment == nil:
			return deny(types.CodeNotEnrolled, "not enrolled in this course", nil)
		case !enrollment.Active:
			return deny(types.CodeEnrollmentInactive, "enrollment is inactive", nil)
		case enrollment.ExpiresAt != nil && !enrollment.ExpiresAt.After(now):
			return deny(types.CodeEnrollmentExpired, "enrollment has expired", nil)
		}
	}

	return grant()
}

func (s *accessService) loadContent(ctx context.Context, contentID uuid.UUID, contentType types.ContentType) (*contentView, error) {
	switch contentType {
	case types.ContentTypeCourse:
		course, err := s.courseRepo.GetByID(ctx, nil, contentID)
		if err != nil || course == nil {
			return nil, err
		}
		prereqs, err := course.PrerequisiteIDs()
		if err != nil {
			return nil, err
		}
		return &contentView{
			id:                   course.ID,
			contentType:          contentType,
			level:                course.Level,
			published:            course.Published,
			isFree:               course.IsFree,
			requiresSubscription: course.RequiresSubscription,
			prerequisites:        prereqs,
		}, nil
	case types.ContentTypeModule:
		module, err := s.moduleRepo.GetByID(ctx, nil, contentID)
		if err != nil || module == nil {
			return nil, err
		}
		prereqs, err := module.PrerequisiteIDs()
		if err != nil {
			return nil, err
		}
		return &contentView{
			id:                   module.ID,
			contentType:          contentType,
			level:                module.Level,
			published:            module.Published,
			isFree:               module.IsFree,
			requiresSubscription: module.RequiresSubscription,
			prerequisites:        prereqs,
		}, nil
	case types.ContentTypeLesson:
		lesson, err := s.lessonRepo.GetByID(ctx, nil, contentID)
		if err != nil || lesson == nil {
			return nil, err
		}
		prereqs, err := lesson.PrerequisiteIDs()
		if err != nil {
			return nil, err
		}
		return &contentView{
			id:                   lesson.ID,
			contentType:          contentType,
			level:                lesson.Level,
			published:            lesson.Published,
			isFree:               lesson.IsFree,
			requiresSubscription: lesson.RequiresSubscription,
			prerequisites:        prereqs,
		}, nil
	default:
		return nil, nil
	}
}

func (s *accessService) CheckAccess(ctx context.Context, userID, contentID uuid.UUID, contentType types.ContentType) types.AccessDecision {
	if s.cache != nil {
		cached, err := s.cache.GetDecision(ctx, userID, contentID, contentType)
		if err != nil {
			s.log.Warn("Decision cache read failed, evaluating directly", "error", err, "user_id", userID, "content_id", contentID)
		} else if cached != nil {
			return *cached
		}
	}

	decision := s.Evaluate(ctx, userID, contentID, contentType)

	if s.cache != nil {
		if err := s.cache.SetDecision(ctx, userID, contentID, contentType, &decision); err != nil {
			s.log.Warn("Decision cache write failed", "error", err, "user_id", userID, "content_id", contentID)
		}
	}
	return decision
}

func (s *accessService) ListAccessibleContent(ctx context.Context, userID uuid.UUID, level types.Level) ([]CourseSummary, error) {
	if s.cache != nil {
		ids, err := s.cache.GetCourseList(ctx, userID, level)
		if err != nil {
			s.log.Warn("List cache read failed, evaluating directly", "error", err, "user_id", userID, "level", level)
		} else if ids != nil {
			return s.summariesByIDs(ctx, ids)
		}
	}

	courses, err := s.courseRepo.GetPublishedByLevel(ctx, nil, level)
	if err != nil {
		return nil, err
	}

	summaries := make([]CourseSummary, 0, len(courses))
	ids := make([]uuid.UUID, 0, len(courses))
	for _, course := range courses {
		decision := s.Evaluate(ctx, userID, course.ID, types.ContentTypeCourse)
		if !decision.Granted {
			continue
		}
		summaries = append(summaries, CourseSummary{
			ID:          course.ID,
			Title:       course.Title,
			Description: course.Description,
			Level:       course.Level,
		})
		ids = append(ids, course.ID)
	}

	if s.cache != nil {
		if err := s.cache.SetCourseList(ctx, userID, level, ids); err != nil {
			s.log.Warn("List cache write failed", "error", err, "user_id", userID, "level", level)
		}
	}
	return summaries, nil
}

func (s *accessService) summariesByIDs(ctx context.Context, ids []uuid.UUID) ([]CourseSummary, error) {
	courses, err := s.courseRepo.GetByIDs(ctx, nil, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*types.Course, len(courses))
	for _, course := range courses {
		byID[course.ID] = course
	}
	summaries := make([]CourseSummary, 0, len(ids))
	for _, id := range ids {
		course, ok := byID[id]
		if !ok {
			continue
		}
		summaries = append(summaries, CourseSummary{
			ID:          course.ID,
			Title:       course.Title,
			Description: course.Description,
			Level:       course.Level,
		})
	}
	return summaries, nil
}
