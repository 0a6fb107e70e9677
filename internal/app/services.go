package app

import (
	redisclient "github.com/coursiva/coursiva-backend/internal/clients/redis"
	"github.com/coursiva/coursiva-backend/internal/logger"
	"github.com/coursiva/coursiva-backend/internal/services"
)

type Services struct {
	Completion   services.CompletionService
	LevelGate    services.LevelGateService
	Prerequisite services.PrerequisiteService
	Audit        services.AuditService
	Access       services.AccessService
	Enrollment   services.EnrollmentService
}

func wireServices(log *logger.Logger, reposet Repos, cache redisclient.DecisionCache) Services {
	completion := services.NewCompletionService(log, reposet.Lesson, reposet.Progress)
	levelGate := services.NewLevelGateService(log, reposet.Course, completion)
	prereq := services.NewPrerequisiteService(log, reposet.Progress)
	audit := services.NewAuditService(log, reposet.AccessAudit)
	access := services.NewAccessService(
		log,
		reposet.User,
		reposet.Course,
		reposet.CourseModule,
		reposet.Lesson,
		reposet.Enrollment,
		levelGate,
		prereq,
		cache,
		audit,
	)
	enrollment := services.NewEnrollmentService(log, reposet.Enrollment, access, cache)

	return Services{
		Completion:   completion,
		LevelGate:    levelGate,
		Prerequisite: prereq,
		Audit:        audit,
		Access:       access,
		Enrollment:   enrollment,
	}
}
