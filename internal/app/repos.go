package app

import (
	"gorm.io/gorm"

	"github.com/coursiva/coursiva-backend/internal/logger"
	"github.com/coursiva/coursiva-backend/internal/repos"
)

type Repos struct {
	User         repos.UserRepo
	Course       repos.CourseRepo
	CourseModule repos.CourseModuleRepo
	Lesson       repos.LessonRepo
	Progress     repos.ProgressRepo
	Enrollment   repos.EnrollmentRepo
	AccessAudit  repos.AccessAuditRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	return Repos{
		User:         repos.NewUserRepo(db, log),
		Course:       repos.NewCourseRepo(db, log),
		CourseModule: repos.NewCourseModuleRepo(db, log),
		Lesson:       repos.NewLessonRepo(db, log),
		Progress:     repos.NewProgressRepo(db, log),
		Enrollment:   repos.NewEnrollmentRepo(db, log),
		AccessAudit:  repos.NewAccessAuditRepo(db, log),
	}
}
