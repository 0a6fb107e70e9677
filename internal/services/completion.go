package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/coursiva/coursiva-backend/internal/logger"
	"github.com/coursiva/coursiva-backend/internal/repos"
	"github.com/coursiva/coursiva-backend/internal/types"
)

// CompletionService computes a user's completion percentage for one course
// from per-lesson progress records. Pure read; caching happens upstream at
// the decision cache, never here.
type CompletionService interface {
	Completion(ctx context.Context, userID, courseID uuid.UUID) (float64, error)
}

type completionService struct {
	log          *logger.Logger
	lessonRepo   repos.LessonRepo
	progressRepo repos.ProgressRepo
}

func NewCompletionService(
	baseLog *logger.Logger,
	lessonRepo repos.LessonRepo,
	progressRepo repos.ProgressRepo,
) CompletionService {
	serviceLog := baseLog.With("service", "CompletionService")
	return &completionService{
		log:          serviceLog,
		lessonRepo:   lessonRepo,
		progressRepo: progressRepo,
	}
}

func (s *completionService) Completion(ctx context.Context, userID, courseID uuid.UUID) (float64, error) {
	lessons, err := s.lessonRepo.GetByCourseID(ctx, nil, courseID)
	if err != nil {
		return 0, fmt.Errorf("load course lessons: %w", err)
	}
	if len(lessons) == 0 {
		return 0, nil
	}

	lessonIDs := make([]uuid.UUID, 0, len(lessons))
	for _, lesson := range lessons {
		lessonIDs = append(lessonIDs, lesson.ID)
	}

	records, err := s.progressRepo.GetByUserAndLessonIDs(ctx, nil, userID, lessonIDs)
	if err != nil {
		return 0, fmt.Errorf("load lesson progress: %w", err)
	}

	completed := 0
	for _, record := range records {
		if record.Status == types.ProgressCompleted {
			completed++
		}
	}

	return float64(completed) / float64(len(lessons)) * 100, nil
}
