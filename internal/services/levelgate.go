package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/coursiva/coursiva-backend/internal/logger"
	"github.com/coursiva/coursiva-backend/internal/repos"
	"github.com/coursiva/coursiva-backend/internal/types"
)

// LevelGateThreshold is the average completion a user needs across the
// lower level before the next level unlocks.
const LevelGateThreshold = 80.0

type LevelGateResult struct {
	Granted            bool
	RequiredCompletion float64
	CurrentCompletion  float64
}

// LevelGateService decides whether a user may enter a difficulty level.
// The average runs over every published course at the next-lower level,
// enrolled or not, so courses the user never started contribute 0.
type LevelGateService interface {
	CanEnterLevel(ctx context.Context, userID uuid.UUID, level types.Level) (LevelGateResult, error)
}

type levelGateService struct {
	log        *logger.Logger
	courseRepo repos.CourseRepo
	completion CompletionService
}

func NewLevelGateService(
	baseLog *logger.Logger,
	courseRepo repos.CourseRepo,
	completion CompletionService,
) LevelGateService {
	serviceLog := baseLog.With("service", "LevelGateService")
	return &levelGateService{
		log:        serviceLog,
		courseRepo: courseRepo,
		completion: completion,
	}
}

func (s *levelGateService) CanEnterLevel(ctx context.Context, userID uuid.UUID, level types.Level) (LevelGateResult, error) {
	lower, ok := level.Below()
	if !ok {
		// Beginner has no gate.
		return LevelGateResult{Granted: true, RequiredCompletion: LevelGateThreshold, CurrentCompletion: 100}, nil
	}

	courses, err := s.courseRepo.GetPublishedByLevel(ctx, nil, lower)
	if err != nil {
		return LevelGateResult{}, fmt.Errorf("load %s courses: %w", lower, err)
	}
	if len(courses) == 0 {
		// Nothing to complete at the lower level.
		return LevelGateResult{Granted: true, RequiredCompletion: LevelGateThreshold, CurrentCompletion: 100}, nil
	}

	var sum float64
	for _, course := range courses {
		pct, err := s.completion.Completion(ctx, userID, course.ID)
		if err != nil {
			return LevelGateResult{}, fmt.Errorf("completion for course %s: %w", course.ID, err)
		}
		sum += pct
	}
	avg := sum / float64(len(courses))

	return LevelGateResult{
		Granted:            avg >= LevelGateThreshold,
		RequiredCompletion: LevelGateThreshold,
		CurrentCompletion:  avg,
	}, nil
}
