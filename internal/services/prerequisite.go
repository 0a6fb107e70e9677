package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/coursiva/coursiva-backend/internal/logger"
	"github.com/coursiva/coursiva-backend/internal/repos"
	"github.com/coursiva/coursiva-backend/internal/types"
)

type PrerequisiteResult struct {
	Granted       bool
	IncompleteIDs []uuid.UUID
}

// PrerequisiteService checks that every declared prerequisite of a content
// node is completed for the user. All prerequisites are checked, never just
// the first failure, so IncompleteIDs is exhaustive.
type PrerequisiteService interface {
	CheckPrerequisites(ctx context.Context, userID uuid.UUID, prereqIDs []uuid.UUID) (PrerequisiteResult, error)
}

type prerequisiteService struct {
	log          *logger.Logger
	progressRepo repos.ProgressRepo
}

func NewPrerequisiteService(baseLog *logger.Logger, progressRepo repos.ProgressRepo) PrerequisiteService {
	serviceLog := baseLog.With("service", "PrerequisiteService")
	return &prerequisiteService{log: serviceLog, progressRepo: progressRepo}
}

func (s *prerequisiteService) CheckPrerequisites(ctx context.Context, userID uuid.UUID, prereqIDs []uuid.UUID) (PrerequisiteResult, error) {
	if len(prereqIDs) == 0 {
		return PrerequisiteResult{Granted: true}, nil
	}

	var incomplete []uuid.UUID
	for _, prereqID := range prereqIDs {
		status, err := s.progressRepo.Status(ctx, nil, userID, prereqID)
		if err != nil {
			return PrerequisiteResult{}, fmt.Errorf("progress status for %s: %w", prereqID, err)
		}
		if status != types.ProgressCompleted {
			incomplete = append(incomplete, prereqID)
		}
	}

	return PrerequisiteResult{
		Granted:       len(incomplete) == 0,
		IncompleteIDs: incomplete,
	}, nil
}
