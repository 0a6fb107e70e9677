package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coursiva/coursiva-backend/internal/logger"
	"github.com/coursiva/coursiva-backend/internal/types"
)

type ProgressRepo interface {
	GetByUserAndLessonIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, lessonIDs []uuid.UUID) ([]*types.ProgressRecord, error)
	// Status resolves the progress status of one content node for a user,
	// whatever the node's granularity. A missing row reads as not_started.
	Status(ctx context.Context, tx *gorm.DB, userID, nodeID uuid.UUID) (types.ProgressStatus, error)
}

type progressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProgressRepo(db *gorm.DB, baseLog *logger.Logger) ProgressRepo {
	repoLog := baseLog.With("repo", "ProgressRepo")
	return &progressRepo{db: db, log: repoLog}
}

func (r *progressRepo) GetByUserAndLessonIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, lessonIDs []uuid.UUID) ([]*types.ProgressRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ProgressRecord
	if userID == uuid.Nil || len(lessonIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND lesson_id IN ?", userID, lessonIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *progressRepo) Status(ctx context.Context, tx *gorm.DB, userID, nodeID uuid.UUID) (types.ProgressStatus, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if userID == uuid.Nil || nodeID == uuid.Nil {
		return types.ProgressNotStarted, nil
	}

	// The node id lives in exactly one of the three granularity columns.
	var record types.ProgressRecord
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Where(
			transaction.Where("lesson_id = ?", nodeID).
				Or("module_id = ? AND lesson_id IS NULL", nodeID).
				Or("course_id = ? AND module_id IS NULL AND lesson_id IS NULL", nodeID),
		).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.ProgressNotStarted, nil
		}
		return "", err
	}
	return record.Status, nil
}
