package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/coursiva/coursiva-backend/internal/logger"
	"github.com/coursiva/coursiva-backend/internal/types"
)

type AccessAuditRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.AccessAuditRecord) error
}

type accessAuditRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAccessAuditRepo(db *gorm.DB, baseLog *logger.Logger) AccessAuditRepo {
	repoLog := baseLog.With("repo", "AccessAuditRepo")
	return &accessAuditRepo{db: db, log: repoLog}
}

func (r *accessAuditRepo) Create(ctx context.Context, tx *gorm.DB, row *types.AccessAuditRecord) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil
	}

	if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	return nil
}
