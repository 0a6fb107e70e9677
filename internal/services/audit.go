package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/coursiva/coursiva-backend/internal/logger"
	"github.com/coursiva/coursiva-backend/internal/repos"
	"github.com/coursiva/coursiva-backend/internal/types"
)

// AuditService records every access decision. Writes are fire-and-forget:
// a failed audit write is logged and never blocks or fails the decision.
type AuditService interface {
	Record(userID, contentID uuid.UUID, contentType types.ContentType, decision types.AccessDecision)
}

type auditService struct {
	log       *logger.Logger
	auditRepo repos.AccessAuditRepo
}

func NewAuditService(baseLog *logger.Logger, auditRepo repos.AccessAuditRepo) AuditService {
	serviceLog := baseLog.With("service", "AuditService")
	return &auditService{log: serviceLog, auditRepo: auditRepo}
}

func (s *auditService) Record(userID, contentID uuid.UUID, contentType types.ContentType, decision types.AccessDecision) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		row := &types.AccessAuditRecord{
			ID:          uuid.New(),
			UserID:      userID,
			ContentID:   contentID,
			ContentType: contentType,
			Code:        decision.Code,
			Granted:     decision.Granted,
			CreatedAt:   time.Now(),
		}
		if err := s.auditRepo.Create(ctx, nil, row); err != nil {
			s.log.Warn("Access audit write failed", "error", err, "user_id", userID, "content_id", contentID)
		}
	}()
}
