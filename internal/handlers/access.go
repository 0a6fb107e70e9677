package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/coursiva/coursiva-backend/internal/logger"
	"github.com/coursiva/coursiva-backend/internal/requestdata"
	"github.com/coursiva/coursiva-backend/internal/services"
	"github.com/coursiva/coursiva-backend/internal/types"
)

type AccessHandler struct {
	log           *logger.Logger
	accessService services.AccessService
}

func NewAccessHandler(log *logger.Logger, accessService services.AccessService) *AccessHandler {
	return &AccessHandler{
		log:           log.With("handler", "AccessHandler"),
		accessService: accessService,
	}
}

// CheckAccess handles GET /api/access/:contentType/:contentID. Denials are
// 200s with granted=false; callers branch on the decision code.
func (h *AccessHandler) CheckAccess(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	contentType := types.ContentType(c.Param("contentType"))
	if !contentType.Valid() {
		RespondError(c, http.StatusBadRequest, "invalid_content_type", errors.New("contentType must be course, module or lesson"))
		return
	}
	contentID, err := uuid.Parse(c.Param("contentID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_content_id", err)
		return
	}

	decision := h.accessService.CheckAccess(c.Request.Context(), rd.UserID, contentID, contentType)
	if decision.Code == types.CodeSystemError {
		RespondError(c, http.StatusInternalServerError, types.CodeSystemError, errors.New(decision.Message))
		return
	}
	RespondOK(c, gin.H{"decision": decision})
}

// ListAccessible handles GET /api/content/accessible?level=.
func (h *AccessHandler) ListAccessible(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	level := types.Level(c.Query("level"))
	if !level.Valid() {
		RespondError(c, http.StatusBadRequest, "invalid_level", errors.New("level must be beginner, intermediate or advanced"))
		return
	}

	courses, err := h.accessService.ListAccessibleContent(c.Request.Context(), rd.UserID, level)
	if err != nil {
		h.log.Error("ListAccessible failed", "error", err, "user_id", rd.UserID, "level", level)
		RespondError(c, http.StatusInternalServerError, "list_accessible_failed", err)
		return
	}
	RespondOK(c, gin.H{"courses": courses})
}
