package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/coursiva/coursiva-backend/internal/logger"
	"github.com/coursiva/coursiva-backend/internal/requestdata"
	"github.com/coursiva/coursiva-backend/internal/services"
	"github.com/coursiva/coursiva-backend/internal/types"
)

type EnrollmentHandler struct {
	log               *logger.Logger
	enrollmentService services.EnrollmentService
}

func NewEnrollmentHandler(log *logger.Logger, enrollmentService services.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{
		log:               log.With("handler", "EnrollmentHandler"),
		enrollmentService: enrollmentService,
	}
}

type enrollRequest struct {
	CourseID uuid.UUID `json:"course_id" binding:"required"`
}

// Enroll handles POST /api/enrollments.
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req enrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	result := h.enrollmentService.Enroll(c.Request.Context(), rd.UserID, req.CourseID)
	if result.Code == types.CodeSystemError {
		RespondError(c, http.StatusInternalServerError, types.CodeSystemError, nil)
		return
	}
	RespondOK(c, gin.H{"result": result})
}
