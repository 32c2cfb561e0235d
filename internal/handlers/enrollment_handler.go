package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careerkit/careerkit-service/internal/services"
	"github.com/careerkit/careerkit-service/internal/utils"
)

type EnrollmentHandler struct {
	BaseHandler
	enrollmentService services.EnrollmentService
}

func NewEnrollmentHandler(enrollmentService services.EnrollmentService, logger utils.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		BaseHandler:       NewBaseHandler(logger),
		enrollmentService: enrollmentService,
	}
}

func (h *EnrollmentHandler) ListMine(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	enrollments, err := h.enrollmentService.ListMine(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, enrollments)
}

// ListPending returns pending enrollments across the caller's courses
func (h *EnrollmentHandler) ListPending(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	enrollments, err := h.enrollmentService.ListPendingForCreator(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, enrollments)
}

// UpdateStatus approves or rejects a pending enrollment
// @Summary Review enrollment
// @Tags enrollments
// @Accept json
// @Produce json
// @Param id path uint true "Enrollment ID"
// @Param decision body services.EnrollmentDecisionRequest true "approved or rejected; notes required to reject"
// @Success 200 {object} models.CourseEnrollment
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 403 {object} ErrorResponse "Not the course creator"
// @Failure 409 {object} ErrorResponse "Enrollment is not pending"
// @Router /enrollments/{id}/status [put]
func (h *EnrollmentHandler) UpdateStatus(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.EnrollmentDecisionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Reviewing enrollment", "enrollment_id", id, "status", req.Status)

	enrollment, err := h.enrollmentService.Decide(c.Request.Context(), id, userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, enrollment)
}
