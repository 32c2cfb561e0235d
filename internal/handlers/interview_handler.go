package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careerkit/careerkit-service/internal/services"
	"github.com/careerkit/careerkit-service/internal/utils"
)

type InterviewHandler struct {
	BaseHandler
	interviewService services.VoiceInterviewService
}

func NewInterviewHandler(interviewService services.VoiceInterviewService, logger utils.Logger) *InterviewHandler {
	return &InterviewHandler{
		BaseHandler:      NewBaseHandler(logger),
		interviewService: interviewService,
	}
}

// CreateInterview starts a practice interview with five generated questions
// @Summary Start interview
// @Tags interviews
// @Produce json
// @Success 201 {object} models.VoiceInterview
// @Router /interviews [post]
func (h *InterviewHandler) CreateInterview(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	interview, err := h.interviewService.Create(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, interview)
}

func (h *InterviewHandler) ListInterviews(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	interviews, err := h.interviewService.List(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, interviews)
}

func (h *InterviewHandler) GetInterview(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	interview, err := h.interviewService.Get(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, interview)
}

// RecordResponse stores the answer to one question, replacing any earlier answer
// @Summary Record interview response
// @Tags interviews
// @Accept json
// @Produce json
// @Param id path uint true "Interview ID"
// @Param response body services.InterviewResponseRequest true "Answer"
// @Success 200 {object} models.VoiceInterview
// @Failure 409 {object} ErrorResponse "Interview already completed"
// @Router /interviews/{id}/responses [put]
func (h *InterviewHandler) RecordResponse(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.InterviewResponseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	interview, err := h.interviewService.RecordResponse(c.Request.Context(), id, userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, interview)
}

func (h *InterviewHandler) CompleteInterview(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Completing interview", "interview_id", id)

	interview, err := h.interviewService.Complete(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, interview)
}
