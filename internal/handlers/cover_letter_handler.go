package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careerkit/careerkit-service/internal/services"
	"github.com/careerkit/careerkit-service/internal/utils"
)

type CoverLetterHandler struct {
	BaseHandler
	coverLetterService services.CoverLetterService
}

func NewCoverLetterHandler(coverLetterService services.CoverLetterService, logger utils.Logger) *CoverLetterHandler {
	return &CoverLetterHandler{
		BaseHandler:        NewBaseHandler(logger),
		coverLetterService: coverLetterService,
	}
}

// GenerateCoverLetter writes a cover letter for a job from the caller's profile
// @Summary Generate cover letter
// @Tags cover-letters
// @Accept json
// @Produce json
// @Param request body services.CoverLetterRequest true "Target job"
// @Success 201 {object} models.CoverLetter
// @Failure 500 {object} ErrorResponse "Content generation failed"
// @Router /cover-letters [post]
func (h *CoverLetterHandler) GenerateCoverLetter(c *gin.Context) {
	var req services.CoverLetterRequest
	if !h.bindJSON(c, &req) {
		return
	}

	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Generating cover letter", "company", req.CompanyName)

	letter, err := h.coverLetterService.Generate(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, letter)
}

func (h *CoverLetterHandler) ListCoverLetters(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	letters, err := h.coverLetterService.List(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, letters)
}

func (h *CoverLetterHandler) GetCoverLetter(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	letter, err := h.coverLetterService.Get(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, letter)
}

func (h *CoverLetterHandler) DeleteCoverLetter(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	if err := h.coverLetterService.Delete(c.Request.Context(), id, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Cover letter deleted successfully"})
}
