package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careerkit/careerkit-service/internal/services"
	"github.com/careerkit/careerkit-service/internal/utils"
)

type QuoteHandler struct {
	BaseHandler
	quoteService services.QuoteService
}

func NewQuoteHandler(quoteService services.QuoteService, logger utils.Logger) *QuoteHandler {
	return &QuoteHandler{
		BaseHandler:  NewBaseHandler(logger),
		quoteService: quoteService,
	}
}

// GetQuote relays today's quote from the upstream provider unchanged
// @Summary Quote of the day
// @Tags public
// @Produce json
// @Success 200 {object} object
// @Failure 500 {object} object "Failed to fetch quote"
// @Router /api/quote [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	quote, err := h.quoteService.Today(c.Request.Context())
	if err != nil {
		utils.LoggerFromContext(c, h.logger).Error("Error fetching quote", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch quote"})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", quote)
}
