package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careerkit/careerkit-service/internal/services"
	"github.com/careerkit/careerkit-service/internal/utils"
)

type UserHandler struct {
	BaseHandler
	userService      services.UserService
	dashboardService services.DashboardService
	insightService   services.InsightService
}

func NewUserHandler(
	userService services.UserService,
	dashboardService services.DashboardService,
	insightService services.InsightService,
	logger utils.Logger,
) *UserHandler {
	return &UserHandler{
		BaseHandler:      NewBaseHandler(logger),
		userService:      userService,
		dashboardService: dashboardService,
		insightService:   insightService,
	}
}

// GetMe returns the authenticated user
// @Summary Get current user
// @Tags users
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile completes onboarding or edits the profile. The industry
// insight for the chosen industry is created in the same step.
// @Summary Update profile
// @Tags users
// @Accept json
// @Produce json
// @Param profile body services.ProfileUpdateRequest true "Profile data"
// @Success 200 {object} services.ProfileUpdateResponse
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 500 {object} ErrorResponse "Failed to update profile"
// @Router /users/me/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req services.ProfileUpdateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Updating profile", "industry", req.Industry)

	resp, err := h.userService.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) GetOnboardingStatus(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	status, err := h.userService.GetOnboardingStatus(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// GetDashboard returns aggregated activity for the authenticated user
// @Summary Get dashboard
// @Tags users
// @Produce json
// @Success 200 {object} services.DashboardResponse
// @Router /users/me/dashboard [get]
func (h *UserHandler) GetDashboard(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	dashboard, err := h.dashboardService.Get(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// GetMyInsight returns the insight for the user's industry
func (h *UserHandler) GetMyInsight(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	insight, err := h.insightService.GetForUser(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, insight)
}

func (h *UserHandler) GetIndustryInsight(c *gin.Context) {
	industry := c.Param("industry")
	h.LogRequest(c, "Getting industry insight", "industry", industry)

	insight, err := h.insightService.GetForIndustry(c.Request.Context(), industry)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, insight)
}
