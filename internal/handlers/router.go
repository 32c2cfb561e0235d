package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/careerkit/careerkit-service/internal/config"
	"github.com/careerkit/careerkit-service/internal/services"
	"github.com/careerkit/careerkit-service/internal/utils"
)

const (
	aiRateWindow       = time.Minute
	healthCheckTimeout = 5 * time.Second
)

type HandlerConfig struct {
	Casdoor config.CasdoorConfig
	// Limiter may be nil, which disables rate limiting
	Limiter             Limiter
	AIRequestsPerMinute int
}

type HandlerManager struct {
	userHandler        *UserHandler
	courseHandler      *CourseHandler
	enrollmentHandler  *EnrollmentHandler
	jobHandler         *JobHandler
	interviewHandler   *InterviewHandler
	coverLetterHandler *CoverLetterHandler
	quoteHandler       *QuoteHandler

	serviceManager services.ServiceManager
	auth           gin.HandlerFunc
	aiLimit        gin.HandlerFunc
	logger         utils.Logger
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger, cfg HandlerConfig) *HandlerManager {
	authMiddleware := NewCasdoorAuthMiddleware(cfg.Casdoor, serviceManager.User(), logger)
	return newHandlerManager(serviceManager, logger, authMiddleware.AuthMiddleware(), cfg)
}

func newHandlerManager(serviceManager services.ServiceManager, logger utils.Logger, auth gin.HandlerFunc, cfg HandlerConfig) *HandlerManager {
	return &HandlerManager{
		userHandler: NewUserHandler(
			serviceManager.User(),
			serviceManager.Dashboard(),
			serviceManager.Insight(),
			logger,
		),
		courseHandler: NewCourseHandler(
			serviceManager.Course(),
			serviceManager.Enrollment(),
			serviceManager.Export(),
			logger,
		),
		enrollmentHandler:  NewEnrollmentHandler(serviceManager.Enrollment(), logger),
		jobHandler:         NewJobHandler(serviceManager.Job(), logger),
		interviewHandler:   NewInterviewHandler(serviceManager.VoiceInterview(), logger),
		coverLetterHandler: NewCoverLetterHandler(serviceManager.CoverLetter(), logger),
		quoteHandler:       NewQuoteHandler(serviceManager.Quote(), logger),

		serviceManager: serviceManager,
		auth:           auth,
		aiLimit:        RateLimitMiddleware(cfg.Limiter, "ai", cfg.AIRequestsPerMinute, aiRateWindow, logger),
		logger:         logger,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.health)
	router.GET("/api/quote", hm.quoteHandler.GetQuote)

	// API v1 routes with authentication
	v1 := router.Group("/api/v1")
	v1.Use(hm.auth)
	{
		users := v1.Group("/users/me")
		{
			users.GET("", hm.userHandler.GetMe)
			users.PUT("/profile", hm.aiLimit, hm.userHandler.UpdateProfile)
			users.GET("/onboarding", hm.userHandler.GetOnboardingStatus)
			users.GET("/dashboard", hm.userHandler.GetDashboard)
		}

		insights := v1.Group("/insights")
		{
			insights.GET("/me", hm.userHandler.GetMyInsight)
			insights.GET("/:industry", hm.userHandler.GetIndustryInsight)
		}

		courses := v1.Group("/courses")
		{
			courses.GET("", hm.courseHandler.ListCourses)
			courses.POST("", hm.courseHandler.CreateCourse)
			courses.GET("/mine", hm.courseHandler.ListMyCourses)
			courses.GET("/:id", hm.courseHandler.GetCourse)
			courses.PUT("/:id", hm.courseHandler.UpdateCourse)
			courses.DELETE("/:id", hm.courseHandler.DeleteCourse)

			// Enrollment workflow
			courses.GET("/:id/enrollment", hm.courseHandler.GetEnrollmentStatus)
			courses.POST("/:id/enroll", hm.courseHandler.Enroll)
			courses.GET("/:id/enrollments/history", hm.courseHandler.GetEnrollmentHistory)
			courses.GET("/:id/enrollments/export", hm.courseHandler.ExportRoster)
		}

		enrollments := v1.Group("/enrollments")
		{
			enrollments.GET("/mine", hm.enrollmentHandler.ListMine)
			enrollments.GET("/pending", hm.enrollmentHandler.ListPending)
			enrollments.PUT("/:id/status", hm.enrollmentHandler.UpdateStatus)
		}

		jobs := v1.Group("/jobs")
		{
			jobs.GET("", hm.jobHandler.ListJobs)
			jobs.POST("", hm.jobHandler.CreateJob)
			jobs.GET("/mine", hm.jobHandler.ListMyJobs)
			jobs.POST("/:id/close", hm.jobHandler.CloseJob)
			jobs.POST("/:id/apply", hm.aiLimit, hm.jobHandler.Apply)
			jobs.GET("/:id/applications", hm.jobHandler.ListApplications)
		}

		applications := v1.Group("/applications")
		{
			applications.GET("/mine", hm.jobHandler.ListMyApplications)
			applications.PUT("/:id/status", hm.jobHandler.UpdateApplicationStatus)
		}

		interviews := v1.Group("/interviews")
		{
			interviews.POST("", hm.aiLimit, hm.interviewHandler.CreateInterview)
			interviews.GET("", hm.interviewHandler.ListInterviews)
			interviews.GET("/:id", hm.interviewHandler.GetInterview)
			interviews.PUT("/:id/responses", hm.interviewHandler.RecordResponse)
			interviews.POST("/:id/complete", hm.aiLimit, hm.interviewHandler.CompleteInterview)
		}

		coverLetters := v1.Group("/cover-letters")
		{
			coverLetters.POST("", hm.aiLimit, hm.coverLetterHandler.GenerateCoverLetter)
			coverLetters.GET("", hm.coverLetterHandler.ListCoverLetters)
			coverLetters.GET("/:id", hm.coverLetterHandler.GetCoverLetter)
			coverLetters.DELETE("/:id", hm.coverLetterHandler.DeleteCoverLetter)
		}
	}
}

func (hm *HandlerManager) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	if err := hm.serviceManager.HealthCheck(ctx); err != nil {
		utils.LoggerFromContext(c, hm.logger).Error("Health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
