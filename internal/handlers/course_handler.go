package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/careerkit/careerkit-service/internal/repositories"
	"github.com/careerkit/careerkit-service/internal/services"
	"github.com/careerkit/careerkit-service/internal/utils"
)

type CourseHandler struct {
	BaseHandler
	courseService     services.CourseService
	enrollmentService services.EnrollmentService
	exportService     services.ExportService
}

func NewCourseHandler(
	courseService services.CourseService,
	enrollmentService services.EnrollmentService,
	exportService services.ExportService,
	logger utils.Logger,
) *CourseHandler {
	return &CourseHandler{
		BaseHandler:       NewBaseHandler(logger),
		courseService:     courseService,
		enrollmentService: enrollmentService,
		exportService:     exportService,
	}
}

// ListCourses lists active courses
// @Summary List courses
// @Tags courses
// @Produce json
// @Param category query string false "Category"
// @Param job_role query string false "Job role"
// @Param level query string false "Level"
// @Param is_premium query bool false "Premium only / free only"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} services.CourseListResponse
// @Router /courses [get]
func (h *CourseHandler) ListCourses(c *gin.Context) {
	filters := services.CourseListFilters{
		Category: c.Query("category"),
		JobRole:  c.Query("job_role"),
		Level:    c.Query("level"),
		Limit:    queryInt(c, "limit", 0),
		Offset:   queryInt(c, "offset", 0),
	}
	if raw := c.Query("is_premium"); raw != "" {
		premium, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid is_premium parameter",
			})
			return
		}
		filters.IsPremium = &premium
	}

	courses, err := h.courseService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, courses)
}

// CreateCourse creates a new course owned by the caller
// @Summary Create course
// @Tags courses
// @Accept json
// @Produce json
// @Param course body services.CreateCourseRequest true "Course data"
// @Success 201 {object} models.Course
// @Failure 400 {object} ErrorResponse
// @Router /courses [post]
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req services.CreateCourseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	course, err := h.courseService.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, course)
}

func (h *CourseHandler) ListMyCourses(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	courses, err := h.courseService.ListMine(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, courses)
}

func (h *CourseHandler) GetCourse(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	course, err := h.courseService.Get(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateCourseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Updating course", "course_id", id)

	course, err := h.courseService.Update(c.Request.Context(), id, &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Deleting course", "course_id", id)

	if err := h.courseService.Delete(c.Request.Context(), id, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Course deleted successfully",
	})
}

// GetEnrollmentStatus reports the caller's enrollment in a course
// @Summary Get my enrollment status
// @Tags enrollments
// @Produce json
// @Param id path uint true "Course ID"
// @Success 200 {object} models.EnrollmentStatusSummary
// @Router /courses/{id}/enrollment [get]
func (h *CourseHandler) GetEnrollmentStatus(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	status, err := h.enrollmentService.GetStatus(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// Enroll requests enrollment. Free courses are approved at once; premium
// courses wait for the creator's review.
// @Summary Enroll in course
// @Tags enrollments
// @Accept json
// @Produce json
// @Param id path uint true "Course ID"
// @Param payment body services.EnrollRequest false "Payment evidence"
// @Success 201 {object} models.CourseEnrollment
// @Failure 409 {object} ErrorResponse "Already enrolled or pending"
// @Router /courses/{id}/enroll [post]
func (h *CourseHandler) Enroll(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.EnrollRequest
	// body is optional for free courses
	if c.Request.ContentLength != 0 {
		if !h.bindJSON(c, &req) {
			return
		}
	}

	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Enrolling in course", "course_id", id)

	enrollment, err := h.enrollmentService.Enroll(c.Request.Context(), id, userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, enrollment)
}

func (h *CourseHandler) GetEnrollmentHistory(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	history, err := h.enrollmentService.History(c.Request.Context(), id, userID, repositories.ListFilters{
		Limit:  queryInt(c, "limit", 0),
		Offset: queryInt(c, "offset", 0),
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}

// ExportRoster downloads the course roster as an XLSX workbook
func (h *CourseHandler) ExportRoster(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	export, err := h.exportService.ExportRoster(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.FileName+`"`)
	c.Data(http.StatusOK, export.ContentType, export.Data)
}
