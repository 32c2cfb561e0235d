package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careerkit/careerkit-service/internal/services"
	"github.com/careerkit/careerkit-service/internal/utils"
)

type JobHandler struct {
	BaseHandler
	jobService services.JobService
}

func NewJobHandler(jobService services.JobService, logger utils.Logger) *JobHandler {
	return &JobHandler{
		BaseHandler: NewBaseHandler(logger),
		jobService:  jobService,
	}
}

// ListJobs lists open job postings
// @Summary List jobs
// @Tags jobs
// @Produce json
// @Param q query string false "Title or company contains"
// @Param type query string false "Full-time, Part-time, Contract, Internship"
// @Param remote query string false "Remote, Onsite, Hybrid"
// @Success 200 {object} services.JobListResponse
// @Router /jobs [get]
func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.jobService.List(c.Request.Context(), services.JobListFilters{
		Query:  c.Query("q"),
		Type:   c.Query("type"),
		Remote: c.Query("remote"),
		Limit:  queryInt(c, "limit", 0),
		Offset: queryInt(c, "offset", 0),
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	var req services.CreateJobRequest
	if !h.bindJSON(c, &req) {
		return
	}

	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	job, err := h.jobService.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) ListMyJobs(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	jobs, err := h.jobService.ListMine(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) CloseJob(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	if err := h.jobService.Close(c.Request.Context(), id, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Job closed"})
}

// Apply submits an application and scores it against the applicant's profile
// @Summary Apply to job
// @Tags jobs
// @Accept json
// @Produce json
// @Param id path uint true "Job ID"
// @Param application body services.ApplyJobRequest false "Cover letter"
// @Success 201 {object} models.JobApplication
// @Failure 409 {object} ErrorResponse "Already applied, job closed or own job"
// @Router /jobs/{id}/apply [post]
func (h *JobHandler) Apply(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.ApplyJobRequest
	if c.Request.ContentLength != 0 {
		if !h.bindJSON(c, &req) {
			return
		}
	}

	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Applying to job", "job_id", id)

	application, err := h.jobService.Apply(c.Request.Context(), id, userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, application)
}

func (h *JobHandler) ListApplications(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	applications, err := h.jobService.ListApplications(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, applications)
}

func (h *JobHandler) ListMyApplications(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	applications, err := h.jobService.ListMyApplications(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, applications)
}

func (h *JobHandler) UpdateApplicationStatus(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.ApplicationStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Updating application status", "application_id", id, "status", req.Status)

	application, err := h.jobService.UpdateApplicationStatus(c.Request.Context(), id, userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, application)
}
