package repositories

import (
	"github.com/careerkit/careerkit-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type CourseFilters struct {
	Category  *string              `json:"category"`
	JobRole   *string              `json:"job_role"`
	IsPremium *bool                `json:"is_premium"`
	Level     *models.CourseLevel  `json:"level"`
	Status    *models.CourseStatus `json:"status"`
	CreatorID *string              `json:"creator_id"`
	Limit     int                  `json:"limit"`
	Offset    int                  `json:"offset"`
	SortBy    string               `json:"sort_by"`    // "created_at", "title", "price"
	SortOrder string               `json:"sort_order"` // "asc", "desc"
}

type EnrollmentFilters struct {
	Status    *models.EnrollmentStatus `json:"status"`
	Limit     int                      `json:"limit"`
	Offset    int                      `json:"offset"`
	SortBy    string                   `json:"sort_by"`
	SortOrder string                   `json:"sort_order"`
}

type JobFilters struct {
	Status    *models.JobStatus `json:"status"`
	PostedBy  *string           `json:"posted_by"`
	Type      *string           `json:"type"`
	Remote    *string           `json:"remote"`
	Query     *string           `json:"query"` // title or company contains
	Limit     int               `json:"limit"`
	Offset    int               `json:"offset"`
	SortBy    string            `json:"sort_by"`
	SortOrder string            `json:"sort_order"`
}

type ListFilters struct {
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"`
}

// ===== SHARED STATISTICS STRUCTS =====

type EnrollmentCounts struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

type ApplicationStats struct {
	TotalApplications int64   `json:"total_applications"`
	AverageMatchScore float64 `json:"average_match_score"`
}

type InterviewStats struct {
	TotalInterviews     int64   `json:"total_interviews"`
	CompletedInterviews int64   `json:"completed_interviews"`
	AverageScore        float64 `json:"average_score"`
}
