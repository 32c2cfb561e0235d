package models

import "time"

// ===== LIST ITEM DTOs =====

// CourseWithStats is a course together with its approved enrollment count
type CourseWithStats struct {
	Course
	EnrollmentCount int64 `json:"enrollment_count"`
}

// EnrollmentStatusSummary is what a user sees about their own enrollment
type EnrollmentStatusSummary struct {
	CourseID   uint              `json:"course_id"`
	Enrolled   bool              `json:"enrolled"`
	Status     *EnrollmentStatus `json:"status"`
	EnrolledAt *time.Time        `json:"enrolled_at,omitempty"`
	ApprovedAt *time.Time        `json:"approved_at,omitempty"`
	Notes      *string           `json:"notes,omitempty"`
}
