package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type JobStatus string

const (
	JobActive JobStatus = "active"
	JobClosed JobStatus = "closed"
)

const (
	DefaultJobType    = "Full-time"
	DefaultJobRemote  = "Hybrid"
	DefaultMatchScore = 50
)

type Job struct {
	ID          uint                        `json:"id" gorm:"primaryKey"`
	Title       string                      `json:"title" gorm:"not null;size:200;index"`
	Company     string                      `json:"company" gorm:"not null;size:200"`
	Description string                      `json:"description" gorm:"type:text"`
	Location    string                      `json:"location" gorm:"size:200"`
	Type        string                      `json:"type" gorm:"size:30;default:Full-time"`
	Remote      string                      `json:"remote" gorm:"size:30;default:Hybrid"`
	SalaryMin   *int                        `json:"salary_min"`
	SalaryMax   *int                        `json:"salary_max"`
	Skills      datatypes.JSONSlice[string] `json:"skills"`
	Experience  *int                        `json:"experience"`
	Status      JobStatus                   `json:"status" gorm:"size:20;default:active;index"`

	PostedBy  string         `json:"posted_by" gorm:"not null;size:64;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Poster *User `json:"poster,omitempty" gorm:"foreignKey:PostedBy"`
}

func (Job) TableName() string {
	return "jobs"
}

type ApplicationStatus string

const (
	ApplicationPending     ApplicationStatus = "pending"
	ApplicationReviewed    ApplicationStatus = "reviewed"
	ApplicationShortlisted ApplicationStatus = "shortlisted"
	ApplicationRejected    ApplicationStatus = "rejected"
)

func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationPending, ApplicationReviewed, ApplicationShortlisted, ApplicationRejected:
		return true
	}
	return false
}

// JobApplication.MatchScore is computed once when the application is
// created and never updated.
type JobApplication struct {
	ID          uint              `json:"id" gorm:"primaryKey"`
	JobID       uint              `json:"job_id" gorm:"not null;uniqueIndex:idx_application_job_applicant"`
	ApplicantID string            `json:"applicant_id" gorm:"not null;size:64;uniqueIndex:idx_application_job_applicant;index"`
	CoverLetter *string           `json:"cover_letter" gorm:"type:text"`
	MatchScore  int               `json:"match_score" gorm:"not null;default:50"`
	Status      ApplicationStatus `json:"status" gorm:"size:20;default:pending;index"`
	AppliedAt   time.Time         `json:"applied_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Job       *Job  `json:"job,omitempty" gorm:"foreignKey:JobID"`
	Applicant *User `json:"applicant,omitempty" gorm:"foreignKey:ApplicantID"`
}

func (JobApplication) TableName() string {
	return "job_applications"
}
