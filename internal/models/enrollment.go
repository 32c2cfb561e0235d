package models

import "time"

type EnrollmentStatus string

const (
	EnrollmentPending  EnrollmentStatus = "pending"
	EnrollmentApproved EnrollmentStatus = "approved"
	EnrollmentRejected EnrollmentStatus = "rejected"
)

// CourseEnrollment is unique per (course, user). Rejected rows are hard
// deleted when the user re-enrolls, so there is no soft delete here.
type CourseEnrollment struct {
	ID            uint             `json:"id" gorm:"primaryKey"`
	CourseID      uint             `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollment_course_user"`
	UserID        string           `json:"user_id" gorm:"not null;size:64;uniqueIndex:idx_enrollment_course_user;index"`
	Status        EnrollmentStatus `json:"status" gorm:"size:20;not null;index"`
	PaymentProof  *string          `json:"payment_proof" gorm:"size:500"`
	TransactionID *string          `json:"transaction_id" gorm:"size:255"`
	PaymentMethod *string          `json:"payment_method" gorm:"size:50"`
	EnrolledAt    time.Time        `json:"enrolled_at"`
	ApprovedAt    *time.Time       `json:"approved_at"`
	ApprovedBy    *string          `json:"approved_by" gorm:"size:64"`
	Notes         *string          `json:"notes" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Course *Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	User   *User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (CourseEnrollment) TableName() string {
	return "course_enrollments"
}

type EnrollmentEvent string

const (
	EventRequested    EnrollmentEvent = "requested"
	EventAutoApproved EnrollmentEvent = "auto_approved"
	EventApproved     EnrollmentEvent = "approved"
	EventRejected     EnrollmentEvent = "rejected"
	EventReenrolled   EnrollmentEvent = "reenrolled"
)

// EnrollmentHistory is an append-only record of enrollment workflow events.
// Rows survive the deletion of the enrollment they describe.
type EnrollmentHistory struct {
	ID           uint             `json:"id" gorm:"primaryKey"`
	EnrollmentID uint             `json:"enrollment_id" gorm:"index"`
	CourseID     uint             `json:"course_id" gorm:"not null;index"`
	UserID       string           `json:"user_id" gorm:"not null;size:64;index"`
	ActorID      string           `json:"actor_id" gorm:"not null;size:64"`
	Event        EnrollmentEvent  `json:"event" gorm:"size:30;not null"`
	Status       EnrollmentStatus `json:"status" gorm:"size:20;not null"`
	Notes        *string          `json:"notes" gorm:"type:text"`
	CreatedAt    time.Time        `json:"created_at" gorm:"index"`
}

func (EnrollmentHistory) TableName() string {
	return "enrollment_history"
}
