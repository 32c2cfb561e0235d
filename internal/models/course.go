package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CourseLevel string

const (
	LevelBeginner     CourseLevel = "Beginner"
	LevelIntermediate CourseLevel = "Intermediate"
	LevelAdvanced     CourseLevel = "Advanced"
)

type CourseStatus string

const (
	CourseActive   CourseStatus = "active"
	CourseInactive CourseStatus = "inactive"
)

type CourseVideo struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Duration string `json:"duration"`
}

type Course struct {
	ID             uint                             `json:"id" gorm:"primaryKey"`
	Title          string                           `json:"title" gorm:"not null;size:200;index"`
	Platform       string                           `json:"platform" gorm:"size:100"`
	Instructor     string                           `json:"instructor" gorm:"size:200"`
	Description    string                           `json:"description" gorm:"type:text"`
	Category       string                           `json:"category" gorm:"size:100;index"`
	JobRole        string                           `json:"job_role" gorm:"size:100;index"`
	Level          CourseLevel                      `json:"level" gorm:"size:20;default:Beginner;index"`
	Duration       string                           `json:"duration" gorm:"size:50"`
	IsPremium      bool                             `json:"is_premium" gorm:"default:false;index"`
	Price          float64                          `json:"price" gorm:"default:0"`
	PaymentDetails *string                          `json:"payment_details" gorm:"type:text"`
	Skills         datatypes.JSONSlice[string]      `json:"skills"`
	ThumbnailURL   *string                          `json:"thumbnail_url" gorm:"size:500"`
	Videos         datatypes.JSONSlice[CourseVideo] `json:"videos"`
	Documents      datatypes.JSONSlice[string]      `json:"documents"`
	CourseURL      *string                          `json:"course_url" gorm:"size:500"`
	Status         CourseStatus                     `json:"status" gorm:"size:20;default:active;index"`

	CreatorID string         `json:"creator_id" gorm:"not null;size:64;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Creator *User `json:"creator,omitempty" gorm:"foreignKey:CreatorID"`
}

func (Course) TableName() string {
	return "courses"
}

// IsOwnedBy reports whether userID created the course
func (c *Course) IsOwnedBy(userID string) bool {
	return c.CreatorID == userID
}
