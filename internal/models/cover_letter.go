package models

import (
	"time"

	"gorm.io/gorm"
)

type CoverLetterStatus string

const (
	CoverLetterDraft     CoverLetterStatus = "draft"
	CoverLetterCompleted CoverLetterStatus = "completed"
)

type CoverLetter struct {
	ID             uint              `json:"id" gorm:"primaryKey"`
	UserID         string            `json:"user_id" gorm:"not null;size:64;index"`
	CompanyName    string            `json:"company_name" gorm:"not null;size:200"`
	JobTitle       string            `json:"job_title" gorm:"not null;size:200"`
	JobDescription string            `json:"job_description" gorm:"type:text"`
	Content        string            `json:"content" gorm:"type:text"`
	Status         CoverLetterStatus `json:"status" gorm:"size:20;default:draft"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (CoverLetter) TableName() string {
	return "cover_letters"
}
