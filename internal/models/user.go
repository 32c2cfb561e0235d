package models

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	ID         string  `json:"id" gorm:"primaryKey;size:64"`
	ExternalID string  `json:"external_id" gorm:"uniqueIndex;not null;size:255"`
	Email      string  `json:"email" gorm:"size:255;index"`
	Name       string  `json:"name" gorm:"size:255"`
	ImageURL   *string `json:"image_url" gorm:"size:500"`

	// Profile
	Industry   string                      `json:"industry" gorm:"size:255;index"`
	Skills     datatypes.JSONSlice[string] `json:"skills"`
	Experience *int                        `json:"experience"`
	Bio        *string                     `json:"bio" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// IsOnboarded reports whether the user has picked an industry
func (u *User) IsOnboarded() bool {
	return u.Industry != ""
}
