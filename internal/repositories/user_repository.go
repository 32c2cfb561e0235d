package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/careerkit/careerkit-service/internal/models"
)

// UserRepository stores locally provisioned users
type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.User, error)
	GetByExternalID(ctx context.Context, tx *gorm.DB, externalID string) (*models.User, error)

	// UpdateProfile writes industry, experience, bio and skills
	UpdateProfile(ctx context.Context, tx *gorm.DB, user *models.User) error
}

// IdentityProfile is what the identity provider knows about a user
type IdentityProfile struct {
	ExternalID string `json:"external_id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	AvatarURL  string `json:"avatar_url"`
}

// IdentityRepository reads users from the external identity provider
type IdentityRepository interface {
	GetProfile(ctx context.Context, externalID string) (*IdentityProfile, error)
}
