package casdoor

import (
	"context"
	"fmt"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/redis/go-redis/v9"

	"github.com/careerkit/careerkit-service/internal/cache"
	"github.com/careerkit/careerkit-service/internal/config"
	"github.com/careerkit/careerkit-service/internal/repositories"
)

// userGetter is the part of the Casdoor client this package uses
type userGetter interface {
	GetUserByUserId(userId string) (*casdoorsdk.User, error)
}

// IdentityCasdoor reads user profiles from Casdoor, cached in redis
type IdentityCasdoor struct {
	client userGetter
	cache  *cache.CacheHelper
}

func NewIdentityCasdoor(cfg config.CasdoorConfig, redisClient *redis.Client) repositories.IdentityRepository {
	client := casdoorsdk.NewClient(
		cfg.Endpoint,
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.Cert,
		cfg.Organization,
		cfg.Application,
	)

	return newIdentityCasdoor(client, redisClient)
}

func newIdentityCasdoor(client userGetter, redisClient *redis.Client) *IdentityCasdoor {
	return &IdentityCasdoor{
		client: client,
		cache:  cache.NewCacheHelper(redisClient, "identity:"),
	}
}

// GetProfile returns the provider's view of a user
func (i *IdentityCasdoor) GetProfile(ctx context.Context, externalID string) (*repositories.IdentityProfile, error) {
	var profile repositories.IdentityProfile

	err := i.cache.CacheOrExecute(ctx, externalID, &profile, cache.UserCacheConfig.TTL, func() (interface{}, error) {
		casdoorUser, err := i.client.GetUserByUserId(externalID)
		if err != nil {
			return nil, fmt.Errorf("failed to get user from Casdoor: %w", err)
		}
		if casdoorUser == nil {
			return nil, fmt.Errorf("user %s: %w", externalID, repositories.ErrIdentityNotFound)
		}
		return toProfile(casdoorUser), nil
	})
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func toProfile(u *casdoorsdk.User) *repositories.IdentityProfile {
	name := u.DisplayName
	if name == "" {
		name = u.Name
	}
	return &repositories.IdentityProfile{
		ExternalID: u.Id,
		Email:      u.Email,
		Name:       name,
		AvatarURL:  u.Avatar,
	}
}
