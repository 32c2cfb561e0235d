package casdoor

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/redis/go-redis/v9"

	"github.com/careerkit/careerkit-service/internal/repositories"
)

type fakeClient struct {
	users map[string]*casdoorsdk.User
	calls int
}

func (f *fakeClient) GetUserByUserId(userId string) (*casdoorsdk.User, error) {
	f.calls++
	return f.users[userId], nil
}

func TestIdentityCasdoor_GetProfile(t *testing.T) {
	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer rdb.Close()

	client := &fakeClient{users: map[string]*casdoorsdk.User{
		"ext-1": {Id: "ext-1", Name: "ada", DisplayName: "", Email: "ada@example.com", Avatar: "a.png"},
	}}
	repo := newIdentityCasdoor(client, rdb)

	for i := 0; i < 2; i++ {
		profile, err := repo.GetProfile(context.Background(), "ext-1")
		if err != nil {
			t.Fatalf("GetProfile() error = %v", err)
		}
		if profile.Name != "ada" || profile.Email != "ada@example.com" {
			t.Errorf("unexpected profile %+v", profile)
		}
	}

	if client.calls != 1 {
		t.Errorf("provider called %d times, want 1", client.calls)
	}
}

func TestIdentityCasdoor_NotFound(t *testing.T) {
	repo := newIdentityCasdoor(&fakeClient{}, nil)

	_, err := repo.GetProfile(context.Background(), "missing")
	if !errors.Is(err, repositories.ErrIdentityNotFound) {
		t.Fatalf("expected ErrIdentityNotFound, got %v", err)
	}
	if !repositories.IsNotFoundError(err) {
		t.Error("IsNotFoundError should match identity misses")
	}
}
