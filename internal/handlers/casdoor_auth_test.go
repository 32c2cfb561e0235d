package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"

	"github.com/careerkit/careerkit-service/internal/models"
	"github.com/careerkit/careerkit-service/internal/services"
	"github.com/careerkit/careerkit-service/internal/testutil"
	"github.com/careerkit/careerkit-service/internal/utils"
)

type fakeParser struct {
	claims map[string]*casdoorsdk.Claims
}

func (f *fakeParser) ParseJwtToken(token string) (*casdoorsdk.Claims, error) {
	if c, ok := f.claims[token]; ok {
		return c, nil
	}
	return nil, errors.New("token is malformed")
}

// fakeUsers records the identities it was asked to resolve
type fakeUsers struct {
	services.UserService
	seen []services.SignInIdentity
	err  error
}

func (f *fakeUsers) EnsureUser(_ context.Context, identity services.SignInIdentity) (*models.User, error) {
	f.seen = append(f.seen, identity)
	if f.err != nil {
		return nil, f.err
	}
	return &models.User{ID: "local-" + identity.ExternalID, ExternalID: identity.ExternalID}, nil
}

func newAuthRouter(users *fakeUsers) *gin.Engine {
	claims := &casdoorsdk.Claims{}
	claims.User.Id = "cd-42"
	claims.User.Name = "ada"
	claims.User.DisplayName = "Ada Lovelace"
	claims.User.Email = "ada@example.com"

	parser := &fakeParser{claims: map[string]*casdoorsdk.Claims{"good-token": claims}}
	mw := newCasdoorAuthMiddleware(parser, users, utils.NewSlogLogger(testutil.NewTestLogger()))

	router := gin.New()
	router.GET("/me", mw.AuthMiddleware(), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("user_id"))
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		usersErr   error
		wantStatus int
		wantBody   string
	}{
		{name: "valid token", header: "Bearer good-token", wantStatus: http.StatusOK, wantBody: "local-cd-42"},
		{name: "lowercase scheme", header: "bearer good-token", wantStatus: http.StatusOK, wantBody: "local-cd-42"},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good-token", wantStatus: http.StatusUnauthorized},
		{name: "bad token", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "provisioning fails", header: "Bearer good-token", usersErr: errors.New("db down"), wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &fakeUsers{err: tt.usersErr}
			router := newAuthRouter(users)

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantBody != "" && rec.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestIdentityFromClaims(t *testing.T) {
	users := &fakeUsers{}
	router := newAuthRouter(users)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	router.ServeHTTP(httptest.NewRecorder(), req)

	if len(users.seen) != 1 {
		t.Fatalf("EnsureUser calls = %d, want 1", len(users.seen))
	}
	got := users.seen[0]
	if got.ExternalID != "cd-42" || got.Email != "ada@example.com" || got.Name != "Ada Lovelace" {
		t.Errorf("identity = %+v", got)
	}

	claims := &casdoorsdk.Claims{}
	claims.Subject = "sub-1"
	claims.User.Name = "grace"
	if id := identityFromClaims(claims); id.ExternalID != "sub-1" || id.Name != "grace" {
		t.Errorf("fallback identity = %+v", id)
	}
}
