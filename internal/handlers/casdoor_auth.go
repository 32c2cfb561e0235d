package handlers

import (
	"net/http"
	"strings"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"

	"github.com/careerkit/careerkit-service/internal/config"
	"github.com/careerkit/careerkit-service/internal/services"
	"github.com/careerkit/careerkit-service/internal/utils"
)

type tokenParser interface {
	ParseJwtToken(token string) (*casdoorsdk.Claims, error)
}

// CasdoorAuthMiddleware resolves the bearer token to a local user,
// provisioning the user on first sign-in
type CasdoorAuthMiddleware struct {
	parser tokenParser
	users  services.UserService
	logger utils.Logger
}

func NewCasdoorAuthMiddleware(cfg config.CasdoorConfig, users services.UserService, logger utils.Logger) *CasdoorAuthMiddleware {
	client := casdoorsdk.NewClient(
		cfg.Endpoint,
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.Cert,
		cfg.Organization,
		cfg.Application,
	)

	return newCasdoorAuthMiddleware(client, users, logger)
}

func newCasdoorAuthMiddleware(parser tokenParser, users services.UserService, logger utils.Logger) *CasdoorAuthMiddleware {
	return &CasdoorAuthMiddleware{
		parser: parser,
		users:  users,
		logger: logger,
	}
}

// AuthMiddleware returns a Gin middleware function for Casdoor authentication
func (cam *CasdoorAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c, "authorization header missing or malformed")
			return
		}

		claims, err := cam.parser.ParseJwtToken(token)
		if err != nil {
			utils.LoggerFromContext(c, cam.logger).Debug("Rejected token", "error", err)
			abortUnauthorized(c, "invalid token")
			return
		}

		user, err := cam.users.EnsureUser(c.Request.Context(), identityFromClaims(claims))
		if err != nil {
			utils.LoggerFromContext(c, cam.logger).Warn("Failed to resolve user", "error", err)
			abortUnauthorized(c, "failed to resolve user")
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user", user)

		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
		Message: "User not authenticated",
		Details: message,
	})
}

func identityFromClaims(claims *casdoorsdk.Claims) services.SignInIdentity {
	externalID := claims.User.Id
	if externalID == "" {
		externalID = claims.Subject
	}

	name := claims.User.DisplayName
	if name == "" {
		name = claims.User.Name
	}

	return services.SignInIdentity{
		ExternalID: externalID,
		Email:      claims.User.Email,
		Name:       name,
		AvatarURL:  claims.User.Avatar,
	}
}
