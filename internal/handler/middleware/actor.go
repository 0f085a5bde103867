package middleware

import (
	"net/http"
	"strings"

	"rsv-catalog/internal/handler/httperr"
	"rsv-catalog/internal/pkg/errs"
	"rsv-catalog/internal/usecase/collaboration"
	"rsv-catalog/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserIDKey   = "user_id"
	ctxUserRoleKey = "user_role"
)

var errUnauthorized = errs.New("unauthorized")

// TokenValidator resolves a bearer token to the collaboration user it names.
type TokenValidator interface {
	ValidateToken(tokenString string) (string, collaboration.Role, error)
}

type ActorMiddleware struct {
	tokenValidator TokenValidator
}

func NewActorMiddleware(tokenValidator TokenValidator) *ActorMiddleware {
	return &ActorMiddleware{tokenValidator: tokenValidator}
}

// Identify attaches the token's user as the request actor. Requests without a
// token run as the default user; a token that fails validation is rejected.
func (m *ActorMiddleware) Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		userID, role, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			httperr.AbortWithError(c, http.StatusUnauthorized, errs.Wrap(errUnauthorized, err.Error()), "Invalid or expired token", nil)
			return
		}

		c.Set(ctxUserIDKey, userID)
		c.Set(ctxUserRoleKey, role)
		c.Request = c.Request.WithContext(shared.WithActor(c.Request.Context(), userID))
		c.Next()
	}
}

// RequireRole rejects requests whose token does not carry role. It must run after Identify.
func (m *ActorMiddleware) RequireRole(role collaboration.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		got, ok := GetUserRole(c)
		if !ok {
			httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthorized, "Access token required", nil)
			return
		}
		if got != role {
			httperr.AbortWithError(c, http.StatusForbidden, errs.Wrap(errUnauthorized, string(got)), "Insufficient permissions", nil)
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(h[len("Bearer "):])
}

// GetActorID falls back to the default user when no token was presented.
func GetActorID(c *gin.Context) string {
	return shared.ActorFrom(c.Request.Context())
}

func GetUserRole(c *gin.Context) (collaboration.Role, bool) {
	v, exists := c.Get(ctxUserRoleKey)
	if !exists {
		return "", false
	}
	role, ok := v.(collaboration.Role)
	return role, ok
}
