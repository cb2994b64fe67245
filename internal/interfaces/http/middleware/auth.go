package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/qreserve/qreserve/internal/domain/user"
	"github.com/qreserve/qreserve/internal/infrastructure/auth"
	"github.com/qreserve/qreserve/internal/shared/constants"
	"github.com/qreserve/qreserve/internal/shared/logger"
	"github.com/qreserve/qreserve/internal/shared/utils"
)

// UserLookup loads the account behind a token.
type UserLookup interface {
	GetByID(ctx context.Context, id uint) (*user.User, error)
}

type AuthMiddleware struct {
	jwtService *auth.JWTService
	users      UserLookup
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, users UserLookup, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		users:      users,
		logger:     logger,
	}
}

// RequireAuth accepts only access tokens. The account is re-read on every
// request: a deleted or deactivated user is rejected, and the stored role
// (not the one in the token) goes on the gin context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing or malformed authorization header")
			c.Abort()
			return
		}

		claims, ok := m.jwtService.VerifyType(token, auth.TokenTypeAccess)
		if !ok {
			m.logger.Debugw("rejected access token", "path", c.Request.URL.Path)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		u, err := m.activeUser(c.Request.Context(), claims.UserID())
		if err != nil {
			m.logger.Errorw("failed to load token user", "user_id", claims.UserID(), "error", err)
			utils.ErrorResponse(c, http.StatusInternalServerError, "failed to authenticate")
			c.Abort()
			return
		}
		if u == nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, u.ID())
		c.Set(constants.ContextKeyUserRole, string(u.Role()))

		c.Next()
	}
}

// OptionalAuth sets the identity when a valid access token is present and
// otherwise lets the request through anonymously.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if ok {
			if claims, valid := m.jwtService.VerifyType(token, auth.TokenTypeAccess); valid {
				if u, err := m.activeUser(c.Request.Context(), claims.UserID()); err == nil && u != nil {
					c.Set(constants.ContextKeyUserID, u.ID())
					c.Set(constants.ContextKeyUserRole, string(u.Role()))
				}
			}
		}
		c.Next()
	}
}

// activeUser returns nil without an error when the account is gone or
// deactivated.
func (m *AuthMiddleware) activeUser(ctx context.Context, id uint) (*user.User, error) {
	if id == 0 {
		return nil, nil
	}
	u, err := m.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.IsActive() || !u.Role().IsValid() {
		return nil, nil
	}
	return u, nil
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader(constants.HeaderAuthorization)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
