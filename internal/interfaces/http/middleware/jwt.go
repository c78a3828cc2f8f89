package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shelfbridge/backend/internal/infrastructure/auth"
	"github.com/shelfbridge/backend/internal/infrastructure/logger"
	"github.com/shelfbridge/backend/internal/interfaces/http/dto"
)

// Context keys for JWT claims
const (
	ContextKeyJWTClaims = "jwt_claims"
	ContextKeyUserID    = "jwt_user_id"
	ContextKeyUserName  = "jwt_name"
	ContextKeyUserEmail = "jwt_email"
	ContextKeyUserRoles = "jwt_roles"
)

// JWTAuthConfig holds configuration for JWT authentication middleware
type JWTAuthConfig struct {
	JWTService *auth.JWTService
	// SkipPaths are exact paths that bypass authentication
	SkipPaths []string
	// SkipPathPrefixes are path prefixes that bypass authentication
	SkipPathPrefixes []string
	Logger           *zap.Logger
}

// JWTAuthMiddleware creates a JWT authentication middleware
func JWTAuthMiddleware(config JWTAuthConfig) gin.HandlerFunc {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		if shouldSkipAuth(c.Request.URL.Path, config) {
			c.Next()
			return
		}

		tokenString := extractBearerToken(c)
		if tokenString == "" {
			abortWithAuthError(c, dto.ErrCodeTokenMissing, "Authorization token required")
			return
		}

		claims, err := config.JWTService.ValidateToken(tokenString)
		if err != nil {
			logger.Debug("token validation failed",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			handleAuthError(c, err)
			return
		}

		setClaimsContext(c, claims)
		c.Next()
	}
}

// OptionalJWTAuthMiddleware validates a token when present but allows
// anonymous requests through. Storefront pages use it to render both
// signed-in and guest views.
func OptionalJWTAuthMiddleware(jwtService *auth.JWTService, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		tokenString := extractBearerToken(c)
		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			// A present but invalid token is rejected rather than
			// silently downgraded to an anonymous request.
			logger.Debug("optional token validation failed",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			handleAuthError(c, err)
			return
		}

		setClaimsContext(c, claims)
		c.Next()
	}
}

// RequireRole creates a middleware that requires one of the given roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetJWTClaims(c)
		if !ok {
			abortWithAuthError(c, dto.ErrCodeTokenMissing, "Authorization token required")
			return
		}

		for _, role := range roles {
			if claims.HasRole(role) {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeAccessDenied,
			"Insufficient permissions",
			GetRequestID(c),
		))
		c.Abort()
	}
}

func shouldSkipAuth(path string, config JWTAuthConfig) bool {
	for _, skipPath := range config.SkipPaths {
		if path == skipPath {
			return true
		}
	}
	for _, prefix := range config.SkipPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func setClaimsContext(c *gin.Context, claims *auth.Claims) {
	c.Set(ContextKeyJWTClaims, claims)
	c.Set(ContextKeyUserID, claims.UserID)
	c.Set(ContextKeyUserName, claims.Name)
	c.Set(ContextKeyUserEmail, claims.Email)
	c.Set(ContextKeyUserRoles, claims.Roles)
	c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))
}

func handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		abortWithAuthError(c, dto.ErrCodeTokenExpired, "Token has expired")
	case errors.Is(err, auth.ErrTokenNotYetValid):
		abortWithAuthError(c, dto.ErrCodeTokenInvalid, "Token is not yet valid")
	case errors.Is(err, auth.ErrInvalidClaims), errors.Is(err, auth.ErrMissingUserID):
		abortWithAuthError(c, dto.ErrCodeTokenInvalid, "Invalid token claims")
	default:
		abortWithAuthError(c, dto.ErrCodeTokenInvalid, "Invalid token")
	}
}

func abortWithAuthError(c *gin.Context, code, message string) {
	c.JSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
	c.Abort()
}

// GetJWTClaims retrieves validated claims from the request context
func GetJWTClaims(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(ContextKeyJWTClaims)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}

// GetJWTUserID retrieves the authenticated user ID from the request context
func GetJWTUserID(c *gin.Context) (string, bool) {
	value, exists := c.Get(ContextKeyUserID)
	if !exists {
		return "", false
	}
	userID, ok := value.(string)
	return userID, ok
}

// GetJWTRoles retrieves the authenticated user roles from the request context
func GetJWTRoles(c *gin.Context) ([]string, bool) {
	value, exists := c.Get(ContextKeyUserRoles)
	if !exists {
		return nil, false
	}
	roles, ok := value.([]string)
	return roles, ok
}
