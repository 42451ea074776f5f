package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"rampsync.backend/internal/domain/entities"
	"rampsync.backend/pkg/jwt"
	"rampsync.backend/pkg/logger"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// UserIDKey is the context key for user ID
	UserIDKey = "userId"
	// UserEmailKey is the context key for user email
	UserEmailKey = "userEmail"
	// UserRoleKey is the context key for user role
	UserRoleKey = "userRole"
	// AuthContextKey is the context key for the acting identity
	AuthContextKey = "authContext"
)

// AuthMiddleware validates the dashboard bearer token and stores the acting identity
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			logger.Warn(c.Request.Context(), "Authorization header is missing", zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header is required",
			})
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization format. Use: Bearer <token>",
			})
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimPrefix(authHeader, BearerPrefix))
		if err != nil {
			logger.Warn(c.Request.Context(), "Token rejected", zap.String("path", c.Request.URL.Path), zap.Error(err))
			if errors.Is(err, jwt.ErrExpiredToken) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Token has expired",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid token",
			})
			return
		}

		setAuthContext(c, entities.AuthContext{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   entities.UserRole(claims.Role),
		})
		c.Next()
	}
}

func setAuthContext(c *gin.Context, auth entities.AuthContext) {
	c.Set(AuthContextKey, auth)
	if auth.IsUser() {
		c.Set(UserIDKey, auth.UserID)
		c.Set(UserEmailKey, auth.Email)
		c.Set(UserRoleKey, string(auth.Role))
	}
}

// GetAuthContext returns the identity stored by the auth middlewares
func GetAuthContext(c *gin.Context) (entities.AuthContext, bool) {
	v, exists := c.Get(AuthContextKey)
	if !exists {
		return entities.AuthContext{}, false
	}
	auth, ok := v.(entities.AuthContext)
	return auth, ok
}

// GetUserID gets the user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}

// GetUserRole gets the user role from context
func GetUserRole(c *gin.Context) (string, bool) {
	role, exists := c.Get(UserRoleKey)
	if !exists {
		return "", false
	}
	r, ok := role.(string)
	return r, ok
}

// RequireRole creates a middleware that requires a specific role
func RequireRole(roles ...entities.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := GetUserRole(c)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "User role not found",
			})
			return
		}

		for _, role := range roles {
			if userRole == string(role) {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "Insufficient permissions",
		})
	}
}
