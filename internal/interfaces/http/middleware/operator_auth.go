package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"rampsync.backend/internal/domain/entities"
	"rampsync.backend/pkg/crypto"
	"rampsync.backend/pkg/jwt"
	"rampsync.backend/pkg/logger"
)

// OperatorKeyHeader carries the shared operator key for admin tooling
const OperatorKeyHeader = "X-Operator-Key"

var checkOperatorKey = crypto.CheckSecret

// OperatorAuthMiddleware admits either the operator key (checked against its
// bcrypt hash) or a dashboard token with the ADMIN role. An empty hash
// disables the key path.
func OperatorAuthMiddleware(jwtService *jwt.JWTService, operatorKeyHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		// Path A: operator key
		if key := c.GetHeader(OperatorKeyHeader); key != "" {
			if operatorKeyHash == "" || !checkOperatorKey(key, operatorKeyHash) {
				logger.Warn(ctx, "Operator key rejected", zap.String("path", c.Request.URL.Path))
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid operator key"})
				return
			}
			setAuthContext(c, entities.AuthContext{Operator: true})
			c.Next()
			return
		}

		// Path B: admin JWT
		authHeader := c.GetHeader(AuthorizationHeader)
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Operator key or admin token required"})
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimPrefix(authHeader, BearerPrefix))
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrExpiredToken) {
				msg = "Token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		auth := entities.AuthContext{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   entities.UserRole(claims.Role),
		}
		if !auth.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}

		setAuthContext(c, auth)
		c.Next()
	}
}
