package response

import (
	"errors"

	"github.com/gin-gonic/gin"
	domainerrors "rampsync.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	switch {
	case errors.As(err, &appErr):
	case errors.Is(err, domainerrors.ErrNotFound):
		appErr = domainerrors.NotFound("resource not found")
	default:
		appErr = domainerrors.InternalError(err)
	}

	c.JSON(appErr.Status, gin.H{
		"code":  appErr.Code,
		"error": appErr.Message,
	})
}

// ErrorWithStatus sends a bare {"error": message} body, the shape provider-facing endpoints answer with
func ErrorWithStatus(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
