package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"rampsync.backend/internal/domain/entities"
	domainerrors "rampsync.backend/internal/domain/errors"
	"rampsync.backend/internal/interfaces/http/middleware"
	"rampsync.backend/internal/interfaces/http/response"
	"rampsync.backend/pkg/utils"
)

type webhookAdminService interface {
	ListUnprocessed(ctx context.Context, page, limit int) ([]*entities.WebhookEvent, utils.PaginationMeta, error)
	Reprocess(ctx context.Context, eventID string) (*entities.WebhookEvent, error)
}

type provisioningService interface {
	ProvisionUser(ctx context.Context, auth entities.AuthContext, userID uuid.UUID) (*entities.User, error)
}

// AdminHandler handles operator follow-up endpoints
type AdminHandler struct {
	webhookUsecase webhookAdminService
	adminUsecase   provisioningService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(webhookUsecase webhookAdminService, adminUsecase provisioningService) *AdminHandler {
	return &AdminHandler{webhookUsecase: webhookUsecase, adminUsecase: adminUsecase}
}

// ListWebhookEvents returns the unprocessed event backlog
// GET /api/v1/admin/webhook-events
func (h *AdminHandler) ListWebhookEvents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(utils.DefaultPageLimit)))

	events, meta, err := h.webhookUsecase.ListUnprocessed(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"events":     events,
		"pagination": meta,
	})
}

// ReprocessWebhookEvent routes a stored unprocessed event again
// POST /api/v1/admin/webhook-events/:eventId/reprocess
func (h *AdminHandler) ReprocessWebhookEvent(c *gin.Context) {
	eventID := c.Param("eventId")
	if eventID == "" {
		response.Error(c, domainerrors.BadRequest("eventId is required"))
		return
	}

	event, err := h.webhookUsecase.Reprocess(c.Request.Context(), eventID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"event": event})
}

// ProvisionUser re-runs onboarding provisioning for a user
// POST /api/v1/admin/users/:id/provision
func (h *AdminHandler) ProvisionUser(c *gin.Context) {
	userID, ok := utils.ParseUUID(c.Param("id"))
	if !ok {
		response.Error(c, domainerrors.BadRequest("Invalid user ID"))
		return
	}

	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Operator not authenticated"))
		return
	}

	user, err := h.adminUsecase.ProvisionUser(c.Request.Context(), auth, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}
