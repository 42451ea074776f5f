package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"rampsync.backend/internal/domain/entities"
	domainerrors "rampsync.backend/internal/domain/errors"
	"rampsync.backend/pkg/utils"
)

type webhookAdminStub struct {
	listFn      func(ctx context.Context, page, limit int) ([]*entities.WebhookEvent, utils.PaginationMeta, error)
	reprocessFn func(ctx context.Context, eventID string) (*entities.WebhookEvent, error)
}

func (s *webhookAdminStub) ListUnprocessed(ctx context.Context, page, limit int) ([]*entities.WebhookEvent, utils.PaginationMeta, error) {
	return s.listFn(ctx, page, limit)
}

func (s *webhookAdminStub) Reprocess(ctx context.Context, eventID string) (*entities.WebhookEvent, error) {
	return s.reprocessFn(ctx, eventID)
}

type provisioningStub struct {
	provisionFn func(ctx context.Context, auth entities.AuthContext, userID uuid.UUID) (*entities.User, error)
}

func (s *provisioningStub) ProvisionUser(ctx context.Context, auth entities.AuthContext, userID uuid.UUID) (*entities.User, error) {
	return s.provisionFn(ctx, auth, userID)
}

func newAdminRouter(h *AdminHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(withAuth(entities.AuthContext{Operator: true}))
	r.GET("/admin/webhook-events", h.ListWebhookEvents)
	r.POST("/admin/webhook-events/:eventId/reprocess", h.ReprocessWebhookEvent)
	r.POST("/admin/users/:id/provision", h.ProvisionUser)
	return r
}

func TestAdminHandler_ListWebhookEvents(t *testing.T) {
	h := NewAdminHandler(&webhookAdminStub{
		listFn: func(_ context.Context, page, limit int) ([]*entities.WebhookEvent, utils.PaginationMeta, error) {
			assert.Equal(t, 2, page)
			assert.Equal(t, 5, limit)
			return []*entities.WebhookEvent{{EventID: "wh_9", Category: entities.EventCategoryTransfer}},
				utils.CalculateMeta(6, page, limit), nil
		},
	}, &provisioningStub{})
	r := newAdminRouter(h)

	w := doRequest(r, http.MethodGet, "/admin/webhook-events?page=2&limit=5", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "wh_9")
	assert.Contains(t, w.Body.String(), `"pagination":{"page":2,"limit":5,"totalCount":6,"totalPages":2}`)
}

func TestAdminHandler_ListWebhookEvents_Defaults(t *testing.T) {
	h := NewAdminHandler(&webhookAdminStub{
		listFn: func(_ context.Context, page, limit int) ([]*entities.WebhookEvent, utils.PaginationMeta, error) {
			assert.Equal(t, 1, page)
			assert.Equal(t, utils.DefaultPageLimit, limit)
			return nil, utils.CalculateMeta(0, page, limit), nil
		},
	}, &provisioningStub{})
	r := newAdminRouter(h)

	w := doRequest(r, http.MethodGet, "/admin/webhook-events", "")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminHandler_ReprocessWebhookEvent(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "success", wantStatus: http.StatusOK},
		{name: "unknown event", err: domainerrors.NotFound("webhook event not found"), wantStatus: http.StatusNotFound},
		{name: "already processed", err: domainerrors.Conflict("webhook event already processed"), wantStatus: http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAdminHandler(&webhookAdminStub{
				reprocessFn: func(_ context.Context, eventID string) (*entities.WebhookEvent, error) {
					require.Equal(t, "wh_3", eventID)
					if tt.err != nil {
						return nil, tt.err
					}
					return &entities.WebhookEvent{EventID: eventID, Processed: true}, nil
				},
			}, &provisioningStub{})
			r := newAdminRouter(h)

			w := doRequest(r, http.MethodPost, "/admin/webhook-events/wh_3/reprocess", "")

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestAdminHandler_ProvisionUser(t *testing.T) {
	h := NewAdminHandler(&webhookAdminStub{}, &provisioningStub{
		provisionFn: func(_ context.Context, auth entities.AuthContext, userID uuid.UUID) (*entities.User, error) {
			assert.True(t, auth.IsAdmin())
			return &entities.User{ID: userID, VerificationStatus: entities.VerificationApproved}, nil
		},
	})
	r := newAdminRouter(h)

	w := doRequest(r, http.MethodPost, "/admin/users/"+testUserID.String()+"/provision", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), testUserID.String())
}

func TestAdminHandler_ProvisionUser_InvalidID(t *testing.T) {
	h := NewAdminHandler(&webhookAdminStub{}, &provisioningStub{})
	r := newAdminRouter(h)

	w := doRequest(r, http.MethodPost, "/admin/users/not-a-uuid/provision", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
