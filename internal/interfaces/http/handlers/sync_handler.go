package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"rampsync.backend/internal/domain/entities"
	domainerrors "rampsync.backend/internal/domain/errors"
	"rampsync.backend/internal/interfaces/http/middleware"
	"rampsync.backend/internal/interfaces/http/response"
	"rampsync.backend/internal/usecases"
)

type syncService interface {
	Sync(ctx context.Context, auth entities.AuthContext) (*usecases.SyncSummary, error)
	ListWallets(ctx context.Context, userID uuid.UUID) ([]*entities.Wallet, error)
	ListVirtualAccounts(ctx context.Context, userID uuid.UUID) ([]*entities.VirtualAccount, error)
}

// SyncHandler exposes the user's mirrored provider resources
type SyncHandler struct {
	syncUsecase syncService
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(syncUsecase syncService) *SyncHandler {
	return &SyncHandler{syncUsecase: syncUsecase}
}

// Sync pulls the user's resources from the provider
// POST /api/v1/sync
func (h *SyncHandler) Sync(c *gin.Context) {
	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	summary, err := h.syncUsecase.Sync(c.Request.Context(), auth)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, summary)
}

// ListWallets returns the user's custody wallets
// GET /api/v1/wallets
func (h *SyncHandler) ListWallets(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	wallets, err := h.syncUsecase.ListWallets(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"wallets": wallets})
}

// ListVirtualAccounts returns the user's deposit accounts
// GET /api/v1/virtual-accounts
func (h *SyncHandler) ListVirtualAccounts(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	accounts, err := h.syncUsecase.ListVirtualAccounts(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"virtualAccounts": accounts})
}
