package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"rampsync.backend/internal/domain/entities"
	domainerrors "rampsync.backend/internal/domain/errors"
	"rampsync.backend/internal/interfaces/http/middleware"
	"rampsync.backend/internal/interfaces/http/response"
	"rampsync.backend/internal/usecases"
)

type kycService interface {
	CreateKYCLink(ctx context.Context, auth entities.AuthContext, input *entities.CreateKYCLinkInput) (*usecases.KYCStatusView, error)
	GetKYCStatus(ctx context.Context, auth entities.AuthContext) (*usecases.KYCStatusView, error)
}

// KYCHandler handles user verification endpoints
type KYCHandler struct {
	kycUsecase kycService
}

// NewKYCHandler creates a new KYC handler
func NewKYCHandler(kycUsecase kycService) *KYCHandler {
	return &KYCHandler{kycUsecase: kycUsecase}
}

// CreateKYCLink starts hosted verification
// POST /api/v1/kyc/links
func (h *KYCHandler) CreateKYCLink(c *gin.Context) {
	var input entities.CreateKYCLinkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	view, err := h.kycUsecase.CreateKYCLink(c.Request.Context(), auth, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, view)
}

// GetKYCStatus refreshes and returns the user's verification status
// GET /api/v1/kyc/status
func (h *KYCHandler) GetKYCStatus(c *gin.Context) {
	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	view, err := h.kycUsecase.GetKYCStatus(c.Request.Context(), auth)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}
