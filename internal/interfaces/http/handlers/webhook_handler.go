package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"rampsync.backend/internal/infrastructure/provider"
	"rampsync.backend/internal/interfaces/http/response"
	"rampsync.backend/internal/usecases"
	"rampsync.backend/pkg/crypto"
	"rampsync.backend/pkg/logger"
	"rampsync.backend/pkg/metrics"
)

// MaxWebhookBodyBytes bounds a single provider delivery
const MaxWebhookBodyBytes = 1 << 20

type webhookService interface {
	Ingest(ctx context.Context, payload *provider.WebhookEvent) (*usecases.IngestResult, error)
}

type signatureVerifier interface {
	Enabled() bool
	Verify(header string, rawBody []byte) bool
}

// WebhookHandler receives provider notifications
type WebhookHandler struct {
	webhookUsecase webhookService
	verifier       signatureVerifier
}

// NewWebhookHandler creates a new webhook handler. A verifier without a public
// key disables signature checks.
func NewWebhookHandler(webhookUsecase webhookService, verifier signatureVerifier) *WebhookHandler {
	return &WebhookHandler{webhookUsecase: webhookUsecase, verifier: verifier}
}

// HandleProviderWebhook authenticates, stores and processes one delivery
// POST /api/v1/webhooks/provider
func (h *WebhookHandler) HandleProviderWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	// The signature covers the exact bytes, so read before any parsing
	rawBody, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxWebhookBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			metrics.WebhookEventsTotal.WithLabelValues("unknown", metrics.OutcomeTooLarge).Inc()
			response.ErrorWithStatus(c, http.StatusRequestEntityTooLarge, "Payload too large")
			return
		}
		metrics.WebhookEventsTotal.WithLabelValues("unknown", metrics.OutcomeInvalidJSON).Inc()
		response.ErrorWithStatus(c, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if h.verifier != nil && h.verifier.Enabled() {
		if !h.verifier.Verify(c.GetHeader(crypto.WebhookSignatureHeader), rawBody) {
			metrics.WebhookEventsTotal.WithLabelValues("unknown", metrics.OutcomeRejectedSignature).Inc()
			logger.Warn(ctx, "Webhook signature rejected", zap.String("client_ip", c.ClientIP()))
			response.ErrorWithStatus(c, http.StatusUnauthorized, "Invalid signature")
			return
		}
	}

	var payload provider.WebhookEvent
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		metrics.WebhookEventsTotal.WithLabelValues("unknown", metrics.OutcomeInvalidJSON).Inc()
		response.ErrorWithStatus(c, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if payload.EventID == "" {
		metrics.WebhookEventsTotal.WithLabelValues(payload.EventCategory, metrics.OutcomeInvalidJSON).Inc()
		response.ErrorWithStatus(c, http.StatusBadRequest, "Missing event_id")
		return
	}

	result, err := h.webhookUsecase.Ingest(ctx, &payload)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusInternalServerError, "Failed to store event")
		return
	}
	if result.ProcessingErr != nil {
		// Acknowledged anyway so the provider does not retry a handler bug
		logger.Warn(ctx, "Webhook acknowledged with processing error",
			zap.String("event_id", payload.EventID),
			zap.Error(result.ProcessingErr),
		)
	}

	response.Success(c, http.StatusOK, gin.H{"success": true})
}
