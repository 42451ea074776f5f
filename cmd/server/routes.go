package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"rampsync.backend/internal/interfaces/http/handlers"
)

const (
	serviceName    = "rampsync-backend"
	serviceVersion = "0.1.0"
)

type routeDeps struct {
	webhookHandler   *handlers.WebhookHandler
	kycHandler       *handlers.KYCHandler
	syncHandler      *handlers.SyncHandler
	adminHandler     *handlers.AdminHandler
	authMiddleware   gin.HandlerFunc
	operatorAuth     gin.HandlerFunc
	idempotencyGuard gin.HandlerFunc
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, Idempotency-Key, X-Request-ID, X-Operator-Key")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
			"version": serviceVersion,
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Provider notifications authenticate by signature, not session
		v1.POST("/webhooks/provider", d.webhookHandler.HandleProviderWebhook)

		kyc := v1.Group("/kyc")
		kyc.Use(d.authMiddleware)
		{
			kyc.POST("/links", d.idempotencyGuard, d.kycHandler.CreateKYCLink)
			kyc.GET("/status", d.kycHandler.GetKYCStatus)
		}

		v1.POST("/sync", d.authMiddleware, d.idempotencyGuard, d.syncHandler.Sync)
		v1.GET("/wallets", d.authMiddleware, d.syncHandler.ListWallets)
		v1.GET("/virtual-accounts", d.authMiddleware, d.syncHandler.ListVirtualAccounts)

		admin := v1.Group("/admin")
		admin.Use(d.operatorAuth)
		{
			admin.GET("/webhook-events", d.adminHandler.ListWebhookEvents)
			admin.POST("/webhook-events/:eventId/reprocess", d.adminHandler.ReprocessWebhookEvent)
			admin.POST("/users/:id/provision", d.adminHandler.ProvisionUser)
		}
	}
}
