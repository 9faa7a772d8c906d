// Package app wires shared HTTP routes for both local and Lambda execution.
package app

import (
	"time"

	"github.com/JaybhanTomar/ats-pro-app/auth"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the shared HTTP router for both local and Lambda execution.
func (a *API) NewRouter() (*gin.Engine, error) {
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       12 * time.Hour,
	}))

	router.GET("/health", Health)
	router.POST("/api/stripe/webhook", a.StripeWebhook)

	verifier, err := auth.NewVerifier(a.cfg.Auth.Issuer, a.cfg.Auth.Audience, "")
	if err != nil && !auth.AuthDisabled() {
		return nil, err
	}

	protected := router.Group("/")
	protected.Use(auth.Middleware(verifier, auth.MiddlewareConfig{
		AllowedUsers: a.cfg.AllowedUsers,
		OnAuthenticated: func(c *gin.Context, claims *auth.Claims) error {
			return a.UpsertUserFromClaims(c.Request.Context(), claims)
		},
	}))
	protected.GET("/api/subscription", a.GetSubscription)
	protected.POST("/api/analyze", a.Analyze)
	protected.POST("/api/cover-letter", a.GenerateCoverLetter)
	protected.POST("/api/optimize", a.OptimizeResume)
	protected.POST("/api/billing/create-checkout-session", a.CreateCheckoutSession)
	protected.POST("/api/billing/portal-session", a.CreatePortalSession)

	return router, nil
}
