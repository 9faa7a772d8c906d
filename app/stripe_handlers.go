package app

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/JaybhanTomar/ats-pro-app/app/models"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v79"
	portal "github.com/stripe/stripe-go/v79/billingportal/session"
	"github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/webhook"
)

// CreateCheckoutSession starts a Stripe Checkout Session for the premium plan.
func (a *API) CreateCheckoutSession(c *gin.Context) {
	claims, err := requireClaims(c)
	if err != nil {
		respondError(c, err)
		return
	}

	stripeCustomerID, err := a.ensureStripeCustomer(c.Request.Context(), claims.Subject)
	if err != nil {
		log.Printf("ensureStripeCustomer failed for sub=%s: %v", claims.Subject, err)
		respondError(c, errInternal("failed to prepare billing", err))
		return
	}

	priceID := a.cfg.Stripe.PriceIDPremiumMonthly
	frontendURL := strings.TrimRight(a.cfg.Stripe.FrontendURL, "/")
	if priceID == "" || frontendURL == "" {
		log.Printf("missing Stripe config: price_id=%t frontend_url=%t", priceID != "", frontendURL != "")
		respondError(c, errInternal("billing not configured", nil))
		return
	}

	params := &stripe.CheckoutSessionParams{
		Mode:     stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		Customer: stripe.String(stripeCustomerID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(frontendURL + "/billing/success"),
		CancelURL:  stripe.String(frontendURL + "/billing/cancel"),
	}

	sess, err := session.New(params)
	if err != nil {
		log.Printf("stripe checkout session failed: %v", err)
		respondError(c, errInternal("failed to create checkout session", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": sess.URL})
}

// StripeWebhook handles Stripe subscription events and updates user plans.
func (a *API) StripeWebhook(c *gin.Context) {
	const maxBodyBytes = int64(65536)
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		log.Printf("stripe webhook read failed: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	endpointSecret := a.cfg.Stripe.WebhookSecret
	if endpointSecret == "" {
		log.Printf("stripe webhook secret missing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "webhook not configured"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		body,
		c.GetHeader("Stripe-Signature"),
		endpointSecret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		},
	)
	if err != nil {
		log.Printf("stripe webhook signature failed: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "signature verification failed"})
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			log.Printf("stripe session unmarshal failed: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session payload"})
			return
		}
		customerID := ""
		if sess.Customer != nil {
			customerID = sess.Customer.ID
		}
		if customerID == "" {
			log.Printf("stripe session missing customer id")
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing customer id"})
			return
		}

		if err := a.updateUserPlanByStripeCustomer(c.Request.Context(), customerID, models.PlanPremium, "active"); err != nil {
			log.Printf("stripe plan upgrade failed customer=%s err=%v", customerID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
			return
		}
	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			log.Printf("stripe subscription unmarshal failed: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subscription payload"})
			return
		}
		customerID := ""
		if sub.Customer != nil {
			customerID = sub.Customer.ID
		}
		if customerID == "" {
			log.Printf("stripe subscription missing customer id")
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing customer id"})
			return
		}

		if err := a.updateUserPlanByStripeCustomer(c.Request.Context(), customerID, models.PlanFree, "canceled"); err != nil {
			log.Printf("stripe plan downgrade failed customer=%s err=%v", customerID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
			return
		}
	default:
		// Intentionally ignore unhandled events.
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// CreatePortalSession creates a Stripe Customer Portal session.
func (a *API) CreatePortalSession(c *gin.Context) {
	claims, err := requireClaims(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if a.db == nil {
		respondError(c, errInternal("db not initialized", nil))
		return
	}

	user, err := a.getUserBySubject(c.Request.Context(), claims.Subject)
	if err != nil {
		log.Printf("portal lookup failed sub=%s err=%v", claims.Subject, err)
		respondError(c, errInternal("failed to load customer", err))
		return
	}
	if user.StripeCustomerID == "" {
		respondError(c, errInvalidInput("stripe customer missing for user"))
		return
	}

	frontendURL := strings.TrimRight(a.cfg.Stripe.FrontendURL, "/")
	if frontendURL == "" {
		respondError(c, errInternal("billing not configured", nil))
		return
	}

	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(user.StripeCustomerID),
		ReturnURL: stripe.String(frontendURL + "/settings/billing"),
	}

	sess, err := portal.New(params)
	if err != nil {
		log.Printf("stripe portal session failed: %v", err)
		respondError(c, errInternal("failed to create portal session", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": sess.URL})
}
