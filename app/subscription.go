// Package app provides public health and authenticated account endpoints.
package app

import (
	"database/sql"
	"net/http"

	"github.com/JaybhanTomar/ats-pro-app/app/models"

	"github.com/gin-gonic/gin"
)

// Health is a public health check endpoint.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// GetSubscription returns the current plan plus month-to-date usage per
// action kind. Reporting view only: it always tallies the ledger, even on
// the premium tier, and has no side effects.
func (a *API) GetSubscription(c *gin.Context) {
	claims, err := requireClaims(c)
	if err != nil {
		respondError(c, err)
		return
	}

	plan := models.PlanFree
	if a.db != nil {
		user, lookupErr := a.getUserBySubject(c.Request.Context(), claims.Subject)
		if lookupErr != nil && lookupErr != sql.ErrNoRows {
			respondError(c, errInternal("failed to load user", lookupErr))
			return
		}
		if lookupErr == nil && user.Plan != "" {
			plan = user.Plan
		}
	}

	usage := map[models.ActionKind]int{}
	for _, kind := range models.ActionKinds {
		usage[kind] = 0
	}
	if a.db != nil {
		tally, tallyErr := a.tallyUsageSince(c.Request.Context(), claims.Subject, monthStartUTC(now()))
		if tallyErr != nil {
			respondError(c, errInternal("failed to load usage", tallyErr))
			return
		}
		usage = tally
	}

	limits := a.plans.LimitsFor(plan)

	c.JSON(http.StatusOK, gin.H{
		"plan": plan,
		"usage": gin.H{
			"analysis":     usage[models.ActionAnalysis],
			"coverLetter":  usage[models.ActionCoverLetter],
			"optimization": usage[models.ActionOptimization],
		},
		"limits": limits,
	})
}
