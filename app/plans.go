// Package app enforces monthly per-action limits for authenticated users.
package app

import "github.com/JaybhanTomar/ats-pro-app/app/models"

// Unlimited is the sentinel limit for actions with no monthly cap.
const Unlimited = -1

// PlanLimits holds the monthly cap per action kind for one plan.
type PlanLimits struct {
	Analysis     int `json:"analysis"`
	CoverLetter  int `json:"coverLetter"`
	Optimization int `json:"optimization"`
}

// For returns the limit for a single action kind. Unknown kinds get 0 so
// nothing unrecognized ever slips past the gate.
func (l PlanLimits) For(kind models.ActionKind) int {
	switch kind {
	case models.ActionAnalysis:
		return l.Analysis
	case models.ActionCoverLetter:
		return l.CoverLetter
	case models.ActionOptimization:
		return l.Optimization
	}
	return 0
}

// PlanTable maps plans to their monthly limits.
type PlanTable map[models.Plan]PlanLimits

// DefaultPlanTable returns the static two-tier registry.
func DefaultPlanTable() PlanTable {
	return PlanTable{
		models.PlanFree: {
			Analysis:     5,
			CoverLetter:  3,
			Optimization: 3,
		},
		models.PlanPremium: {
			Analysis:     Unlimited,
			CoverLetter:  Unlimited,
			Optimization: Unlimited,
		},
	}
}

// LimitsFor resolves a plan's limits. Unrecognized plans fall back to the
// free tier, never to unlimited.
func (t PlanTable) LimitsFor(plan models.Plan) PlanLimits {
	if limits, ok := t[plan]; ok {
		return limits
	}
	return t[models.PlanFree]
}
