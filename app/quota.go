package app

import (
	"context"

	"github.com/JaybhanTomar/ats-pro-app/app/models"
)

// QuotaDecision reports whether an action may proceed and how much quota is
// left. Limit and Remaining are Unlimited (-1) on the premium tier.
type QuotaDecision struct {
	Allowed   bool
	Used      int
	Limit     int
	Remaining int
}

// checkQuota is the allow/deny decision for one requested action. It takes no
// lock across the generation call that follows, so two concurrent requests
// near the boundary can both pass and overshoot the nominal limit by at most
// the number of in-flight requests minus one. Accepted and documented.
func (a *API) checkQuota(ctx context.Context, userID string, kind models.ActionKind) (QuotaDecision, error) {
	plan, err := a.planForUser(ctx, userID)
	if err != nil {
		return QuotaDecision{}, err
	}

	limit := a.plans.LimitsFor(plan).For(kind)
	if limit == Unlimited {
		// No ledger round trip needed when the cap is off.
		return QuotaDecision{Allowed: true, Limit: Unlimited, Remaining: Unlimited}, nil
	}

	used, err := a.countUsageSince(ctx, userID, kind, monthStartUTC(now()))
	if err != nil {
		return QuotaDecision{}, err
	}

	remaining := limit - used
	if remaining < 0 {
		remaining = 0
	}

	return QuotaDecision{
		Allowed:   used < limit,
		Used:      used,
		Limit:     limit,
		Remaining: remaining,
	}, nil
}
