// Package models defines user plan, usage and analysis result types.
package models

type Plan string

const (
	PlanFree    Plan = "FREE"
	PlanPremium Plan = "PREMIUM"
)

type User struct {
	Subject          string `db:"subject"`
	Email            string `db:"email"`
	Name             string `db:"name"`
	Plan             Plan   `db:"plan"`
	StripeCustomerID string `db:"stripe_customer_id"`
	BillingStatus    string `db:"billing_status"`
}
