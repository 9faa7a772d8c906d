package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/JaybhanTomar/ats-pro-app/app/config"
	"github.com/JaybhanTomar/ats-pro-app/app/models"
	"github.com/JaybhanTomar/ats-pro-app/auth"

	_ "github.com/lib/pq"
)

// MustOpenDB connects to Postgres and panics/logs fatally on error.
func MustOpenDB(cfg *config.Config) *sql.DB {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s",
		cfg.DB.Username,
		cfg.DB.Password,
		cfg.DB.URL,
		cfg.DB.Port,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("sql.Open: %v", err)
	}

	if err := db.Ping(); err != nil {
		log.Fatalf("db.Ping: %v", err)
	}

	log.Println("Connected to Postgres")
	return db
}

// UpsertUserFromClaims creates a user row on first sign-in. Existing rows
// are left untouched; plan changes only happen through billing.
func (a *API) UpsertUserFromClaims(ctx context.Context, claims *auth.Claims) error {
	if a.db == nil {
		return nil
	}
	if claims == nil || claims.Subject == "" {
		return nil
	}

	name := readStringClaim(claims.Raw, "name")

	const q = `
		INSERT INTO users (subject, email, name, plan, last_login)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (subject) DO NOTHING;
	`

	_, err := a.db.ExecContext(
		ctx,
		q,
		claims.Subject,
		nullIfEmpty(claims.Email),
		nullIfEmpty(name),
		models.PlanFree,
	)
	return err
}

func (a *API) getUserBySubject(ctx context.Context, subject string) (models.User, error) {
	var (
		user     models.User
		email    sql.NullString
		name     sql.NullString
		stripeID sql.NullString
		billing  sql.NullString
	)
	err := a.db.QueryRowContext(ctx, `
		SELECT email, name, plan, stripe_customer_id, billing_status
		FROM users
		WHERE subject = $1;
	`, subject).Scan(&email, &name, &user.Plan, &stripeID, &billing)
	if err != nil {
		return models.User{}, err
	}
	user.Subject = subject
	user.Email = email.String
	user.Name = name.String
	user.StripeCustomerID = stripeID.String
	user.BillingStatus = billing.String
	return user, nil
}

// planForUser resolves the user's plan, defaulting to the free tier when the
// row is missing (first request can race the sign-in upsert).
func (a *API) planForUser(ctx context.Context, subject string) (models.Plan, error) {
	user, err := a.getUserBySubject(ctx, subject)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.PlanFree, nil
		}
		return "", err
	}
	if user.Plan == "" {
		return models.PlanFree, nil
	}
	return user.Plan, nil
}

func (a *API) updateUserPlanBySubject(ctx context.Context, subject string, plan models.Plan) error {
	_, err := a.db.ExecContext(ctx, `
		UPDATE users
		SET plan = $1
		WHERE subject = $2;
	`, plan, subject)
	return err
}

func (a *API) updateUserPlanByStripeCustomer(ctx context.Context, stripeCustomerID string, plan models.Plan, billingStatus string) error {
	_, err := a.db.ExecContext(ctx, `
		UPDATE users
		SET plan = $1, billing_status = $2
		WHERE stripe_customer_id = $3;
	`, plan, nullIfEmpty(billingStatus), stripeCustomerID)
	return err
}

func readStringClaim(raw map[string]any, key string) string {
	if raw == nil {
		return ""
	}
	val, ok := raw[key]
	if !ok {
		return ""
	}
	if s, ok := val.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// now is swapped in tests that pin the clock.
var now = time.Now
