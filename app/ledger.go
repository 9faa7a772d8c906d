package app

import (
	"context"
	"fmt"
	"time"

	"github.com/JaybhanTomar/ats-pro-app/app/models"

	"github.com/google/uuid"
)

// The usage ledger is append-only: one immutable row per billable action,
// timestamped by the database clock. Monthly consumption is always recomputed
// from these rows; no cached counter exists to drift.

// recordUsage appends one usage event. A storage failure propagates so a
// served result is never left unmetered silently.
func (a *API) recordUsage(ctx context.Context, userID string, kind models.ActionKind) error {
	if !kind.Valid() {
		return fmt.Errorf("refusing to record unknown action kind %q", kind)
	}

	const q = `
		INSERT INTO usage_events (id, user_id, action_kind, created_at)
		VALUES ($1, $2, $3, now());
	`
	_, err := a.db.ExecContext(ctx, q, uuid.NewString(), userID, kind)
	if err != nil {
		return fmt.Errorf("record usage: %w", err)
	}
	return nil
}

// countUsageSince counts events at or after the boundary.
func (a *API) countUsageSince(ctx context.Context, userID string, kind models.ActionKind, since time.Time) (int, error) {
	const q = `
		SELECT COUNT(*)
		FROM usage_events
		WHERE user_id = $1 AND action_kind = $2 AND created_at >= $3;
	`
	var count int
	if err := a.db.QueryRowContext(ctx, q, userID, kind, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("count usage: %w", err)
	}
	return count, nil
}

// tallyUsageSince groups a user's events by action kind for reporting. Every
// known kind is present in the result, zero when unused.
func (a *API) tallyUsageSince(ctx context.Context, userID string, since time.Time) (map[models.ActionKind]int, error) {
	const q = `
		SELECT action_kind, COUNT(*)
		FROM usage_events
		WHERE user_id = $1 AND created_at >= $2
		GROUP BY action_kind;
	`
	rows, err := a.db.QueryContext(ctx, q, userID, since)
	if err != nil {
		return nil, fmt.Errorf("tally usage: %w", err)
	}
	defer rows.Close()

	tally := make(map[models.ActionKind]int, len(models.ActionKinds))
	for _, kind := range models.ActionKinds {
		tally[kind] = 0
	}
	for rows.Next() {
		var (
			kind  models.ActionKind
			count int
		)
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, err
		}
		tally[kind] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tally, nil
}

// monthStartUTC returns the first instant of t's calendar month in UTC, the
// reference timezone for all quota boundaries.
func monthStartUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
