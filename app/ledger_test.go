package app

import (
	"context"
	"testing"
	"time"

	"github.com/JaybhanTomar/ats-pro-app/app/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestRecordUsageInsertsOneEvent(t *testing.T) {
	api, mock := newMockAPI(t, nil)
	mock.ExpectExec("INSERT INTO usage_events").
		WithArgs(sqlmock.AnyArg(), "user-1", models.ActionAnalysis).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := api.recordUsage(context.Background(), "user-1", models.ActionAnalysis); err != nil {
		t.Fatalf("recordUsage: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestRecordUsageRejectsUnknownKind(t *testing.T) {
	api, mock := newMockAPI(t, nil)

	err := api.recordUsage(context.Background(), "user-1", models.ActionKind("mystery"))
	if err == nil {
		t.Fatalf("expected error for unknown action kind")
	}
	// The refusal happens before any store round trip.
	if mockErr := mock.ExpectationsWereMet(); mockErr != nil {
		t.Fatalf("mock expectations: %v", mockErr)
	}
}

func TestCountUsageSince(t *testing.T) {
	api, mock := newMockAPI(t, nil)
	since := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT COUNT\(\*\)`).
		WithArgs("user-1", models.ActionCoverLetter, since).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	count, err := api.countUsageSince(context.Background(), "user-1", models.ActionCoverLetter, since)
	if err != nil {
		t.Fatalf("countUsageSince: %v", err)
	}
	if count != 4 {
		t.Fatalf("count = %d, want 4", count)
	}
}

func TestTallyUsageSinceZeroFillsKinds(t *testing.T) {
	api, mock := newMockAPI(t, nil)
	since := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"action_kind", "count"}).
		AddRow(string(models.ActionAnalysis), 7)
	mock.ExpectQuery("SELECT action_kind, COUNT").
		WithArgs("user-1", since).
		WillReturnRows(rows)

	tally, err := api.tallyUsageSince(context.Background(), "user-1", since)
	if err != nil {
		t.Fatalf("tallyUsageSince: %v", err)
	}
	if tally[models.ActionAnalysis] != 7 {
		t.Fatalf("analysis tally = %d, want 7", tally[models.ActionAnalysis])
	}
	if tally[models.ActionCoverLetter] != 0 || tally[models.ActionOptimization] != 0 {
		t.Fatalf("unused kinds must be reported as zero: %+v", tally)
	}
}
