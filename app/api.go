package app

import (
	"database/sql"

	"github.com/JaybhanTomar/ats-pro-app/app/config"
)

// API holds the read-only dependencies every handler needs. All fields are
// set once at startup and never mutated afterwards.
type API struct {
	db    *sql.DB
	cfg   *config.Config
	plans PlanTable
	gen   Generator
}

// NewAPI wires handler dependencies. db may be nil in tests that never touch
// the store.
func NewAPI(db *sql.DB, cfg *config.Config, gen Generator) *API {
	return &API{
		db:    db,
		cfg:   cfg,
		plans: DefaultPlanTable(),
		gen:   gen,
	}
}
