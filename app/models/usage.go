package models

import "time"

// ActionKind is the billable unit of work.
type ActionKind string

const (
	ActionAnalysis     ActionKind = "analysis"
	ActionCoverLetter  ActionKind = "cover_letter"
	ActionOptimization ActionKind = "optimization"
)

// ActionKinds lists every billable kind, in reporting order.
var ActionKinds = []ActionKind{ActionAnalysis, ActionCoverLetter, ActionOptimization}

func (k ActionKind) Valid() bool {
	switch k {
	case ActionAnalysis, ActionCoverLetter, ActionOptimization:
		return true
	}
	return false
}

// UsageEvent is one immutable row in the usage ledger. Events are never
// updated or deleted once written.
type UsageEvent struct {
	ID        string     `db:"id"`
	UserID    string     `db:"user_id"`
	Kind      ActionKind `db:"action_kind"`
	CreatedAt time.Time  `db:"created_at"`
}
