package model

// Outcome classifies the result of one per-security unit of work.
type Outcome int

const (
	// OutcomeUpdated means the ledger was modified and persisted.
	OutcomeUpdated Outcome = iota
	// OutcomeUnchanged means the unit ran but found nothing to change.
	OutcomeUnchanged
	// OutcomeComplete means the ledger had no missing data to begin with.
	OutcomeComplete
	// OutcomeSkipped means a prerequisite was absent and the unit was passed over.
	OutcomeSkipped
	// OutcomeFailed means the unit errored; the run continues without it.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUpdated:
		return "updated"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeComplete:
		return "complete"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}
