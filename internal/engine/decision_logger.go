package engine

import (
	"github.com/rs/zerolog"

	"botcoin/internal/strategy"
)

const (
	ResultDryRun    = "dry_run"
	ResultSubmitted = "submitted"
	ResultRejected  = "rejected"
	ResultFailed    = "failed"
)

// Decision is what happened to one order within a cycle.
type Decision struct {
	CycleID string        `json:"cycle_id"`
	Symbol  string        `json:"symbol"`
	Side    strategy.Side `json:"side"`
	Shares  int           `json:"shares"`
	Result  string        `json:"result"`
	Reason  string        `json:"reason,omitempty"`
}

// DecisionLogger writes one structured line per decision.
type DecisionLogger struct {
	log zerolog.Logger
}

func NewDecisionLogger(log zerolog.Logger) *DecisionLogger {
	return &DecisionLogger{log: log.With().Str("component", "decisions").Logger()}
}

func (d *DecisionLogger) Append(decision Decision) {
	ev := d.log.Info()
	if decision.Result == ResultFailed {
		ev = d.log.Warn()
	}
	ev.Str("cycle_id", decision.CycleID).
		Str("symbol", decision.Symbol).
		Str("side", string(decision.Side)).
		Int("shares", decision.Shares).
		Str("result", decision.Result).
		Str("reason", decision.Reason).
		Msg("decision")
}
