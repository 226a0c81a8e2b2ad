package coordinator

import "time"

// Outcome は変更の終端状態です。
type Outcome string

const (
	OutcomeConfirmed  Outcome = "confirmed"
	OutcomeRolledBack Outcome = "rolled_back"
)

// Metrics は同期処理の計測点です。
type Metrics interface {
	ObserveMutation(collection string, op Op, outcome Outcome, elapsed time.Duration)
	SetPending(collection string, pending int)
	IncReloadFailure(collection string)
}

type nopMetrics struct{}

func (nopMetrics) ObserveMutation(string, Op, Outcome, time.Duration) {}
func (nopMetrics) SetPending(string, int)                             {}
func (nopMetrics) IncReloadFailure(string)                            {}
