package session

import (
	"time"

	"github.com/flightify/flightify/internal/grading"
)

// Result is the graded outcome of a finished attempt.
type Result struct {
	AttemptID          string
	ConfigurationKey   string
	ConfigurationLabel string
	Verdicts           []grading.ZoneVerdict
	Score              grading.Score
	StartedAt          time.Time
	FinishedAt         time.Time
}

// Duration returns the time between Start and Finish.
func (r Result) Duration() time.Duration {
	if r.StartedAt.IsZero() || r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Results grades the finished attempt. Verdicts are computed on every call
// from copies of the zones; nothing is cached.
func (e *Engine) Results() (Result, error) {
	if phase := e.Phase(); phase != PhaseFinished {
		return Result{}, &TransitionError{Op: "results", Phase: phase}
	}

	a := e.current
	verdicts := grading.Evaluate(a.store.Zones())
	return Result{
		AttemptID:          a.id,
		ConfigurationKey:   a.config.Key,
		ConfigurationLabel: a.config.Label,
		Verdicts:           verdicts,
		Score:              grading.Tally(verdicts),
		StartedAt:          a.startedAt,
		FinishedAt:         a.finishedAt,
	}, nil
}
