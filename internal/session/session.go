// Package session is the quiz engine: it owns the session phase, the zone
// assignments and the presentation order, and grades a finished attempt.
//
// An Engine is not safe for concurrent use. Every method runs to completion
// without I/O; a rejected call leaves the session exactly as it was.
package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"go.uber.org/zap"

	"github.com/flightify/flightify/internal/catalog"
	"github.com/flightify/flightify/internal/shuffle"
	"github.com/flightify/flightify/internal/zone"
)

// Shuffler produces a permutation of tokens without modifying the input.
type Shuffler interface {
	Shuffle(tokens []string) []string
}

// Diagnostics counts gestures the engine tolerated without effect.
type Diagnostics struct {
	UnknownZone     int
	UnknownToken    int
	DuplicateDrops  int
	MissingRemovals int
	Unavailable     int // every instance of the token is already placed
}

// attempt is the data of one selected configuration. It is replaced
// wholesale on every selection or restart.
type attempt struct {
	id         string
	config     catalog.Configuration
	store      *zone.Store
	bank       []string
	order      []string
	startedAt  time.Time
	finishedAt time.Time
}

// Engine drives one quiz session at a time.
type Engine struct {
	catalog  catalog.Provider
	shuffler Shuffler
	strategy BankStrategy
	logger   *zap.SugaredLogger
	now      func() time.Time
	newID    func() string

	machine *fsm.FSM
	current *attempt
	diag    Diagnostics
}

// Option configures an Engine.
type Option func(*Engine)

// WithShuffler replaces the default Fisher-Yates shuffler.
func WithShuffler(s Shuffler) Option {
	return func(e *Engine) { e.shuffler = s }
}

// WithBankStrategy selects how the item bank is built.
func WithBankStrategy(s BankStrategy) Option {
	return func(e *Engine) { e.strategy = s }
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithClock overrides time.Now for attempt timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New returns an Engine in the unselected phase.
func New(provider catalog.Provider, opts ...Option) *Engine {
	e := &Engine{
		catalog:  provider,
		shuffler: shuffle.New(),
		strategy: BankDedup,
		logger:   zap.NewNop().Sugar(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.machine = fsm.NewFSM(
		PhaseUnselected.String(),
		transitions,
		fsm.Callbacks{
			"enter_state": func(_ context.Context, ev *fsm.Event) {
				e.logger.Debugw("phase changed", "event", ev.Event, "from", ev.Src, "to", ev.Dst)
			},
		},
	)
	return e
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	return parsePhase(e.machine.Current())
}

// Configurations lists the catalog for selection screens.
func (e *Engine) Configurations() []catalog.Entry {
	return e.catalog.List()
}

// Diagnostics returns the tolerated-gesture counters.
func (e *Engine) Diagnostics() Diagnostics {
	return e.diag
}

// SelectConfiguration discards any current session and prepares a fresh one
// for key. Allowed from every phase.
func (e *Engine) SelectConfiguration(key string) error {
	return e.selectConfiguration("select configuration", key)
}

// Restart starts over with key, which may be the current configuration.
func (e *Engine) Restart(key string) error {
	return e.selectConfiguration("restart", key)
}

// RestartToUnselected clears all session data.
func (e *Engine) RestartToUnselected() {
	if err := e.fire(eventReset); err != nil {
		// reset is allowed from every phase
		e.logger.Errorw("reset rejected", "error", err)
		return
	}
	e.current = nil
}

// Start presents the items in shuffled order.
func (e *Engine) Start() error {
	phase := e.Phase()
	if phase == PhaseUnselected {
		return ErrNoConfigurationSelected
	}
	if phase != PhaseReady {
		return &TransitionError{Op: "start", Phase: phase}
	}

	order := e.shuffler.Shuffle(e.current.bank)
	if err := e.fire(eventStart); err != nil {
		return err
	}
	e.current.order = order
	e.current.startedAt = e.now()
	return nil
}

// DropItem places token into the zone. Unknown zones or tokens, repeated
// drops and tokens with no instance left in the tray are tolerated without
// effect.
func (e *Engine) DropItem(zoneID, token string) error {
	if phase := e.Phase(); phase != PhaseInProgress {
		return &TransitionError{Op: "drop item", Phase: phase}
	}

	outcome := zone.Unavailable
	if e.inTray(zoneID, token) {
		outcome = e.current.store.Place(zoneID, token)
	}
	e.record("drop", zoneID, token, outcome)
	return nil
}

// inTray reports whether a drop of token into zoneID should reach the
// store. Unknown zones and tokens and repeats within the zone pass through
// so the store reports them; otherwise an instance must still be remaining.
func (e *Engine) inTray(zoneID, token string) bool {
	st := e.current.store
	z, ok := st.Zone(zoneID)
	if !ok || !st.Knows(token) || slices.Contains(z.Placed, token) {
		return true
	}
	return slices.Contains(e.remaining(), token)
}

// remaining is the presentation order minus every placed token.
func (e *Engine) remaining() []string {
	return subtract(e.current.order, e.current.store.PlacedAnywhere())
}

// RemoveItem takes token out of the zone. Absent tokens are tolerated.
func (e *Engine) RemoveItem(zoneID, token string) error {
	if phase := e.Phase(); phase != PhaseInProgress {
		return &TransitionError{Op: "remove item", Phase: phase}
	}

	outcome := e.current.store.Remove(zoneID, token)
	e.record("remove", zoneID, token, outcome)
	return nil
}

// Finish ends the attempt. Grading happens on demand in Results.
func (e *Engine) Finish() error {
	if phase := e.Phase(); phase != PhaseInProgress {
		return &TransitionError{Op: "finish", Phase: phase}
	}
	if err := e.fire(eventFinish); err != nil {
		return err
	}
	e.current.finishedAt = e.now()
	return nil
}

func (e *Engine) selectConfiguration(op, key string) error {
	cfg, err := e.catalog.Get(key)
	if err != nil {
		return fmt.Errorf("%s: %w %q: %w", op, ErrUnknownConfiguration, key, err)
	}

	next := &attempt{
		id:     e.newID(),
		config: cfg,
		store:  zone.NewStore(cfg.Zones),
		bank:   BuildBank(cfg.Zones, e.strategy),
	}
	next.order = append([]string(nil), next.bank...)

	if e.strategy == BankDedup {
		if shared := catalog.SharedTokens(cfg); len(shared) > 0 {
			e.logger.Warnw("tokens required by several zones are offered once",
				"configuration", cfg.Key, "tokens", shared)
		}
	}
	if repeated := catalog.RepeatedTokens(cfg); len(repeated) > 0 {
		e.logger.Warnw("tokens required twice by one zone can only be placed there once",
			"configuration", cfg.Key, "tokens", repeated)
	}

	if err := e.fire(eventSelect); err != nil {
		return err
	}
	e.current = next
	e.logger.Debugw("configuration selected", "op", op, "configuration", cfg.Key, "attempt", next.id)
	return nil
}

// fire sends event to the phase machine. A self-transition is not an error.
func (e *Engine) fire(event string) error {
	if !e.machine.Can(event) {
		return &TransitionError{Op: event, Phase: e.Phase()}
	}

	err := e.machine.Event(context.Background(), event)
	var noTransition fsm.NoTransitionError
	if err != nil && !errors.As(err, &noTransition) {
		return fmt.Errorf("%s: %w", event, err)
	}
	return nil
}

func (e *Engine) record(op, zoneID, token string, outcome zone.Outcome) {
	if outcome.Changed() {
		return
	}

	switch outcome {
	case zone.UnknownZone:
		e.diag.UnknownZone++
	case zone.UnknownToken:
		e.diag.UnknownToken++
	case zone.AlreadyPresent:
		e.diag.DuplicateDrops++
	case zone.NotPresent:
		e.diag.MissingRemovals++
	case zone.Unavailable:
		e.diag.Unavailable++
	}
	e.logger.Debugw("gesture ignored", "op", op, "zone", zoneID, "token", token, "outcome", outcome.String())
}
