package quiz

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	tea "charm.land/bubbletea/v2"

	"github.com/flightify/flightify/internal/router"
	"github.com/flightify/flightify/internal/screen"
	"github.com/flightify/flightify/internal/screens"
	"github.com/flightify/flightify/internal/screens/summary"
	"github.com/flightify/flightify/internal/session"
	"github.com/flightify/flightify/internal/store"
	"github.com/flightify/flightify/internal/ui/layout"
)

// QuizScreen drives one attempt: briefing while READY, the zone grid and
// item tray while IN_PROGRESS.
type QuizScreen struct {
	deps        screens.Deps
	item        int // index into RemainingItems
	zone        int // index into the grid order of zones
	confirmQuit bool
	confirmDone bool
	errMsg      string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ layout.StatusProvider = (*QuizScreen)(nil)

// New creates a QuizScreen over an engine that already has a configuration
// selected.
func New(deps screens.Deps) *QuizScreen {
	return &QuizScreen{deps: deps}
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	if s.deps.Engine.Phase() == session.PhaseReady {
		return "Briefing"
	}
	return "Test"
}

func (s *QuizScreen) Status() string {
	return s.deps.Engine.Snapshot().ConfigurationLabel
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirmQuit, s.confirmDone:
		return []layout.KeyHint{
			{Key: "Y", Description: "Yes"},
			{Key: "N", Description: "No"},
		}
	case s.deps.Engine.Phase() == session.PhaseReady:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "←→", Description: "Item"},
		{Key: "↑↓", Description: "Zone"},
		{Key: "Enter", Description: "Drop"},
		{Key: "⌫", Description: "Take back"},
		{Key: "F", Description: "Finish"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	key := kmsg.String()
	s.errMsg = ""

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			s.deps.Engine.RestartToUnselected()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if s.confirmDone {
		switch key {
		case "y", "Y", "enter":
			s.confirmDone = false
			return s, s.finish()
		case "n", "N", "esc":
			s.confirmDone = false
		}
		return s, nil
	}

	switch s.deps.Engine.Phase() {
	case session.PhaseReady:
		return s.handleBriefingKey(key)
	case session.PhaseInProgress:
		return s.handleTestKey(key)
	}
	return s, nil
}

func (s *QuizScreen) handleBriefingKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "enter", "space", " ":
		if err := s.deps.Engine.Start(); err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		s.item, s.zone = 0, 0
	case "esc":
		s.deps.Engine.RestartToUnselected()
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *QuizScreen) handleTestKey(key string) (screen.Screen, tea.Cmd) {
	snap := s.deps.Engine.Snapshot()
	zones := gridOrder(snap.Zones)

	switch key {
	case "left", "h":
		if s.item > 0 {
			s.item--
		}
	case "right", "l":
		if s.item < len(snap.RemainingItems)-1 {
			s.item++
		}
	case "up", "k", "shift+tab":
		if s.zone > 0 {
			s.zone--
		}
	case "down", "j", "tab":
		if s.zone < len(zones)-1 {
			s.zone++
		}
	case "enter", "space", " ":
		if len(snap.RemainingItems) == 0 || len(zones) == 0 {
			return s, nil
		}
		token := snap.RemainingItems[s.item]
		if err := s.deps.Engine.DropItem(zones[s.zone].ID, token); err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		s.clampItem()
	case "backspace", "x", "delete":
		if len(zones) == 0 {
			return s, nil
		}
		z := zones[s.zone]
		if len(z.Placed) == 0 {
			return s, nil
		}
		if err := s.deps.Engine.RemoveItem(z.ID, z.Placed[len(z.Placed)-1]); err != nil {
			s.errMsg = err.Error()
		}
	case "f", "F":
		if len(snap.RemainingItems) == 0 {
			return s, s.finish()
		}
		s.confirmDone = true
	case "esc":
		s.confirmQuit = true
	}
	return s, nil
}

// finish grades the attempt and hands over to the results screen. The
// attempt log write runs as its own command and reports to that screen.
func (s *QuizScreen) finish() tea.Cmd {
	eng := s.deps.Engine
	if err := eng.Finish(); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	res, err := eng.Results()
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}

	s.deps.Log().Infow("attempt finished",
		"attempt", res.AttemptID,
		"configuration", res.ConfigurationKey,
		"correct", res.Score.Correct,
		"total", res.Score.Total,
		"diagnostics", fmt.Sprintf("%+v", eng.Diagnostics()),
	)

	deps := s.deps
	next := summary.New(deps, res, func() screen.Screen { return New(deps) })
	cmds := []tea.Cmd{
		func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} },
	}

	if deps.Attempts != nil {
		cmds = append(cmds, saveAttempt(deps, res))
	}
	return tea.Sequence(cmds...)
}

func saveAttempt(deps screens.Deps, res session.Result) tea.Cmd {
	data := store.AttemptFromResult(res)
	return func() tea.Msg {
		seq, err := deps.Attempts.AppendAttempt(context.Background(), data)
		if err != nil {
			deps.Log().Errorw("save attempt", "attempt", data.ID, "error", err)
		}
		return summary.SavedMsg{Sequence: seq, Err: err}
	}
}

func (s *QuizScreen) clampItem() {
	n := len(s.deps.Engine.Snapshot().RemainingItems)
	s.item = max(min(s.item, n-1), 0)
}

// gridOrder sorts zones top-to-bottom then left-to-right by their anchor.
func gridOrder(zones []session.ZoneView) []session.ZoneView {
	sorted := slices.Clone(zones)
	slices.SortStableFunc(sorted, func(a, b session.ZoneView) int {
		return cmp.Or(cmp.Compare(a.Y, b.Y), cmp.Compare(a.X, b.X))
	})
	return sorted
}
