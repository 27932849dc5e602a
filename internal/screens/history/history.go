package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/flightify/flightify/internal/router"
	"github.com/flightify/flightify/internal/screen"
	"github.com/flightify/flightify/internal/store"
	"github.com/flightify/flightify/internal/ui/layout"
	"github.com/flightify/flightify/internal/ui/theme"
)

// Limit is the number of attempts loaded.
const Limit = 50

type historyLoadedMsg struct {
	Attempts []store.AttemptRecord
	Err      error
}

// HistoryScreen displays past attempts, newest first.
type HistoryScreen struct {
	repo     store.AttemptRepo
	attempts []store.AttemptRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo store.AttemptRepo) *HistoryScreen {
	return &HistoryScreen{
		repo:     repo,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		attempts, err := s.repo.RecentAttempts(context.Background(), Limit)
		return historyLoadedMsg{Attempts: attempts, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Zones"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.attempts = msg.Attempts
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.attempts)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.attempts) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No tests finished yet.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, a := range s.attempts {
		dur := a.FinishedAt.Sub(a.StartedAt)
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s#%-3d %s  %-16s %d/%d zones  %d:%02d",
			prefix, a.Sequence, a.FinishedAt.Local().Format("Jan 02 15:04"),
			a.ConfigurationLabel, a.Correct, a.Total,
			int(dur.Minutes()), int(dur.Seconds())%60)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if a.Total > 0 && a.Correct == a.Total {
			style = style.Foreground(theme.Success)
		}
		if i == s.selected {
			style = style.Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, z := range a.Zones {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderZone(z)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func renderZone(z store.ZoneResult) string {
	if z.Correct {
		return theme.Correct.Render(fmt.Sprintf("    ✓ %s", z.Label))
	}
	placed := strings.Join(z.Placed, ", ")
	if placed == "" {
		placed = "nothing"
	}
	return theme.Incorrect.Render(fmt.Sprintf("    ✗ %s: placed %s, needed %s",
		z.Label, placed, strings.Join(z.Required, ", ")))
}
