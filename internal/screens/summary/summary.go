package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/flightify/flightify/internal/grading"
	"github.com/flightify/flightify/internal/router"
	"github.com/flightify/flightify/internal/screen"
	"github.com/flightify/flightify/internal/screens"
	"github.com/flightify/flightify/internal/session"
	"github.com/flightify/flightify/internal/ui/components"
	"github.com/flightify/flightify/internal/ui/layout"
	"github.com/flightify/flightify/internal/ui/theme"
)

// SavedMsg reports the outcome of writing the attempt to the attempt log.
type SavedMsg struct {
	Sequence int64
	Err      error
}

// SummaryScreen shows the per-zone breakdown of a finished attempt.
type SummaryScreen struct {
	deps    screens.Deps
	result  session.Result
	restart func() screen.Screen
	saved   *SavedMsg
	errMsg  string
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ layout.StatusProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen. restart builds the screen shown after the
// engine has been reset to the same configuration.
func New(deps screens.Deps, result session.Result, restart func() screen.Screen) *SummaryScreen {
	return &SummaryScreen{deps: deps, result: result, restart: restart}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) Status() string {
	return s.result.ConfigurationLabel
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "R", Description: "Restart"},
		{Key: "N", Description: "Choose another"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case SavedMsg:
		s.saved = &msg
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r", "R":
			if err := s.deps.Engine.Restart(s.result.ConfigurationKey); err != nil {
				s.errMsg = err.Error()
				return s, nil
			}
			next := s.restart()
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		case "n", "N":
			s.deps.Engine.RestartToUnselected()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "esc":
			s.deps.Engine.RestartToUnselected()
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	res := s.result
	var b strings.Builder

	center := func(str string) {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, str))
		b.WriteString("\n")
	}

	headline := fmt.Sprintf("You got %d / %d fully correct!", res.Score.Correct, res.Score.Total)
	style := theme.Title
	if res.Score.Perfect() {
		style = theme.Correct
		headline += "  Cleared for takeoff."
	}
	b.WriteString("\n")
	center(style.Render(headline))

	mins := int(res.Duration().Minutes())
	secs := int(res.Duration().Seconds()) % 60
	center(theme.Hint.Render(fmt.Sprintf("%s  ·  %d:%02d", res.ConfigurationLabel, mins, secs)))
	b.WriteString("\n")

	bar := components.ProgressBar{
		Label:       "Score",
		Percent:     res.Score.Ratio(),
		ShowPercent: true,
		Width:       min(width-8, 60),
	}
	center(bar.View())
	b.WriteString("\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 60), 0)))
	center(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Zones"))
	center(divider)
	b.WriteString("\n")

	for _, v := range res.Verdicts {
		center(renderVerdict(v))
	}

	b.WriteString("\n")
	switch {
	case s.errMsg != "":
		center(theme.Incorrect.Render(s.errMsg))
	case s.saved == nil:
	case s.saved.Err != nil:
		center(theme.Incorrect.Render("Could not save attempt: " + s.saved.Err.Error()))
	default:
		center(theme.Hint.Render(fmt.Sprintf("Saved as attempt #%d", s.saved.Sequence)))
	}

	return b.String()
}

func renderVerdict(v grading.ZoneVerdict) string {
	mark, style := "✗", theme.Incorrect
	if v.IsCorrect {
		mark, style = "✓", theme.Correct
	}
	line := fmt.Sprintf("%s %-14s placed: %s", mark, v.Label, joinOrNone(v.Placed))
	if !v.IsCorrect {
		line += "   expected: " + joinOrNone(v.Required)
	}
	return style.Render(line)
}

func joinOrNone(tokens []string) string {
	if len(tokens) == 0 {
		return "None"
	}
	return strings.Join(tokens, ", ")
}
