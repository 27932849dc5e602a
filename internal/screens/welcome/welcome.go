package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/flightify/flightify/internal/router"
	"github.com/flightify/flightify/internal/screen"
	"github.com/flightify/flightify/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	taxiEnd      = 500 * time.Millisecond
	bannerAt     = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

const planeArt = `            __|__
     --------(_)--------
       O  O       O  O`

// runway scrolls under the plane while the splash plays
const runway = "═ ═ ═ ═ ═ ═ ═ ═ ═ ═ ═ ═ ═ ═"

type tickMsg time.Time

// WelcomeScreen shows a splash animation before transitioning to the home screen.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by homeFactory.
func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		homeFactory: homeFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		// Any key skips the rest of the animation.
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	planeStyle := lipgloss.NewStyle().Foreground(theme.Primary)

	// The plane rolls in from the left until taxiEnd.
	indent := 0
	if w.elapsed < taxiEnd {
		indent = int((taxiEnd - w.elapsed) / tickInterval * 2)
	}
	lines := strings.Split(planeArt, "\n")
	for i := range lines {
		lines[i] = strings.Repeat(" ", indent) + lines[i]
	}

	offset := w.tickCount % 2
	strip := lipgloss.NewStyle().Foreground(theme.Border).Render(runway[offset*len("═ "):])

	sections := []string{
		planeStyle.Render(strings.Join(lines, "\n")),
		strip,
	}

	if w.elapsed >= bannerAt {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Every seat, every part, in its place."),
			"",
			theme.Hint.Render("press any key to continue"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
