package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/flightify/flightify/internal/router"
	"github.com/flightify/flightify/internal/screen"
	"github.com/flightify/flightify/internal/screens"
	"github.com/flightify/flightify/internal/screens/history"
	"github.com/flightify/flightify/internal/screens/selection"
	"github.com/flightify/flightify/internal/store"
	"github.com/flightify/flightify/internal/ui/components"
	"github.com/flightify/flightify/internal/ui/theme"
)

const howItWorks = `Pick an aircraft. Every zone on it needs
exactly the right crew, passengers or parts.

Move items from the tray into zones, take
them back if you change your mind, then
finish to see which zones you got right.`

type lastAttemptMsg struct {
	record *store.AttemptRecord
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	deps       screens.Deps
	menu       components.Menu
	menuLabels []string
	last       *store.AttemptRecord
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Refocuser = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps screens.Deps) *HomeScreen {
	menuLabels := []string{"START TEST", "HISTORY", "EXIT"}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: selection.New(deps)}
			}
		}},
		{Label: menuLabels[1], Disabled: deps.Attempts == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(deps.Attempts)}
			}
		}},
		{Label: menuLabels[2], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		deps:       deps,
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadLast()
}

// Refocus reloads the last attempt when coming back from a test.
func (h *HomeScreen) Refocus() tea.Cmd {
	return h.loadLast()
}

func (h *HomeScreen) loadLast() tea.Cmd {
	repo := h.deps.Attempts
	if repo == nil {
		return nil
	}
	log := h.deps.Log()
	return func() tea.Msg {
		recs, err := repo.RecentAttempts(context.Background(), 1)
		if err != nil {
			log.Warnw("load last attempt", "error", err)
			return lastAttemptMsg{}
		}
		if len(recs) == 0 {
			return lastAttemptMsg{}
		}
		return lastAttemptMsg{record: &recs[0]}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(lastAttemptMsg); ok {
		h.last = msg.record
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	compact := height < 22 || width < 100

	var sections []string
	sections = append(sections, theme.Title.Width(cw).Render("F L I G H T I F Y"))

	if !compact {
		sections = append(sections, components.Card(theme.Body.Render(howItWorks), cw))
	}

	if h.last != nil {
		line := fmt.Sprintf("Last test: %s  %d / %d zones",
			h.last.ConfigurationLabel, h.last.Correct, h.last.Total)
		sections = append(sections, theme.Subtitle.Width(cw).Render(line))
	}

	var buttons []string
	for i, label := range h.menuLabels {
		if h.menu.Items[i].Disabled {
			continue
		}
		buttons = append(buttons, components.MenuButton(label, i == h.menu.Selected, cw))
	}
	sections = append(sections, lipgloss.JoinVertical(lipgloss.Center, buttons...))

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
