package selection

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/flightify/flightify/internal/catalog"
	"github.com/flightify/flightify/internal/router"
	"github.com/flightify/flightify/internal/screen"
	"github.com/flightify/flightify/internal/screens"
	"github.com/flightify/flightify/internal/screens/quiz"
	"github.com/flightify/flightify/internal/ui/components"
	"github.com/flightify/flightify/internal/ui/layout"
	"github.com/flightify/flightify/internal/ui/theme"
)

// SelectionScreen lists the catalog behind a type-to-filter input.
type SelectionScreen struct {
	deps    screens.Deps
	entries []catalog.Entry
	filter  components.FilterInput
	menu    components.Menu
	errMsg  string
}

var _ screen.Screen = (*SelectionScreen)(nil)
var _ screen.KeyHintProvider = (*SelectionScreen)(nil)

// New creates a SelectionScreen over the engine's catalog.
func New(deps screens.Deps) *SelectionScreen {
	s := &SelectionScreen{
		deps:    deps,
		entries: deps.Engine.Configurations(),
		filter:  components.NewFilterInput("type to filter", 40),
	}
	s.rebuildMenu()
	return s
}

func (s *SelectionScreen) Init() tea.Cmd {
	return s.filter.Init()
}

func (s *SelectionScreen) Title() string {
	return "Choose a configuration"
}

func (s *SelectionScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SelectionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "down", "enter":
			var cmd tea.Cmd
			s.menu, cmd = s.menu.Update(msg)
			return s, cmd
		}
	}

	before := s.filter.Value()
	var cmd tea.Cmd
	s.filter, cmd = s.filter.Update(msg)
	if s.filter.Value() != before {
		s.rebuildMenu()
	}
	return s, cmd
}

// choose selects key on the engine and opens the briefing.
func (s *SelectionScreen) choose(key string) tea.Cmd {
	if err := s.deps.Engine.SelectConfiguration(key); err != nil {
		s.errMsg = err.Error()
		s.deps.Log().Warnw("select configuration", "key", key, "error", err)
		return nil
	}
	s.errMsg = ""
	next := quiz.New(s.deps)
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *SelectionScreen) rebuildMenu() {
	var items []components.MenuItem
	for _, e := range s.entries {
		if !s.filter.Matches(e.Key, e.Label) {
			continue
		}
		key := e.Key
		items = append(items, components.MenuItem{
			Label:  e.Label,
			Detail: e.Key,
			Action: func() tea.Cmd { return s.choose(key) },
		})
	}
	s.menu = components.NewMenu(items)
}

func (s *SelectionScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	list := s.menu.View()
	if len(s.menu.Items) == 0 {
		list = theme.Hint.Render("No configuration matches.")
	}

	sections := []string{
		theme.Title.Render("Which aircraft today?"),
		"",
		s.filter.View(),
		"",
		lipgloss.NewStyle().Width(cw).Render(list),
	}
	if s.errMsg != "" {
		sections = append(sections, "", theme.Incorrect.Render(s.errMsg))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, components.Card(content, cw+4))
}
