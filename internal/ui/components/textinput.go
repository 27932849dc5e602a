package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// FilterInput wraps bubbles/textinput as a case-insensitive list filter.
type FilterInput struct {
	Model textinput.Model
}

// NewFilterInput creates a focused filter input.
func NewFilterInput(placeholder string, maxWidth int) FilterInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "/ "
	ti.Focus()

	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}

	return FilterInput{Model: ti}
}

// Init returns the initial command.
func (f FilterInput) Init() tea.Cmd {
	return f.Model.Focus()
}

// Update handles messages.
func (f FilterInput) Update(msg tea.Msg) (FilterInput, tea.Cmd) {
	var cmd tea.Cmd
	f.Model, cmd = f.Model.Update(msg)
	return f, cmd
}

// View renders the input.
func (f FilterInput) View() string {
	return f.Model.View()
}

// Value returns the current input value.
func (f FilterInput) Value() string {
	return f.Model.Value()
}

// Matches reports whether any of fields contains the filter text,
// ignoring case. An empty filter matches everything.
func (f FilterInput) Matches(fields ...string) bool {
	q := strings.ToLower(strings.TrimSpace(f.Model.Value()))
	if q == "" {
		return true
	}
	for _, s := range fields {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}
