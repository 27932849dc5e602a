package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/flightify/flightify/internal/ui/theme"
)

// Button is a styled button component. It fires on its hotkey, or on Enter
// when active.
type Button struct {
	Label   string
	Hotkey  string
	Active  bool
	OnPress func() tea.Cmd
}

// NewButton creates a new button.
func NewButton(label, hotkey string, onPress func() tea.Cmd) Button {
	return Button{
		Label:   label,
		Hotkey:  hotkey,
		OnPress: onPress,
	}
}

// Update handles key events.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || b.OnPress == nil {
		return b, nil
	}

	key := kmsg.String()
	if (b.Active && key == "enter") || (b.Hotkey != "" && key == b.Hotkey) {
		return b, b.OnPress()
	}
	return b, nil
}

// View renders the button.
func (b Button) View() string {
	label := "▸ " + b.Label
	if b.Hotkey != "" {
		label += " [" + b.Hotkey + "]"
	}
	if b.Active {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}
