package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/flightify/flightify/internal/catalog"
	"github.com/flightify/flightify/internal/session"
)

func testModel() AppModel {
	return newAppModel(Options{Engine: session.New(catalog.Builtin())})
}

func TestAppStartsOnWelcome(t *testing.T) {
	m := testModel()
	if m.router.Depth() != 1 {
		t.Fatalf("Depth = %d, want 1", m.router.Depth())
	}
	if m.Init() == nil {
		t.Error("expected the splash animation to start")
	}
}

func TestAppKeypressReachesHome(t *testing.T) {
	var model tea.Model = testModel()
	model, cmd := model.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})
	if cmd == nil {
		t.Fatal("expected the welcome screen to hand over")
	}
	model, _ = model.Update(cmd())

	m := model.(AppModel)
	if got := m.router.Active().Title(); got != "Home" {
		t.Errorf("active = %q, want Home", got)
	}
}

func TestAppCtrlCQuits(t *testing.T) {
	m := testModel()
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Ctrl+C should quit")
	}
}

func TestAppTooSmall(t *testing.T) {
	var model tea.Model = testModel()
	model, _ = model.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(model.(AppModel).render(), "Not enough room") {
		t.Error("expected min-size message")
	}
}

func TestAppFrame(t *testing.T) {
	var model tea.Model = testModel()
	model, _ = model.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	frame := model.(AppModel).render()
	if !strings.Contains(frame, "Flightify") || !strings.Contains(frame, "Ctrl+C") {
		t.Error("frame should carry header and footer")
	}
}
