package quiz

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/flightify/flightify/internal/catalog"
	"github.com/flightify/flightify/internal/router"
	"github.com/flightify/flightify/internal/screens"
	"github.com/flightify/flightify/internal/screens/summary"
	"github.com/flightify/flightify/internal/session"
	"github.com/flightify/flightify/internal/store"
)

type identityShuffler struct{}

func (identityShuffler) Shuffle(tokens []string) []string {
	return append([]string(nil), tokens...)
}

type fakeAttempts struct {
	saved []store.AttemptData
	err   error
}

func (f *fakeAttempts) AppendAttempt(_ context.Context, data store.AttemptData) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.saved = append(f.saved, data)
	return int64(len(f.saved)), nil
}

func (f *fakeAttempts) RecentAttempts(context.Context, int) ([]store.AttemptRecord, error) {
	return nil, nil
}

func (f *fakeAttempts) Attempt(context.Context, string) (store.AttemptRecord, error) {
	return store.AttemptRecord{}, store.ErrAttemptNotFound
}

func newTestQuiz(t *testing.T) (*QuizScreen, *session.Engine) {
	t.Helper()
	e := session.New(catalog.Builtin(), session.WithShuffler(identityShuffler{}))
	if err := e.SelectConfiguration("a320"); err != nil {
		t.Fatalf("SelectConfiguration: %v", err)
	}
	return New(screens.Deps{Engine: e}), e
}

func press(s *QuizScreen, keys ...tea.KeyPressMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = s.Update(k)
	}
	return cmd
}

var (
	keyEnter = tea.KeyPressMsg{Code: tea.KeyEnter}
	keyEsc   = tea.KeyPressMsg{Code: tea.KeyEscape}
	keyDown  = tea.KeyPressMsg{Code: tea.KeyDown}
	keyRight = tea.KeyPressMsg{Code: tea.KeyRight}
	keyBack  = tea.KeyPressMsg{Code: tea.KeyBackspace}
)

func letter(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestQuizScreen_Briefing(t *testing.T) {
	s, e := newTestQuiz(t)
	if s.Title() != "Briefing" {
		t.Errorf("Title = %q, want %q", s.Title(), "Briefing")
	}
	view := s.View(100, 30)
	for _, want := range []string{"Airbus A320", "Cockpit", "Cabin", "press Enter to start"} {
		if !strings.Contains(view, want) {
			t.Errorf("briefing view missing %q", want)
		}
	}

	press(s, keyEnter)
	if e.Phase() != session.PhaseInProgress {
		t.Fatalf("Phase = %v, want %v", e.Phase(), session.PhaseInProgress)
	}
	if s.Title() != "Test" {
		t.Errorf("Title = %q, want %q", s.Title(), "Test")
	}
}

func TestQuizScreen_BriefingEscGoesBack(t *testing.T) {
	s, e := newTestQuiz(t)
	cmd := press(s, keyEsc)
	if cmd == nil {
		t.Fatal("expected a command on Esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("Esc in briefing should pop")
	}
	if e.Phase() != session.PhaseUnselected {
		t.Errorf("Phase = %v, want %v", e.Phase(), session.PhaseUnselected)
	}
}

func TestQuizScreen_DropAndTakeBack(t *testing.T) {
	s, e := newTestQuiz(t)
	press(s, keyEnter) // start

	// Tray: Pilot, Co-Pilot, Passenger, Stewardess, Luggage. Zone cursor on Cockpit.
	press(s, keyEnter)
	snap := e.Snapshot()
	if got := snap.Zones[0].Placed; len(got) != 1 || got[0] != "Pilot" {
		t.Fatalf("Cockpit placed = %v, want [Pilot]", got)
	}
	if len(snap.RemainingItems) != 4 {
		t.Errorf("remaining = %d, want 4", len(snap.RemainingItems))
	}

	press(s, keyBack)
	snap = e.Snapshot()
	if len(snap.Zones[0].Placed) != 0 {
		t.Errorf("Cockpit placed = %v, want empty", snap.Zones[0].Placed)
	}
	if len(snap.RemainingItems) != 5 {
		t.Errorf("remaining = %d, want 5", len(snap.RemainingItems))
	}
}

func TestQuizScreen_ItemAndZoneCursor(t *testing.T) {
	s, e := newTestQuiz(t)
	press(s, keyEnter)

	// Co-Pilot into Cabin.
	press(s, keyRight, keyDown, keyEnter)
	snap := e.Snapshot()
	if got := snap.Zones[1].Placed; len(got) != 1 || got[0] != "Co-Pilot" {
		t.Errorf("Cabin placed = %v, want [Co-Pilot]", got)
	}

	// Cursor past the end stays put.
	press(s, keyDown, keyDown)
	if s.zone != 1 {
		t.Errorf("zone cursor = %d, want 1", s.zone)
	}
}

func TestQuizScreen_PerfectRunFinishesWithoutConfirm(t *testing.T) {
	s, e := newTestQuiz(t)
	press(s, keyEnter)
	press(s, keyEnter, keyEnter)                    // Pilot, Co-Pilot -> Cockpit
	press(s, keyDown, keyEnter, keyEnter, keyEnter) // rest -> Cabin

	if n := len(e.Snapshot().RemainingItems); n != 0 {
		t.Fatalf("remaining = %d, want 0", n)
	}

	cmd := press(s, letter('f'))
	if cmd == nil {
		t.Fatal("expected a command on F")
	}
	if e.Phase() != session.PhaseFinished {
		t.Fatalf("Phase = %v, want %v", e.Phase(), session.PhaseFinished)
	}
	res, err := e.Results()
	if err != nil {
		t.Fatalf("Results: %v", err)
	}
	if !res.Score.Perfect() {
		t.Errorf("Score = %+v, want perfect", res.Score)
	}
}

func TestQuizScreen_FinishConfirm(t *testing.T) {
	s, e := newTestQuiz(t)
	press(s, keyEnter, keyEnter)

	press(s, letter('f'))
	if !s.confirmDone {
		t.Fatal("expected finish confirmation with items left")
	}
	if !strings.Contains(s.View(100, 30), "4 items still in the tray") {
		t.Error("confirmation should count items left")
	}

	press(s, letter('n'))
	if s.confirmDone || e.Phase() != session.PhaseInProgress {
		t.Fatal("N should cancel the finish")
	}

	press(s, letter('f'), letter('y'))
	if e.Phase() != session.PhaseFinished {
		t.Errorf("Phase = %v, want %v", e.Phase(), session.PhaseFinished)
	}
}

func TestQuizScreen_QuitConfirm(t *testing.T) {
	s, e := newTestQuiz(t)
	press(s, keyEnter, keyEnter)

	press(s, keyEsc)
	if !s.confirmQuit {
		t.Fatal("expected quit confirmation")
	}
	press(s, keyEsc)
	if s.confirmQuit || e.Phase() != session.PhaseInProgress {
		t.Fatal("Esc should dismiss the confirmation")
	}

	press(s, keyEsc)
	cmd := press(s, letter('y'))
	if cmd == nil {
		t.Fatal("expected a command on Y")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("quitting should pop the screen")
	}
	if e.Phase() != session.PhaseUnselected {
		t.Errorf("Phase = %v, want %v", e.Phase(), session.PhaseUnselected)
	}
}

func TestQuizScreen_TrayEmptyHint(t *testing.T) {
	s, _ := newTestQuiz(t)
	press(s, keyEnter)
	press(s, keyEnter, keyEnter, keyDown, keyEnter, keyEnter, keyEnter)
	if !strings.Contains(s.View(100, 30), "Tray empty") {
		t.Error("expected empty tray hint")
	}
}

func TestQuizScreen_ShortTerminalHidesProgress(t *testing.T) {
	s, _ := newTestQuiz(t)
	press(s, keyEnter)
	if !strings.Contains(s.View(100, 30), "Placed") {
		t.Error("expected progress bar on a tall terminal")
	}
	if strings.Contains(s.View(100, 18), "Placed") {
		t.Error("progress bar should be hidden on a short terminal")
	}
}

func TestSaveAttempt(t *testing.T) {
	s, e := newTestQuiz(t)
	press(s, keyEnter, keyEnter)
	if err := e.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	res, _ := e.Results()

	repo := &fakeAttempts{}
	msg := saveAttempt(screens.Deps{Engine: e, Attempts: repo}, res)()
	saved, ok := msg.(summary.SavedMsg)
	if !ok {
		t.Fatalf("msg = %T, want summary.SavedMsg", msg)
	}
	if saved.Err != nil || saved.Sequence != 1 {
		t.Errorf("SavedMsg = %+v, want sequence 1", saved)
	}
	if len(repo.saved) != 1 || repo.saved[0].ID != res.AttemptID {
		t.Errorf("saved = %+v", repo.saved)
	}

	repo.err = errors.New("locked")
	msg = saveAttempt(screens.Deps{Engine: e, Attempts: repo}, res)()
	if saved := msg.(summary.SavedMsg); !errors.Is(saved.Err, repo.err) {
		t.Errorf("Err = %v, want %v", saved.Err, repo.err)
	}
}

func TestGridOrder(t *testing.T) {
	zones := []session.ZoneView{
		{ID: "tail", X: 450, Y: 50},
		{ID: "wing", X: 100, Y: 180},
		{ID: "nose", X: 10, Y: 50},
	}
	got := gridOrder(zones)
	want := []string{"nose", "tail", "wing"}
	for i, z := range got {
		if z.ID != want[i] {
			t.Errorf("gridOrder[%d] = %s, want %s", i, z.ID, want[i])
		}
	}
	if zones[0].ID != "tail" {
		t.Error("gridOrder must not reorder its input")
	}
}
