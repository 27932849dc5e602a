package session

import (
	"errors"
	"slices"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/flightify/flightify/internal/catalog"
)

// identityShuffler keeps the bank order so tests can predict it.
type identityShuffler struct{ calls int }

func (s *identityShuffler) Shuffle(tokens []string) []string {
	s.calls++
	return slices.Clone(tokens)
}

// reverseShuffler returns the bank reversed.
type reverseShuffler struct{}

func (reverseShuffler) Shuffle(tokens []string) []string {
	out := slices.Clone(tokens)
	slices.Reverse(out)
	return out
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]catalog.Configuration{
		{
			Key:   "a320",
			Label: "Airbus A320",
			Image: "a320.png",
			Zones: []catalog.ZoneTemplate{
				{ID: "z1", Label: "Cockpit", Required: []string{"Pilot", "Co-Pilot"}, X: 40, Y: 120},
				{ID: "z2", Label: "Cabin", Required: []string{"Passenger", "Stewardess", "Luggage"}, X: 260, Y: 120},
			},
		},
		{
			Key:   "shared",
			Label: "Shared Luggage",
			Zones: []catalog.ZoneTemplate{
				{ID: "hold", Label: "Hold", Required: []string{"Luggage", "Mail"}},
				{ID: "cabin", Label: "Cabin", Required: []string{"Luggage"}},
			},
		},
		{
			Key:   "twin",
			Label: "Twin Engine",
			Zones: []catalog.ZoneTemplate{
				{ID: "wing", Label: "Wing", Required: []string{"Engine", "Engine"}},
			},
		},
	})
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return c
}

func startedEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	opts = append([]Option{WithShuffler(&identityShuffler{})}, opts...)
	e := New(testCatalog(t), opts...)
	if err := e.SelectConfiguration("a320"); err != nil {
		t.Fatalf("SelectConfiguration: %v", err)
	}
	if err := e.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return e
}

func mustDrop(t *testing.T, e *Engine, zoneID string, tokens ...string) {
	t.Helper()
	for _, tok := range tokens {
		if err := e.DropItem(zoneID, tok); err != nil {
			t.Fatalf("DropItem(%q, %q): %v", zoneID, tok, err)
		}
	}
}

func zoneByID(snap Snapshot, id string) ZoneView {
	for _, z := range snap.Zones {
		if z.ID == id {
			return z
		}
	}
	return ZoneView{}
}

func TestNew_StartsUnselected(t *testing.T) {
	e := New(testCatalog(t))
	snap := e.Snapshot()
	if snap.Phase != PhaseUnselected {
		t.Errorf("Phase = %v, want unselected", snap.Phase)
	}
	if len(snap.Zones) != 0 || len(snap.RemainingItems) != 0 {
		t.Errorf("unselected snapshot has data: %+v", snap)
	}
}

func TestScenarioA_PartialCredit(t *testing.T) {
	e := startedEngine(t)
	mustDrop(t, e, "z1", "Pilot", "Co-Pilot")
	mustDrop(t, e, "z2", "Passenger", "Stewardess")

	if err := e.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	res, err := e.Results()
	if err != nil {
		t.Fatalf("Results: %v", err)
	}

	if !res.Verdicts[0].IsCorrect {
		t.Error("z1 should be correct")
	}
	if res.Verdicts[1].IsCorrect {
		t.Error("z2 should be incorrect")
	}
	if res.Score.Correct != 1 || res.Score.Total != 2 {
		t.Errorf("Score = %d/%d, want 1/2", res.Score.Correct, res.Score.Total)
	}
}

func TestScenarioB_ExtraTokenFails(t *testing.T) {
	e := startedEngine(t)
	mustDrop(t, e, "z1", "Pilot", "Co-Pilot", "Luggage")

	z1 := zoneByID(e.Snapshot(), "z1")
	if !slices.Equal(z1.Placed, []string{"Pilot", "Co-Pilot", "Luggage"}) {
		t.Errorf("z1.Placed = %v", z1.Placed)
	}

	if err := e.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	res, _ := e.Results()
	if res.Verdicts[0].IsCorrect {
		t.Error("z1 with an extra token should be incorrect")
	}
}

func TestScenarioC_RepeatedDropIsNoop(t *testing.T) {
	e := startedEngine(t)
	mustDrop(t, e, "z1", "Pilot", "Pilot")

	z1 := zoneByID(e.Snapshot(), "z1")
	if !slices.Equal(z1.Placed, []string{"Pilot"}) {
		t.Errorf("z1.Placed = %v, want [Pilot]", z1.Placed)
	}
	if d := e.Diagnostics(); d.DuplicateDrops != 1 {
		t.Errorf("DuplicateDrops = %d, want 1", d.DuplicateDrops)
	}
}

func TestScenarioD_StartWhileUnselected(t *testing.T) {
	e := New(testCatalog(t))
	err := e.Start()
	if !errors.Is(err, ErrNoConfigurationSelected) {
		t.Errorf("Start error = %v, want ErrNoConfigurationSelected", err)
	}
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Start error = %v, should match ErrInvalidTransition", err)
	}
	if e.Phase() != PhaseUnselected {
		t.Errorf("Phase = %v, want unselected", e.Phase())
	}
}

func TestSelectConfiguration_BuildsReadySession(t *testing.T) {
	e := New(testCatalog(t))
	if err := e.SelectConfiguration("a320"); err != nil {
		t.Fatalf("SelectConfiguration: %v", err)
	}

	snap := e.Snapshot()
	if snap.Phase != PhaseReady {
		t.Errorf("Phase = %v, want ready", snap.Phase)
	}
	if snap.ConfigurationLabel != "Airbus A320" || snap.Image != "a320.png" {
		t.Errorf("snapshot metadata = %q %q", snap.ConfigurationLabel, snap.Image)
	}
	if snap.AttemptID == "" {
		t.Error("expected an attempt ID")
	}
	want := []string{"Pilot", "Co-Pilot", "Passenger", "Stewardess", "Luggage"}
	if !slices.Equal(snap.RemainingItems, want) {
		t.Errorf("RemainingItems = %v, want %v", snap.RemainingItems, want)
	}
	for _, z := range snap.Zones {
		if len(z.Placed) != 0 {
			t.Errorf("zone %s not empty: %v", z.ID, z.Placed)
		}
		if z.Required != nil {
			t.Errorf("zone %s exposes Required before finish", z.ID)
		}
	}
	if z := zoneByID(snap, "z2"); z.X != 260 || z.Y != 120 {
		t.Errorf("position not passed through: %+v", z)
	}
}

func TestSelectConfiguration_UnknownKeyKeepsPhase(t *testing.T) {
	e := startedEngine(t)
	mustDrop(t, e, "z1", "Pilot")

	err := e.SelectConfiguration("concorde")
	if !errors.Is(err, ErrUnknownConfiguration) {
		t.Errorf("error = %v, want ErrUnknownConfiguration", err)
	}
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("error = %v, should wrap catalog.ErrNotFound", err)
	}
	if e.Phase() != PhaseInProgress {
		t.Errorf("Phase = %v, want in_progress", e.Phase())
	}
	if z1 := zoneByID(e.Snapshot(), "z1"); !slices.Equal(z1.Placed, []string{"Pilot"}) {
		t.Errorf("zones changed after rejected selection: %v", z1.Placed)
	}
}

func TestSelectConfiguration_FromEveryPhaseRebuilds(t *testing.T) {
	e := startedEngine(t)
	mustDrop(t, e, "z1", "Pilot")
	firstID := e.Snapshot().AttemptID

	if err := e.SelectConfiguration("a320"); err != nil {
		t.Fatalf("reselect from in_progress: %v", err)
	}
	snap := e.Snapshot()
	if snap.Phase != PhaseReady {
		t.Errorf("Phase = %v, want ready", snap.Phase)
	}
	if z1 := zoneByID(snap, "z1"); len(z1.Placed) != 0 {
		t.Errorf("zones not rebuilt: %v", z1.Placed)
	}
	if snap.AttemptID == firstID {
		t.Error("expected a new attempt ID")
	}

	if err := e.SelectConfiguration("shared"); err != nil {
		t.Fatalf("reselect from ready: %v", err)
	}
	if e.Snapshot().ConfigurationKey != "shared" {
		t.Errorf("ConfigurationKey = %q, want shared", e.Snapshot().ConfigurationKey)
	}
}

func TestStart_ShufflesBank(t *testing.T) {
	e := New(testCatalog(t), WithShuffler(reverseShuffler{}))
	e.SelectConfiguration("a320")
	if err := e.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	want := []string{"Luggage", "Stewardess", "Passenger", "Co-Pilot", "Pilot"}
	if got := e.Snapshot().RemainingItems; !slices.Equal(got, want) {
		t.Errorf("RemainingItems = %v, want %v", got, want)
	}
}

func TestStart_RejectedOutsideReady(t *testing.T) {
	e := startedEngine(t)
	if err := e.Start(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Start in progress = %v, want ErrInvalidTransition", err)
	}

	e.Finish()
	err := e.Start()
	var te *TransitionError
	if !errors.As(err, &te) || te.Phase != PhaseFinished {
		t.Errorf("Start after finish = %v, want TransitionError in finished", err)
	}
}

func TestDropItem_RejectedOutsideInProgress(t *testing.T) {
	e := New(testCatalog(t))
	if err := e.DropItem("z1", "Pilot"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("drop while unselected = %v", err)
	}

	e.SelectConfiguration("a320")
	if err := e.DropItem("z1", "Pilot"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("drop while ready = %v", err)
	}
}

func TestFinished_NoMutation(t *testing.T) {
	e := startedEngine(t)
	mustDrop(t, e, "z1", "Pilot")
	e.Finish()

	if err := e.DropItem("z1", "Co-Pilot"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("drop after finish = %v", err)
	}
	if err := e.RemoveItem("z1", "Pilot"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("remove after finish = %v", err)
	}
	if err := e.Finish(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("second finish = %v", err)
	}
	if z1 := zoneByID(e.Snapshot(), "z1"); !slices.Equal(z1.Placed, []string{"Pilot"}) {
		t.Errorf("z1.Placed = %v, want [Pilot]", z1.Placed)
	}
}

func TestFinished_SnapshotShowsRequired(t *testing.T) {
	e := startedEngine(t)
	e.Finish()

	z1 := zoneByID(e.Snapshot(), "z1")
	if !slices.Equal(z1.Required, []string{"Pilot", "Co-Pilot"}) {
		t.Errorf("Required = %v", z1.Required)
	}
}

func TestResults_OnlyWhenFinished(t *testing.T) {
	e := startedEngine(t)
	if _, err := e.Results(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Results before finish = %v", err)
	}
}

func TestResults_DoNotReorderZones(t *testing.T) {
	e := startedEngine(t)
	mustDrop(t, e, "z2", "Stewardess", "Passenger")
	e.Finish()

	e.Results()
	res, _ := e.Results()
	if !slices.Equal(res.Verdicts[1].Placed, []string{"Passenger", "Stewardess"}) {
		t.Errorf("verdict Placed = %v, want sorted", res.Verdicts[1].Placed)
	}

	z2 := zoneByID(e.Snapshot(), "z2")
	if !slices.Equal(z2.Placed, []string{"Stewardess", "Passenger"}) {
		t.Errorf("zone Placed reordered: %v", z2.Placed)
	}
	if !slices.Equal(z2.Required, []string{"Passenger", "Stewardess", "Luggage"}) {
		t.Errorf("zone Required reordered: %v", z2.Required)
	}
}

func TestRemoveItem_RestoresPlaced(t *testing.T) {
	e := startedEngine(t)
	mustDrop(t, e, "z1", "Pilot")
	before := zoneByID(e.Snapshot(), "z1").Placed

	mustDrop(t, e, "z1", "Co-Pilot")
	if err := e.RemoveItem("z1", "Co-Pilot"); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if got := zoneByID(e.Snapshot(), "z1").Placed; !slices.Equal(got, before) {
		t.Errorf("Placed = %v, want %v", got, before)
	}
}

func TestUnknownGestures_Tolerated(t *testing.T) {
	e := startedEngine(t)
	before := e.Snapshot()

	if err := e.DropItem("nowhere", "Pilot"); err != nil {
		t.Errorf("drop into unknown zone returned %v", err)
	}
	if err := e.DropItem("z1", "Parrot"); err != nil {
		t.Errorf("drop of unknown token returned %v", err)
	}
	if err := e.RemoveItem("z1", "Pilot"); err != nil {
		t.Errorf("remove of absent token returned %v", err)
	}

	after := e.Snapshot()
	if !slices.Equal(before.RemainingItems, after.RemainingItems) {
		t.Errorf("RemainingItems changed: %v -> %v", before.RemainingItems, after.RemainingItems)
	}
	d := e.Diagnostics()
	if d.UnknownZone != 1 || d.UnknownToken != 1 || d.MissingRemovals != 1 {
		t.Errorf("Diagnostics = %+v", d)
	}
}

func TestDropItem_PlacedTokenNotReusable(t *testing.T) {
	e := New(testCatalog(t), WithShuffler(&identityShuffler{}))
	e.SelectConfiguration("shared")
	e.Start()

	mustDrop(t, e, "hold", "Luggage")
	mustDrop(t, e, "cabin", "Luggage")

	snap := e.Snapshot()
	if cabin := zoneByID(snap, "cabin"); len(cabin.Placed) != 0 {
		t.Errorf("cabin.Placed = %v, want empty", cabin.Placed)
	}
	if !slices.Equal(snap.RemainingItems, []string{"Mail"}) {
		t.Errorf("RemainingItems = %v, want [Mail]", snap.RemainingItems)
	}

	// A repeat into the same zone is still a duplicate, not a scarcity miss.
	mustDrop(t, e, "hold", "Luggage")
	if d := e.Diagnostics(); d.Unavailable != 1 || d.DuplicateDrops != 1 {
		t.Errorf("Diagnostics = %+v, want Unavailable 1, DuplicateDrops 1", d)
	}

	// Taking it back frees the instance for the other zone.
	e.RemoveItem("hold", "Luggage")
	mustDrop(t, e, "cabin", "Luggage")
	mustDrop(t, e, "hold", "Mail")
	if d := e.Diagnostics(); d.Unavailable != 1 {
		t.Errorf("Unavailable = %d after freeing Luggage, want 1", d.Unavailable)
	}
	e.Finish()

	res, _ := e.Results()
	if res.Score.Correct != 1 || res.Score.Total != 2 {
		t.Errorf("Score = %+v, want 1/2", res.Score)
	}
}

func TestRemainingItems_AlwaysBankMinusPlaced(t *testing.T) {
	e := startedEngine(t)
	cfg, _ := testCatalog(t).Get("a320")
	bank := BuildBank(cfg.Zones, BankDedup)

	check := func(step string) {
		t.Helper()
		snap := e.Snapshot()
		var placed []string
		for _, z := range snap.Zones {
			placed = append(placed, z.Placed...)
		}
		want := subtract(bank, placed)
		got := slices.Clone(snap.RemainingItems)
		slices.Sort(want)
		slices.Sort(got)
		if !slices.Equal(got, want) {
			t.Errorf("%s: RemainingItems = %v, want %v", step, got, want)
		}
	}

	check("start")
	e.DropItem("z1", "Pilot")
	check("drop pilot")
	e.DropItem("z2", "Pilot")
	check("drop pilot twice")
	e.DropItem("z2", "Luggage")
	check("drop luggage")
	e.RemoveItem("z1", "Pilot")
	check("remove pilot from z1")
	e.DropItem("z9", "Mail")
	check("unknown drop")
	e.Finish()
	check("finish")
}

func TestRestartToUnselected_FromEveryPhase(t *testing.T) {
	setups := map[string]func(e *Engine){
		"unselected":  func(e *Engine) {},
		"ready":       func(e *Engine) { e.SelectConfiguration("a320") },
		"in_progress": func(e *Engine) { e.SelectConfiguration("a320"); e.Start() },
		"finished":    func(e *Engine) { e.SelectConfiguration("a320"); e.Start(); e.Finish() },
	}

	for name, setup := range setups {
		t.Run(name, func(t *testing.T) {
			e := New(testCatalog(t), WithShuffler(&identityShuffler{}))
			setup(e)
			e.RestartToUnselected()

			snap := e.Snapshot()
			if snap.Phase != PhaseUnselected {
				t.Errorf("Phase = %v, want unselected", snap.Phase)
			}
			if len(snap.Zones) != 0 {
				t.Errorf("Zones = %v, want empty", snap.Zones)
			}
			if err := e.Start(); !errors.Is(err, ErrNoConfigurationSelected) {
				t.Errorf("Start after reset = %v", err)
			}
		})
	}
}

func TestRestart_SameConfiguration(t *testing.T) {
	e := startedEngine(t)
	mustDrop(t, e, "z1", "Pilot", "Co-Pilot")
	e.Finish()

	if err := e.Restart("a320"); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	snap := e.Snapshot()
	if snap.Phase != PhaseReady {
		t.Errorf("Phase = %v, want ready", snap.Phase)
	}
	if z1 := zoneByID(snap, "z1"); len(z1.Placed) != 0 {
		t.Errorf("z1 not cleared: %v", z1.Placed)
	}
	if err := e.Start(); err != nil {
		t.Errorf("Start after restart: %v", err)
	}
}

func TestRestart_UnknownKey(t *testing.T) {
	e := startedEngine(t)
	e.Finish()
	if err := e.Restart("nope"); !errors.Is(err, ErrUnknownConfiguration) {
		t.Errorf("Restart error = %v", err)
	}
	if e.Phase() != PhaseFinished {
		t.Errorf("Phase = %v, want finished", e.Phase())
	}
}

func TestBankStrategy_SharedTokens(t *testing.T) {
	dedup := New(testCatalog(t), WithShuffler(&identityShuffler{}))
	dedup.SelectConfiguration("shared")
	if got := dedup.Snapshot().RemainingItems; !slices.Equal(got, []string{"Luggage", "Mail"}) {
		t.Errorf("dedup bank = %v", got)
	}

	perOcc := New(testCatalog(t), WithShuffler(&identityShuffler{}), WithBankStrategy(BankPerOccurrence))
	perOcc.SelectConfiguration("shared")
	perOcc.Start()
	if got := perOcc.Snapshot().RemainingItems; !slices.Equal(got, []string{"Luggage", "Mail", "Luggage"}) {
		t.Errorf("per-occurrence bank = %v", got)
	}

	perOcc.DropItem("hold", "Luggage")
	perOcc.DropItem("hold", "Mail")
	perOcc.DropItem("cabin", "Luggage")
	if got := perOcc.Snapshot().RemainingItems; len(got) != 0 {
		t.Errorf("RemainingItems = %v, want empty", got)
	}
	perOcc.Finish()
	res, _ := perOcc.Results()
	if !res.Score.Perfect() {
		t.Errorf("per-occurrence shared configuration should be solvable, got %+v", res.Score)
	}
}

func TestBankStrategy_RepeatedTokenWarned(t *testing.T) {
	for _, strategy := range []BankStrategy{BankDedup, BankPerOccurrence} {
		t.Run(strategy.String(), func(t *testing.T) {
			core, logs := observer.New(zapcore.WarnLevel)
			e := New(testCatalog(t),
				WithShuffler(&identityShuffler{}),
				WithBankStrategy(strategy),
				WithLogger(zap.New(core).Sugar()),
			)
			e.SelectConfiguration("twin")
			if n := logs.FilterMessageSnippet("twice by one zone").Len(); n != 1 {
				t.Errorf("repeated-token warnings = %d, want 1", n)
			}

			e.Start()
			mustDrop(t, e, "wing", "Engine", "Engine")
			if z := zoneByID(e.Snapshot(), "wing"); !slices.Equal(z.Placed, []string{"Engine"}) {
				t.Errorf("wing.Placed = %v, want [Engine]", z.Placed)
			}
			e.Finish()
			if res, _ := e.Results(); res.Score.Correct != 0 {
				t.Errorf("Score = %+v, want 0/1", res.Score)
			}
		})
	}
}

func TestBankStrategy_NoWarningForPlainConfiguration(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	e := New(testCatalog(t), WithLogger(zap.New(core).Sugar()))
	e.SelectConfiguration("a320")
	if logs.Len() != 0 {
		t.Errorf("unexpected warnings: %v", logs.All())
	}
}

func TestParseBankStrategy(t *testing.T) {
	tests := []struct {
		in      string
		want    BankStrategy
		wantErr bool
	}{
		{"", BankDedup, false},
		{"dedup", BankDedup, false},
		{"Per-Occurrence", BankPerOccurrence, false},
		{"random", BankDedup, true},
	}
	for _, tt := range tests {
		got, err := ParseBankStrategy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseBankStrategy(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseBankStrategy(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	e := startedEngine(t)
	mustDrop(t, e, "z1", "Pilot")

	snap := e.Snapshot()
	snap.Zones[0].Placed[0] = "Hijacker"
	snap.RemainingItems[0] = "Hijacker"

	again := e.Snapshot()
	if again.Zones[0].Placed[0] != "Pilot" {
		t.Error("engine zones mutated through snapshot")
	}
	if slices.Contains(again.RemainingItems, "Hijacker") {
		t.Error("engine order mutated through snapshot")
	}
}
