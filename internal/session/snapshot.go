package session

import (
	"slices"

	"github.com/flightify/flightify/internal/zone"
)

// ZoneView is the read-only view of one zone handed to renderers.
type ZoneView struct {
	ID     string
	Label  string
	Placed []string

	// Required is only filled once the session is finished.
	Required []string

	X, Y int
}

// Snapshot is a copy of the session state. Mutating it has no effect on
// the engine.
type Snapshot struct {
	Phase              Phase
	AttemptID          string
	ConfigurationKey   string
	ConfigurationLabel string
	Image              string
	Zones              []ZoneView

	// RemainingItems is the presentation order minus every token placed in
	// any zone.
	RemainingItems []string
}

// Snapshot returns the current session state.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{Phase: e.Phase()}
	a := e.current
	if a == nil {
		return snap
	}

	snap.AttemptID = a.id
	snap.ConfigurationKey = a.config.Key
	snap.ConfigurationLabel = a.config.Label
	snap.Image = a.config.Image

	zones := a.store.Zones()
	snap.Zones = make([]ZoneView, len(zones))
	for i, z := range zones {
		snap.Zones[i] = zoneView(z, snap.Phase == PhaseFinished)
	}
	snap.RemainingItems = e.remaining()
	return snap
}

func zoneView(z zone.Zone, finished bool) ZoneView {
	v := ZoneView{
		ID:     z.ID,
		Label:  z.Label,
		Placed: z.Placed,
		X:      z.X,
		Y:      z.Y,
	}
	if finished {
		v.Required = slices.Clone(z.Required)
	}
	return v
}
