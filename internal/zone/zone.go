// Package zone holds the per-zone token assignments of a live session.
package zone

import (
	"slices"

	"github.com/flightify/flightify/internal/catalog"
)

// Zone is a live target region built from a catalog.ZoneTemplate.
type Zone struct {
	ID       string
	Label    string
	Required []string
	Placed   []string
	X, Y     int
}

// Clone returns a deep copy of z.
func (z Zone) Clone() Zone {
	z.Required = slices.Clone(z.Required)
	z.Placed = slices.Clone(z.Placed)
	return z
}

// FromTemplates builds empty zones, one per template, in template order.
func FromTemplates(templates []catalog.ZoneTemplate) []Zone {
	zones := make([]Zone, len(templates))
	for i, t := range templates {
		zones[i] = Zone{
			ID:       t.ID,
			Label:    t.Label,
			Required: slices.Clone(t.Required),
			Placed:   []string{},
			X:        t.X,
			Y:        t.Y,
		}
	}
	return zones
}

// Outcome reports what a Place or Remove call did.
type Outcome int

const (
	Placed         Outcome = iota // Token appended to the zone
	AlreadyPresent                // Token was already in the zone; nothing changed
	Removed                       // Token removed from the zone
	NotPresent                    // Token was not in the zone; nothing changed
	UnknownZone                   // No zone with that ID; nothing changed
	UnknownToken                  // Token not used by the configuration; nothing changed
	Unavailable                   // No instance of the token left to place; reported by the engine, never by Store
)

// Changed reports whether the call mutated the store.
func (o Outcome) Changed() bool {
	return o == Placed || o == Removed
}

// String returns a short diagnostic name.
func (o Outcome) String() string {
	switch o {
	case Placed:
		return "placed"
	case AlreadyPresent:
		return "already-present"
	case Removed:
		return "removed"
	case NotPresent:
		return "not-present"
	case UnknownZone:
		return "unknown-zone"
	case UnknownToken:
		return "unknown-token"
	case Unavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}
