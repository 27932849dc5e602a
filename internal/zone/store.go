package zone

import (
	"slices"

	"github.com/flightify/flightify/internal/catalog"
)

// Store is the authoritative record of which tokens sit in which zone.
//
// A token may sit in several zones at once; the store only forbids the
// same token twice in one zone. Global scarcity is the caller's concern.
type Store struct {
	zones []Zone
	index map[string]int
	known map[string]bool
}

// NewStore builds a store with empty zones for templates. Tokens not listed
// in any template's required set are rejected as unknown.
func NewStore(templates []catalog.ZoneTemplate) *Store {
	s := &Store{
		zones: FromTemplates(templates),
		index: make(map[string]int, len(templates)),
		known: make(map[string]bool),
	}
	for i, z := range s.zones {
		s.index[z.ID] = i
		for _, tok := range z.Required {
			s.known[tok] = true
		}
	}
	return s
}

// Place appends token to the zone unless it is already there.
func (s *Store) Place(zoneID, token string) Outcome {
	i, ok := s.index[zoneID]
	if !ok {
		return UnknownZone
	}
	if !s.known[token] {
		return UnknownToken
	}
	if slices.Contains(s.zones[i].Placed, token) {
		return AlreadyPresent
	}
	s.zones[i].Placed = append(s.zones[i].Placed, token)
	return Placed
}

// Remove deletes the first occurrence of token from the zone.
func (s *Store) Remove(zoneID, token string) Outcome {
	i, ok := s.index[zoneID]
	if !ok {
		return UnknownZone
	}
	if !s.known[token] {
		return UnknownToken
	}
	pos := slices.Index(s.zones[i].Placed, token)
	if pos < 0 {
		return NotPresent
	}
	s.zones[i].Placed = slices.Delete(s.zones[i].Placed, pos, pos+1)
	return Removed
}

// PlacedAnywhere returns every placed token across all zones, in zone order.
func (s *Store) PlacedAnywhere() []string {
	var all []string
	for _, z := range s.zones {
		all = append(all, z.Placed...)
	}
	return all
}

// Zones returns deep copies of the zones in template order.
func (s *Store) Zones() []Zone {
	out := make([]Zone, len(s.zones))
	for i, z := range s.zones {
		out[i] = z.Clone()
	}
	return out
}

// Zone returns a copy of the zone with the given ID.
func (s *Store) Zone(id string) (Zone, bool) {
	i, ok := s.index[id]
	if !ok {
		return Zone{}, false
	}
	return s.zones[i].Clone(), true
}

// Knows reports whether token is used by the configuration.
func (s *Store) Knows(token string) bool {
	return s.known[token]
}
