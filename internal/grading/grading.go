// Package grading decides whether each zone holds exactly its required tokens.
package grading

import (
	"slices"

	"github.com/flightify/flightify/internal/zone"
)

// ZoneVerdict is the graded result for one zone. Required and Placed are
// sorted copies for display.
type ZoneVerdict struct {
	ZoneID    string
	Label     string
	IsCorrect bool
	Required  []string
	Placed    []string
}

// Score is the count of fully correct zones out of all zones.
type Score struct {
	Correct int
	Total   int
}

// Ratio returns Correct/Total, or 0 for an empty score.
func (s Score) Ratio() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total)
}

// Perfect reports whether every zone was correct.
func (s Score) Perfect() bool {
	return s.Total > 0 && s.Correct == s.Total
}

// Evaluate grades zones. A zone is correct iff its placed tokens equal its
// required tokens as multisets. The input is not modified.
func Evaluate(zones []zone.Zone) []ZoneVerdict {
	verdicts := make([]ZoneVerdict, 0, len(zones))
	for _, z := range zones {
		required := sortedCopy(z.Required)
		placed := sortedCopy(z.Placed)
		verdicts = append(verdicts, ZoneVerdict{
			ZoneID:    z.ID,
			Label:     z.Label,
			IsCorrect: slices.Equal(required, placed),
			Required:  required,
			Placed:    placed,
		})
	}
	return verdicts
}

// Tally counts correct verdicts.
func Tally(verdicts []ZoneVerdict) Score {
	s := Score{Total: len(verdicts)}
	for _, v := range verdicts {
		if v.IsCorrect {
			s.Correct++
		}
	}
	return s
}

func sortedCopy(tokens []string) []string {
	out := make([]string, len(tokens))
	copy(out, tokens)
	slices.Sort(out)
	return out
}
