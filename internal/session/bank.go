package session

import (
	"fmt"
	"strings"

	"github.com/flightify/flightify/internal/catalog"
)

// BankStrategy decides how many instances of each token are offered.
type BankStrategy int

const (
	// BankDedup offers one instance per distinct token value. A token
	// required by two zones can then only satisfy one of them.
	BankDedup BankStrategy = iota

	// BankPerOccurrence offers one instance per required occurrence.
	BankPerOccurrence
)

func (s BankStrategy) String() string {
	switch s {
	case BankDedup:
		return "dedup"
	case BankPerOccurrence:
		return "per-occurrence"
	default:
		return "unknown"
	}
}

// ParseBankStrategy accepts "dedup" or "per-occurrence". Empty means dedup.
func ParseBankStrategy(s string) (BankStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dedup":
		return BankDedup, nil
	case "per-occurrence", "occurrence":
		return BankPerOccurrence, nil
	default:
		return BankDedup, fmt.Errorf("invalid bank strategy %q: must be dedup or per-occurrence", s)
	}
}

// BuildBank lists the tokens offered for a configuration, in zone order.
func BuildBank(zones []catalog.ZoneTemplate, strategy BankStrategy) []string {
	var bank []string
	seen := make(map[string]bool)
	for _, z := range zones {
		for _, tok := range z.Required {
			if strategy == BankDedup {
				if seen[tok] {
					continue
				}
				seen[tok] = true
			}
			bank = append(bank, tok)
		}
	}
	return bank
}

// subtract returns order without the tokens in taken, removing one
// occurrence per taken entry and keeping the order of what remains.
func subtract(order, taken []string) []string {
	pending := make(map[string]int, len(taken))
	for _, tok := range taken {
		pending[tok]++
	}

	remaining := make([]string, 0, len(order))
	for _, tok := range order {
		if pending[tok] > 0 {
			pending[tok]--
			continue
		}
		remaining = append(remaining, tok)
	}
	return remaining
}
