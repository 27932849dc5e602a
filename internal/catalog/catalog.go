package catalog

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get for keys the catalog does not contain.
var ErrNotFound = errors.New("configuration not found")

// ZoneTemplate describes one target region of a configuration.
type ZoneTemplate struct {
	ID    string `json:"id"`
	Label string `json:"label"`

	// Required is the multiset of tokens that must be placed for the zone
	// to be correct. Order carries no meaning; repetition does.
	Required []string `json:"required"`

	// X and Y are layout coordinates. The engine passes them through unchanged.
	X int `json:"x"`
	Y int `json:"y"`
}

// Configuration is one selectable quiz: a diagram plus its zones.
type Configuration struct {
	Key   string         `json:"key"`
	Label string         `json:"label"`
	Image string         `json:"image"`
	Zones []ZoneTemplate `json:"zones"`
}

// Entry is a (key, label) pair used by selection UIs.
type Entry struct {
	Key   string
	Label string
}

// Provider supplies configurations. Implementations are read-only.
type Provider interface {
	// Get returns the configuration for key, or an error wrapping ErrNotFound.
	Get(key string) (Configuration, error)

	// List returns every configuration's key and label in catalog order.
	List() []Entry
}

// Catalog is an in-memory Provider built from a validated configuration set.
type Catalog struct {
	configs []Configuration
	byKey   map[string]int
}

var _ Provider = (*Catalog)(nil)

// New validates configs and returns a Catalog serving them.
func New(configs []Configuration) (*Catalog, error) {
	if err := validateConfigurations(configs); err != nil {
		return nil, err
	}

	c := &Catalog{
		configs: make([]Configuration, len(configs)),
		byKey:   make(map[string]int, len(configs)),
	}
	for i, cfg := range configs {
		c.configs[i] = cloneConfiguration(cfg)
		c.byKey[cfg.Key] = i
	}
	return c, nil
}

// Get returns a copy of the configuration stored under key.
func (c *Catalog) Get(key string) (Configuration, error) {
	i, ok := c.byKey[key]
	if !ok {
		return Configuration{}, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	return cloneConfiguration(c.configs[i]), nil
}

// List returns all entries in catalog order.
func (c *Catalog) List() []Entry {
	entries := make([]Entry, 0, len(c.configs))
	for _, cfg := range c.configs {
		entries = append(entries, Entry{Key: cfg.Key, Label: cfg.Label})
	}
	return entries
}

// Len returns the number of configurations.
func (c *Catalog) Len() int {
	return len(c.configs)
}

// SharedTokens returns token values required by more than one zone of cfg,
// in first-seen order. With a deduplicated item bank these configurations
// cannot be fully solved.
func SharedTokens(cfg Configuration) []string {
	zonesByToken := make(map[string]map[string]bool)
	var order []string
	for _, z := range cfg.Zones {
		for _, tok := range z.Required {
			if zonesByToken[tok] == nil {
				zonesByToken[tok] = make(map[string]bool)
				order = append(order, tok)
			}
			zonesByToken[tok][z.ID] = true
		}
	}

	var shared []string
	for _, tok := range order {
		if len(zonesByToken[tok]) > 1 {
			shared = append(shared, tok)
		}
	}
	return shared
}

// RepeatedTokens returns token values that a single zone of cfg requires
// more than once, in first-seen order. A zone holds each token at most
// once, so such a zone can never be correct under any item bank.
func RepeatedTokens(cfg Configuration) []string {
	reported := make(map[string]bool)
	var repeated []string
	for _, z := range cfg.Zones {
		seen := make(map[string]bool, len(z.Required))
		for _, tok := range z.Required {
			if seen[tok] && !reported[tok] {
				reported[tok] = true
				repeated = append(repeated, tok)
			}
			seen[tok] = true
		}
	}
	return repeated
}

func cloneConfiguration(cfg Configuration) Configuration {
	out := cfg
	out.Zones = make([]ZoneTemplate, len(cfg.Zones))
	for i, z := range cfg.Zones {
		out.Zones[i] = z
		out.Zones[i].Required = append([]string(nil), z.Required...)
	}
	return out
}
