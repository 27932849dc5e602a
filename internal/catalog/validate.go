package catalog

import (
	"fmt"
	"strings"
)

// validateConfigurations performs structural checks on a configuration set.
// Returns a combined error describing all problems found, or nil if valid.
func validateConfigurations(configs []Configuration) error {
	var errs []string

	if len(configs) == 0 {
		errs = append(errs, "catalog has no configurations")
	}

	keys := make(map[string]bool, len(configs))
	for i, cfg := range configs {
		if cfg.Key == "" {
			errs = append(errs, fmt.Sprintf("configuration %d: empty key", i))
		} else if keys[cfg.Key] {
			errs = append(errs, fmt.Sprintf("duplicate configuration key: %q", cfg.Key))
		}
		keys[cfg.Key] = true

		if strings.TrimSpace(cfg.Label) == "" {
			errs = append(errs, fmt.Sprintf("configuration %q: empty label", cfg.Key))
		}
		if len(cfg.Zones) == 0 {
			errs = append(errs, fmt.Sprintf("configuration %q: no zones", cfg.Key))
		}

		zoneIDs := make(map[string]bool, len(cfg.Zones))
		for j, z := range cfg.Zones {
			prefix := fmt.Sprintf("configuration %q zone %d", cfg.Key, j)
			if z.ID == "" {
				errs = append(errs, prefix+": empty id")
			} else if zoneIDs[z.ID] {
				errs = append(errs, fmt.Sprintf("configuration %q: duplicate zone id %q", cfg.Key, z.ID))
			}
			zoneIDs[z.ID] = true

			if strings.TrimSpace(z.Label) == "" {
				errs = append(errs, prefix+": empty label")
			}
			if len(z.Required) == 0 {
				errs = append(errs, prefix+": no required tokens")
			}
			for _, tok := range z.Required {
				if strings.TrimSpace(tok) == "" {
					errs = append(errs, prefix+": blank required token")
					break
				}
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
