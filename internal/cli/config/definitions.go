package config

import (
	"fmt"
	"maps"
	"slices"

	"github.com/leapstack-labs/relcalc/internal/registry"
	"github.com/leapstack-labs/relcalc/pkg/notation"
)

// ApplyDefinitions parses the sets and relations declared in the
// configuration and defines them in reg, in name order. Values must be
// quoted in YAML so that braces are not read as a mapping.
func (c *Config) ApplyDefinitions(reg *registry.Registry) error {
	for _, name := range slices.Sorted(maps.Keys(c.Sets)) {
		s, err := notation.ParseSet(c.Sets[name])
		if err != nil {
			return fmt.Errorf("config sets.%s: %w", name, err)
		}
		if err := reg.DefineSet(name, s); err != nil {
			return fmt.Errorf("config sets.%s: %w", name, err)
		}
	}
	for _, name := range slices.Sorted(maps.Keys(c.Relations)) {
		rel, err := notation.ParseRelation(c.Relations[name])
		if err != nil {
			return fmt.Errorf("config relations.%s: %w", name, err)
		}
		if err := reg.DefineRelation(name, rel); err != nil {
			return fmt.Errorf("config relations.%s: %w", name, err)
		}
	}
	return nil
}
