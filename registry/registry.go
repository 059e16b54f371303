// Package registry loads the optional skip-expectation manifest.
package registry

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"gopkg.in/yaml.v3"

	"github.com/soltools/sol-tester/types"
)

// Registry holds the skip expectations consulted by the mode check
// functions.
type Registry struct {
	config Config
	rules  []types.SkipRule
}

// Config contains registry configuration
type Config struct {
	Log          log.Logger
	ManifestFile string // Optional; empty means no manifest
}

// manifest mirrors the on-disk YAML layout.
type manifest struct {
	Skips []types.SkipRule `yaml:"skips"`
}

// NewRegistry creates a new registry instance. A missing manifest path is
// valid and yields an empty registry.
func NewRegistry(cfg Config) (*Registry, error) {
	if cfg.Log == nil {
		cfg.Log = log.New()
		cfg.Log.Error("No logger provided, using default")
	}

	r := &Registry{config: cfg}
	if cfg.ManifestFile != "" {
		if err := r.loadManifest(cfg.ManifestFile); err != nil {
			return nil, fmt.Errorf("failed to load manifest: %w", err)
		}
	}

	cfg.Log.Debug("Registry loaded", "len(rules)", len(r.rules))
	return r, nil
}

// loadManifest reads and validates the manifest file.
func (r *Registry) loadManifest(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading manifest %s: %w", path, err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	for i, rule := range m.Skips {
		if rule.Pattern == "" {
			return fmt.Errorf("manifest %s: skip rule %d has no pattern", path, i)
		}
		if rule.Reason == "" {
			return fmt.Errorf("manifest %s: skip rule %q has no reason", path, rule.Pattern)
		}
		for _, mode := range rule.Modes {
			if _, err := types.ParseMode(mode.String()); err != nil {
				return fmt.Errorf("manifest %s: skip rule %q: %w", path, rule.Pattern, err)
			}
		}
	}

	r.rules = m.Skips
	return nil
}

// Rules returns the loaded skip expectations.
func (r *Registry) Rules() []types.SkipRule {
	return r.rules
}
