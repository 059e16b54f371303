package types

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/log"
)

// Config holds the immutable per-run harness settings. It is built once at
// startup and shared read-only across every discovery, build, and execution
// step, so no synchronization is needed to read it.
type Config struct {
	Compiler  string        // Path to the compiler binary under test
	Root      string        // Project root; fixture paths are reported relative to it
	BuildBase string        // Base directory for per-fixture output artifacts
	Bless     bool          // Overwrite expected outputs instead of comparing
	Verbose   bool          // Log per-case detail during execution
	Timeout   time.Duration // Per-case compiler invocation timeout; 0 means none
	Skips     []SkipRule    // Skip expectations loaded from the manifest
	Log       log.Logger
}

// SkipRule marks fixtures that are expected to be skipped rather than run.
// Pattern is matched against the fixture path relative to the project root;
// a pattern ending in "/" matches every fixture under that directory.
type SkipRule struct {
	Pattern string `yaml:"pattern"`
	Modes   []Mode `yaml:"modes,omitempty"` // Empty means all modes
	Reason  string `yaml:"reason"`
}

// OutputDir returns the artifact directory for a fixture's relative
// directory, mirroring the fixture tree under the build base.
func (c *Config) OutputDir(relativeDir string) string {
	return filepath.Join(c.BuildBase, relativeDir)
}

// SkipReason returns the manifest skip reason for the given case, if any.
func (c *Config) SkipReason(mode Mode, relPath string) (string, bool) {
	rel := filepath.ToSlash(relPath)
	for _, rule := range c.Skips {
		if !rule.appliesTo(mode) {
			continue
		}
		if rule.matches(rel) {
			return rule.Reason, true
		}
	}
	return "", false
}

func (r SkipRule) appliesTo(mode Mode) bool {
	if len(r.Modes) == 0 {
		return true
	}
	for _, m := range r.Modes {
		if m == mode {
			return true
		}
	}
	return false
}

func (r SkipRule) matches(rel string) bool {
	if strings.HasSuffix(r.Pattern, "/") {
		return strings.HasPrefix(rel, r.Pattern)
	}
	ok, err := filepath.Match(r.Pattern, rel)
	return err == nil && ok
}
