// Package header extracts structured properties from fixture sources.
//
// Two dialects exist. UI fixtures carry "//@key: value" directive comments,
// optionally qualified with a revision tag ("//@[rev]key: value"). Fixtures
// borrowed from the upstream solc corpus instead use settings blocks
// introduced by "// ====" and expectation blocks introduced by "// ----".
package header

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const directivePrefix = "//@"

// Props holds the structured properties of one fixture, resolved for one
// active revision.
type Props struct {
	Revisions    []string // Declared revision tags, in declaration order
	IgnoreReason string   // Non-empty when the fixture asks to be skipped
	Flags        []string // Extra compiler flags
	ExitCode     *int     // Expected compiler exit code; nil means "don't care"

	// Solc dialect only.
	Settings    map[string]string // "// ====" settings block
	Diagnostics []string          // "// ----" expectation block lines
}

// ExpectsErrors reports whether the solc-dialect expectation block contains
// at least one error diagnostic, meaning the compiler must reject the
// fixture.
func (p *Props) ExpectsErrors() bool {
	for _, d := range p.Diagnostics {
		if strings.Contains(d, "Error") {
			return true
		}
	}
	return false
}

// Load parses UI-dialect directives from src. Directives qualified with a
// revision tag apply only when that tag matches the active revision.
func Load(src, revision string) *Props {
	p := &Props{}
	sc := bufio.NewScanner(strings.NewReader(src))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(line, directivePrefix) {
			continue
		}
		rest := strings.TrimPrefix(line, directivePrefix)
		if rev, trimmed, ok := splitQualifier(rest); ok {
			if rev != revision {
				continue
			}
			rest = trimmed
		}
		key, value, _ := strings.Cut(rest, ":")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch key {
		case "revisions":
			p.Revisions = append(p.Revisions, strings.Fields(value)...)
		case "ignore":
			if value == "" {
				value = "ignored by fixture directive"
			}
			p.IgnoreReason = value
		case "flags":
			p.Flags = append(p.Flags, strings.Fields(value)...)
		case "exit-code":
			if n, err := strconv.Atoi(value); err == nil {
				p.ExitCode = &n
			}
		}
	}
	return p
}

// LoadSolc parses solc-dialect settings and expectation blocks from src.
func LoadSolc(src string) *Props {
	p := &Props{Settings: make(map[string]string)}
	sc := bufio.NewScanner(strings.NewReader(src))
	const (
		stateSource = iota
		stateSettings
		stateExpectations
	)
	state := stateSource
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case strings.HasPrefix(line, "// ===="):
			state = stateSettings
		case strings.HasPrefix(line, "// ----"):
			state = stateExpectations
		case state == stateSettings && strings.HasPrefix(line, "// "):
			key, value, ok := strings.Cut(strings.TrimPrefix(line, "// "), ":")
			if ok {
				p.Settings[strings.TrimSpace(key)] = strings.TrimSpace(value)
			}
		case state == stateExpectations && strings.HasPrefix(line, "// "):
			p.Diagnostics = append(p.Diagnostics, strings.TrimPrefix(line, "// "))
		case state != stateSource && line != "" && !strings.HasPrefix(line, "//"):
			// Source continues after a settings block.
			state = stateSource
		}
	}
	return p
}

// LoadRevisions returns the revision tags declared by the fixture at path,
// in declaration order. Duplicate tags are a configuration error.
func LoadRevisions(path string) ([]string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture %s: %w", path, err)
	}
	revisions := Load(string(src), "").Revisions
	seen := make(map[string]struct{}, len(revisions))
	for _, rev := range revisions {
		if _, dup := seen[rev]; dup {
			return nil, fmt.Errorf("fixture %s declares duplicate revision %q", path, rev)
		}
		seen[rev] = struct{}{}
	}
	return revisions, nil
}

// IsMultiSource reports whether a solc-dialect fixture bundles multiple
// source units, which this harness does not execute.
func IsMultiSource(src string) bool {
	return strings.Contains(src, "==== Source:") || strings.Contains(src, "==== ExternalSource:")
}

// splitQualifier splits a "[rev]key: value" directive body into its revision
// qualifier and the remainder.
func splitQualifier(s string) (rev, rest string, ok bool) {
	if !strings.HasPrefix(s, "[") {
		return "", s, false
	}
	end := strings.Index(s, "]")
	if end < 0 {
		return "", s, false
	}
	return s[1:end], s[end+1:], true
}
