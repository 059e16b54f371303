// Package logging stores per-run artifacts: the run summary and the
// captured output of failing cases.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileLogger writes run artifacts under <baseDir>/<runID>/.
type FileLogger struct {
	baseDir string
	runID   string
}

// NewFileLogger creates the per-run log directory.
func NewFileLogger(baseDir, runID string) (*FileLogger, error) {
	dir := filepath.Join(baseDir, runID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory %s: %w", dir, err)
	}
	return &FileLogger{baseDir: baseDir, runID: runID}, nil
}

// RunID returns the run identifier this logger writes under.
func (l *FileLogger) RunID() string {
	return l.runID
}

// Dir returns the per-run log directory.
func (l *FileLogger) Dir() string {
	return filepath.Join(l.baseDir, l.runID)
}

// WriteSummary stores the human-readable run summary.
func (l *FileLogger) WriteSummary(summary string) error {
	path := filepath.Join(l.Dir(), "summary.txt")
	if err := os.WriteFile(path, []byte(summary), 0o644); err != nil {
		return fmt.Errorf("writing run summary: %w", err)
	}
	return nil
}

// WriteCaseOutput stores the captured compiler output of one failing case.
func (l *FileLogger) WriteCaseOutput(caseName, output string) error {
	path := filepath.Join(l.Dir(), sanitizeName(caseName)+".log")
	if err := os.WriteFile(path, []byte(output), 0o644); err != nil {
		return fmt.Errorf("writing case output for %s: %w", caseName, err)
	}
	return nil
}

// sanitizeName maps a display name to a safe file name.
func sanitizeName(name string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", " ", "_", "[", "", "]", "", "#", "@")
	return r.Replace(name)
}
