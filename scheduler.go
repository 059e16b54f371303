package tester

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/log"
)

// DefaultTestScheduler re-runs the registered callback at a fixed interval
// until stopped.
type DefaultTestScheduler struct {
	interval time.Duration
	logger   log.Logger
	callback func() error
}

// NewDefaultTestScheduler creates a new DefaultTestScheduler.
func NewDefaultTestScheduler(interval time.Duration, logger log.Logger) *DefaultTestScheduler {
	return &DefaultTestScheduler{
		interval: interval,
		logger:   logger,
	}
}

// RegisterCallback registers the callback to be called when tests should run.
func (s *DefaultTestScheduler) RegisterCallback(callback func() error) {
	s.callback = callback
}

// Run loops until the done channel closes or the context is cancelled.
// Errors from periodic runs are logged, not fatal: a transient failure in
// one cycle must not take the service down.
func (s *DefaultTestScheduler) Run(ctx context.Context, done <-chan struct{}, running *atomic.Bool) {
	s.logger.Debug("Starting periodic test runner goroutine", "interval", s.interval)

	for {
		select {
		case <-time.After(s.interval):
			if !running.Load() {
				s.logger.Debug("Service stopped, exiting periodic test runner")
				return
			}

			s.logger.Info("Running periodic tests")
			if err := s.callback(); err != nil {
				s.logger.Error("Error running periodic tests", "error", err)
			}
			s.logger.Info("Test run interval", "interval", s.interval)

		case <-done:
			s.logger.Debug("Done signal received, stopping periodic test runner")
			return

		case <-ctx.Done():
			s.logger.Debug("Context canceled, stopping periodic test runner")
			running.Store(false)
			return
		}
	}
}
