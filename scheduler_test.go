package tester

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/assert"
)

func TestSchedulerRunsCallbackPeriodically(t *testing.T) {
	s := NewDefaultTestScheduler(10*time.Millisecond, log.New())

	var calls atomic.Int32
	s.RegisterCallback(func() error {
		calls.Add(1)
		return nil
	})

	var running atomic.Bool
	running.Store(true)
	done := make(chan struct{})
	go s.Run(context.Background(), done, &running)

	assert.Eventually(t, func() bool {
		return calls.Load() >= 3
	}, time.Second, 5*time.Millisecond)
	close(done)
}

func TestSchedulerStopsOnDoneSignal(t *testing.T) {
	s := NewDefaultTestScheduler(time.Hour, log.New())
	s.RegisterCallback(func() error { return nil })

	var running atomic.Bool
	running.Store(true)
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		s.Run(context.Background(), done, &running)
		close(finished)
	}()

	close(done)
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop on done signal")
	}
}

func TestSchedulerStopsOnContextCancel(t *testing.T) {
	s := NewDefaultTestScheduler(time.Hour, log.New())
	s.RegisterCallback(func() error { return nil })

	var running atomic.Bool
	running.Store(true)
	ctx, cancel := context.WithCancel(context.Background())
	finished := make(chan struct{})
	go func() {
		s.Run(ctx, make(chan struct{}), &running)
		close(finished)
	}()

	cancel()
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop on context cancellation")
	}
	assert.False(t, running.Load(), "cancellation must clear the running flag")
}

func TestSchedulerSurvivesCallbackErrors(t *testing.T) {
	s := NewDefaultTestScheduler(10*time.Millisecond, log.New())

	var calls atomic.Int32
	s.RegisterCallback(func() error {
		calls.Add(1)
		return errors.New("transient failure")
	})

	var running atomic.Bool
	running.Store(true)
	done := make(chan struct{})
	go s.Run(context.Background(), done, &running)

	// Errors are logged, not fatal; subsequent cycles still fire.
	assert.Eventually(t, func() bool {
		return calls.Load() >= 2
	}, time.Second, 5*time.Millisecond)
	close(done)
}
