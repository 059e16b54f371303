// Package tester orchestrates a battery of compiler test cases: it turns
// on-disk fixture trees into a sorted suite of descriptors, executes them
// under a worker pool, and aggregates the results into a process exit code.
package tester

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/soltools/sol-tester/exitcodes"
	"github.com/soltools/sol-tester/logging"
	"github.com/soltools/sol-tester/runner"
	"github.com/soltools/sol-tester/suite"
	"github.com/soltools/sol-tester/types"
	"github.com/ethereum-optimism/optimism/op-service/cliapp"
)

// tester implements the cliapp.Lifecycle interface.
var _ cliapp.Lifecycle = &tester{}

// tester runs the compiler test suite once or periodically.
type tester struct {
	ctx     context.Context
	config  *Config
	version string
	result  *runner.RunnerResult
	tracer  trace.Tracer

	running atomic.Bool
	done    chan struct{}
	wg      sync.WaitGroup

	shutdownCallback func(error) // Callback to signal application shutdown
}

func New(ctx context.Context, config *Config, version string, shutdownCallback func(error)) (*tester, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}

	config.Log.Debug("Creating tester with config",
		"compiler", config.Harness.Compiler,
		"root", config.Harness.Root,
		"buildBase", config.Harness.BuildBase,
		"bless", config.Harness.Bless,
		"modes", fmt.Sprint(config.Modes),
		"runInterval", config.RunInterval,
		"runOnce", config.RunOnce)

	return &tester{
		ctx:              ctx,
		config:           config,
		version:          version,
		tracer:           otel.Tracer("sol-tester"),
		done:             make(chan struct{}),
		shutdownCallback: shutdownCallback,
	}, nil
}

// Start runs the test suite, then either exits (run-once mode) or schedules
// periodic re-runs. Start implements the cliapp.Lifecycle interface.
func (t *tester) Start(ctx context.Context) error {
	// Harness panics are misconfiguration, not test failures.
	defer func() {
		if r := recover(); r != nil {
			t.config.Log.Error("Runtime error occurred", "error", r)
			os.Exit(exitcodes.RuntimeErr)
		}
	}()

	t.ctx = ctx
	t.done = make(chan struct{})
	t.running.Store(true)

	if t.config.RunOnce {
		t.config.Log.Info("Starting sol-tester in run-once mode")
	} else {
		t.config.Log.Info("Starting sol-tester in continuous mode", "interval", t.config.RunInterval)
	}

	if err := t.runTests(); err != nil {
		t.config.Log.Error("Runtime error running tests", "error", err)
		return NewRuntimeError(err)
	}

	if t.config.RunOnce {
		t.config.Log.Info("Tests completed, exiting (run-once mode)")

		if t.result != nil && t.result.Status == types.TestStatusFail {
			t.config.Log.Warn("Run-once test run completed with failures, returning exit code 1")
			return NewTestFailureError(t.result.String())
		}

		// Only needed in run-once mode when every case passed.
		go func() {
			t.shutdownCallback(nil)
		}()
		return nil
	}

	scheduler := NewDefaultTestScheduler(t.config.RunInterval, t.config.Log)
	scheduler.RegisterCallback(t.runTests)
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		scheduler.Run(ctx, t.done, &t.running)
	}()

	t.config.Log.Debug("sol-tester started successfully")
	return nil
}

// runTests builds the suite and executes it. The build phase runs to
// completion before any case executes; build failures abort the whole run.
func (t *tester) runTests() error {
	ctx, span := t.tracer.Start(t.ctx, "suite build")
	cases, err := suite.Build(t.config.Harness, t.config.Modes, t.config.Log)
	span.End()
	if err != nil {
		return err
	}

	runID := uuid.New().String()
	fileLogger, err := logging.NewFileLogger(t.config.LogDir, runID)
	if err != nil {
		return err
	}

	testRunner, err := runner.NewTestRunner(runner.Config{
		Concurrency: t.config.Concurrency,
		Log:         t.config.Log,
		FileLogger:  fileLogger,
	})
	if err != nil {
		return err
	}

	result, err := testRunner.RunAll(ctx, cases)
	if err != nil {
		return err
	}
	t.result = result

	t.printResultsTable(result)
	fmt.Println(result.String())
	t.config.Log.Info("Test run completed", "run_id", result.RunID, "status", result.Status, "logs", fileLogger.Dir())
	return nil
}

// Stop stops the sol-tester service.
// Stop implements the cliapp.Lifecycle interface.
func (t *tester) Stop(ctx context.Context) error {
	t.config.Log.Info("Stopping sol-tester")

	if !t.running.Load() {
		t.config.Log.Debug("Service already stopped, nothing to do")
		return nil
	}

	t.running.Store(false)
	close(t.done)

	t.config.Log.Info("sol-tester stopped successfully")
	return nil
}

// Stopped returns true if the sol-tester service is stopped.
// Stopped implements the cliapp.Lifecycle interface.
func (t *tester) Stopped() bool {
	return !t.running.Load()
}

// WaitForShutdown blocks until all goroutines have terminated.
// This is useful in tests to ensure complete cleanup before moving on.
func (t *tester) WaitForShutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		t.config.Log.Warn("Timed out waiting for goroutines to terminate", "error", ctx.Err())
		return ctx.Err()
	}
}
