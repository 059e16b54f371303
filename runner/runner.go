// Package runner executes an assembled suite under a worker pool.
package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/soltools/sol-tester/logging"
	"github.com/soltools/sol-tester/metrics"
	"github.com/soltools/sol-tester/types"
)

// TestRunner runs a built suite and aggregates its results.
type TestRunner interface {
	RunAll(ctx context.Context, cases []types.TestCase) (*RunnerResult, error)
}

// Config holds configuration for creating a new runner
type Config struct {
	Concurrency int // Number of workers; 0 means one per logical CPU
	Log         log.Logger
	FileLogger  *logging.FileLogger // Optional; stores failing case output
}

// runner struct implements the TestRunner interface
type runner struct {
	concurrency int
	log         log.Logger
	fileLogger  *logging.FileLogger
	tracer      trace.Tracer
}

// NewTestRunner creates a new test runner instance
func NewTestRunner(cfg Config) (TestRunner, error) {
	if cfg.Log == nil {
		cfg.Log = log.New()
		cfg.Log.Error("No logger provided, using default")
	}
	if cfg.Concurrency < 0 {
		return nil, fmt.Errorf("concurrency cannot be negative")
	}
	if cfg.Concurrency == 0 {
		// All logical CPUs, not physical cores.
		cfg.Concurrency = runtime.NumCPU()
	}

	return &runner{
		concurrency: cfg.Concurrency,
		log:         cfg.Log,
		fileLogger:  cfg.FileLogger,
		tracer:      otel.Tracer("test runner"),
	}, nil
}

// caseWork is one scheduled unit: the suite index keeps results in suite
// order no matter which worker finishes first.
type caseWork struct {
	index int
	tc    *types.TestCase
}

// RunAll executes the suite under the worker pool. The input order is the
// reporting order; no ordering is guaranteed between concurrently executing
// cases. Per-case failures never abort sibling cases.
func (r *runner) RunAll(ctx context.Context, cases []types.TestCase) (*RunnerResult, error) {
	runID := uuid.New().String()
	if r.fileLogger != nil {
		runID = r.fileLogger.RunID()
	}

	ctx, span := r.tracer.Start(ctx, "suite run")
	defer span.End()

	start := time.Now()
	result := &RunnerResult{
		RunID: runID,
		Cases: make([]CaseResult, len(cases)),
		Stats: ResultStats{StartTime: start},
	}

	r.log.Info("Starting test execution", "run_id", runID, "cases", len(cases), "concurrency", r.concurrency)

	workChan := make(chan caseWork)
	var wg sync.WaitGroup
	for i := 0; i < r.concurrency; i++ {
		wg.Add(1)
		go r.worker(ctx, &wg, workChan, result)
	}

scheduling:
	for i := range cases {
		select {
		case workChan <- caseWork{index: i, tc: &cases[i]}:
		case <-ctx.Done():
			r.log.Debug("Context cancelled while scheduling cases")
			break scheduling
		}
	}
	close(workChan)
	wg.Wait()

	result.Duration = time.Since(start)
	result.Stats.EndTime = time.Now()
	result.aggregate()
	metrics.RecordRun(runID, result.Status, result.Duration)

	if err := r.storeFailures(result); err != nil {
		return nil, err
	}

	r.log.Info("Test execution completed", "run_id", runID, "status", result.Status,
		"passed", result.Stats.Passed, "failed", result.Stats.Failed, "skipped", result.Stats.Skipped,
		"duration", result.Duration)
	return result, nil
}

// worker pulls cases from the shared queue. Each worker writes only its own
// result slots, so no locking is needed around the result slice.
func (r *runner) worker(ctx context.Context, wg *sync.WaitGroup, workChan <-chan caseWork, result *RunnerResult) {
	defer wg.Done()

	for work := range workChan {
		result.Cases[work.index] = r.runCase(ctx, work.tc)
		metrics.RecordCase(result.RunID, work.tc.Mode, result.Cases[work.index].Status)
	}
}

// runCase executes one case, honoring build-time ignore decisions: the run
// closure is never invoked for an ignored case.
func (r *runner) runCase(ctx context.Context, tc *types.TestCase) CaseResult {
	if tc.Ignored() {
		r.log.Debug("Skipping ignored case", "case", tc.Name, "reason", tc.IgnoreReason)
		return CaseResult{Name: tc.Name, Mode: tc.Mode, Status: types.TestStatusSkip, Reason: tc.IgnoreReason}
	}

	ctx, span := r.tracer.Start(ctx, tc.Name)
	defer span.End()

	start := time.Now()
	res := tc.Run(ctx)
	duration := time.Since(start)

	switch res.Status {
	case types.TestStatusFail:
		r.log.Error("Case failed", "case", tc.Name, "error", res.Error, "duration", duration)
	case types.TestStatusSkip:
		r.log.Debug("Case skipped at run time", "case", tc.Name, "reason", res.Reason)
	default:
		r.log.Debug("Case passed", "case", tc.Name, "duration", duration)
	}

	return CaseResult{
		Name:     tc.Name,
		Mode:     tc.Mode,
		Status:   res.Status,
		Reason:   res.Reason,
		Err:      res.Error,
		Output:   res.Output,
		Duration: duration,
	}
}

// storeFailures writes the captured output of failing cases through the
// file logger, when one is configured.
func (r *runner) storeFailures(result *RunnerResult) error {
	if r.fileLogger == nil {
		return nil
	}
	for _, c := range result.Cases {
		if c.Status != types.TestStatusFail || c.Output == "" {
			continue
		}
		if err := r.fileLogger.WriteCaseOutput(c.Name, c.Output); err != nil {
			metrics.RecordError("store_case_output")
			return err
		}
	}
	return r.fileLogger.WriteSummary(result.String() + "\n")
}
