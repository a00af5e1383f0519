package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/stagehand-ci/stagehand/internal/checkout"
	stagehanderrors "github.com/stagehand-ci/stagehand/internal/errors"
	"github.com/stagehand-ci/stagehand/internal/execute"
	"github.com/stagehand-ci/stagehand/internal/output"
	"github.com/stagehand-ci/stagehand/internal/workspace"
)

// State is the lifecycle state of a pipeline run.
type State int

const (
	StatePending State = iota
	StateRunning
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// StageResult records the outcome of one executed stage. Results are
// append-only and never mutated after the stage finishes.
type StageResult struct {
	Stage    string
	ExitCode int
	Duration time.Duration
	Err      error // non-nil for launch and checkout failures
}

// Success reports whether the stage exited cleanly.
func (r StageResult) Success() bool { return r.ExitCode == 0 }

// MarshalJSON serializes the result with the duration in milliseconds and
// the error flattened to its message.
func (r StageResult) MarshalJSON() ([]byte, error) {
	var errMsg string
	if r.Err != nil {
		errMsg = r.Err.Error()
	}
	return json.Marshal(struct {
		Stage          string `json:"stage"`
		ExitCode       int    `json:"exitCode"`
		DurationMillis int64  `json:"durationMillis"`
		Error          string `json:"error,omitempty"`
	}{
		Stage:          r.Stage,
		ExitCode:       r.ExitCode,
		DurationMillis: r.Duration.Milliseconds(),
		Error:          errMsg,
	})
}

// Run is the record of one pipeline execution: the ordered sequence of
// stage results plus the overall verdict. Success is true iff no result
// has a non-zero exit code and every declared stage executed.
type Run struct {
	ID        uuid.UUID
	Pipeline  string
	State     State
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Results   []StageResult
	Success   bool
	Err       error // abnormal termination (context canceled), nil otherwise
}

// FirstFailure returns the first failing stage result, or nil if every
// executed stage succeeded.
func (r *Run) FirstFailure() *StageResult {
	for i := range r.Results {
		if !r.Results[i].Success() {
			return &r.Results[i]
		}
	}
	return nil
}

// ExitCode returns the exit code for the whole run: 0 on success,
// otherwise the first failing stage's code.
func (r *Run) ExitCode() int {
	if r.Success {
		return stagehanderrors.ExitSuccess
	}
	if failure := r.FirstFailure(); failure != nil {
		return failure.ExitCode
	}
	return stagehanderrors.ExitRuntimeError
}

// MarshalJSON serializes the run with string state, millisecond duration,
// and any abnormal-termination error flattened to its message.
func (r *Run) MarshalJSON() ([]byte, error) {
	var errMsg string
	if r.Err != nil {
		errMsg = r.Err.Error()
	}
	return json.Marshal(struct {
		ID             string        `json:"id"`
		Pipeline       string        `json:"pipeline"`
		State          string        `json:"state"`
		StartTime      time.Time     `json:"startTime"`
		EndTime        time.Time     `json:"endTime"`
		DurationMillis int64         `json:"durationMillis"`
		Results        []StageResult `json:"results"`
		Success        bool          `json:"success"`
		Error          string        `json:"error,omitempty"`
	}{
		ID:             r.ID.String(),
		Pipeline:       r.Pipeline,
		State:          r.State.String(),
		StartTime:      r.StartTime,
		EndTime:        r.EndTime,
		DurationMillis: r.Duration.Milliseconds(),
		Results:        r.Results,
		Success:        r.Success,
		Error:          errMsg,
	})
}

// Executor runs a single external command to completion.
type Executor interface {
	Execute(ctx context.Context, spec execute.Spec) (int, error)
}

// CheckoutProvider populates the workspace from version control.
type CheckoutProvider interface {
	Checkout(ctx context.Context, stage string, spec checkout.Spec, ws *workspace.Workspace) error
}

// Runner executes the declared stages in order, one at a time, and stops
// at the first non-zero exit. It is intentionally not resilient: no stage
// failure is retried or swallowed.
type Runner struct {
	executor  Executor
	checkouts CheckoutProvider
	out       *output.Writer
}

// New creates a Runner.
func New(executor Executor, checkouts CheckoutProvider, out *output.Writer) *Runner {
	return &Runner{executor: executor, checkouts: checkouts, out: out}
}

// Run executes the stages in declared order against the workspace and
// returns the completed run record. Each stage may depend on filesystem
// side effects of the previous one, so there is no overlap.
func (r *Runner) Run(ctx context.Context, pipelineName string, stages []Stage, ws *workspace.Workspace) *Run {
	run := &Run{
		ID:        uuid.New(),
		Pipeline:  pipelineName,
		State:     StatePending,
		StartTime: time.Now(),
	}

	run.State = StateRunning

	for i, stage := range stages {
		// Stop between stages if the caller's context is gone.
		if err := ctx.Err(); err != nil {
			run.Err = err
			break
		}

		r.out.StageStart(i+1, len(stages), stage.Name)

		start := time.Now()
		code, err := r.runStage(ctx, stage, ws)
		result := StageResult{
			Stage:    stage.Name,
			ExitCode: code,
			Duration: time.Since(start),
			Err:      err,
		}
		run.Results = append(run.Results, result)

		if !result.Success() {
			r.out.StageFailed(stage.Name, code, err)
			break
		}
		r.out.StageSuccess(stage.Name, FormatDuration(result.Duration))
	}

	run.EndTime = time.Now()
	run.Duration = run.EndTime.Sub(run.StartTime)
	run.Success = run.Err == nil &&
		run.FirstFailure() == nil &&
		len(run.Results) == len(stages)
	if run.Success {
		run.State = StateSucceeded
	} else {
		run.State = StateFailed
	}

	return run
}

// runStage dispatches one stage to the executor or the checkout provider
// and normalizes the outcome to an exit code.
func (r *Runner) runStage(ctx context.Context, stage Stage, ws *workspace.Workspace) (int, error) {
	if stage.Kind == KindCheckout {
		if err := r.checkouts.Checkout(ctx, stage.Name, *stage.Checkout, ws); err != nil {
			if stagehanderrors.IsKind(err, stagehanderrors.KindLaunch) {
				return stagehanderrors.LaunchExitCode, err
			}
			return stagehanderrors.ExitRuntimeError, err
		}
		return 0, nil
	}

	return r.executor.Execute(ctx, execute.Spec{
		Stage:   stage.Name,
		Shell:   stage.Shell,
		Command: stage.Command,
		Args:    stage.Args,
		Dir:     ws.Path(stage.Dir),
		Env:     stage.Env,
	})
}
