// Package workflow runs named sequences of compensable steps. When a step
// fails, the steps applied before it are undone in reverse order.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/raqueto/backend/internal/infrastructure/logger"
	"github.com/raqueto/backend/internal/infrastructure/metrics"
	"github.com/raqueto/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Workflow is an ordered list of steps. Each step's output is the next
// step's input; the last output is the workflow result.
type Workflow struct {
	name   string
	steps  []Step
	logger *zap.Logger
}

func New(name string, log *zap.Logger, steps ...Step) *Workflow {
	if log == nil {
		log = zap.NewNop()
	}
	return &Workflow{name: name, steps: steps, logger: log}
}

func (w *Workflow) Name() string { return w.name }

// Append returns a copy of the workflow with extra trailing steps.
func (w *Workflow) Append(steps ...Step) *Workflow {
	if len(steps) == 0 {
		return w
	}
	all := make([]Step, 0, len(w.steps)+len(steps))
	all = append(all, w.steps...)
	all = append(all, steps...)
	return &Workflow{name: w.name, steps: all, logger: w.logger}
}

// Run executes the steps in order. On failure it returns a *Error and the
// execution record showing which steps were rolled back.
func (w *Workflow) Run(ctx context.Context, input any) (any, *Execution, error) {
	ctx, span := telemetry.StartSpan(ctx, "workflow."+w.name,
		telemetry.WithAttribute(telemetry.AttrWorkflow, w.name))
	defer span.End()

	exec := newExecution(w.name, w.steps)
	log := logger.WithTraceContext(ctx, w.logger).With(zap.String("workflow", w.name))

	undo := make([]any, len(w.steps))
	current := input
	for i, step := range w.steps {
		out, token, err := step.Apply(ctx, current)
		if err != nil {
			exec.Steps[i].Err = err
			_ = exec.transition(i, StateFailed)
			compErr := w.compensate(ctx, exec, undo[:i], log)
			exec.FinishedAt = time.Now()

			wfErr := &Error{Workflow: w.name, Step: step.Name(), Err: err, CompensationErr: compErr}
			log.Warn("workflow step failed",
				zap.String("step", step.Name()),
				zap.Error(err),
				zap.Bool("compensated", compErr == nil),
			)
			telemetry.RecordError(span, wfErr)
			metrics.RecordWorkflow(w.name, wfErr, exec.Duration())
			return nil, exec, wfErr
		}

		if err := exec.transition(i, StateApplied); err != nil {
			return nil, exec, err
		}
		telemetry.AddEvent(span, "step.applied", telemetry.AttrWorkflowStep, step.Name())
		undo[i] = token
		current = out
	}

	exec.FinishedAt = time.Now()
	log.Debug("workflow completed", zap.Duration("duration", exec.Duration()))
	telemetry.SetOK(span)
	metrics.RecordWorkflow(w.name, nil, exec.Duration())
	return current, exec, nil
}

// compensate undoes applied steps from last to first. A failing undo does
// not stop the remaining ones; all failures are joined.
func (w *Workflow) compensate(ctx context.Context, exec *Execution, tokens []any, log *zap.Logger) error {
	var errs []error
	for i := len(tokens) - 1; i >= 0; i-- {
		step := w.steps[i]
		if err := step.Undo(ctx, tokens[i]); err != nil {
			exec.Steps[i].UndoErr = err
			errs = append(errs, fmt.Errorf("undo %s: %w", step.Name(), err))
			log.Error("compensation failed", zap.String("step", step.Name()), zap.Error(err))
			metrics.RecordCompensation(w.name, step.Name(), err)
			continue
		}
		_ = exec.transition(i, StateRolledBack)
		metrics.RecordCompensation(w.name, step.Name(), nil)
		log.Info("step rolled back", zap.String("step", step.Name()))
	}
	return errors.Join(errs...)
}

// Result runs wf and asserts its result type.
func Result[T any](ctx context.Context, wf *Workflow, input any) (T, error) {
	var zero T
	out, _, err := wf.Run(ctx, input)
	if err != nil {
		return zero, err
	}
	res, ok := out.(T)
	if !ok {
		return zero, fmt.Errorf("workflow %s: unexpected result %T", wf.name, out)
	}
	return res, nil
}

// Fail is a trailing step that always fails with err; useful to force the
// compensation path.
func Fail(name string, err error) Step {
	return StepFunc(name, func(context.Context, any) (any, any, error) {
		return nil, nil, err
	}, nil)
}
