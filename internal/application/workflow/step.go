package workflow

import (
	"context"
	"fmt"
)

// Step is one forward action paired with its compensation.
//
// Apply receives the previous step's output (or the workflow input for the
// first step) and returns its own output plus the undo token that Undo
// receives if a later step fails. Undo is never called for a step whose
// Apply failed.
type Step interface {
	Name() string
	Apply(ctx context.Context, input any) (output any, undo any, err error)
	Undo(ctx context.Context, undo any) error
}

type funcStep struct {
	name  string
	apply func(ctx context.Context, input any) (any, any, error)
	undo  func(ctx context.Context, undo any) error
}

// StepFunc builds a step from two closures. A nil undo makes the step
// non-compensable.
func StepFunc(
	name string,
	apply func(ctx context.Context, input any) (any, any, error),
	undo func(ctx context.Context, undo any) error,
) Step {
	return &funcStep{name: name, apply: apply, undo: undo}
}

func (s *funcStep) Name() string { return s.name }

func (s *funcStep) Apply(ctx context.Context, input any) (any, any, error) {
	return s.apply(ctx, input)
}

func (s *funcStep) Undo(ctx context.Context, undo any) error {
	if s.undo == nil {
		return nil
	}
	return s.undo(ctx, undo)
}

// Typed builds a step whose input, output and undo token are statically
// typed. An input of the wrong type fails the step.
func Typed[In, Out, U any](
	name string,
	apply func(ctx context.Context, in In) (Out, U, error),
	undo func(ctx context.Context, token U) error,
) Step {
	var undoFn func(context.Context, any) error
	if undo != nil {
		undoFn = func(ctx context.Context, token any) error {
			t, ok := token.(U)
			if !ok {
				return fmt.Errorf("step %s: unexpected undo token %T", name, token)
			}
			return undo(ctx, t)
		}
	}
	return &funcStep{
		name: name,
		apply: func(ctx context.Context, input any) (any, any, error) {
			in, ok := input.(In)
			if !ok {
				return nil, nil, fmt.Errorf("step %s: unexpected input %T", name, input)
			}
			return apply(ctx, in)
		},
		undo: undoFn,
	}
}

// NoUndo is the undo token of steps that have nothing to compensate
type NoUndo struct{}
