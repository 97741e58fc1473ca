package workflow

import (
	"fmt"
	"time"
)

// StepRecord is the outcome of one step in one run
type StepRecord struct {
	Name    string
	State   StepState
	Err     error
	UndoErr error
}

// Execution records the state transitions of a single run
type Execution struct {
	Workflow   string
	StartedAt  time.Time
	FinishedAt time.Time
	Steps      []StepRecord
}

func newExecution(name string, steps []Step) *Execution {
	exec := &Execution{
		Workflow:  name,
		StartedAt: time.Now(),
		Steps:     make([]StepRecord, len(steps)),
	}
	for i, s := range steps {
		exec.Steps[i] = StepRecord{Name: s.Name(), State: StatePending}
	}
	return exec
}

func (e *Execution) transition(i int, next StepState) error {
	cur := e.Steps[i].State
	if !cur.CanTransitionTo(next) {
		return fmt.Errorf("workflow %s: step %s cannot move from %s to %s", e.Workflow, e.Steps[i].Name, cur, next)
	}
	e.Steps[i].State = next
	return nil
}

// State returns the state of the named step, or "" if there is none.
func (e *Execution) State(step string) StepState {
	for _, r := range e.Steps {
		if r.Name == step {
			return r.State
		}
	}
	return ""
}

// States lists step states in run order
func (e *Execution) States() []StepState {
	out := make([]StepState, len(e.Steps))
	for i, r := range e.Steps {
		out[i] = r.State
	}
	return out
}

func (e *Execution) Duration() time.Duration {
	return e.FinishedAt.Sub(e.StartedAt)
}
