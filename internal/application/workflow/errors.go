package workflow

import "fmt"

// Error is returned by Run when a step fails. It unwraps to the step's
// error so domain error codes survive for the HTTP layer.
type Error struct {
	Workflow        string
	Step            string
	Err             error
	CompensationErr error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("workflow %s: step %s failed: %v", e.Workflow, e.Step, e.Err)
	if e.CompensationErr != nil {
		msg += fmt.Sprintf(" (compensation failed: %v)", e.CompensationErr)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Compensated reports whether every applied step was rolled back cleanly
func (e *Error) Compensated() bool {
	return e.CompensationErr == nil
}
