package workflow

// StepState is the lifecycle state of one step within a single run
type StepState string

const (
	StatePending    StepState = "PENDING"
	StateApplied    StepState = "APPLIED"
	StateRolledBack StepState = "ROLLED_BACK"
	StateFailed     StepState = "FAILED"
)

var validTransitions = map[StepState][]StepState{
	StatePending: {StateApplied, StateFailed},
	StateApplied: {StateRolledBack},
}

// CanTransitionTo reports whether moving from s to next is allowed
func (s StepState) CanTransitionTo(next StepState) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal returns true for ROLLED_BACK and FAILED
func (s StepState) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

func (s StepState) String() string {
	return string(s)
}
