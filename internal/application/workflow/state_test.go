package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepState_Transitions(t *testing.T) {
	tests := []struct {
		from, to StepState
		ok       bool
	}{
		{StatePending, StateApplied, true},
		{StatePending, StateFailed, true},
		{StatePending, StateRolledBack, false},
		{StateApplied, StateRolledBack, true},
		{StateApplied, StateFailed, false},
		{StateApplied, StatePending, false},
		{StateRolledBack, StateApplied, false},
		{StateFailed, StateRolledBack, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.ok, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStepState_IsTerminal(t *testing.T) {
	assert.False(t, StatePending.IsTerminal())
	assert.False(t, StateApplied.IsTerminal())
	assert.True(t, StateRolledBack.IsTerminal())
	assert.True(t, StateFailed.IsTerminal())
}
