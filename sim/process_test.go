package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessState_Constants_HaveExpectedStringValues(t *testing.T) {
	assert.Equal(t, ProcessState("unstarted"), StateUnstarted)
	assert.Equal(t, ProcessState("ready"), StateReady)
	assert.Equal(t, ProcessState("running"), StateRunning)
	assert.Equal(t, ProcessState("blocked"), StateBlocked)
	assert.Equal(t, ProcessState("terminated"), StateTerminated)
}

func TestNewProcess_StartsUnstartedWithUnsetFinish(t *testing.T) {
	spec := ProcessSpec{Arrival: 4, BurstCeiling: 2, CPUDemand: 6, IOMultiplier: 1}

	p := NewProcess(3, spec)

	assert.Equal(t, 3, p.ID)
	assert.Equal(t, StateUnstarted, p.State)
	assert.Equal(t, int64(-1), p.FinishingCycle)
	assert.Equal(t, int64(-1), p.Turnaround())
	assert.Equal(t, int64(6), p.Remaining())
	assert.Equal(t, spec, p.ProcessSpec)
}

func TestProcess_RemainingBurst_DependsOnState(t *testing.T) {
	p := NewProcess(0, ProcessSpec{BurstCeiling: 1, CPUDemand: 1})
	p.RemainingCPUBurst = 3
	p.RemainingIOBurst = 5

	p.State = StateRunning
	assert.Equal(t, int64(3), p.RemainingBurst())
	p.State = StateBlocked
	assert.Equal(t, int64(5), p.RemainingBurst())
	p.State = StateReady
	assert.Equal(t, int64(0), p.RemainingBurst())
}

func TestProcess_String_IncludesState(t *testing.T) {
	p := NewProcess(1, ProcessSpec{BurstCeiling: 1, CPUDemand: 1})
	assert.Contains(t, p.String(), "unstarted")
}

func TestProcessSpec_Validate(t *testing.T) {
	tests := []struct {
		name  string
		spec  ProcessSpec
		valid bool
	}{
		{"minimal", ProcessSpec{BurstCeiling: 1, CPUDemand: 1}, true},
		{"zero multiplier", ProcessSpec{Arrival: 3, BurstCeiling: 2, CPUDemand: 5}, true},
		{"negative arrival", ProcessSpec{Arrival: -1, BurstCeiling: 1, CPUDemand: 1}, false},
		{"zero ceiling", ProcessSpec{BurstCeiling: 0, CPUDemand: 1}, false},
		{"zero demand", ProcessSpec{BurstCeiling: 1, CPUDemand: 0}, false},
		{"negative multiplier", ProcessSpec{BurstCeiling: 1, CPUDemand: 1, IOMultiplier: -1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, ErrInvalidWorkload), "got %v", err)
		})
	}
}

func TestProcessSpec_String(t *testing.T) {
	assert.Equal(t, "(0 1 3 1)", ProcessSpec{BurstCeiling: 1, CPUDemand: 3, IOMultiplier: 1}.String())
}
