package entities

import "fmt"

// RunState represents where a scenario run currently is
type RunState string

const (
	RunStateLaunched        RunState = "launched"
	RunStateNavigated       RunState = "navigated"
	RunStateWaitingForReady RunState = "waiting_for_ready"
	RunStateReady           RunState = "ready"
	RunStateInteracting     RunState = "interacting"
	RunStateCaptured        RunState = "captured"
	RunStateClosed          RunState = "closed"
	RunStateAborted         RunState = "aborted"
)

// RunResult represents the outcome of one scenario run
type RunResult struct {
	Scenario    string     `json:"scenario"`
	State       RunState   `json:"state"`
	Transitions []RunState `json:"transitions"`
	Screenshots []string   `json:"screenshots,omitempty"`
}

// StepError reports the step a scenario aborted on
type StepError struct {
	Scenario string
	Index    int
	Step     Step
	Err      error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("scenario %s: step %d (%s): %v", e.Scenario, e.Index+1, e.Step.Description, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
