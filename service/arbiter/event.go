package arbiter

import "github.com/viant/gridlock/model/resource"

// Event type constants used in event contexts.
const (
	EventTypeAllocation = "allocation"
	EventTypeCompletion = "completion"
	EventTypeOutcome    = "outcome"
)

// Allocation is published after every successful grant.
type Allocation struct {
	SessionID string        `json:"sessionID"`
	ProcessID string        `json:"processID"`
	Kind      resource.Kind `json:"kind"`
	Amount    int           `json:"amount"`
	Move      int           `json:"move"`
}

// Completion is published when a process acquires its full demand and
// finishes.
type Completion struct {
	SessionID string `json:"sessionID"`
	ProcessID string `json:"processID"`
	Name      string `json:"name"`
}

// Outcome is published once, when the session reaches a terminal state.
type Outcome struct {
	SessionID string `json:"sessionID"`
	State     string `json:"state"`
	Moves     int    `json:"moves"`
}
