package process

import (
	"github.com/viant/gridlock/model/resource"
)

// Process state constants
const (
	StateWaiting  = "waiting"
	StateRunning  = "running"
	StateBlocked  = "blocked"
	StateFinished = "finished"
)

// Process represents a simulated process competing for pool capacity. The
// demand vector is fixed at creation; grants accumulate through the arbiter
// until every required kind is covered, at which point the process finishes
// and its grants are returned to the pool in the same logical step.
type Process struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Required  resource.Amounts `json:"required"`
	Allocated resource.Amounts `json:"allocated"`
	State     string           `json:"state"`
}

// New creates a waiting process with the supplied demand and no grants.
func New(id, name string, required resource.Amounts) *Process {
	return &Process{
		ID:        id,
		Name:      name,
		Required:  required.Clone(),
		Allocated: resource.Amounts{},
		State:     StateWaiting,
	}
}

// Finished reports whether the process has reached its terminal state.
func (p *Process) Finished() bool {
	return p.State == StateFinished
}

// Satisfied reports whether every required kind is fully granted.
func (p *Process) Satisfied() bool {
	for kind, required := range p.Required {
		if p.Allocated.Get(kind) < required {
			return false
		}
	}
	return true
}

// Remaining returns the outstanding need for kind.
func (p *Process) Remaining(kind resource.Kind) int {
	remaining := p.Required.Get(kind) - p.Allocated.Get(kind)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CanFinish reports whether the outstanding need of every required kind is
// coverable by the supplied availability snapshot. It is a pure predicate,
// the building block of the deadlock reduction, and never mutates state.
func (p *Process) CanFinish(available resource.Amounts) bool {
	for kind, required := range p.Required {
		if required-p.Allocated.Get(kind) > available.Get(kind) {
			return false
		}
	}
	return true
}

// Grant credits amount units of kind to the process. Callers (the arbiter)
// are responsible for debiting the pool first.
func (p *Process) Grant(kind resource.Kind, amount int) {
	p.Allocated.Add(kind, amount)
	if p.State == StateWaiting {
		p.State = StateRunning
	}
}

// Finish flips the process to its terminal state and strips all grants,
// returning the vector that must be released back to the pool. Calling
// Finish on an already finished process returns nil.
func (p *Process) Finish() resource.Amounts {
	if p.Finished() {
		return nil
	}
	released := p.Allocated
	p.Allocated = resource.Amounts{}
	p.State = StateFinished
	return released
}

// Clone returns an independent copy of the process.
func (p *Process) Clone() *Process {
	return &Process{
		ID:        p.ID,
		Name:      p.Name,
		Required:  p.Required.Clone(),
		Allocated: p.Allocated.Clone(),
		State:     p.State,
	}
}
