package model

import (
	"fmt"

	"github.com/viant/gridlock/model/process"
	"github.com/viant/gridlock/model/resource"
)

// Level composes one resource pool with an ordered collection of processes
// plus the move counters. A level is created fresh by the generator and
// discarded wholesale on restart or advancement; only its number survives.
type Level struct {
	Number    int                `json:"number"`
	Pool      *resource.Pool     `json:"-"`
	Processes []*process.Process `json:"processes"`
	Moves     int                `json:"moves"`
	MoveLimit int                `json:"moveLimit"`
}

// Process returns the process with the supplied ID or nil.
func (l *Level) Process(id string) *process.Process {
	for _, candidate := range l.Processes {
		if candidate.ID == id {
			return candidate
		}
	}
	return nil
}

// Unfinished returns the processes that have not reached their terminal
// state, preserving list order, which is the scan order of deadlock detection.
func (l *Level) Unfinished() []*process.Process {
	var ret []*process.Process
	for _, candidate := range l.Processes {
		if !candidate.Finished() {
			ret = append(ret, candidate)
		}
	}
	return ret
}

// Complete reports whether every process has finished.
func (l *Level) Complete() bool {
	for _, candidate := range l.Processes {
		if !candidate.Finished() {
			return false
		}
	}
	return true
}

// MovesExhausted reports whether the move budget has been spent.
func (l *Level) MovesExhausted() bool {
	return l.Moves >= l.MoveLimit
}

// Validate returns issues that make the level unplayable.
func (l *Level) Validate() []error {
	var issues []error
	if l.Number < 1 {
		issues = append(issues, fmt.Errorf("level number must be >= 1, had %d", l.Number))
	}
	if l.Pool == nil {
		issues = append(issues, fmt.Errorf("level %d has no resource pool", l.Number))
	}
	if l.MoveLimit <= 0 {
		issues = append(issues, fmt.Errorf("level %d move limit must be positive, had %d", l.Number, l.MoveLimit))
	}
	seen := map[string]bool{}
	for _, candidate := range l.Processes {
		if seen[candidate.ID] {
			issues = append(issues, fmt.Errorf("duplicate process id %q", candidate.ID))
		}
		seen[candidate.ID] = true
		for kind, required := range candidate.Required {
			if !kind.Valid() {
				issues = append(issues, fmt.Errorf("process %q requires unknown kind %q", candidate.ID, kind))
			}
			if required <= 0 {
				issues = append(issues, fmt.Errorf("process %q has non-positive demand for %q", candidate.ID, kind))
			}
		}
	}
	return issues
}
