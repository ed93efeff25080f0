package detector

import (
	"github.com/viant/gridlock/model"
	"github.com/viant/gridlock/model/process"
	"github.com/viant/gridlock/model/resource"
)

// Report captures the outcome of a reduction pass. SafeOrder lists process
// IDs in an order that lets each finish and release its holdings; when the
// level is deadlocked, Unresolved lists the processes no order can rescue.
type Report struct {
	Deadlocked bool     `json:"deadlocked"`
	SafeOrder  []string `json:"safeOrder,omitempty"`
	Unresolved []string `json:"unresolved,omitempty"`
}

// Service runs reduction passes over levels.
type Service struct{}

// New creates a detector service.
func New() *Service {
	return &Service{}
}

// Detect simulates finishing processes one at a time: any process whose
// outstanding demand fits in the simulated availability is marked finished
// and its full allocation returned to the pool, then the scan restarts.
// The level deadlocks only when unfinished processes remain and none of
// them can be reduced.
func (s *Service) Detect(level *model.Level) Report {
	if level == nil {
		return Report{}
	}
	available := level.Pool.Availability()
	pending := level.Unfinished()
	report := Report{}

	for len(pending) > 0 {
		reduced := -1
		for i, candidate := range pending {
			if candidate.CanFinish(available) {
				reduced = i
				break
			}
		}
		if reduced < 0 {
			break
		}
		finished := pending[reduced]
		release(available, finished)
		report.SafeOrder = append(report.SafeOrder, finished.ID)
		pending = append(pending[:reduced], pending[reduced+1:]...)
	}

	if len(pending) > 0 {
		report.Deadlocked = true
		for _, blocked := range pending {
			report.Unresolved = append(report.Unresolved, blocked.ID)
		}
	}
	return report
}

// release credits a finishing process's holdings back to the simulated
// availability. Finishing consumes the outstanding demand and returns the
// full requirement, so the net gain is exactly what the process holds now.
func release(available resource.Amounts, proc *process.Process) {
	for kind, amount := range proc.Allocated {
		available[kind] = available.Get(kind) + amount
	}
}
