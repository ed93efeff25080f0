package policy

import (
	"context"

	"github.com/viant/gridlock/model/resource"
)

// Over-allocation modes recognised by the arbiter.
const (
	ModeReject = "reject" // decline requests exceeding remaining need (default)
	ModeClamp  = "clamp"  // trim such requests down to the remaining need
)

// Policy represents the allocation rules for the current run.
//
//   - Mode controls how requests exceeding a process's remaining need are
//     handled (reject / clamp).
//   - AllowKinds, BlockKinds allow coarse per-kind filtering regardless of
//     Mode.
//
// A nil *Policy means "reject over-allocation, allow every kind" and is
// therefore the zero-cost default.
type Policy struct {
	Mode       string          `json:"mode,omitempty" yaml:"mode,omitempty"`
	AllowKinds []resource.Kind `json:"allow,omitempty" yaml:"allow,omitempty"`
	BlockKinds []resource.Kind `json:"block,omitempty" yaml:"block,omitempty"`
}

// Clamps reports whether over-sized requests should be trimmed to the
// remaining need instead of rejected.
func (p *Policy) Clamps() bool {
	return p != nil && p.Mode == ModeClamp
}

// IsAllowed evaluates AllowKinds / BlockKinds for the supplied kind.
// BlockKinds has priority; an empty AllowKinds list allows everything.
func (p *Policy) IsAllowed(kind resource.Kind) bool {
	if p == nil {
		return true
	}
	for _, blocked := range p.BlockKinds {
		if kind == blocked {
			return false
		}
	}
	if len(p.AllowKinds) == 0 {
		return true
	}
	for _, allowed := range p.AllowKinds {
		if kind == allowed {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Context helpers
// ---------------------------------------------------------------------------

type ctxKeyT struct{}

var ctxKey ctxKeyT

// WithPolicy returns a derived context carrying p.
func WithPolicy(ctx context.Context, p *Policy) context.Context {
	if p == nil {
		return ctx
	}
	return context.WithValue(ctx, ctxKey, p)
}

// FromContext extracts the Policy from ctx, nil when absent.
func FromContext(ctx context.Context) *Policy {
	if ctx == nil {
		return nil
	}
	p, _ := ctx.Value(ctxKey).(*Policy)
	return p
}
