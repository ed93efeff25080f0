package resource

// Pool tracks the total and currently available quantity of every resource
// kind in a level. Totals are fixed at construction; availability moves only
// through Allocate and Release, which keeps the system closed: capacity is
// transferred between "available" and "granted", never created or destroyed.
type Pool struct {
	totals    Amounts
	available Amounts
}

// NewPool creates a pool whose availability starts equal to the supplied
// totals. The totals are copied; the caller keeps ownership of its map.
func NewPool(totals Amounts) *Pool {
	return &Pool{
		totals:    totals.Clone(),
		available: totals.Clone(),
	}
}

// Total returns the fixed capacity for kind.
func (p *Pool) Total(kind Kind) int {
	return p.totals.Get(kind)
}

// Available returns the currently unallocated quantity for kind.
func (p *Pool) Available(kind Kind) int {
	return p.available.Get(kind)
}

// Totals returns a snapshot copy of all capacities.
func (p *Pool) Totals() Amounts {
	return p.totals.Clone()
}

// Availability returns a snapshot copy of current availability. The copy is
// safe to mutate; deadlock detection uses it as its working total.
func (p *Pool) Availability() Amounts {
	return p.available.Clone()
}

// Allocate debits amount units of kind when enough are available. It is
// all-or-nothing: on failure the pool is left untouched.
func (p *Pool) Allocate(kind Kind, amount int) bool {
	if amount <= 0 {
		return false
	}
	if p.available.Get(kind) < amount {
		return false
	}
	p.available[kind] -= amount
	return true
}

// Release credits amount units of kind back, clamped so availability never
// exceeds the total. The clamp is unreachable when releases mirror prior
// allocations; it guards against misbehaving callers.
func (p *Pool) Release(kind Kind, amount int) {
	if amount <= 0 {
		return
	}
	available := p.available.Get(kind) + amount
	if total := p.totals.Get(kind); available > total {
		available = total
	}
	p.available[kind] = available
}
