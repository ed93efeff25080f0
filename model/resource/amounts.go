package resource

// Amounts is a per-kind integer vector used for capacities, availability
// snapshots, process demands and process grants. A missing key reads as
// zero, so callers never need to pre-populate every kind.
type Amounts map[Kind]int

// Get returns the amount recorded for kind, zero when absent.
func (a Amounts) Get(kind Kind) int {
	if a == nil {
		return 0
	}
	return a[kind]
}

// Clone returns an independent copy of the vector.
func (a Amounts) Clone() Amounts {
	ret := make(Amounts, len(a))
	for kind, amount := range a {
		ret[kind] = amount
	}
	return ret
}

// Add increments the amount recorded for kind by n.
func (a Amounts) Add(kind Kind, n int) {
	a[kind] += n
}

// Sum returns the total across all kinds.
func (a Amounts) Sum() int {
	total := 0
	for _, amount := range a {
		total += amount
	}
	return total
}
