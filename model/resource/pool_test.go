package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPool_Allocate(t *testing.T) {
	testCases := []struct {
		name      string
		kind      Kind
		amount    int
		expect    bool
		available int
	}{
		{name: "within availability", kind: KindCPU, amount: 2, expect: true, available: 2},
		{name: "exact availability", kind: KindPrinter, amount: 2, expect: true, available: 0},
		{name: "over availability", kind: KindDisk, amount: 4, expect: false, available: 3},
		{name: "zero amount", kind: KindCPU, amount: 0, expect: false, available: 4},
		{name: "negative amount", kind: KindCPU, amount: -1, expect: false, available: 4},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pool := NewPool(Amounts{KindCPU: 4, KindMemory: 4, KindDisk: 3, KindPrinter: 2})
			assert.Equal(t, tc.expect, pool.Allocate(tc.kind, tc.amount))
			assert.Equal(t, tc.available, pool.Available(tc.kind))
		})
	}
}

func TestPool_Release(t *testing.T) {
	pool := NewPool(Amounts{KindMemory: 4})
	assert.True(t, pool.Allocate(KindMemory, 3))
	pool.Release(KindMemory, 2)
	assert.Equal(t, 3, pool.Available(KindMemory))

	// release never pushes availability past the total
	pool.Release(KindMemory, 10)
	assert.Equal(t, 4, pool.Available(KindMemory))

	pool.Release(KindMemory, -1)
	assert.Equal(t, 4, pool.Available(KindMemory))
}

func TestPool_SnapshotsAreIndependent(t *testing.T) {
	pool := NewPool(Amounts{KindCPU: 2})
	snapshot := pool.Availability()
	snapshot[KindCPU] = 0
	assert.Equal(t, 2, pool.Available(KindCPU))

	totals := pool.Totals()
	totals[KindCPU] = 99
	assert.Equal(t, 2, pool.Total(KindCPU))
}
