// Package reduce implements the "local reduction per thread, one final
// combine" discipline spec.md §9 requires for ek, we, and the Deposit
// boundary add: no shared atomic counters for the physics reductions,
// only a mutex-guarded combiner for the single final fold and a
// bit-level CAS loop for the handful of genuinely concurrent boundary
// adds into the shared charge grid.
package reduce

import (
	"math"
	"sync"
	"sync/atomic"

	"gonum.org/v1/gonum/floats"
)

// Sum adds up xs in double precision. Wraps gonum/floats.Sum so the
// lane-wise kinetic-energy and field-energy sums go through the same
// summation routine the rest of the pack already depends on
// (pthm-soup's simd_bench_test.go and cmd/optimize pull in gonum for
// exactly this kind of numeric reduction).
func Sum(xs []float64) float64 {
	return floats.Sum(xs)
}

// Combiner accumulates per-tile (or per-worker) partial results into a
// single final value under a mutex — the "one final combine" spec.md §9
// asks for, never a shared atomic accumulator.
type Combiner struct {
	mu    sync.Mutex
	total float64
}

// Add folds a partial sum into the combiner.
func (c *Combiner) Add(partial float64) {
	c.mu.Lock()
	c.total += partial
	c.mu.Unlock()
}

// Total returns the accumulated value.
func (c *Combiner) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// AtomicAddFloat64 adds delta to *addr using a compare-and-swap loop on
// the IEEE-754 bit pattern. This is the "per-node atomic add" spec.md
// §4.C and §5 call for when a tile's boundary nodes are shared with its
// neighbors; floating-point addition is commutative to the bit-equal
// precision the test harness accepts (spec.md §5), so the relative
// order of concurrent adds from different tiles is immaterial.
func AtomicAddFloat64(addr *float64, delta float64) {
	bits := (*uint64)(ptrOf(addr))
	for {
		old := atomic.LoadUint64(bits)
		newVal := math.Float64bits(math.Float64frombits(old) + delta)
		if atomic.CompareAndSwapUint64(bits, old, newVal) {
			return
		}
	}
}
