// Package parallel provides the fork/join primitives every pipeline stage
// uses for its tile- or slice-parallel work (spec.md §5). The ParallelFor
// shape is reimplemented from the persistent-pool pattern used by
// go-highway's contrib/workerpool (New(workers)/ParallelFor(n, fn)),
// adapted here to dispatch one errgroup-managed goroutine per chunk and
// recover panics into the error returned by the barrier, so a fatal
// invariant breach in one chunk (spec.md §7.3) doesn't tear down
// goroutines that are mid-write to their own tile.
package parallel

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// IndexFunc processes one unit of work (a tile id, a z-slice, a column,
// a (k,l) Fourier plane — whichever index space the caller is iterating).
type IndexFunc func(i int)

// For runs fn(i) for every i in [0, n), split into contiguous chunks and
// run on up to GOMAXPROCS goroutines, blocking until all complete. A
// panic inside fn (an invariant breach, spec.md §7.3) is recovered,
// converted to an error, and re-raised once every chunk has finished —
// the barrier itself always completes before the fatal condition
// propagates.
func For(n int, fn IndexFunc) {
	if n <= 0 {
		return
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	chunk := (n + workers - 1) / workers

	var g errgroup.Group
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		s, e := start, end
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("parallel.For: panic in [%d,%d): %v", s, e, r)
				}
			}()
			for i := s; i < e; i++ {
				fn(i)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		panic(err)
	}
}

// Tiles is For specialized to the tile index space (Deposit, Push,
// Reorder phases 1-3).
func Tiles(numTiles int, fn IndexFunc) { For(numTiles, fn) }

// Slices is For specialized to FFT's z-slice-parallel xy pass.
func Slices(numSlices int, fn IndexFunc) { For(numSlices, fn) }

// Columns is For specialized to FFT's column-parallel z pass.
func Columns(numColumns int, fn IndexFunc) { For(numColumns, fn) }

// Planes is For specialized to Poisson's per-z-plane Fourier-space
// parallelism and the guard-cell operators' x and y plane loops.
func Planes(numPlanes int, fn IndexFunc) { For(numPlanes, fn) }
