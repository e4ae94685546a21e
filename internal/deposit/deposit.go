// Package deposit implements charge deposition (spec.md §4.C): CIC
// (cloud-in-cell) scatter of each particle's charge onto the 8
// surrounding grid nodes, via a private per-tile accumulator folded
// into the shared grid with atomic adds at tile boundaries.
package deposit

import (
	"fmt"

	"github.com/deveworld/pic3d/internal/field"
	"github.com/deveworld/pic3d/internal/parallel"
	"github.com/deveworld/pic3d/internal/particle"
	"github.com/deveworld/pic3d/internal/tiling"
)

// sq is the private per-tile accumulator of shape (mx+1)(my+1)(mz+1),
// indexed node-local so the tile's interior writes never contend with
// another tile (spec.md §4.C).
type sq struct {
	mx, my, mz int
	data       []float64
}

func newSq(mx, my, mz int) *sq {
	return &sq{mx: mx, my: my, mz: mz, data: make([]float64, (mx+1)*(my+1)*(mz+1))}
}

func (s *sq) idx(a, b, c int) int { return (c*(s.my+1)+b)*(s.mx+1) + a }
func (s *sq) add(a, b, c int, v float64) {
	s.data[s.idx(a, b, c)] += v
}
func (s *sq) zero() {
	for i := range s.data {
		s.data[i] = 0
	}
}

// Deposit scatters every live particle's charge qm onto q using linear
// (CIC) interpolation, processing tiles in parallel with a
// private-accumulator-then-boundary-reduction strategy: every particle
// is first scattered into the tile-private sq (no contention), then sq
// is folded into the shared q — plain adds for the tile's interior
// nodes, atomic adds for nodes on its faces, edges and corners
// (spec.md §4.C: "the only concurrency-safe realization").
func Deposit(pop *particle.Population, q *field.Scalar, qm float64) {
	d := pop.Dims

	parallel.Tiles(d.NumTiles(), func(l int) {
		t := &pop.Tiles[l]
		noffx, noffy, noffz := d.Origin(l)
		acc := newSq(d.Mx, d.My, d.Mz)
		acc.zero()

		for n := 0; n < t.Kpic; n++ {
			x := t.Ppart[particle.AttrX][n] - float64(noffx)
			y := t.Ppart[particle.AttrY][n] - float64(noffy)
			z := t.Ppart[particle.AttrZ][n] - float64(noffz)

			nf := int(x)
			mf := int(y)
			lf := int(z)
			if nf < 0 || nf >= d.Mx+1 || mf < 0 || mf >= d.My+1 || lf < 0 || lf >= d.Mz+1 {
				panic(fmt.Sprintf("deposit.Deposit: particle %d of tile %d outside tile bounds: local cell (%d,%d,%d)", n, l, nf, mf, lf))
			}

			dx := x - float64(nf)
			dy := y - float64(mf)
			dz := z - float64(lf)

			// A particle sitting exactly on the tile's far guard node
			// (nf == mx, dx == 0) has a zero a=1 weight but would still
			// index one past sq's (mx+1)-sized axis; clamp the stencil
			// rather than compute a weight we'd discard anyway.
			aMax, bMax, cMax := 1, 1, 1
			if nf+1 > d.Mx {
				aMax = 0
			}
			if mf+1 > d.My {
				bMax = 0
			}
			if lf+1 > d.Mz {
				cMax = 0
			}

			for c := 0; c <= cMax; c++ {
				wc := weight(c, dz)
				for b := 0; b <= bMax; b++ {
					wb := weight(b, dy)
					for a := 0; a <= aMax; a++ {
						wa := weight(a, dx)
						acc.add(nf+a, mf+b, lf+c, qm*wa*wb*wc)
					}
				}
			}
		}

		foldIntoGrid(acc, q, noffx, noffy, noffz, d)
	})
}

// weight returns w_0(t) = 1-t or w_1(t) = t, the two CIC interpolation
// weights of spec.md §4.C.
func weight(bit int, t float64) float64 {
	if bit == 0 {
		return 1 - t
	}
	return t
}

// foldIntoGrid adds the tile's private accumulator into the shared
// grid: strictly interior nodes of the tile are written directly
// (owned exclusively by this tile), while nodes on any of the tile's
// faces, edges, or corners are shared with neighbors and must go
// through an atomic add.
func foldIntoGrid(acc *sq, q *field.Scalar, noffx, noffy, noffz int, d tiling.Dims) {
	for c := 0; c <= d.Mz; c++ {
		gk := noffz + c
		shared_c := c == 0 || c == d.Mz
		for b := 0; b <= d.My; b++ {
			gj := noffy + b
			shared_b := b == 0 || b == d.My
			for a := 0; a <= d.Mx; a++ {
				v := acc.data[acc.idx(a, b, c)]
				if v == 0 {
					continue
				}
				gi := noffx + a
				if shared_c || shared_b || a == 0 || a == d.Mx {
					q.AtomicAdd(gi, gj, gk, v)
				} else {
					q.Add(gi, gj, gk, v)
				}
			}
		}
	}
}
