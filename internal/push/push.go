// Package push implements the particle push (spec.md §4.D): per-tile
// gather of the force field into a cache-resident block, trilinear
// interpolation, the velocity/position update, boundary policy
// application, and kinetic-energy reduction. The with-flagging variant
// additionally classifies departures into ncl/ihole for Reorder.
package push

import (
	"github.com/deveworld/pic3d/internal/field"
	"github.com/deveworld/pic3d/internal/parallel"
	"github.com/deveworld/pic3d/internal/particle"
	"github.com/deveworld/pic3d/internal/reduce"
	"github.com/deveworld/pic3d/internal/tiling"
)

// BoundaryPolicy selects the ipbc boundary condition of spec.md §4.D.
type BoundaryPolicy int

const (
	// Periodic leaves position wrap to the reorder/grid-index machinery;
	// positions may transiently fall outside [0, Nx).
	Periodic BoundaryPolicy = 1
	// Reflecting bounces on all three axes.
	Reflecting BoundaryPolicy = 2
	// ReflectingXYPeriodicZ reflects in x,y and is periodic in z.
	ReflectingXYPeriodicZ BoundaryPolicy = 3
)

// Params bundles the push's scalar parameters.
type Params struct {
	Qbm    float64 // charge-to-mass ratio
	Dt     float64
	Ipbc   BoundaryPolicy
	Nx, Ny, Nz int // logical grid extent, for boundary policies
}

// Report carries the reduction targets of a push call: accumulated
// kinetic energy and (for the with-flagging variant) the maximum
// observed hole-list occupancy if any tile's hole list overflowed,
// else 0, spec.md §9's reduction-target
// discipline ("local reductions, one final combine", never a shared
// atomic for ek).
type Report struct {
	Ek  float64
	Irc int
}

// sfxyz is the tile-private gathered block of fxyz, shape
// (mx+1,my+1,mz+1,4), loaded once per tile so every particle's gather
// hits cache-resident memory (spec.md §4.D step 1).
type sfxyz struct {
	mx, my, mz int
	data       []float64 // stride 4
}

func gatherBlock(f *field.Vector, noffx, noffy, noffz int, d tiling.Dims) *sfxyz {
	s := &sfxyz{mx: d.Mx, my: d.My, mz: d.Mz, data: make([]float64, (d.Mx+1)*(d.My+1)*(d.Mz+1)*4)}
	for c := 0; c <= d.Mz; c++ {
		for b := 0; b <= d.My; b++ {
			for a := 0; a <= d.Mx; a++ {
				for comp := 0; comp < 4; comp++ {
					s.data[s.idx(a, b, c, comp)] = f.At(noffx+a, noffy+b, noffz+c, comp)
				}
			}
		}
	}
	return s
}

func (s *sfxyz) idx(a, b, c, comp int) int {
	return ((c*(s.my+1)+b)*(s.mx+1)+a)*4 + comp
}

func (s *sfxyz) at(a, b, c, comp int) float64 { return s.data[s.idx(a, b, c, comp)] }

// Run applies the push to every live particle of every tile (no
// departure classification), returning the combined kinetic-energy
// report. Each tile accumulates its own energy locally; the final
// combine uses internal/reduce's mutex-guarded Combiner rather than a
// shared atomic (spec.md §9).
func Run(pop *particle.Population, f *field.Vector, p Params) Report {
	d := pop.Dims
	combiner := &reduce.Combiner{}

	parallel.Tiles(d.NumTiles(), func(l int) {
		t := &pop.Tiles[l]
		noffx, noffy, noffz := d.Origin(l)
		block := gatherBlock(f, noffx, noffy, noffz, d)

		lane := make([]float64, t.Kpic)
		for n := 0; n < t.Kpic; n++ {
			lane[n] = pushOne(t, n, block, noffx, noffy, noffz, p)
		}
		combiner.Add(reduce.Sum(lane))
	})

	return Report{Ek: 0.125 * combiner.Total()}
}

// RunWithFlag is the with-flagging variant: in addition to Run's
// update, it classifies each particle's post-move position against
// the tile's edges and records departures into ncl/ihole, per
// spec.md §4.D's with-flagging paragraph.
func RunWithFlag(pop *particle.Population, f *field.Vector, p Params, ntmax int) Report {
	d := pop.Dims
	combiner := &reduce.Combiner{}
	maxIh := 0

	parallel.Tiles(d.NumTiles(), func(l int) {
		t := &pop.Tiles[l]
		t.Ncl = [26]int{}
		t.Ihole.Reset()
		noffx, noffy, noffz := d.Origin(l)
		block := gatherBlock(f, noffx, noffy, noffz, d)

		lane := make([]float64, t.Kpic)
		for n := 0; n < t.Kpic; n++ {
			lane[n] = pushOne(t, n, block, noffx, noffy, noffz, p)
			classify(t, n, noffx, noffy, noffz, d, p, ntmax)
		}
		combiner.Add(reduce.Sum(lane))
	})

	for l := range pop.Tiles {
		if pop.Tiles[l].Ihole.Count > maxIh {
			maxIh = pop.Tiles[l].Ihole.Count
		}
	}
	irc := 0
	for l := range pop.Tiles {
		if pop.Tiles[l].Ihole.Overflow {
			irc = maxIh
			break
		}
	}

	return Report{Ek: 0.125 * combiner.Total(), Irc: irc}
}

// ClassifyOnly runs Reorder's Phase 1 (spec.md §4.E): for every live
// particle already moved by a prior plain Run, detect departures from
// the tile and record them into ncl/ihole, without re-running the
// velocity/position update. Skipped entirely when Push already ran as
// RunWithFlag for this step.
func ClassifyOnly(pop *particle.Population, p Params, ntmax int) int {
	d := pop.Dims
	maxIh := 0

	parallel.Tiles(d.NumTiles(), func(l int) {
		t := &pop.Tiles[l]
		t.Ncl = [26]int{}
		t.Ihole.Reset()
		noffx, noffy, noffz := d.Origin(l)
		for n := 0; n < t.Kpic; n++ {
			classify(t, n, noffx, noffy, noffz, d, p, ntmax)
		}
	})

	for l := range pop.Tiles {
		if pop.Tiles[l].Ihole.Count > maxIh {
			maxIh = pop.Tiles[l].Ihole.Count
		}
	}
	irc := 0
	for l := range pop.Tiles {
		if pop.Tiles[l].Ihole.Overflow {
			irc = maxIh
			break
		}
	}
	return irc
}

// pushOne advances particle n of tile t in place and returns its
// |v_new + v_old|^2 contribution (the 0.125 factor is applied once,
// globally, by the caller per spec.md §4.D's energy-accumulation note).
func pushOne(t *particle.Tile, n int, block *sfxyz, noffx, noffy, noffz int, p Params) float64 {
	x := t.Ppart[particle.AttrX][n]
	y := t.Ppart[particle.AttrY][n]
	z := t.Ppart[particle.AttrZ][n]
	vx := t.Ppart[particle.AttrVX][n]
	vy := t.Ppart[particle.AttrVY][n]
	vz := t.Ppart[particle.AttrVZ][n]

	lx := x - float64(noffx)
	ly := y - float64(noffy)
	lz := z - float64(noffz)
	nf, mf, lf := int(lx), int(ly), int(lz)
	dx, dy, dz := lx-float64(nf), ly-float64(mf), lz-float64(lf)

	var fx, fy, fz float64
	for c := 0; c < 2; c++ {
		wc := weight(c, dz)
		for b := 0; b < 2; b++ {
			wb := weight(b, dy)
			for a := 0; a < 2; a++ {
				wa := weight(a, dx)
				w := wa * wb * wc
				fx += w * block.at(nf+a, mf+b, lf+c, 0)
				fy += w * block.at(nf+a, mf+b, lf+c, 1)
				fz += w * block.at(nf+a, mf+b, lf+c, 2)
			}
		}
	}

	vxNew := vx + p.Qbm*p.Dt*fx
	vyNew := vy + p.Qbm*p.Dt*fy
	vzNew := vz + p.Qbm*p.Dt*fz

	xNew := x + vxNew*p.Dt
	yNew := y + vyNew*p.Dt
	zNew := z + vzNew*p.Dt

	sumx := vxNew + vx
	sumy := vyNew + vy
	sumz := vzNew + vz
	energy := sumx*sumx + sumy*sumy + sumz*sumz

	reflectXY := p.Ipbc == Reflecting || p.Ipbc == ReflectingXYPeriodicZ
	xNew, vxNew = applyBoundary(xNew, x, vxNew, float64(p.Nx), reflectXY)
	yNew, vyNew = applyBoundary(yNew, y, vyNew, float64(p.Ny), reflectXY)
	zNew, vzNew = applyBoundary(zNew, z, vzNew, float64(p.Nz), p.Ipbc == Reflecting)

	t.Ppart[particle.AttrX][n] = xNew
	t.Ppart[particle.AttrY][n] = yNew
	t.Ppart[particle.AttrZ][n] = zNew
	t.Ppart[particle.AttrVX][n] = vxNew
	t.Ppart[particle.AttrVY][n] = vyNew
	t.Ppart[particle.AttrVZ][n] = vzNew

	return energy
}

// applyBoundary implements one axis of spec.md §4.D's boundary
// policies: when reflect is true and xNew falls outside [1, n-1), the
// position rolls back to xOld and the velocity component flips sign.
func applyBoundary(xNew, xOld, vNew, n float64, reflect bool) (float64, float64) {
	if !reflect {
		return xNew, vNew
	}
	if xNew < 1 || xNew >= n-1 {
		return xOld, -vNew
	}
	return xNew, vNew
}

// weight returns the CIC interpolation weight (spec.md §4.C/§4.D share
// the same w_0(t)=1-t, w_1(t)=t convention).
func weight(bit int, t float64) float64 {
	if bit == 0 {
		return 1 - t
	}
	return t
}

// classify implements spec.md §4.D's with-flagging paragraph: per
// axis, decide a ternary code (0 in-range, -1 left, +1 right) relative
// to the tile's owned cell range, combine into a base-3 direction code,
// wrap positions that left the global domain [0, N) back by one
// period so they land inside the periodic neighbor tile, and record
// the departure.
func classify(t *particle.Tile, n, noffx, noffy, noffz int, d tiling.Dims, p Params, ntmax int) {
	x := t.Ppart[particle.AttrX][n]
	y := t.Ppart[particle.AttrY][n]
	z := t.Ppart[particle.AttrZ][n]

	dxCode, xWrapped := axisCode(x, noffx, d.Mx, float64(p.Nx))
	dyCode, yWrapped := axisCode(y, noffy, d.My, float64(p.Ny))
	dzCode, zWrapped := axisCode(z, noffz, d.Mz, float64(p.Nz))

	if dxCode == 0 && dyCode == 0 && dzCode == 0 {
		return
	}

	if xWrapped {
		t.Ppart[particle.AttrX][n] = wrapAxis(x, float64(p.Nx))
	}
	if yWrapped {
		t.Ppart[particle.AttrY][n] = wrapAxis(y, float64(p.Ny))
	}
	if zWrapped {
		t.Ppart[particle.AttrZ][n] = wrapAxis(z, float64(p.Nz))
	}

	dir := tiling.DirectionCode(dxCode, dyCode, dzCode)
	t.Ncl[dir-1]++
	if !t.Ihole.Append(n, dir, ntmax) {
		return
	}
}

// axisCode returns the ternary in/left/right code for one axis, and
// whether the position needs a global-periodic wrap because it lies
// outside the global domain [0, n).
func axisCode(pos float64, noff, m int, n float64) (code int, wrapped bool) {
	lo := float64(noff)
	hi := float64(noff + m)
	if pos >= lo && pos < hi {
		return 0, false
	}
	if pos < lo {
		code = -1
	} else {
		code = 1
	}
	if pos < 0 || pos >= n {
		wrapped = true
	}
	return code, wrapped
}

func wrapAxis(pos, n float64) float64 {
	for pos < 0 {
		pos += n
	}
	for pos >= n {
		pos -= n
	}
	return pos
}
