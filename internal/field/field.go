// Package field holds the two real-space grids shared by every stage of
// the pipeline (spec.md §3): the scalar charge density q and the
// 4-wide (3 physical components + 1 padding) force field fxyz, plus
// their Fourier-space counterparts used by internal/fftcore and
// internal/poisson.
package field

import "github.com/deveworld/pic3d/internal/reduce"

// Scalar is the real-space charge-density grid q[0..Nze][0..Nye][0..Nxe].
// Nxe, Nye, Nze each extend their logical dimension by at least one
// guard cell (Nxe >= Nx+1, and similarly for y, z).
type Scalar struct {
	Nx, Ny, Nz    int
	Nxe, Nye, Nze int
	Data          []float64
}

// NewScalar allocates a zeroed scalar field with the given logical and
// extended (guard-cell-inclusive) dimensions.
func NewScalar(nx, ny, nz, nxe, nye, nze int) *Scalar {
	if nxe < nx+1 || nye < ny+1 || nze < nz+1 {
		panic("field.NewScalar: extended dimensions must exceed logical dimensions by at least one guard cell")
	}
	return &Scalar{
		Nx: nx, Ny: ny, Nz: nz,
		Nxe: nxe, Nye: nye, Nze: nze,
		Data: make([]float64, nxe*nye*nze),
	}
}

// Idx returns the flat offset of node (i,j,k).
func (f *Scalar) Idx(i, j, k int) int {
	return (k*f.Nye+j)*f.Nxe + i
}

// At returns the value at node (i,j,k).
func (f *Scalar) At(i, j, k int) float64 {
	return f.Data[f.Idx(i, j, k)]
}

// Set writes the value at node (i,j,k).
func (f *Scalar) Set(i, j, k int, v float64) {
	f.Data[f.Idx(i, j, k)] = v
}

// Add adds v to node (i,j,k). Safe only when the caller owns (i,j,k)
// exclusively, e.g. the interior nodes of a deposit tile.
func (f *Scalar) Add(i, j, k int, v float64) {
	f.Data[f.Idx(i, j, k)] += v
}

// AtomicAdd adds v to node (i,j,k) using a lock-free CAS loop, for the
// boundary nodes multiple tiles may deposit into concurrently
// (spec.md §4.C, §5).
func (f *Scalar) AtomicAdd(i, j, k int, v float64) {
	reduce.AtomicAddFloat64(&f.Data[f.Idx(i, j, k)], v)
}

// Zero clears the whole field. pic.Engine.Step zeros q right before
// Deposit every step (spec.md §3 lifecycles); Deposit itself only adds.
func (f *Scalar) Zero() {
	for i := range f.Data {
		f.Data[i] = 0
	}
}

// Sum returns the sum of all node values, used by the charge
// conservation property in spec.md §8.
func (f *Scalar) Sum() float64 {
	total := 0.0
	for _, v := range f.Data {
		total += v
	}
	return total
}

// Vector is the real-space force field fxyz[0..Nze][0..Nye][0..Nxe][0..3]:
// 4 components per node (x, y, z, and one padding component to align
// groups of four along the fast axis).
type Vector struct {
	Nx, Ny, Nz    int
	Nxe, Nye, Nze int
	Data          []float64 // stride 4 per node
}

// NewVector allocates a zeroed vector field.
func NewVector(nx, ny, nz, nxe, nye, nze int) *Vector {
	if nxe < nx+1 || nye < ny+1 || nze < nz+1 {
		panic("field.NewVector: extended dimensions must exceed logical dimensions by at least one guard cell")
	}
	return &Vector{
		Nx: nx, Ny: ny, Nz: nz,
		Nxe: nxe, Nye: nye, Nze: nze,
		Data: make([]float64, nxe*nye*nze*4),
	}
}

// Idx returns the flat offset of component c (0=x,1=y,2=z,3=padding) at
// node (i,j,k).
func (f *Vector) Idx(i, j, k, c int) int {
	return ((k*f.Nye+j)*f.Nxe+i)*4 + c
}

// At returns component c of node (i,j,k).
func (f *Vector) At(i, j, k, c int) float64 {
	return f.Data[f.Idx(i, j, k, c)]
}

// Set writes component c of node (i,j,k).
func (f *Vector) Set(i, j, k, c int, v float64) {
	f.Data[f.Idx(i, j, k, c)] = v
}

// Zero clears the whole field. The field solve fully overwrites fxyz
// every step (spec.md §3 lifecycles), but zeroing keeps the padding lane
// well-defined.
func (f *Vector) Zero() {
	for i := range f.Data {
		f.Data[i] = 0
	}
}
