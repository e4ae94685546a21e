// Package guard implements the two periodic-boundary guard-cell
// operators of spec.md §4.B: Replicate copies interior planes onto the
// extended (guard) faces after the field solve, and Accumulate folds
// the extended faces back into the interior after charge deposition.
// Both work in place; their x and y plane loops run in parallel, the z
// plane loop runs serially. Replicate is idempotent; Replicate after
// Accumulate leaves the interior unchanged when the guard cells start at
// zero (spec.md §8's guard-idempotence property).
package guard

import (
	"github.com/deveworld/pic3d/internal/field"
	"github.com/deveworld/pic3d/internal/parallel"
)

// ReplicateScalar copies plane x=0 onto x=Nx, y=0 onto y=Ny, z=0 onto
// z=Nz, including the edges and the corner (0,0,0) -> (Nx,Ny,Nz), so
// every guard node reads back the value of its periodic interior twin.
func ReplicateScalar(f *field.Scalar) {
	nx, ny, nz := f.Nx, f.Ny, f.Nz

	parallel.Planes(ny*nz, func(idx int) {
		j, k := idx%ny, idx/ny
		f.Set(nx, j, k, f.At(0, j, k))
	})
	parallel.Planes(nx+1, func(i int) {
		for k := 0; k < nz; k++ {
			f.Set(i, ny, k, f.At(i, 0, k))
		}
	})
	for i := 0; i <= nx; i++ {
		for j := 0; j <= ny; j++ {
			f.Set(i, j, nz, f.At(i, j, 0))
		}
	}
}

// ReplicateVector is ReplicateScalar generalized to the 4-wide force
// field, copying all 4 components (including the padding lane) per
// node (spec.md §4.B: "the copy includes the 4-component padding").
func ReplicateVector(f *field.Vector) {
	nx, ny, nz := f.Nx, f.Ny, f.Nz

	parallel.Planes(ny*nz, func(idx int) {
		j, k := idx%ny, idx/ny
		for c := 0; c < 4; c++ {
			f.Set(nx, j, k, c, f.At(0, j, k, c))
		}
	})
	parallel.Planes(nx+1, func(i int) {
		for k := 0; k < nz; k++ {
			for c := 0; c < 4; c++ {
				f.Set(i, ny, k, c, f.At(i, 0, k, c))
			}
		}
	})
	for i := 0; i <= nx; i++ {
		for j := 0; j <= ny; j++ {
			for c := 0; c < 4; c++ {
				f.Set(i, j, nz, c, f.At(i, j, 0, c))
			}
		}
	}
}

// AccumulateScalar adds plane x=Nx back into x=0 (and analogously for
// y, z), zeroing the source guard plane afterward, folding edge and
// corner contributions in the same sweep so no guard-cell deposit is
// lost (spec.md §4.B).
func AccumulateScalar(f *field.Scalar) {
	nx, ny, nz := f.Nx, f.Ny, f.Nz

	for i := 0; i <= nx; i++ {
		for j := 0; j <= ny; j++ {
			f.Add(i, j, 0, f.At(i, j, nz))
			f.Set(i, j, nz, 0)
		}
	}
	parallel.Planes(nx+1, func(i int) {
		for k := 0; k < nz; k++ {
			f.Add(i, 0, k, f.At(i, ny, k))
			f.Set(i, ny, k, 0)
		}
	})
	parallel.Planes(ny*nz, func(idx int) {
		j, k := idx%ny, idx/ny
		f.Add(0, j, k, f.At(nx, j, k))
		f.Set(nx, j, k, 0)
	})
}
