package fftcore

import (
	"github.com/deveworld/pic3d/internal/field"
	"github.com/deveworld/pic3d/internal/parallel"
)

// ForwardScalar3D performs the forward (un-normalized) real-to-complex
// transform of a real-space scalar field: an xy pass (parallel by
// z-slice: the real-x unscramble then a complex FFT along y) followed
// by a z pass (parallel by column), per spec.md §4.F.
func ForwardScalar3D(f *field.Scalar, t *Tables, half []complex128) *field.ComplexScalar {
	nx, ny, nz := f.Nx, f.Ny, f.Nz
	nxh := nx / 2
	out := field.NewComplexScalar(nx, ny, nz)

	parallel.Slices(nz, func(k int) {
		row := make([]float64, nx)
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				row[i] = f.At(i, j, k)
			}
			spec := RealForwardRow(t, half, row, nx)
			for i := 0; i < nxh; i++ {
				out.Set(i, j, k, spec[i])
			}
		}
		col := make([]complex128, ny)
		for i := 0; i < nxh; i++ {
			for j := 0; j < ny; j++ {
				col[j] = out.At(i, j, k)
			}
			t.transformAxis(col, false)
			for j := 0; j < ny; j++ {
				out.Set(i, j, k, col[j])
			}
		}
	})

	parallel.Columns(nxh*ny, func(idx int) {
		i, j := idx%nxh, idx/nxh
		col := make([]complex128, nz)
		for k := 0; k < nz; k++ {
			col[k] = out.At(i, j, k)
		}
		t.transformAxis(col, false)
		for k := 0; k < nz; k++ {
			out.Set(i, j, k, col[k])
		}
	})

	return out
}

// InverseScalar3D is the exact inverse of ForwardScalar3D: a z pass
// followed by an xy pass, ending with the overall normalization
// spec.md §4.F requires of the inverse transform. The x axis round-trips
// through a length-Nx/2 complex transform (the packed real-FFT trick),
// so the normalizing divisor is (Nx/2)*Ny*Nz, not Nx*Ny*Nz.
func InverseScalar3D(spec *field.ComplexScalar, nx, ny, nz int, t *Tables, half []complex128) *field.Scalar {
	nxh := nx / 2
	work := field.NewComplexScalar(nx, ny, nz)
	copy(work.Data, spec.Data)

	parallel.Columns(nxh*ny, func(idx int) {
		i, j := idx%nxh, idx/nxh
		col := make([]complex128, nz)
		for k := 0; k < nz; k++ {
			col[k] = work.At(i, j, k)
		}
		t.transformAxis(col, true)
		for k := 0; k < nz; k++ {
			work.Set(i, j, k, col[k])
		}
	})

	out := field.NewScalar(nx, ny, nz, nx+1, ny+1, nz+1)
	parallel.Slices(nz, func(k int) {
		col := make([]complex128, ny)
		for i := 0; i < nxh; i++ {
			for j := 0; j < ny; j++ {
				col[j] = work.At(i, j, k)
			}
			t.transformAxis(col, true)
			for j := 0; j < ny; j++ {
				work.Set(i, j, k, col[j])
			}
		}
		rowSpec := make([]complex128, nxh)
		for j := 0; j < ny; j++ {
			for i := 0; i < nxh; i++ {
				rowSpec[i] = work.At(i, j, k)
			}
			row := RealInverseRow(t, half, rowSpec, nx)
			for i := 0; i < nx; i++ {
				out.Set(i, j, k, row[i])
			}
		}
	})

	norm := 1.0 / (float64(nxh) * float64(ny) * float64(nz))
	for idx := range out.Data {
		out.Data[idx] *= norm
	}
	return out
}

// ForwardVector3D is ForwardScalar3D applied independently to each of
// the 3 physical components of a vector field (spec.md §4.F: "vector
// variants that act component-wise over a 3-vector field").
func ForwardVector3D(f *field.Vector, t *Tables, half []complex128) *field.ComplexVector {
	nx, ny, nz := f.Nx, f.Ny, f.Nz
	out := field.NewComplexVector(nx, ny, nz)
	for c := 0; c < 3; c++ {
		comp := field.NewScalar(nx, ny, nz, f.Nxe, f.Nye, f.Nze)
		for k := 0; k < nz; k++ {
			for j := 0; j < ny; j++ {
				for i := 0; i < nx; i++ {
					comp.Set(i, j, k, f.At(i, j, k, c))
				}
			}
		}
		spec := ForwardScalar3D(comp, t, half)
		for k := 0; k < nz; k++ {
			for j := 0; j < ny; j++ {
				for i := 0; i < out.Nxh; i++ {
					out.Set(i, j, k, c, spec.At(i, j, k))
				}
			}
		}
	}
	return out
}

// InverseVector3D is the component-wise inverse of ForwardVector3D.
func InverseVector3D(spec *field.ComplexVector, nx, ny, nz int, t *Tables, half []complex128) *field.Vector {
	out := field.NewVector(nx, ny, nz, nx+1, ny+1, nz+1)
	for c := 0; c < 3; c++ {
		compSpec := field.NewComplexScalar(nx, ny, nz)
		for k := 0; k < nz; k++ {
			for j := 0; j < ny; j++ {
				for i := 0; i < spec.Nxh; i++ {
					compSpec.Set(i, j, k, spec.At(i, j, k, c))
				}
			}
		}
		comp := InverseScalar3D(compSpec, nx, ny, nz, t, half)
		for k := 0; k < nz; k++ {
			for j := 0; j < ny; j++ {
				for i := 0; i < nx; i++ {
					out.Set(i, j, k, c, comp.At(i, j, k))
				}
			}
		}
	}
	return out
}
