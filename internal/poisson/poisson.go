// Package poisson implements the Fourier-space field solve of
// spec.md §4.G: given transformed charge density q̂, it produces the
// force field fxyz = -∇φ with ∇²φ = -q/ε0, smoothed by a Gaussian
// particle-shape factor, using a precomputed form-factor table ffc built
// once by an isign=0 call and reused for every isign=-1 solve
// thereafter. The Plan-object shape (long-lived precomputed tables plus
// a reusable Solve entry point) generalizes the pattern used by
// other_examples' algo-pde Plan3DPeriodic (precomputed eigenvalue
// tables, a reusable Solve method) — that file is reference material,
// not a dependency; grounding for shape only.
package poisson

import (
	"math"

	"github.com/deveworld/pic3d/internal/field"
	"github.com/deveworld/pic3d/internal/parallel"
	"github.com/deveworld/pic3d/internal/reduce"
)

// FormFactor is the precomputed Green's-function-times-shape-factor
// table ffc[l][k][j] = (G*S) + i*S from spec.md §4.G, built once by
// Build (the isign=0 call) and reused by every Solve call. Only the
// ordinary (non-Nyquist) x channel needs a table entry: Solve forces
// the field's x-Nyquist plane to zero directly (spec.md §4.G's "all
// three Nyquist planes" rule), so no Green's-function value is ever
// looked up for it.
type FormFactor struct {
	Nxh, Ny, Nz int
	Data        []complex128 // ordinary channel, index as field.ComplexScalar
	Ax, Ay, Az  float64
	Affp        float64
}

func idx(nxh, ny int, i, j, k int) int { return (k*ny+j)*nxh + i }

// Build performs the isign=0 table-init call: computes G (the discrete
// Green's function) and S (the Gaussian shape-factor smoothing) for
// every mode and packs them into ffc.
func Build(nx, ny, nz int, ax, ay, az, affp float64) *FormFactor {
	nxh := nx / 2
	ff := &FormFactor{
		Nxh: nxh, Ny: ny, Nz: nz,
		Data: make([]complex128, nxh*ny*nz),
		Ax:   ax, Ay: ay, Az: az, Affp: affp,
	}

	for k := 0; k < nz; k++ {
		kz := waveNumber(k, nz) * 2 * math.Pi / float64(nz)
		for j := 0; j < ny; j++ {
			ky := waveNumber(j, ny) * 2 * math.Pi / float64(ny)
			for i := 0; i < nxh; i++ {
				kx := 2 * math.Pi * float64(i) / float64(nx)
				ff.Data[idx(nxh, ny, i, j, k)] = formFactorValue(kx, ky, kz, ax, ay, az, affp)
			}
		}
	}
	return ff
}

func formFactorValue(kx, ky, kz, ax, ay, az, affp float64) complex128 {
	k2 := kx*kx + ky*ky + kz*kz
	if k2 == 0 {
		return 0
	}
	g := affp / k2
	s := math.Exp(-0.5 * ((kx*ax)*(kx*ax) + (ky*ay)*(ky*ay) + (kz*az)*(kz*az)))
	return complex(g*s, s)
}

// waveNumber maps a 0-based FFT bin index to its signed wavenumber
// index (positive frequencies in the lower half, negative in the
// upper half), returned as that plain signed index so callers
// multiply by 2*pi/N themselves.
func waveNumber(idx, n int) float64 {
	signed := idx
	if idx > n/2 {
		signed = idx - n
	}
	return float64(signed)
}

// isNyquistRow reports whether index idx along an axis of length n is
// that axis's Nyquist row (n/2), which must be forced to zero and
// excluded from the energy sum (spec.md §4.G, §8).
func isNyquistRow(idx, n int) bool {
	return idx == n/2
}

// Result is returned by Solve.
type Result struct {
	Fxyz *field.ComplexVector
	We   float64 // field energy
}

// Solve performs the isign=-1 call: for every non-zero, non-Nyquist
// wavevector it computes fx = -i*kx*G*S*q̂ and analogously for fy, fz;
// the DC mode and all three Nyquist planes are forced to zero.
func Solve(q *field.ComplexScalar, ff *FormFactor, nx, ny, nz int) Result {
	nxh := nx / 2
	out := field.NewComplexVector(nx, ny, nz)
	combiner := &reduce.Combiner{}

	parallel.Planes(nz, func(k int) {
		kz := waveNumber(k, nz) * 2 * math.Pi / float64(nz)
		zNyquist := isNyquistRow(k, nz)
		lane := make([]float64, 0, ny*nxh)
		for j := 0; j < ny; j++ {
			ky := waveNumber(j, ny) * 2 * math.Pi / float64(ny)
			yNyquist := isNyquistRow(j, ny)
			for i := 0; i < nxh; i++ {
				kx := 2 * math.Pi * float64(i) / float64(nx)
				qhat := q.At(i, j, k)
				isDC := i == 0 && j == 0 && k == 0

				if i == 0 {
					// Row 0 packs the x-Nyquist charge channel into
					// imag(qhat) (spec.md §3); only the real (kx=0)
					// component is the ordinary charge this row's
					// gradient should use, so the Nyquist channel is
					// masked out before taking the gradient.
					qhat = complex(real(qhat), 0)
				}

				if isDC || yNyquist || zNyquist {
					out.Set(i, j, k, 0, 0)
					out.Set(i, j, k, 1, 0)
					out.Set(i, j, k, 2, 0)
				} else {
					fx, fy, fz, contrib := gradientField(kx, ky, kz, qhat, ff.Data[idx(nxh, ny, i, j, k)])
					if i == 0 {
						// The -i*k gradient rotates a purely real charge
						// into a purely imaginary result; swap the
						// legitimate ordinary-channel value back into the
						// real slot RealInverseRow expects and force the
						// packed x-Nyquist slot to zero, per spec.md
						// §4.G's "all three Nyquist planes" rule.
						fx = complex(imag(fx), 0)
						fy = complex(imag(fy), 0)
						fz = complex(imag(fz), 0)
					}
					out.Set(i, j, k, 0, fx)
					out.Set(i, j, k, 1, fy)
					out.Set(i, j, k, 2, fz)
					lane = append(lane, contrib)
				}
			}
		}
		combiner.Add(reduce.Sum(lane))
	})

	return Result{Fxyz: out, We: combiner.Total()}
}

// gradientField computes fx = -i*kx*G*S*qhat and analogously for fy, fz,
// plus this mode's contribution to the field energy
// we = |q̂|^2 * G * S (spec.md §4.G, summed over non-zero, non-Nyquist
// modes by the caller).
func gradientField(kx, ky, kz float64, qhat complex128, gs complex128) (fx, fy, fz complex128, energyContrib float64) {
	gsReal := real(gs) // this is G*S as packed by Build
	negI := complex(0, -1)
	fx = negI * complex(kx, 0) * complex(gsReal, 0) * qhat
	fy = negI * complex(ky, 0) * complex(gsReal, 0) * qhat
	fz = negI * complex(kz, 0) * complex(gsReal, 0) * qhat
	mag2 := real(qhat)*real(qhat) + imag(qhat)*imag(qhat)
	energyContrib = mag2 * gsReal
	return
}
