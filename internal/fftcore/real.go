package fftcore

import "math/cmplx"

// BuildHalfAngle returns the length-nx/2 table of "half-angle" twiddles
// exp(-2*pi*i*k/nx) used by RealForwardRow/RealInverseRow to unscramble
// the length-nx/2 complex FFT into the true length-nx real spectrum
// (spec.md §4.F: "pre-tabulated half-angle twiddles"). nx must be a
// power of two.
func BuildHalfAngle(nx int) []complex128 {
	return BuildTwiddles(nx)
}

// RealForwardRow computes the forward (un-normalized) DFT of a real row
// of length nx via the classic "pack two reals per complex sample, run
// a half-length complex FFT, unscramble" trick, returning the Nxh =
// nx/2 complex values of the packed spectrum: out[0] holds DC in its
// real part and the Nyquist mode in its imaginary part (the JPL
// convention of spec.md §3); out[k] for k in [1, nx/2) holds the true
// spectral coefficient X[k].
func RealForwardRow(t *Tables, half []complex128, row []float64, nx int) []complex128 {
	m := nx / 2
	c := make([]complex128, m)
	for n := 0; n < m; n++ {
		c[n] = complex(row[2*n], row[2*n+1])
	}
	t.transformAxis(c, false)

	out := make([]complex128, m)
	out[0] = complex(real(c[0])+imag(c[0]), real(c[0])-imag(c[0]))
	for k := 1; k < m; k++ {
		ck := c[k]
		cnk := cmplx.Conj(c[m-k])
		fe := (ck + cnk) / 2
		fo := (ck - cnk) / 2
		w := half[k]
		out[k] = fe - complex(0, 1)*w*fo
	}
	return out
}

// RealInverseRow is the exact inverse of RealForwardRow: given the
// packed spectrum (length nx/2, JPL convention), it reconstructs the
// real row of length nx, scaled by nx/2 (the length of the complex
// transform it runs). No normalization is applied here — the 3-D driver
// applies the overall 1/((Nx/2)*Ny*Nz) factor exactly once, so that
// InverseScalar3D undoes ForwardScalar3D exactly.
func RealInverseRow(t *Tables, half []complex128, spectrum []complex128, nx int) []float64 {
	m := nx / 2
	x0 := real(spectrum[0])
	xn := imag(spectrum[0])

	c := make([]complex128, m)
	c[0] = complex((x0+xn)/2, (x0-xn)/2)
	for k := 1; k < m; k++ {
		xk := spectrum[k]
		xmk := cmplx.Conj(spectrum[m-k])
		wk := half[k]
		a := (xk + xmk) / 2
		b := complex(0, 1) * (xk - xmk) / (2 * wk)
		c[k] = a + b
	}
	t.transformAxis(c, true)

	row := make([]float64, nx)
	for n := 0; n < m; n++ {
		row[2*n] = real(c[n])
		row[2*n+1] = imag(c[n])
	}
	return row
}
