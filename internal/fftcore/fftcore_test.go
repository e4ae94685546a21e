package fftcore

import (
	"math"
	"math/rand"
	"testing"

	"github.com/deveworld/pic3d/internal/field"
)

func TestTransformAxisRoundTrip(t *testing.T) {
	const n = 8
	tbl, err := BuildTables(n)
	if err != nil {
		t.Fatal(err)
	}
	data := make([]complex128, n)
	for i := range data {
		data[i] = complex(float64(i+1), float64(-i))
	}
	orig := append([]complex128(nil), data...)

	tbl.transformAxis(data, false)
	tbl.transformAxis(data, true)

	for i := range data {
		// un-normalized forward followed by un-normalized inverse scales by n
		got := data[i] / complex(float64(n), 0)
		if math.Abs(real(got)-real(orig[i])) > 1e-9 || math.Abs(imag(got)-imag(orig[i])) > 1e-9 {
			t.Fatalf("index %d: got %v, want %v", i, got, orig[i])
		}
	}
}

func TestTransformAxisKnownImpulse(t *testing.T) {
	const n = 4
	tbl, _ := BuildTables(n)
	data := []complex128{1, 0, 0, 0}
	tbl.transformAxis(data, false)
	for i, v := range data {
		if math.Abs(real(v)-1) > 1e-9 || math.Abs(imag(v)) > 1e-9 {
			t.Errorf("FFT(impulse)[%d] = %v, want 1", i, v)
		}
	}
}

func TestRealRowRoundTrip(t *testing.T) {
	const nx = 16
	tbl, err := BuildTables(nx / 2)
	if err != nil {
		t.Fatal(err)
	}
	half := BuildHalfAngle(nx)

	row := make([]float64, nx)
	r := rand.New(rand.NewSource(1))
	for i := range row {
		row[i] = r.Float64()*2 - 1
	}

	spec := RealForwardRow(tbl, half, row, nx)
	back := RealInverseRow(tbl, half, spec, nx)

	// RealForwardRow/RealInverseRow round-trip through a length-nx/2
	// complex transform, so the un-normalized pair scales by nx/2.
	for i := range row {
		got := back[i] / float64(nx/2)
		if math.Abs(got-row[i]) > 1e-9 {
			t.Fatalf("index %d: got %v, want %v", i, got, row[i])
		}
	}
}

func TestForwardInverseScalar3DIdentity(t *testing.T) {
	nx, ny, nz := 16, 4, 8
	maxDim := nx / 2
	if ny > maxDim {
		maxDim = ny
	}
	if nz > maxDim {
		maxDim = nz
	}
	tbl, err := BuildTables(maxDim)
	if err != nil {
		t.Fatal(err)
	}
	half := BuildHalfAngle(nx)

	f := field.NewScalar(nx, ny, nz, nx+1, ny+1, nz+1)
	r := rand.New(rand.NewSource(42))
	maxAbs := 0.0
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				v := r.Float64()*2 - 1
				f.Set(i, j, k, v)
				if math.Abs(v) > maxAbs {
					maxAbs = math.Abs(v)
				}
			}
		}
	}

	spec := ForwardScalar3D(f, tbl, half)
	back := InverseScalar3D(spec, nx, ny, nz, tbl, half)

	maxDiff := 0.0
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				d := math.Abs(back.At(i, j, k) - f.At(i, j, k))
				if d > maxDiff {
					maxDiff = d
				}
			}
		}
	}
	if maxDiff > 1e-5*maxAbs {
		t.Fatalf("round-trip max diff %v exceeds tolerance (maxAbs=%v)", maxDiff, maxAbs)
	}
}

func TestPackedNyquistConvention(t *testing.T) {
	// A pure DC signal should have all spectral energy in out[0].real,
	// with Nyquist (out[0].imag) equal to the alternating-sign sum.
	const nx = 8
	tbl, _ := BuildTables(nx / 2)
	half := BuildHalfAngle(nx)
	row := []float64{2, 2, 2, 2, 2, 2, 2, 2}
	spec := RealForwardRow(tbl, half, row, nx)
	if math.Abs(real(spec[0])-16) > 1e-9 {
		t.Errorf("DC = %v, want 16", real(spec[0]))
	}
	if math.Abs(imag(spec[0])) > 1e-9 {
		t.Errorf("Nyquist = %v, want 0 for constant signal", imag(spec[0]))
	}
}
