// Package fftcore implements the real<->complex 3-D FFT pipeline of
// spec.md §4.F: a decimation-in-time radix-2 Cooley-Tukey transform
// driven by precomputed mixup (bit-reversal) and sct (twiddle factor)
// tables, composed into an xy pass and a z pass, with the JPL packed
// real-data convention on the x axis.
//
// Table generation itself is an external collaborator per spec.md §1
// ("the fixed bit-reverse and twiddle-table generation"); BuildMixup and
// BuildTwiddles are provided anyway because every testable property in
// spec.md §8 needs concrete tables and nothing in the retrieval pack
// ships pre-built ones to consume instead.
package fftcore

import (
	"fmt"
	"math"
	"math/bits"
)

// Tables holds the shared bit-reversal and twiddle-factor arrays used by
// every pass. Both are built for MaxDim, the largest of Nxh, Ny, Nz
// (Mixup has MaxDim entries, Sct has MaxDim/2); a pass over a shorter axis derives its own bit-reversal and twiddle
// values from the shared tables by striding (see axisStride).
type Tables struct {
	MaxDim int
	Mixup  []int
	Sct    []complex128
}

// BuildTables constructs the shared mixup/sct tables for a problem whose
// largest transform axis (Nxh, Ny, or Nz) is maxDim, which must be a
// power of two.
func BuildTables(maxDim int) (*Tables, error) {
	if !isPowerOfTwo(maxDim) {
		return nil, fmt.Errorf("fftcore: maxDim %d is not a power of two", maxDim)
	}
	return &Tables{
		MaxDim: maxDim,
		Mixup:  BuildMixup(maxDim),
		Sct:    BuildTwiddles(maxDim),
	}, nil
}

// BuildMixup returns the bit-reversal permutation table of length n:
// mixup[i] is i with its log2(n) bits reversed.
func BuildMixup(n int) []int {
	logN := bits.Len(uint(n)) - 1
	table := make([]int, n)
	for i := 0; i < n; i++ {
		table[i] = reverseBits(i, logN)
	}
	return table
}

// BuildTwiddles returns the half-length twiddle factor table: sct[j] =
// exp(-2*pi*i*j/n) for j in [0, n/2).
func BuildTwiddles(n int) []complex128 {
	sct := make([]complex128, n/2)
	for j := range sct {
		theta := -2 * math.Pi * float64(j) / float64(n)
		sct[j] = complex(math.Cos(theta), math.Sin(theta))
	}
	return sct
}

func reverseBits(v, numBits int) int {
	r := 0
	for i := 0; i < numBits; i++ {
		r = (r << 1) | (v & 1)
		v >>= 1
	}
	return r
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// axisStride returns MaxDim/axisLen, the factor relating the shared
// tables to a pass over a shorter axis (spec.md §4.F design rationale:
// reverseBits_M(i*stride) == reverseBits_m(i) when stride is a power of
// two and the low (M-m) bits of i*stride are zero, and sct[j*stride] ==
// exp(-2*pi*i*j/axisLen) by the same scaling).
func (t *Tables) axisStride(axisLen int) int {
	return t.MaxDim / axisLen
}
