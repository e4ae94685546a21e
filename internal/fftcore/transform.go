package fftcore

// transformAxis runs an in-place radix-2 decimation-in-time FFT on data
// (length axisLen, a power of two), deriving its bit-reversal and
// twiddle values from the shared Tables by striding into the
// max-dimension tables (see axisStride). inverse selects the conjugated
// twiddle direction; no 1/n normalization is applied here — the overall
// 1/((Nx/2)*Ny*Nz) inverse normalization is applied once, by the 3-D
// driver (see InverseScalar3D).
func (t *Tables) transformAxis(data []complex128, inverse bool) {
	n := len(data)
	if n <= 1 {
		return
	}
	stride := t.axisStride(n)

	// Bit-reversal permutation.
	for i := 0; i < n; i++ {
		j := t.Mixup[i*stride]
		if j > i {
			data[i], data[j] = data[j], data[i]
		}
	}

	// Iterative Cooley-Tukey butterflies.
	for size := 2; size <= n; size <<= 1 {
		half := size / 2
		twiddleStride := stride * (n / size)
		for start := 0; start < n; start += size {
			for j := 0; j < half; j++ {
				w := t.Sct[j*twiddleStride]
				if inverse {
					w = complex(real(w), -imag(w))
				}
				u := data[start+j]
				v := w * data[start+j+half]
				data[start+j] = u + v
				data[start+j+half] = u - v
			}
		}
	}
}
