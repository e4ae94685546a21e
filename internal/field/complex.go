package field

// ComplexScalar is the Fourier-space representation of Scalar: the x
// axis is halved to Nxh = Nx/2 complex values per row, with the Nyquist
// mode packed into the imaginary part of the zero mode per node
// (spec.md §3, JPL convention): Data[idx(0,0,0)].imag() == real(mode
// Nx/2, 0, 0), and analogously for the other three Nyquist corners.
type ComplexScalar struct {
	Nxh, Ny, Nz int
	Data        []complex128
}

// NewComplexScalar allocates a zeroed Fourier-space scalar field for a
// grid whose x dimension is Nx (so Nxh = Nx/2).
func NewComplexScalar(nx, ny, nz int) *ComplexScalar {
	nxh := nx / 2
	return &ComplexScalar{
		Nxh: nxh, Ny: ny, Nz: nz,
		Data: make([]complex128, nxh*ny*nz),
	}
}

// Idx returns the flat offset of mode (kx, ky, kz).
func (f *ComplexScalar) Idx(kx, ky, kz int) int {
	return (kz*f.Ny+ky)*f.Nxh + kx
}

func (f *ComplexScalar) At(kx, ky, kz int) complex128 {
	return f.Data[f.Idx(kx, ky, kz)]
}

func (f *ComplexScalar) Set(kx, ky, kz int, v complex128) {
	f.Data[f.Idx(kx, ky, kz)] = v
}

// ComplexVector is the Fourier-space representation of Vector: 3
// physical components per mode, no padding lane (the padding exists only
// to align the fast real-space axis in groups of four; it carries no
// spectral content).
type ComplexVector struct {
	Nxh, Ny, Nz int
	Data        []complex128 // stride 3 per mode
}

// NewComplexVector allocates a zeroed Fourier-space vector field.
func NewComplexVector(nx, ny, nz int) *ComplexVector {
	nxh := nx / 2
	return &ComplexVector{
		Nxh: nxh, Ny: ny, Nz: nz,
		Data: make([]complex128, nxh*ny*nz*3),
	}
}

// Idx returns the flat offset of component c (0=x,1=y,2=z) of mode
// (kx, ky, kz).
func (f *ComplexVector) Idx(kx, ky, kz, c int) int {
	return ((kz*f.Ny+ky)*f.Nxh+kx)*3 + c
}

func (f *ComplexVector) At(kx, ky, kz, c int) complex128 {
	return f.Data[f.Idx(kx, ky, kz, c)]
}

func (f *ComplexVector) Set(kx, ky, kz, c int, v complex128) {
	f.Data[f.Idx(kx, ky, kz, c)] = v
}
