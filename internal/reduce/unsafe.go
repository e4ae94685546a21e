package reduce

import "unsafe"

// ptrOf reinterprets a *float64 as an unsafe.Pointer so its bit pattern
// can be manipulated through *uint64 for the lock-free add above.
func ptrOf(addr *float64) unsafe.Pointer {
	return unsafe.Pointer(addr)
}
