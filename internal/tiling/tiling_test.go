package tiling

import (
	"testing"
	"unsafe"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	d := Dims{Mx: 8, My: 8, Mz: 8, Mx1: 3, My1: 4, Mz1: 5}
	for iz := 0; iz < d.Mz1; iz++ {
		for iy := 0; iy < d.My1; iy++ {
			for ix := 0; ix < d.Mx1; ix++ {
				l := d.Encode(ix, iy, iz)
				gx, gy, gz := d.Decode(l)
				if gx != ix || gy != iy || gz != iz {
					t.Fatalf("decode(%d)=(%d,%d,%d), want (%d,%d,%d)", l, gx, gy, gz, ix, iy, iz)
				}
			}
		}
	}
}

func TestDirectionCodeIsInverseOfOffset(t *testing.T) {
	for code := 1; code <= 26; code++ {
		dx, dy, dz := DirectionOffset(code)
		got := DirectionCode(dx, dy, dz)
		if got != code {
			t.Errorf("DirectionCode(%d,%d,%d) = %d, want %d", dx, dy, dz, got, code)
		}
	}
}

func TestDirectionOffsetsCoverMooreNeighborhoodExcludingCenter(t *testing.T) {
	seen := make(map[[3]int]bool)
	for code := 1; code <= 26; code++ {
		dx, dy, dz := DirectionOffset(code)
		if dx == 0 && dy == 0 && dz == 0 {
			t.Fatalf("code %d maps to the center, which must be excluded", code)
		}
		seen[[3]int{dx, dy, dz}] = true
	}
	if len(seen) != 26 {
		t.Fatalf("expected 26 distinct offsets, got %d", len(seen))
	}
}

func TestNeighborTablePeriodicWrap(t *testing.T) {
	d := Dims{Mx: 4, My: 4, Mz: 4, Mx1: 2, My1: 2, Mz1: 2}
	table := NeighborTable(d)

	// In a 2x2x2 tile grid every non-center offset wraps back onto the
	// opposite tile along that axis.
	l := d.Encode(0, 0, 0)
	code := DirectionCode(1, 0, 0)
	want := d.Encode(1, 0, 0)
	if got := table[l][code-1]; got != want {
		t.Errorf("neighbor in +x from tile 0 = %d, want %d", got, want)
	}

	code = DirectionCode(-1, 0, 0)
	want = d.Encode(1, 0, 0) // wraps around a 2-wide axis
	if got := table[l][code-1]; got != want {
		t.Errorf("neighbor in -x from tile 0 = %d, want %d", got, want)
	}
}

func TestAlignedFloat64sAlignment(t *testing.T) {
	s := AlignedFloat64s(17)
	if len(s) != 17 {
		t.Fatalf("len = %d, want 17", len(s))
	}
	if addr := uintptr(unsafe.Pointer(&s[0])); addr%AlignBytes != 0 {
		t.Fatalf("address %#x is not %d-byte aligned", addr, AlignBytes)
	}
}
