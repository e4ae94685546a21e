// Package tiling implements the linear tile index algebra and the
// 26-neighbor (Moore neighborhood) direction-code table shared by every
// tile-parallel stage of the pipeline (deposit, push, reorder, guard
// cells). The direction-code mapping defined here is the single source
// of truth consumed by internal/reorder's ncl/ihole bookkeeping.
package tiling

// Dims describes the tile partition of the grid: tile counts along each
// axis and the (mx, my, mz) size of one tile's interior.
type Dims struct {
	Mx, My, Mz    int
	Mx1, My1, Mz1 int
}

// NumTiles returns the total number of tiles.
func (d Dims) NumTiles() int {
	return d.Mx1 * d.My1 * d.Mz1
}

// Encode maps a tile's 3-D coordinate to its linear id,
// l = ix + mx1*iy + mx1*my1*iz.
func (d Dims) Encode(ix, iy, iz int) int {
	return ix + d.Mx1*iy + d.Mx1*d.My1*iz
}

// Decode maps a linear tile id back to its 3-D coordinate.
func (d Dims) Decode(l int) (ix, iy, iz int) {
	iz = l / (d.Mx1 * d.My1)
	rem := l % (d.Mx1 * d.My1)
	iy = rem / d.Mx1
	ix = rem % d.Mx1
	return
}

// Origin returns the grid-index origin (noff-style) of tile l, i.e. the
// lower corner of the cells it owns.
func (d Dims) Origin(l int) (noffx, noffy, noffz int) {
	ix, iy, iz := d.Decode(l)
	return ix * d.Mx, iy * d.My, iz * d.Mz
}

// directionOffsets is the fixed direction-code order required by the
// protocol: codes 1..26 correspond to the 3x3x3 Moore neighborhood minus
// the center, flattened with x fastest, then y, then z (the center,
// index 13 in an unflattened 0..26 enumeration, is skipped entirely so
// codes 1..26 map onto the 26 non-center offsets, see spec.md §9).
var directionOffsets = buildDirectionOffsets()

func buildDirectionOffsets() [26][3]int {
	var offs [26][3]int
	n := 0
	for dz := -1; dz <= 1; dz++ {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				offs[n] = [3]int{dx, dy, dz}
				n++
			}
		}
	}
	return offs
}

// DirectionOffset returns the (dx, dy, dz) offset for direction code
// code in [1, 26].
func DirectionOffset(code int) (dx, dy, dz int) {
	o := directionOffsets[code-1]
	return o[0], o[1], o[2]
}

// DirectionCode is the inverse of DirectionOffset: given an offset in
// {-1,0,1}^3 \ {0,0,0}, returns its direction code in [1, 26]. It starts
// from the base-3 index raw = (dx+1) + 3*(dy+1) + 9*(dz+1) (0..26, the
// center is 13): code = raw+1 below the center and raw above it, so the
// result stays dense in [1,26].
func DirectionCode(dx, dy, dz int) int {
	raw := (dx + 1) + 3*(dy+1) + 9*(dz+1) // 0..26, 13 is the center
	if raw < 13 {
		return raw + 1
	}
	return raw // raw > 13, since raw == 13 is excluded by the caller
}

// NeighborTable computes, for every tile l, the linear id of its
// neighbor in each of the 26 directions, wrapping periodically on every
// axis.
func NeighborTable(d Dims) [][26]int {
	table := make([][26]int, d.NumTiles())
	for l := range table {
		ix, iy, iz := d.Decode(l)
		for code := 1; code <= 26; code++ {
			dx, dy, dz := DirectionOffset(code)
			nx := wrap(ix+dx, d.Mx1)
			ny := wrap(iy+dy, d.My1)
			nz := wrap(iz+dz, d.Mz1)
			table[l][code-1] = d.Encode(nx, ny, nz)
		}
	}
	return table
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
