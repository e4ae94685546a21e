// Package particle holds the tile-segmented particle population of
// spec.md §3: for every tile l, ppart[l][c][n] stores attribute c
// (x,y,z,vx,vy,vz) of particle n, laid out structure-of-arrays so Push
// and Deposit can load one attribute across many particles at a time
// rather than gathering whole particle structs. This is deliberately
// not the vecmath.Vec3 shape used elsewhere for field-solver helper
// math.
package particle

import "github.com/deveworld/pic3d/internal/tiling"

// Idimp is the number of attributes carried per particle: x, y, z, vx,
// vy, vz (spec.md §3).
const Idimp = 6

const (
	AttrX = iota
	AttrY
	AttrZ
	AttrVX
	AttrVY
	AttrVZ
)

// Hole records one departed particle: its local index within the tile
// (0-based) and the direction code (1..26) it left through. This is
// the struct re-expression spec.md §9 recommends in place of the
// "summary count packed into entry 0" wire encoding.
type Hole struct {
	Index int
	Dir   int
}

// HoleList is the re-expressed form of ihole[l]: a live count, an
// overflow flag (the "negated summary on overflow" signal of spec.md
// §3/§9 carried as an explicit bool instead), and the entries
// themselves.
type HoleList struct {
	Count    int
	Overflow bool
	Entries  []Hole
}

// Reset clears a hole list for reuse at the start of a stage that
// repopulates it (Push with-flagging, or Reorder's classify phase).
func (h *HoleList) Reset() {
	h.Count = 0
	h.Overflow = false
	h.Entries = h.Entries[:0]
}

// Append records a departure. It reports false (and sets Overflow)
// when the list has reached ntmax, per spec.md §4.D's overflow rule
// ("on overflow nh=1 and the summary entry is negated on exit").
func (h *HoleList) Append(index, dir, ntmax int) bool {
	if h.Count >= ntmax {
		h.Overflow = true
		return false
	}
	h.Entries = append(h.Entries, Hole{Index: index, Dir: dir})
	h.Count++
	return true
}

// Tile is the per-tile particle store: ppart (Idimp slices of length
// Nppmx, only the first Kpic entries live), the departure bookkeeping
// (Ncl, Ihole) filled during Push/Reorder, and the outbound exchange
// buffer Ppbuff (spec.md §3).
type Tile struct {
	Ppart  [Idimp][]float64
	Kpic   int
	Ncl    [26]int
	Ihole  HoleList
	Ppbuff [Idimp][]float64
}

func newTile(nppmx, npbmx int) Tile {
	var t Tile
	for c := 0; c < Idimp; c++ {
		t.Ppart[c] = tiling.AlignedFloat64s(nppmx)
		t.Ppbuff[c] = tiling.AlignedFloat64s(npbmx)
	}
	return t
}

// Get reads attribute c of the n-th particle in the tile.
func (t *Tile) Get(c, n int) float64 { return t.Ppart[c][n] }

// Set writes attribute c of the n-th particle in the tile.
func (t *Tile) Set(c, n int, v float64) { t.Ppart[c][n] = v }

// Population is the whole simulation's tile-segmented particle array,
// sized by the three capacities the driver chooses per spec.md §6:
// Nppmx (per-tile occupancy bound), Ntmax (hole-list bound), Npbmx
// (outbound-buffer bound).
type Population struct {
	Dims                 tiling.Dims
	Nppmx, Ntmax, Npbmx int
	Tiles                []Tile
}

// New allocates a zeroed population with Kpic == 0 in every tile.
func New(d tiling.Dims, nppmx, ntmax, npbmx int) *Population {
	n := d.NumTiles()
	p := &Population{Dims: d, Nppmx: nppmx, Ntmax: ntmax, Npbmx: npbmx}
	p.Tiles = make([]Tile, n)
	for l := range p.Tiles {
		p.Tiles[l] = newTile(nppmx, npbmx)
	}
	return p
}

// TotalLive returns Σ kpic[l], the particle-conservation invariant of
// spec.md §8.
func (p *Population) TotalLive() int {
	total := 0
	for l := range p.Tiles {
		total += p.Tiles[l].Kpic
	}
	return total
}

// Append places one particle into tile l at its next free slot,
// panicking if the tile is already at capacity — callers (test setup)
// are expected to size Nppmx generously, unlike the
// runtime Reorder/Push paths which report capacity overflow via irc
// instead of panicking.
func (p *Population) Append(l int, x, y, z, vx, vy, vz float64) {
	t := &p.Tiles[l]
	if t.Kpic >= p.Nppmx {
		panic("particle.Population.Append: tile at capacity")
	}
	n := t.Kpic
	t.Ppart[AttrX][n] = x
	t.Ppart[AttrY][n] = y
	t.Ppart[AttrZ][n] = z
	t.Ppart[AttrVX][n] = vx
	t.Ppart[AttrVY][n] = vy
	t.Ppart[AttrVZ][n] = vz
	t.Kpic++
}
