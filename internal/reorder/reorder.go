// Package reorder implements the particle reorder (spec.md §4.E): the
// three-phase classify / buffer-out / insert-incoming dance that moves
// particles which crossed a tile boundary during Push into their new
// owning tile, compacting each source tile's holes as it goes.
package reorder

import (
	"sync"

	"github.com/deveworld/pic3d/internal/parallel"
	"github.com/deveworld/pic3d/internal/particle"
	"github.com/deveworld/pic3d/internal/push"
	"github.com/deveworld/pic3d/internal/tiling"
)

// Run is the full reorder entry point: classify departures (Phase 1),
// buffer them out (Phase 2), then insert incoming particles (Phase 3).
// Use this when Push ran as the plain (non-flagging) variant.
func Run(pop *particle.Population, p push.Params, ntmax, npbmx int) int {
	irc := push.ClassifyOnly(pop, p, ntmax)
	if r := BufferOut(pop, npbmx); r > irc {
		irc = r
	}
	if r := InsertIncoming(pop); r > irc {
		irc = r
	}
	return irc
}

// RunFast skips Phase 1, assuming Push already ran as RunWithFlag and
// populated ncl/ihole for this step (spec.md §4.E: "skipped when Push
// already produced ncl/ihole").
func RunFast(pop *particle.Population, npbmx int) int {
	irc := BufferOut(pop, npbmx)
	if r := InsertIncoming(pop); r > irc {
		irc = r
	}
	return irc
}

// BufferOut is Phase 2 (spec.md §4.E): for every tile, compute the
// exclusive prefix scan of ncl, then place each departing particle
// (per its ihole record) into ppbuff at its direction's next free
// offset. Tiles write only to their own ncl/ppbuff, so this phase is
// embarrassingly parallel.
func BufferOut(pop *particle.Population, npbmx int) int {
	irc := 0
	var ircGuard parallelMax
	d := pop.Dims

	parallel.Tiles(d.NumTiles(), func(l int) {
		t := &pop.Tiles[l]
		counts := t.Ncl
		var off [26]int
		off[0] = 0
		for i := 1; i < 26; i++ {
			off[i] = off[i-1] + counts[i-1]
		}

		total := off[25] + counts[25]
		for _, rec := range t.Ihole.Entries {
			slot := off[rec.Dir-1]
			if slot >= npbmx {
				ircGuard.observe(total)
				continue
			}
			for c := 0; c < particle.Idimp; c++ {
				t.Ppbuff[c][slot] = t.Ppart[c][rec.Index]
			}
			off[rec.Dir-1]++
		}
		t.Ncl = off
	})

	irc = ircGuard.value()
	return irc
}

// InsertIncoming is Phase 3 (spec.md §4.E): for every destination tile,
// walk the 26 source directions, pull the particles each neighbor
// buffered toward this tile out of that neighbor's ppbuff, and place
// them into this tile's holes (or append past kpic once holes are
// exhausted). Runs after the barrier implied by BufferOut having
// completed for every tile, since it reads neighbors' ppbuff/ncl.
func InsertIncoming(pop *particle.Population) int {
	d := pop.Dims
	neighbors := tiling.NeighborTable(d)
	var ircGuard parallelMax

	parallel.Tiles(d.NumTiles(), func(l int) {
		t := &pop.Tiles[l]
		holeCursor := 0

		for ii := 1; ii <= 26; ii++ {
			dx, dy, dz := tiling.DirectionOffset(ii)
			opp := tiling.DirectionCode(-dx, -dy, -dz)
			src := neighbors[l][opp-1]
			srcTile := &pop.Tiles[src]

			start := 0
			if ii > 1 {
				start = srcTile.Ncl[ii-2]
			}
			end := srcTile.Ncl[ii-1]

			for off := start; off < end; off++ {
				var dst int
				if holeCursor < len(t.Ihole.Entries) {
					dst = t.Ihole.Entries[holeCursor].Index
					holeCursor++
				} else {
					dst = t.Kpic
					t.Kpic++
				}
				if dst >= pop.Nppmx {
					ircGuard.observe(dst + 1)
					continue
				}
				for c := 0; c < particle.Idimp; c++ {
					t.Ppart[c][dst] = srcTile.Ppbuff[c][off]
				}
			}
		}

		fillRemainingHoles(t, holeCursor)
	})

	return ircGuard.value()
}

// fillRemainingHoles compacts any holes Phase 3 did not consume with
// incoming particles (holeCursor of them were) by swapping in trailing
// live particles, then shrinks kpic by the number of holes that remain
// unfilled by arrivals (spec.md §4.E's final paragraph).
func fillRemainingHoles(t *particle.Tile, holeCursor int) {
	remaining := t.Ihole.Entries[holeCursor:]
	if len(remaining) == 0 {
		return
	}

	lo, hi := 0, len(remaining)-1
	j := t.Kpic - 1
	for lo <= hi {
		if remaining[hi].Index == j {
			hi--
			j--
			continue
		}
		dst := remaining[lo].Index
		for c := 0; c < particle.Idimp; c++ {
			t.Ppart[c][dst] = t.Ppart[c][j]
		}
		lo++
		j--
	}

	t.Kpic -= len(remaining)
}

// parallelMax accumulates the maximum observed irc value across tiles
// without a shared atomic counter, per spec.md §9's reduction-target
// discipline: each call to observe happens inside one tile's goroutine,
// writes are serialized by a mutex exactly like internal/reduce.Combiner.
type parallelMax struct {
	mu  sync.Mutex
	max int
}

func (m *parallelMax) observe(v int) {
	m.mu.Lock()
	if v > m.max {
		m.max = v
	}
	m.mu.Unlock()
}

func (m *parallelMax) value() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.max
}
