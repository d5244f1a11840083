package loadmap

import (
	"fmt"
	"strings"
)

// Grid holds the 30 pallet slots of the open record and the set of positions
// flagged as bulkheads. It is the single source of truth for grid rendering.
//
// Grid does not notify anyone when it changes; callers go through
// editor.Session.ApplyMutation so totals and views are refreshed together.
type Grid struct {
	pallets   [PalletCount]Pallet
	bulkheads []int
}

// Edit carries the fields the pallet modal can change.
type Edit struct {
	Store    string
	Type     PalletType
	Zone     string
	Bulkhead bool
}

// NewGrid returns a grid of 30 blank pallets and no bulkheads.
func NewGrid() *Grid {
	g := &Grid{}
	g.reset()
	return g
}

func (g *Grid) reset() {
	for i := range g.pallets {
		g.pallets[i] = NewPallet(i + 1)
	}
	g.bulkheads = []int{}
}

// LoadFrom replaces the grid contents with persisted values. A nil or empty
// pallet slice leaves the default blank grid. Shorter or sparse slices are
// overlaid onto the blank grid by position; entries whose position is zero
// take their slice index instead, and entries outside 1..30 are dropped.
// Row and column are always recomputed.
func (g *Grid) LoadFrom(pallets []Pallet, bulkheads []int) {
	g.reset()

	for i, p := range pallets {
		pos := p.Pos
		if pos == 0 {
			pos = i + 1
		}
		if !ValidPosition(pos) {
			continue
		}
		slot := NewPallet(pos)
		slot.Type = p.Type
		slot.Store = p.Store
		slot.Zone = p.Zone
		g.pallets[pos-1] = slot
	}

	for _, pos := range bulkheads {
		if ValidPosition(pos) && !g.IsBulkhead(pos) {
			g.bulkheads = append(g.bulkheads, pos)
		}
	}
}

// Pallet returns a copy of the slot at pos.
func (g *Grid) Pallet(pos int) (Pallet, error) {
	if !ValidPosition(pos) {
		return Pallet{}, fmt.Errorf("%w: %d", ErrInvalidPosition, pos)
	}
	return g.pallets[pos-1], nil
}

// Pallets returns a copy of all 30 slots ordered by position.
func (g *Grid) Pallets() []Pallet {
	out := make([]Pallet, PalletCount)
	copy(out, g.pallets[:])
	return out
}

// Rows splits the slots into the two trailer rows.
func (g *Grid) Rows() [][]Pallet {
	all := g.Pallets()
	return [][]Pallet{all[:RowLength], all[RowLength:]}
}

// Bulkheads returns the flagged positions in the order they were added.
func (g *Grid) Bulkheads() []int {
	out := make([]int, len(g.bulkheads))
	copy(out, g.bulkheads)
	return out
}

// IsBulkhead reports whether pos is flagged.
func (g *Grid) IsBulkhead(pos int) bool {
	return indexOf(g.bulkheads, pos) >= 0
}

// EditPallet overwrites the store, type and zone of one slot and sets or
// clears its bulkhead flag.
func (g *Grid) EditPallet(pos int, e Edit) error {
	if !ValidPosition(pos) {
		return fmt.Errorf("%w: %d", ErrInvalidPosition, pos)
	}
	p := &g.pallets[pos-1]
	p.Store = strings.TrimSpace(e.Store)
	p.Type = e.Type
	p.Zone = e.Zone
	g.setBulkhead(pos, e.Bulkhead)
	return nil
}

// ClearPallet blanks one slot and drops its bulkhead flag.
func (g *Grid) ClearPallet(pos int) error {
	if !ValidPosition(pos) {
		return fmt.Errorf("%w: %d", ErrInvalidPosition, pos)
	}
	p := &g.pallets[pos-1]
	p.Store, p.Type, p.Zone = "", TypeNone, ""
	g.setBulkhead(pos, false)
	return nil
}

// SetBulkhead flags or unflags a position without touching the pallet.
func (g *Grid) SetBulkhead(pos int, on bool) error {
	if !ValidPosition(pos) {
		return fmt.Errorf("%w: %d", ErrInvalidPosition, pos)
	}
	g.setBulkhead(pos, on)
	return nil
}

func (g *Grid) setBulkhead(pos int, on bool) {
	idx := indexOf(g.bulkheads, pos)
	switch {
	case on && idx < 0:
		g.bulkheads = append(g.bulkheads, pos)
	case !on && idx >= 0:
		g.bulkheads = append(g.bulkheads[:idx], g.bulkheads[idx+1:]...)
	}
}

func indexOf(s []int, v int) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}
