package lattice

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Placement errors. These are caller-correctable input errors and are
// surfaced immediately rather than silently defaulted.
var (
	ErrEmptyPlacement     = errors.New("lattice: placement specifies no coordinate source")
	ErrAmbiguousPlacement = errors.New("lattice: placement specifies more than one coordinate source")
)

// Placement is the coordinate source for one placed piece. Exactly one
// variant must be set:
//
//   - Cells: the full list of lattice cells the piece occupies.
//   - Anchor: a single editor-grid anchor cell (validated and
//     converted), for records that store only a piece origin.
//   - Index: the legacy single index triple in the native basis, kept
//     for old save files.
//
// The variant is resolved once at the boundary via Resolve; downstream
// code only ever sees []Cell.
type Placement struct {
	Cells  []Cell     `json:"cells,omitempty"`
	Anchor *WorldCell `json:"anchor,omitempty"`
	Index  *[3]int    `json:"index,omitempty"`
}

// Resolve collapses the placement to its lattice cell list. It returns
// ErrEmptyPlacement when no variant is set, ErrAmbiguousPlacement when
// more than one is set, and propagates parity failures from anchor
// conversion.
func (p Placement) Resolve() ([]Cell, error) {
	n := 0
	if len(p.Cells) > 0 {
		n++
	}
	if p.Anchor != nil {
		n++
	}
	if p.Index != nil {
		n++
	}
	switch {
	case n == 0:
		return nil, ErrEmptyPlacement
	case n > 1:
		return nil, ErrAmbiguousPlacement
	}

	if len(p.Cells) > 0 {
		out := make([]Cell, len(p.Cells))
		copy(out, p.Cells)
		return out, nil
	}
	if p.Anchor != nil {
		c, err := ToLattice(*p.Anchor)
		if err != nil {
			return nil, fmt.Errorf("resolve anchor: %w", err)
		}
		return []Cell{c}, nil
	}
	return []Cell{{I: p.Index[0], J: p.Index[1], K: p.Index[2]}}, nil
}

// MarshalJSON encodes a cell as a compact [i,j,k] triple.
func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]int{c.I, c.J, c.K})
}

// UnmarshalJSON decodes a cell from an [i,j,k] triple.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var t [3]int
	if err := json.Unmarshal(data, &t); err != nil {
		return fmt.Errorf("lattice cell: %w", err)
	}
	c.I, c.J, c.K = t[0], t[1], t[2]
	return nil
}

// MarshalJSON encodes a world cell as a compact [x,y,z] triple.
func (w WorldCell) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]int{w.X, w.Y, w.Z})
}

// UnmarshalJSON decodes a world cell from an [x,y,z] triple. Parity is
// not enforced here; validation happens where the cell is used.
func (w *WorldCell) UnmarshalJSON(data []byte) error {
	var t [3]int
	if err := json.Unmarshal(data, &t); err != nil {
		return fmt.Errorf("world cell: %w", err)
	}
	w.X, w.Y, w.Z = t[0], t[1], t[2]
	return nil
}
