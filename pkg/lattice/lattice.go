// Package lattice implements the face-centered-cubic coordinate system
// used by the ball puzzle. It converts between the engine's native
// integer lattice basis and the orthogonal integer grid used by the
// interactive editor, and projects lattice cells into continuous space.
package lattice

import (
	"errors"
	"fmt"
)

// ErrInvalidParity is returned when a world grid cell does not satisfy
// the FCC parity rule (X+Y+Z must be even).
var ErrInvalidParity = errors.New("lattice: invalid parity, X+Y+Z must be even")

// ErrNonIntegerResult is returned when the algebraic inverse of the
// world transform would not land on integer lattice coordinates. With
// the parity check in place this should never fire; it is checked
// anyway so a corrupted coordinate can never propagate downstream.
var ErrNonIntegerResult = errors.New("lattice: inverse transform is not integral")

// Cell is one lattice site in the puzzle's native integer basis.
type Cell struct {
	I, J, K int
}

// WorldCell is the same site expressed in the orthogonal integer grid
// used by the interactive editor. A WorldCell is valid only when the
// sum of its coordinates is even.
type WorldCell struct {
	X, Y, Z int
}

// String implements fmt.Stringer for diagnostics.
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.I, c.J, c.K)
}

// String implements fmt.Stringer for diagnostics.
func (w WorldCell) String() string {
	return fmt.Sprintf("[%d,%d,%d]", w.X, w.Y, w.Z)
}

// ToWorld converts a native lattice cell to the editor's world grid.
// The mapping is linear and total: every integer triple has an image,
// and the image always satisfies the parity rule.
func ToWorld(c Cell) WorldCell {
	return WorldCell{
		X: c.J + c.K,
		Y: c.I + c.K,
		Z: c.I + c.J,
	}
}

// ToLattice converts a world grid cell back to the native lattice
// basis. It fails with ErrInvalidParity when X+Y+Z is odd, and with
// ErrNonIntegerResult if the round trip would not reproduce the input.
func ToLattice(w WorldCell) (Cell, error) {
	if !IsValid(w) {
		return Cell{}, fmt.Errorf("%w: got %s", ErrInvalidParity, w)
	}
	s := (w.X + w.Y + w.Z) / 2
	c := Cell{
		I: s - w.X,
		J: s - w.Y,
		K: s - w.Z,
	}
	// The parity check guarantees integrality, but verify the round
	// trip so a bad coordinate can never corrupt downstream geometry.
	if ToWorld(c) != w {
		return Cell{}, fmt.Errorf("%w: got %s", ErrNonIntegerResult, w)
	}
	return c, nil
}

// IsValid reports whether a world grid cell satisfies the FCC parity
// rule. Pure predicate, no side effects.
func IsValid(w WorldCell) bool {
	return (w.X+w.Y+w.Z)%2 == 0
}

// neighborOffsets are the 12 FCC adjacency offsets in world grid
// coordinates: all signed permutations of (1,1,0). Each offset has an
// even coordinate sum, so adjacency preserves validity.
var neighborOffsets = [12]WorldCell{
	{1, 1, 0}, {1, -1, 0}, {-1, 1, 0}, {-1, -1, 0},
	{1, 0, 1}, {1, 0, -1}, {-1, 0, 1}, {-1, 0, -1},
	{0, 1, 1}, {0, 1, -1}, {0, -1, 1}, {0, -1, -1},
}

// Neighbors returns the 12 lattice-adjacent world cells of w, the FCC
// coordination shell. It does not filter by occupancy; that is the
// caller's job.
func Neighbors(w WorldCell) [12]WorldCell {
	var out [12]WorldCell
	for i, off := range neighborOffsets {
		out[i] = WorldCell{X: w.X + off.X, Y: w.Y + off.Y, Z: w.Z + off.Z}
	}
	return out
}
