package puzzle

import (
	"fmt"

	"github.com/chorequest/minigames/internal/snapshot"
)

const (
	keyTiles = "tiles"
	keyMoves = "moves"
)

// Snapshot writes the payload into rec.
func (e *Engine) Snapshot(rec snapshot.Record) {
	rec.SetInts(keyTiles, e.tiles)
	rec.SetInt(keyMoves, e.moves)
}

// Restore rebuilds the board from rec, requiring a solvable, unsolved
// permutation of the configured size.
func (e *Engine) Restore(rec snapshot.Record) error {
	tiles, err := rec.Ints(keyTiles)
	if err != nil {
		return err
	}
	moves, err := rec.Int(keyMoves)
	if err != nil {
		return err
	}
	if moves < 0 {
		return fmt.Errorf("%w: negative moves %d", snapshot.ErrMalformed, moves)
	}

	n := e.side * e.side
	if len(tiles) != n {
		return fmt.Errorf("%w: %d tiles, expected %d", snapshot.ErrMalformed, len(tiles), n)
	}
	seen := make([]bool, n)
	for _, v := range tiles {
		if v < 0 || v >= n {
			return fmt.Errorf("%w: tile %d out of range", snapshot.ErrMalformed, v)
		}
		if seen[v] {
			return fmt.Errorf("%w: tile %d appears twice", snapshot.ErrMalformed, v)
		}
		seen[v] = true
	}
	if !solvable(tiles, e.side) {
		return fmt.Errorf("%w: unsolvable board", snapshot.ErrMalformed)
	}
	if isSolved(tiles) {
		return fmt.Errorf("%w: board already solved", snapshot.ErrMalformed)
	}

	e.tiles = tiles
	e.moves = moves
	return nil
}
