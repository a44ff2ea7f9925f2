// Package puzzle implements the sliding puzzle engine. Event-driven like
// the memory game: tiles only move on input, and the session stopwatch is
// the only clock. Boards are always dealt solvable.
package puzzle

import (
	"math/rand"
	"time"

	"github.com/chorequest/minigames/internal/config"
	"github.com/chorequest/minigames/internal/core"
	"github.com/chorequest/minigames/internal/registry"
	"github.com/chorequest/minigames/internal/session"
)

// Engine holds the sliding puzzle payload: a flat row-major board where
// tile 0 is the blank. The goal order is 1..n-1 with the blank last.
type Engine struct {
	cfg   config.PuzzleConfig
	level config.Level

	side  int
	tiles []int
	moves int
}

// View is the read-only projection payload.
type View struct {
	Side  int
	Tiles []int
	Moves int
}

func init() {
	registry.Register("puzzle", func(cfg config.Config) session.Engine {
		return New(cfg.Puzzle)
	})
}

// New creates a puzzle engine with the given tuning.
func New(cfg config.PuzzleConfig) *Engine {
	return &Engine{cfg: cfg}
}

func (e *Engine) ID() string    { return "puzzle" }
func (e *Engine) Title() string { return "Sliding Puzzle" }

// TickInterval is zero: the board only changes on input.
func (e *Engine) TickInterval(config.Level) time.Duration { return 0 }

// Reset shuffles a fresh board for the difficulty. An unsolvable shuffle
// has its parity fixed by swapping two tiles, and a shuffle that lands on
// the goal order is redealt.
func (e *Engine) Reset(level config.Level, rng *rand.Rand) {
	e.level = level
	e.side = e.cfg.Side.For(level)
	n := e.side * e.side
	for {
		e.tiles = core.Perm(rng, n)
		if !solvable(e.tiles, e.side) {
			e.fixParity()
		}
		if !e.solvedBoard() {
			break
		}
	}
	e.moves = 0
}

// Advance is never called: the engine is event-driven.
func (e *Engine) Advance(*session.Ctx) {}

// Apply slides one tile into the blank. A pick names the tile's position;
// a heading slides the tile on the blank's far side in that direction.
// Non-adjacent picks are rejected and do not start a session.
func (e *Engine) Apply(ctx *session.Ctx, in session.Input) bool {
	switch in := in.(type) {
	case session.PickInput:
		return e.slide(ctx, in.Index)
	case session.DirInput:
		blank := e.blankAt()
		u := in.Heading.Unit()
		x := blank%e.side - u.X
		y := blank/e.side - u.Y
		if x < 0 || x >= e.side || y < 0 || y >= e.side {
			return false
		}
		return e.slide(ctx, y*e.side+x)
	}
	return false
}

func (e *Engine) Moves() int { return e.moves }

// View returns a copy safe to hand across goroutines.
func (e *Engine) View() any {
	tiles := make([]int, len(e.tiles))
	copy(tiles, e.tiles)
	return View{Side: e.side, Tiles: tiles, Moves: e.moves}
}

func (e *Engine) slide(ctx *session.Ctx, pos int) bool {
	if pos < 0 || pos >= len(e.tiles) || e.tiles[pos] == 0 {
		return false
	}
	blank := e.blankAt()
	if !adjacent(pos, blank, e.side) {
		return false
	}
	e.tiles[pos], e.tiles[blank] = e.tiles[blank], e.tiles[pos]
	e.moves++
	if e.solvedBoard() {
		ctx.End(session.OutcomeWin)
	}
	return true
}

func (e *Engine) blankAt() int {
	for i, v := range e.tiles {
		if v == 0 {
			return i
		}
	}
	return -1
}

func (e *Engine) solvedBoard() bool {
	return isSolved(e.tiles)
}

func isSolved(tiles []int) bool {
	n := len(tiles)
	for i := 0; i < n-1; i++ {
		if tiles[i] != i+1 {
			return false
		}
	}
	return tiles[n-1] == 0
}

// fixParity swaps the first two non-blank tiles, flipping inversion parity
// without moving the blank.
func (e *Engine) fixParity() {
	i := 0
	if e.tiles[i] == 0 {
		i++
	}
	j := i + 1
	if e.tiles[j] == 0 {
		j++
	}
	e.tiles[i], e.tiles[j] = e.tiles[j], e.tiles[i]
}

// adjacent reports whether two board positions share an edge.
func adjacent(a, b, side int) bool {
	ax, ay := a%side, a/side
	bx, by := b%side, b/side
	return core.Abs(ax-bx)+core.Abs(ay-by) == 1
}

// solvable implements the classic inversion-parity rule against the
// blank-last goal: odd boards need an even inversion count, even boards
// need inversions plus the blank's row from the bottom to be odd.
func solvable(tiles []int, side int) bool {
	inv := 0
	blankRow := 0
	flat := make([]int, 0, len(tiles)-1)
	for i, v := range tiles {
		if v == 0 {
			blankRow = i / side
			continue
		}
		flat = append(flat, v)
	}
	for i := 0; i < len(flat); i++ {
		for j := i + 1; j < len(flat); j++ {
			if flat[i] > flat[j] {
				inv++
			}
		}
	}
	if side%2 == 1 {
		return inv%2 == 0
	}
	return (inv+side-blankRow)%2 == 1
}
