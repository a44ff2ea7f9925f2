// Package snake implements the grid-crawling engine: a snake moves across a
// square grid at a fixed per-difficulty cadence, grows when it eats, and
// dies on wall or body contact.
package snake

import (
	"math/rand"
	"time"

	"github.com/chorequest/minigames/internal/config"
	"github.com/chorequest/minigames/internal/core"
	"github.com/chorequest/minigames/internal/registry"
	"github.com/chorequest/minigames/internal/session"
)

// noFood marks an unplaceable food cell. Only reachable in the same advance
// that ends the session, so it is never persisted.
var noFood = core.Cell{X: -1, Y: -1}

// Engine implements the snake rules on top of the session state machine.
type Engine struct {
	cfg config.SnakeConfig
	rng *rand.Rand

	grid    int
	body    []core.Cell // head at index 0
	heading core.Heading
	pending core.Heading // buffered heading, adopted on the next advance
	food    core.Cell
}

// View is the read-only board projection for rendering.
type View struct {
	Grid    int
	Body    []core.Cell
	Food    core.Cell
	HasFood bool
	Heading core.Heading
}

func init() {
	registry.Register("snake", func(cfg config.Config) session.Engine {
		return New(cfg.Snake)
	})
}

// New creates a snake engine with the given tuning.
func New(cfg config.SnakeConfig) *Engine {
	return &Engine{cfg: cfg}
}

// ID returns the game identifier.
func (e *Engine) ID() string { return "snake" }

// Title returns the display name.
func (e *Engine) Title() string { return "Snake" }

// TickInterval returns the fixed simulation cadence for a difficulty. It
// never changes mid-session.
func (e *Engine) TickInterval(level config.Level) time.Duration {
	return e.cfg.TickInterval(level)
}

// Reset deals a fresh board: the snake spawns mid-grid heading right, food
// somewhere off the body.
func (e *Engine) Reset(level config.Level, rng *rand.Rand) {
	e.rng = rng
	e.grid = e.cfg.GridSize.For(level)

	length := core.Clamp(e.cfg.StartLength, 1, e.grid/2+1)
	head := core.Cell{X: e.grid / 2, Y: e.grid / 2}
	e.body = make([]core.Cell, 0, length)
	for i := 0; i < length; i++ {
		e.body = append(e.body, core.Cell{X: head.X - i, Y: head.Y})
	}
	e.heading = core.Right
	e.pending = core.Right
	e.placeFood()
}

// placeFood picks a uniform free cell for the food. Returns false when the
// body covers the whole grid.
func (e *Engine) placeFood() bool {
	occupied := make(map[core.Cell]bool, len(e.body))
	for _, c := range e.body {
		occupied[c] = true
	}
	cell, ok := core.RandomFreeCell(e.rng, e.grid, e.grid, occupied)
	if !ok {
		e.food = noFood
		return false
	}
	e.food = cell
	return true
}

// Apply buffers a heading change. A 180° reversal of the current heading
// is refused here, at submit time, so the buffered heading is always safe
// to adopt. Only an accepted heading qualifies as a session-starting input.
func (e *Engine) Apply(ctx *session.Ctx, in session.Input) bool {
	dir, ok := in.(session.DirInput)
	if !ok {
		return false
	}
	if dir.Heading == e.heading.Opposite() {
		return false
	}
	e.pending = dir.Heading
	return true
}

// Advance runs one simulation step.
func (e *Engine) Advance(ctx *session.Ctx) {
	e.heading = e.pending

	newHead := e.body[0].Add(e.heading.Unit())
	if !newHead.Inside(e.grid, e.grid) {
		ctx.End(session.OutcomeLoss)
		return
	}
	// Pre-move body, tail included: moving onto the cell the tail is about
	// to vacate still ends the game.
	for _, c := range e.body {
		if c == newHead {
			ctx.End(session.OutcomeLoss)
			return
		}
	}

	e.body = append([]core.Cell{newHead}, e.body...)
	if newHead == e.food {
		ctx.AddScore(e.cfg.PointsPerFood)
		if !e.placeFood() {
			// Board full: nowhere left to grow.
			ctx.End(session.OutcomeBoardFull)
		}
		return
	}
	e.body = e.body[:len(e.body)-1]
}

// Moves is not a tracked metric for snake.
func (e *Engine) Moves() int { return 0 }

// View copies the body; projections cross goroutines.
func (e *Engine) View() any {
	body := make([]core.Cell, len(e.body))
	copy(body, e.body)
	return View{
		Grid:    e.grid,
		Body:    body,
		Food:    e.food,
		HasFood: e.food != noFood,
		Heading: e.heading,
	}
}
