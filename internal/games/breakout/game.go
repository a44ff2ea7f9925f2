// Package breakout implements the paddle-and-ball engine. Unlike the grid
// crawler it simulates sub-cell motion: the ball and paddle live in float
// coordinates over the cell grid and every tick integrates velocity over
// the fixed tick interval.
package breakout

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/chorequest/minigames/internal/config"
	"github.com/chorequest/minigames/internal/core"
	"github.com/chorequest/minigames/internal/registry"
	"github.com/chorequest/minigames/internal/session"
)

// paddleNudge is how far one keyboard press shifts the chase target, in
// cells. Pointer input sets the target directly instead.
const paddleNudge = 2.0

// Engine holds the paddle-game payload. X grows rightward, Y downward; the
// paddle slides along row boardH-1 and the brick field hangs below the
// ceiling starting at BrickTop.
type Engine struct {
	cfg   config.BreakoutConfig
	rng   *rand.Rand
	level config.Level

	paddleX float64 // left edge
	paddleW float64
	targetX float64 // buffered chase target for the paddle center

	ball core.Vec2
	vel  core.Vec2 // cells per second

	bricks map[core.Cell]int // brick grid cell -> color id
	lives  int
	wave   int // 1-based brick wave; clearing the last one wins

	speed float64 // current serve speed, scaled up each wave
}

// Brick is one brick in the read-only view, in brick grid coordinates.
type Brick struct {
	Cell  core.Cell
	Color int
}

// View is the read-only projection payload.
type View struct {
	BoardW, BoardH int
	BrickTop       int
	BrickW         int

	PaddleX float64
	PaddleW float64
	Ball    core.Vec2
	Bricks  []Brick
	Lives   int
	Wave    int
	MaxWave int
}

func init() {
	registry.Register("breakout", func(cfg config.Config) session.Engine {
		return New(cfg.Breakout)
	})
}

// New creates a breakout engine with the given tuning.
func New(cfg config.BreakoutConfig) *Engine {
	return &Engine{cfg: cfg}
}

func (e *Engine) ID() string    { return "breakout" }
func (e *Engine) Title() string { return "Breakout" }

// TickInterval is the same for every difficulty; difficulty scales the
// ball and the paddle, not the clock.
func (e *Engine) TickInterval(config.Level) time.Duration {
	return e.cfg.TickInterval()
}

// Reset deals a fresh first wave for the difficulty.
func (e *Engine) Reset(level config.Level, rng *rand.Rand) {
	e.rng = rng
	e.level = level
	e.paddleW = e.cfg.PaddleWidth.For(level)
	e.lives = e.cfg.Lives.For(level)
	e.wave = 1
	e.speed = e.cfg.BallSpeed.For(level)
	e.fillBricks()
	e.resetPaddle()
	e.serve()
}

// Apply buffers paddle movement. Both pointer targets and keyboard nudges
// qualify; anything else is not for this game.
func (e *Engine) Apply(_ *session.Ctx, in session.Input) bool {
	switch in := in.(type) {
	case session.TargetInput:
		e.setTarget(in.X)
		return true
	case session.DirInput:
		switch in.Heading {
		case core.Left:
			e.setTarget(e.targetX - paddleNudge)
			return true
		case core.Right:
			e.setTarget(e.targetX + paddleNudge)
			return true
		}
	}
	return false
}

// Advance runs one physics step.
func (e *Engine) Advance(ctx *session.Ctx) {
	dt := e.dt()
	e.chasePaddle(dt)
	e.ball.X += e.vel.X * dt
	e.ball.Y += e.vel.Y * dt

	e.bounceWalls()
	if e.hitBrick(ctx) {
		// Wave rollover or win: the board was rebuilt or the session
		// ended, either way this step is done.
		return
	}
	e.bouncePaddle()
	e.checkMiss(ctx)
}

func (e *Engine) Moves() int { return 0 }

// View returns a copy safe to hand across goroutines.
func (e *Engine) View() any {
	return View{
		BoardW:   e.cfg.BoardWidth,
		BoardH:   e.cfg.BoardHeight,
		BrickTop: e.cfg.BrickTop,
		BrickW:   e.brickW(),
		PaddleX:  e.paddleX,
		PaddleW:  e.paddleW,
		Ball:     e.ball,
		Bricks:   e.sortedBricks(),
		Lives:    e.lives,
		Wave:     e.wave,
		MaxWave:  e.cfg.MaxLevel,
	}
}

func (e *Engine) dt() float64 {
	return float64(e.cfg.TickMS) / 1000
}

func (e *Engine) brickW() int {
	return e.cfg.BoardWidth / e.cfg.BrickCols
}

func (e *Engine) paddleRow() int {
	return e.cfg.BoardHeight - 1
}

// setTarget clamps the chase target so the paddle can actually center on it.
func (e *Engine) setTarget(x float64) {
	half := e.paddleW / 2
	e.targetX = core.ClampF(x, half, float64(e.cfg.BoardWidth)-half)
}

func (e *Engine) resetPaddle() {
	e.paddleX = (float64(e.cfg.BoardWidth) - e.paddleW) / 2
	e.targetX = e.paddleX + e.paddleW/2
}

// serve places the ball just above the paddle and launches it upward at
// the current wave speed, angled left or right at random.
func (e *Engine) serve() {
	e.ball = core.Vec2{
		X: e.paddleX + e.paddleW/2,
		Y: float64(e.paddleRow() - 1),
	}
	norm := math.Hypot(1, e.cfg.ServeUpAngle)
	vx := e.speed / norm
	if e.rng.Intn(2) == 0 {
		vx = -vx
	}
	e.vel = core.Vec2{X: vx, Y: -e.cfg.ServeUpAngle * e.speed / norm}
}

// fillBricks rebuilds the full brick field. Color bands rotate one row per
// wave so later waves score differently at the same height.
func (e *Engine) fillBricks() {
	e.bricks = make(map[core.Cell]int, e.cfg.BrickRows*e.cfg.BrickCols)
	for row := 0; row < e.cfg.BrickRows; row++ {
		color := (row + e.wave - 1) % e.cfg.BrickRows
		for col := 0; col < e.cfg.BrickCols; col++ {
			e.bricks[core.Cell{X: col, Y: row}] = color
		}
	}
}

// chasePaddle moves the paddle center toward the buffered target at finite
// speed, clamped to the board.
func (e *Engine) chasePaddle(dt float64) {
	center := e.paddleX + e.paddleW/2
	diff := e.targetX - center
	if diff == 0 {
		return
	}
	step := e.cfg.PaddleSpeed * dt
	if math.Abs(diff) <= step {
		center = e.targetX
	} else if diff > 0 {
		center += step
	} else {
		center -= step
	}
	e.paddleX = core.ClampF(center-e.paddleW/2, 0, float64(e.cfg.BoardWidth)-e.paddleW)
}

// bounceWalls mirrors the ball off the side walls and the ceiling. Mirror
// reflection keeps the overshoot instead of snapping to the wall, so the
// trajectory stays continuous.
func (e *Engine) bounceWalls() {
	w := float64(e.cfg.BoardWidth)
	if e.ball.X < 0 {
		e.ball.X = -e.ball.X
		e.vel.X = math.Abs(e.vel.X)
	} else if e.ball.X > w {
		e.ball.X = 2*w - e.ball.X
		e.vel.X = -math.Abs(e.vel.X)
	}
	if e.ball.Y < 0 {
		e.ball.Y = -e.ball.Y
		e.vel.Y = math.Abs(e.vel.Y)
	}
}

// hitBrick removes the brick under the ball, scores it, and reflects the
// dominant velocity component. Reports true when the hit emptied the field
// and the step must stop (board rebuilt, or the session is over).
func (e *Engine) hitBrick(ctx *session.Ctx) bool {
	col := int(e.ball.X) / e.brickW()
	row := int(e.ball.Y) - e.cfg.BrickTop
	if col < 0 || col >= e.cfg.BrickCols || row < 0 || row >= e.cfg.BrickRows {
		return false
	}
	cell := core.Cell{X: col, Y: row}
	color, ok := e.bricks[cell]
	if !ok {
		return false
	}
	delete(e.bricks, cell)
	ctx.AddScore(e.cfg.BrickPoints * (e.cfg.BrickRows - color))
	if math.Abs(e.vel.Y) >= math.Abs(e.vel.X) {
		e.vel.Y = -e.vel.Y
	} else {
		e.vel.X = -e.vel.X
	}
	if len(e.bricks) == 0 {
		e.clearWave(ctx)
		return true
	}
	return false
}

// clearWave rolls the board over to the next wave, or wins the session
// when the last configured wave is cleared.
func (e *Engine) clearWave(ctx *session.Ctx) {
	if e.wave >= e.cfg.MaxLevel {
		ctx.End(session.OutcomeWin)
		return
	}
	cleared := e.wave
	e.wave++
	e.speed *= e.cfg.LevelSpeedup
	e.fillBricks()
	e.resetPaddle()
	e.serve()
	ctx.Notify(fmt.Sprintf("Wave %d cleared", cleared))
}

// bouncePaddle reflects a descending ball that reached the paddle row over
// the paddle. The hit offset from the paddle center, normalized to [-1, 1],
// skews the outgoing horizontal velocity: edge hits send the ball wide.
func (e *Engine) bouncePaddle() {
	if e.vel.Y <= 0 {
		return
	}
	row := float64(e.paddleRow())
	if e.ball.Y < row {
		return
	}
	if e.ball.X < e.paddleX || e.ball.X > e.paddleX+e.paddleW {
		return
	}
	half := e.paddleW / 2
	hit := core.ClampF((e.ball.X-(e.paddleX+half))/half, -1, 1)
	e.ball.Y = row
	e.vel.Y = -math.Abs(e.vel.Y)
	if e.vel.Y > -e.speed/2 {
		e.vel.Y = -e.speed / 2
	}
	e.vel.X = hit * e.speed
}

// checkMiss handles the ball falling past the paddle.
func (e *Engine) checkMiss(ctx *session.Ctx) {
	if e.ball.Y < float64(e.cfg.BoardHeight) {
		return
	}
	e.lives--
	if e.lives <= 0 {
		ctx.End(session.OutcomeLoss)
		return
	}
	e.resetPaddle()
	e.serve()
}

// sortedBricks flattens the brick map in row-major order so views and
// snapshots are stable.
func (e *Engine) sortedBricks() []Brick {
	out := make([]Brick, 0, len(e.bricks))
	for cell, color := range e.bricks {
		out = append(out, Brick{Cell: cell, Color: color})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cell.Y != out[j].Cell.Y {
			return out[i].Cell.Y < out[j].Cell.Y
		}
		return out[i].Cell.X < out[j].Cell.X
	})
	return out
}
