package breakout

import (
	"fmt"
	"math"

	"github.com/chorequest/minigames/internal/core"
	"github.com/chorequest/minigames/internal/snapshot"
)

// Record keys for the breakout payload. The chase target is transient
// input and is not persisted; restore re-centers it on the paddle. The
// serve speed is derived from the wave, not stored.
const (
	keyPaddle = "paddle_x"
	keyBallX  = "ball_x"
	keyBallY  = "ball_y"
	keyVelX   = "vel_x"
	keyVelY   = "vel_y"
	keyBricks = "bricks"
	keyColors = "colors"
	keyLives  = "lives"
	keyWave   = "wave"
)

// Snapshot writes the payload into rec. Bricks are written in row-major
// order so equal boards produce equal records.
func (e *Engine) Snapshot(rec snapshot.Record) {
	rec.SetFloat(keyPaddle, e.paddleX)
	rec.SetFloat(keyBallX, e.ball.X)
	rec.SetFloat(keyBallY, e.ball.Y)
	rec.SetFloat(keyVelX, e.vel.X)
	rec.SetFloat(keyVelY, e.vel.Y)

	bricks := e.sortedBricks()
	cells := make([]core.Cell, len(bricks))
	colors := make([]int, len(bricks))
	for i, b := range bricks {
		cells[i] = b.Cell
		colors[i] = b.Color
	}
	rec.SetCells(keyBricks, cells)
	rec.SetInts(keyColors, colors)

	rec.SetInt(keyLives, e.lives)
	rec.SetInt(keyWave, e.wave)
}

// Restore rebuilds the payload from rec. The receiver has already been
// reset for the record's difficulty, so the configured geometry is the
// yardstick every field is validated against.
func (e *Engine) Restore(rec snapshot.Record) error {
	wave, err := rec.Int(keyWave)
	if err != nil {
		return err
	}
	if wave < 1 || wave > e.cfg.MaxLevel {
		return fmt.Errorf("%w: wave %d out of range", snapshot.ErrMalformed, wave)
	}

	lives, err := rec.Int(keyLives)
	if err != nil {
		return err
	}
	if lives < 1 {
		return fmt.Errorf("%w: %d lives", snapshot.ErrMalformed, lives)
	}

	paddleX, err := rec.Float(keyPaddle)
	if err != nil {
		return err
	}
	if !finite(paddleX) || paddleX < 0 || paddleX > float64(e.cfg.BoardWidth)-e.paddleW {
		return fmt.Errorf("%w: paddle at %v", snapshot.ErrMalformed, paddleX)
	}

	ballX, err := rec.Float(keyBallX)
	if err != nil {
		return err
	}
	ballY, err := rec.Float(keyBallY)
	if err != nil {
		return err
	}
	if !finite(ballX) || !finite(ballY) ||
		ballX < 0 || ballX > float64(e.cfg.BoardWidth) ||
		ballY < 0 || ballY >= float64(e.cfg.BoardHeight) {
		return fmt.Errorf("%w: ball at (%v, %v)", snapshot.ErrMalformed, ballX, ballY)
	}

	velX, err := rec.Float(keyVelX)
	if err != nil {
		return err
	}
	velY, err := rec.Float(keyVelY)
	if err != nil {
		return err
	}
	if !finite(velX) || !finite(velY) {
		return fmt.Errorf("%w: velocity (%v, %v)", snapshot.ErrMalformed, velX, velY)
	}
	if velX == 0 && velY == 0 {
		return fmt.Errorf("%w: ball at rest", snapshot.ErrMalformed)
	}

	cells, err := rec.Cells(keyBricks)
	if err != nil {
		return err
	}
	colors, err := rec.Ints(keyColors)
	if err != nil {
		return err
	}
	if len(cells) == 0 {
		return fmt.Errorf("%w: no bricks", snapshot.ErrMalformed)
	}
	if len(cells) != len(colors) {
		return fmt.Errorf("%w: %d bricks, %d colors", snapshot.ErrMalformed, len(cells), len(colors))
	}
	bricks := make(map[core.Cell]int, len(cells))
	for i, c := range cells {
		if !c.Inside(e.cfg.BrickCols, e.cfg.BrickRows) {
			return fmt.Errorf("%w: brick %v outside the field", snapshot.ErrMalformed, c)
		}
		if _, dup := bricks[c]; dup {
			return fmt.Errorf("%w: duplicate brick %v", snapshot.ErrMalformed, c)
		}
		if colors[i] < 0 || colors[i] >= e.cfg.BrickRows {
			return fmt.Errorf("%w: brick color %d", snapshot.ErrMalformed, colors[i])
		}
		bricks[c] = colors[i]
	}

	e.wave = wave
	e.speed = e.cfg.BallSpeed.For(e.level) * math.Pow(e.cfg.LevelSpeedup, float64(wave-1))
	e.lives = lives
	e.paddleX = paddleX
	e.targetX = paddleX + e.paddleW/2
	e.ball = core.Vec2{X: ballX, Y: ballY}
	e.vel = core.Vec2{X: velX, Y: velY}
	e.bricks = bricks
	return nil
}

// finite rejects NaN and infinities, which pass plain range checks.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
