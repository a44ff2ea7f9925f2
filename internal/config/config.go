// Package config provides YAML-based game configuration loading and the
// difficulty policy that maps a difficulty level to simulation parameters.
package config

import "time"

// SnakeConfig contains all tuning for the grid-crawling game.
type SnakeConfig struct {
	GridSize      PerLevel `yaml:"grid_size"`
	TickMS        PerLevel `yaml:"tick_ms"`
	StartLength   int      `yaml:"start_length"`
	PointsPerFood int      `yaml:"points_per_food"`
}

// TickInterval returns the fixed simulation cadence for a difficulty.
func (c SnakeConfig) TickInterval(l Level) time.Duration {
	return time.Duration(c.TickMS.For(l)) * time.Millisecond
}

// BreakoutConfig contains all tuning for the paddle-and-ball game.
type BreakoutConfig struct {
	BoardWidth  int `yaml:"board_width"`
	BoardHeight int `yaml:"board_height"`
	BrickRows   int `yaml:"brick_rows"`
	BrickCols   int `yaml:"brick_cols"`
	BrickTop    int `yaml:"brick_top"`

	TickMS      int       `yaml:"tick_ms"`
	BallSpeed   PerLevelF `yaml:"ball_speed"`   // cells per second
	PaddleWidth PerLevelF `yaml:"paddle_width"` // cells
	PaddleSpeed float64   `yaml:"paddle_speed"` // cells per second
	Lives       PerLevel  `yaml:"lives"`

	BrickPoints  int     `yaml:"brick_points"`
	LevelSpeedup float64 `yaml:"level_speedup"` // ball speed multiplier per cleared level
	MaxLevel     int     `yaml:"max_level"`
	ServeUpAngle float64 `yaml:"serve_up_angle"` // initial |vy|/|vx| ratio on serve
}

// TickInterval returns the simulation cadence, shared by all difficulties;
// difficulty scales the ball, not the clock.
func (c BreakoutConfig) TickInterval() time.Duration {
	return time.Duration(c.TickMS) * time.Millisecond
}

// MemoryConfig contains all tuning for the tile-matching game.
type MemoryConfig struct {
	Pairs      PerLevel `yaml:"pairs"`
	Columns    PerLevel `yaml:"columns"`
	FlipBackMS int      `yaml:"flip_back_ms"`
}

// FlipBackDelay returns the fixed delay before a mismatched pair turns back over.
func (c MemoryConfig) FlipBackDelay() time.Duration {
	return time.Duration(c.FlipBackMS) * time.Millisecond
}

// PuzzleConfig contains all tuning for the sliding puzzle.
type PuzzleConfig struct {
	Side PerLevel `yaml:"side"` // board is side×side with one blank
}

// QuizConfig contains all tuning for the quiz game.
type QuizConfig struct {
	Questions        PerLevel `yaml:"questions"`
	PointsPerCorrect PerLevel `yaml:"points_per_correct"`
}

// Config aggregates every game's tuning. The zero value is unusable; obtain
// one through Load or Defaults.
type Config struct {
	Snake    SnakeConfig    `yaml:"snake"`
	Breakout BreakoutConfig `yaml:"breakout"`
	Memory   MemoryConfig   `yaml:"memory"`
	Puzzle   PuzzleConfig   `yaml:"puzzle"`
	Quiz     QuizConfig     `yaml:"quiz"`
}
