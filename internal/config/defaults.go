package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

//go:embed defaults/memory.yaml
var defaultMemoryYAML []byte

//go:embed defaults/puzzle.yaml
var defaultPuzzleYAML []byte

//go:embed defaults/quiz.yaml
var defaultQuizYAML []byte

// DefaultSnakeConfig returns the built-in grid-crawling tuning.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		GridSize:      PerLevel{Easy: 14, Medium: 18, Hard: 22},
		TickMS:        PerLevel{Easy: 220, Medium: 160, Hard: 110},
		StartLength:   3,
		PointsPerFood: 10,
	}
}

// DefaultBreakoutConfig returns the built-in paddle-and-ball tuning.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		BoardWidth:  32,
		BoardHeight: 20,
		BrickRows:   4,
		BrickCols:   8,
		BrickTop:    2,

		TickMS:      50,
		BallSpeed:   PerLevelF{Easy: 8, Medium: 11, Hard: 14},
		PaddleWidth: PerLevelF{Easy: 8, Medium: 6, Hard: 5},
		PaddleSpeed: 24,
		Lives:       PerLevel{Easy: 5, Medium: 3, Hard: 2},

		BrickPoints:  10,
		LevelSpeedup: 1.12,
		MaxLevel:     5,
		ServeUpAngle: 1.4,
	}
}

// DefaultMemoryConfig returns the built-in tile-matching tuning.
func DefaultMemoryConfig() MemoryConfig {
	return MemoryConfig{
		Pairs:      PerLevel{Easy: 6, Medium: 8, Hard: 10},
		Columns:    PerLevel{Easy: 4, Medium: 4, Hard: 5},
		FlipBackMS: 1000,
	}
}

// DefaultPuzzleConfig returns the built-in sliding puzzle tuning.
func DefaultPuzzleConfig() PuzzleConfig {
	return PuzzleConfig{
		Side: PerLevel{Easy: 3, Medium: 4, Hard: 5},
	}
}

// DefaultQuizConfig returns the built-in quiz tuning.
func DefaultQuizConfig() QuizConfig {
	return QuizConfig{
		Questions:        PerLevel{Easy: 5, Medium: 8, Hard: 10},
		PointsPerCorrect: PerLevel{Easy: 10, Medium: 15, Hard: 20},
	}
}

// Defaults returns the full built-in configuration without touching disk.
func Defaults() Config {
	return Config{
		Snake:    DefaultSnakeConfig(),
		Breakout: DefaultBreakoutConfig(),
		Memory:   DefaultMemoryConfig(),
		Puzzle:   DefaultPuzzleConfig(),
		Quiz:     DefaultQuizConfig(),
	}
}
