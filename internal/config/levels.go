package config

import "fmt"

// Level is a closed difficulty enum. It is compared as a value everywhere;
// the string form exists only for persistence and display.
type Level int

const (
	Easy Level = iota
	Medium
	Hard
)

// Levels returns all difficulty levels in menu order.
func Levels() []Level {
	return []Level{Easy, Medium, Hard}
}

// String returns the stable lowercase name used at persistence boundaries.
func (l Level) String() string {
	switch l {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	default:
		return "hard"
	}
}

// Title returns the capitalized display name.
func (l Level) Title() string {
	switch l {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	default:
		return "Hard"
	}
}

// ParseLevel is the inverse of String.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	default:
		return Easy, fmt.Errorf("config: unknown difficulty %q", s)
	}
}

// PerLevel holds one integer parameter per difficulty level.
type PerLevel struct {
	Easy   int `yaml:"easy"`
	Medium int `yaml:"medium"`
	Hard   int `yaml:"hard"`
}

// For returns the value for the given level.
func (p PerLevel) For(l Level) int {
	switch l {
	case Easy:
		return p.Easy
	case Medium:
		return p.Medium
	default:
		return p.Hard
	}
}

// PerLevelF holds one float parameter per difficulty level.
type PerLevelF struct {
	Easy   float64 `yaml:"easy"`
	Medium float64 `yaml:"medium"`
	Hard   float64 `yaml:"hard"`
}

// For returns the value for the given level.
func (p PerLevelF) For(l Level) float64 {
	switch l {
	case Easy:
		return p.Easy
	case Medium:
		return p.Medium
	default:
		return p.Hard
	}
}
