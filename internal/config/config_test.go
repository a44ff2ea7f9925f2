package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLevelRoundTrip(t *testing.T) {
	for _, l := range Levels() {
		parsed, err := ParseLevel(l.String())
		if err != nil {
			t.Fatalf("ParseLevel(%q) returned error: %v", l.String(), err)
		}
		if parsed != l {
			t.Errorf("ParseLevel(%q) = %v, expected %v", l.String(), parsed, l)
		}
	}

	if _, err := ParseLevel("nightmare"); err == nil {
		t.Error("ParseLevel accepted an unknown difficulty")
	}
}

func TestPerLevelFor(t *testing.T) {
	p := PerLevel{Easy: 1, Medium: 2, Hard: 3}

	tests := []struct {
		level    Level
		expected int
	}{
		{Easy, 1},
		{Medium, 2},
		{Hard, 3},
	}

	for _, tc := range tests {
		if got := p.For(tc.level); got != tc.expected {
			t.Errorf("For(%v) = %d, expected %d", tc.level, got, tc.expected)
		}
	}
}

func TestEmbeddedDefaultsMatchBuiltins(t *testing.T) {
	snake, err := LoadSnake("")
	if err != nil {
		t.Fatalf("LoadSnake: %v", err)
	}
	if snake != DefaultSnakeConfig() {
		t.Errorf("embedded snake defaults = %+v, expected %+v", snake, DefaultSnakeConfig())
	}

	breakout, err := LoadBreakout("")
	if err != nil {
		t.Fatalf("LoadBreakout: %v", err)
	}
	if breakout != DefaultBreakoutConfig() {
		t.Errorf("embedded breakout defaults = %+v, expected %+v", breakout, DefaultBreakoutConfig())
	}

	memory, err := LoadMemory("")
	if err != nil {
		t.Fatalf("LoadMemory: %v", err)
	}
	if memory != DefaultMemoryConfig() {
		t.Errorf("embedded memory defaults = %+v, expected %+v", memory, DefaultMemoryConfig())
	}
}

func TestLoadCustomPathOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")

	custom := []byte("snake:\n  points_per_food: 25\n")
	if err := os.WriteFile(path, custom, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Snake.PointsPerFood != 25 {
		t.Errorf("PointsPerFood = %d, expected 25 from custom file", cfg.Snake.PointsPerFood)
	}
	// Untouched sections keep their defaults.
	if cfg.Memory.FlipBackMS != DefaultMemoryConfig().FlipBackMS {
		t.Errorf("FlipBackMS = %d, expected default %d", cfg.Memory.FlipBackMS, DefaultMemoryConfig().FlipBackMS)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load accepted a missing explicit config path")
	}

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("snake: ["), 0o644); err != nil {
		t.Fatalf("write bad config: %v", err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load accepted malformed YAML at an explicit path")
	}
}
