package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// loadGame loads one game's YAML into out.
// Search order: customPath -> ~/.chorequest/configs/<name>.yaml ->
// ./configs/<name>.yaml -> embedded default.
// Only an explicit customPath surfaces errors; the fallback tiers fail
// silently into the next tier so a broken user file never blocks play.
func loadGame(customPath, filename string, embedded []byte, out any) error {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		return nil
	}

	if userPath := userConfigPath(filename); userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			if err := yaml.Unmarshal(data, out); err == nil {
				return nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		if err := yaml.Unmarshal(data, out); err == nil {
			return nil
		}
	}

	return yaml.Unmarshal(embedded, out)
}

// userConfigPath returns the path to a user config file, or empty if the
// home directory is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".chorequest", "configs", filename)
}

// LoadSnake loads the grid-crawling game configuration.
func LoadSnake(customPath string) (SnakeConfig, error) {
	cfg := DefaultSnakeConfig()
	if err := loadGame(customPath, "snake.yaml", defaultSnakeYAML, &cfg); err != nil {
		return DefaultSnakeConfig(), err
	}
	return cfg, nil
}

// LoadBreakout loads the paddle-and-ball game configuration.
func LoadBreakout(customPath string) (BreakoutConfig, error) {
	cfg := DefaultBreakoutConfig()
	if err := loadGame(customPath, "breakout.yaml", defaultBreakoutYAML, &cfg); err != nil {
		return DefaultBreakoutConfig(), err
	}
	return cfg, nil
}

// LoadMemory loads the tile-matching game configuration.
func LoadMemory(customPath string) (MemoryConfig, error) {
	cfg := DefaultMemoryConfig()
	if err := loadGame(customPath, "memory.yaml", defaultMemoryYAML, &cfg); err != nil {
		return DefaultMemoryConfig(), err
	}
	return cfg, nil
}

// LoadPuzzle loads the sliding puzzle configuration.
func LoadPuzzle(customPath string) (PuzzleConfig, error) {
	cfg := DefaultPuzzleConfig()
	if err := loadGame(customPath, "puzzle.yaml", defaultPuzzleYAML, &cfg); err != nil {
		return DefaultPuzzleConfig(), err
	}
	return cfg, nil
}

// LoadQuiz loads the quiz configuration.
func LoadQuiz(customPath string) (QuizConfig, error) {
	cfg := DefaultQuizConfig()
	if err := loadGame(customPath, "quiz.yaml", defaultQuizYAML, &cfg); err != nil {
		return DefaultQuizConfig(), err
	}
	return cfg, nil
}

// Load assembles the full configuration. customPath, when non-empty, must
// name a single YAML file whose top-level sections override any subset of
// games; the remaining games keep their tiered defaults.
func Load(customPath string) (Config, error) {
	cfg := Config{}

	var err error
	if cfg.Snake, err = LoadSnake(""); err != nil {
		return cfg, err
	}
	if cfg.Breakout, err = LoadBreakout(""); err != nil {
		return cfg, err
	}
	if cfg.Memory, err = LoadMemory(""); err != nil {
		return cfg, err
	}
	if cfg.Puzzle, err = LoadPuzzle(""); err != nil {
		return cfg, err
	}
	if cfg.Quiz, err = LoadQuiz(""); err != nil {
		return cfg, err
	}

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
	}

	return cfg, nil
}
