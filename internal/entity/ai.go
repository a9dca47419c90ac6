package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-timed/internal/apperror"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func ParseDifficulty(value string) (Difficulty, error) {
	switch difficulty := Difficulty(strings.ToLower(strings.TrimSpace(value))); difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return difficulty, nil
	default:
		return "", fmt.Errorf("%w: %q", apperror.ErrUnknownDifficulty, value)
	}
}

// AIConfig - computer opponent settings. Difficulty and Mark only matter while Enabled.
type AIConfig struct {
	Enabled    bool       `json:"enabled"`
	Difficulty Difficulty `json:"difficulty"`
	Mark       Mark       `json:"mark"`
}

// Controls - reports whether the computer plays the given side right now.
func (that AIConfig) Controls(mark Mark) bool {
	return that.Enabled && that.Mark == mark
}
