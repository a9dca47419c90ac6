package entity

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rocketscienceinc/tictactoe-timed/internal/apperror"
)

const MaxNameLength = 12

const (
	DefaultPlayerXName = "Player X"
	DefaultPlayerOName = "Player O"
	DefaultAIName      = "Computer (AI)"
)

type Players struct {
	X string `json:"x"`
	O string `json:"o"`
}

func (that Players) Name(mark Mark) string {
	if mark == MarkO {
		return that.O
	}

	return that.X
}

func (that *Players) Rename(mark Mark, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	switch name = strings.TrimSpace(name); mark {
	case MarkX:
		that.X = name
	case MarkO:
		that.O = name
	default:
		return fmt.Errorf("%w: %q", apperror.ErrUnknownSide, mark)
	}

	return nil
}

// ValidateName - names are 1 to MaxNameLength characters, not counting surrounding spaces.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("%w: name is empty", apperror.ErrInvalidName)
	}

	if utf8.RuneCountInString(trimmed) > MaxNameLength {
		return fmt.Errorf("%w: %q is longer than %d characters", apperror.ErrInvalidName, name, MaxNameLength)
	}

	return nil
}

// TruncateName - cuts a name down to MaxNameLength characters.
func TruncateName(name string) string {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) <= MaxNameLength {
		return name
	}

	return string([]rune(name)[:MaxNameLength])
}
