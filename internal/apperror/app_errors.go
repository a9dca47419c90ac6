package apperror

import (
	"errors"
	"fmt"
)

var ErrInvalidMove = errors.New("invalid move")

// Every move rejection wraps ErrInvalidMove, so callers can match the whole class at once.
var (
	ErrGameFinished = fmt.Errorf("%w: game is already finished", ErrInvalidMove)
	ErrNotYourTurn  = fmt.Errorf("%w: it's not your turn", ErrInvalidMove)
	ErrCellOccupied = fmt.Errorf("%w: cell is already occupied", ErrInvalidMove)
	ErrInvalidCell  = fmt.Errorf("%w: invalid cell index", ErrInvalidMove)
	ErrInvalidMark  = fmt.Errorf("%w: invalid mark", ErrInvalidMove)
)

var (
	ErrNotFound          = errors.New("not found")
	ErrMalformedStats    = errors.New("malformed stats record")
	ErrInvalidName       = errors.New("invalid player name")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrUnknownSide       = errors.New("unknown side")
)
