package apperror

import "errors"

var (
	ErrInvalidPit      = errors.New("invalid pit coordinates")
	ErrGameNotEnded    = errors.New("game has not ended")
	ErrEmptyHistory    = errors.New("no turn to undo")
	ErrNoLegalMove     = errors.New("no legal move available")
	ErrUnknownMode     = errors.New("unknown player mode")
	ErrHumanMode       = errors.New("human players have no strategy")
	ErrHumanInHeadless = errors.New("human players cannot play headless")
)
