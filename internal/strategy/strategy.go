package strategy

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/rocketscienceinc/uril/internal/apperror"
	"github.com/rocketscienceinc/uril/internal/entity"
	"github.com/rocketscienceinc/uril/internal/uril"
)

// Controller is the part of the game a strategy may use. Every probe made through it
// is undone before ChooseColumn returns.
type Controller interface {
	PlayTurn(column int) (int, error)
	UndoTurn() error
	ValidatePlayable() (bool, error)
	HasEnded() bool
	Turn() int
	Winner() (*entity.Player, error)
	Board() *entity.Board
	Player(index int) *entity.Player
	OpposingPlayer() *entity.Player
}

type Strategy interface {
	ChooseColumn(game Controller) (int, error)
}

// New returns the strategy playing for the given mode. Options only affect MinMax.
func New(mode entity.Mode, rng *rand.Rand, options ...Option) (Strategy, error) {
	switch mode {
	case entity.ModeRandom:
		return NewRandom(rng), nil
	case entity.ModeGreedy:
		return NewGreedy(), nil
	case entity.ModeDefensive:
		return NewDefensive(), nil
	case entity.ModeMinMax:
		return NewMinMax(rng, options...), nil
	case entity.ModeHuman:
		return nil, apperror.ErrHumanMode
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownMode, mode)
	}
}

func hasLegalMove(game Controller) bool {
	if game.HasEnded() {
		return false
	}

	for column := 0; column < entity.Width; column++ {
		if seeds, err := game.Board().PitSeeds(game.Turn(), column); err == nil && seeds > 0 {
			return true
		}
	}

	return false
}

// probe plays the column, runs inspect on the resulting position and undoes the move.
// It reports false when the move was rejected.
func probe(game Controller, column int, inspect func(pairs int) error) (bool, error) {
	pairs, err := game.PlayTurn(column)
	if err != nil {
		return false, fmt.Errorf("failed to probe column %d: %w", column, err)
	}

	if pairs == uril.Rejected {
		return false, nil
	}

	inspectErr := inspect(pairs)

	if err = game.UndoTurn(); err != nil {
		return true, fmt.Errorf("failed to undo probe of column %d: %w", column, err)
	}

	return true, inspectErr
}
