package strategy

import (
	"github.com/rocketscienceinc/uril/internal/apperror"
	"github.com/rocketscienceinc/uril/internal/entity"
)

// Defensive picks the column leaving the fewest single seeds in the mover's row
// for the opponent to capture.
type Defensive struct{}

func NewDefensive() *Defensive {
	return &Defensive{}
}

func (that *Defensive) ChooseColumn(game Controller) (int, error) {
	best, fewest := -1, entity.Height*entity.Width

	for column := 0; column < entity.Width; column++ {
		_, err := probe(game, column, func(int) error {
			exposed, err := singleSeeds(game.Board(), 1-game.Turn())
			if err != nil {
				return err
			}

			if exposed < fewest {
				best, fewest = column, exposed
			}

			return nil
		})
		if err != nil {
			return 0, err
		}
	}

	if best < 0 {
		return 0, apperror.ErrNoLegalMove
	}

	return best, nil
}

func singleSeeds(board *entity.Board, row int) (int, error) {
	count := 0
	for column := 0; column < entity.Width; column++ {
		seeds, err := board.PitSeeds(row, column)
		if err != nil {
			return 0, err
		}

		if seeds == 1 {
			count++
		}
	}

	return count, nil
}
