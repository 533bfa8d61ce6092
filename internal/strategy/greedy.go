package strategy

import (
	"github.com/rocketscienceinc/uril/internal/apperror"
	"github.com/rocketscienceinc/uril/internal/entity"
)

// Greedy picks the column capturing the most pairs right away.
type Greedy struct{}

func NewGreedy() *Greedy {
	return &Greedy{}
}

func (that *Greedy) ChooseColumn(game Controller) (int, error) {
	best, bestPairs := -1, -1

	for column := 0; column < entity.Width; column++ {
		_, err := probe(game, column, func(pairs int) error {
			if pairs > bestPairs {
				best, bestPairs = column, pairs
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
