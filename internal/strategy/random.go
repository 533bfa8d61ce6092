package strategy

import (
	"time"

	"golang.org/x/exp/rand"

	"github.com/rocketscienceinc/uril/internal/apperror"
	"github.com/rocketscienceinc/uril/internal/entity"
)

type Random struct {
	rng *rand.Rand
}

// NewRandom falls back to a time seeded source when rng is nil.
func NewRandom(rng *rand.Rand) *Random {
	if rng == nil {
		rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}

	return &Random{rng: rng}
}

// ChooseColumn samples columns uniformly until one is accepted.
func (that *Random) ChooseColumn(game Controller) (int, error) {
	if !hasLegalMove(game) {
		return 0, apperror.ErrNoLegalMove
	}

	for {
		column := that.rng.Intn(entity.Width)

		accepted, err := probe(game, column, func(int) error { return nil })
		if err != nil {
			return 0, err
		}

		if accepted {
			return column, nil
		}
	}
}
