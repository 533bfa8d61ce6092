package strategy

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"github.com/rocketscienceinc/uril/internal/apperror"
	"github.com/rocketscienceinc/uril/internal/entity"
	"github.com/rocketscienceinc/uril/internal/uril"
)

const (
	DefaultDepth = 1

	// WinValue is the evaluation of a decided game, half the seeds on the board.
	WinValue = entity.TotalSeeds / 2

	// ResignScore is the opponent score from which the search gives up.
	ResignScore = (entity.TotalSeeds - entity.EndSeeds) / 4
)

type Option func(m *MinMax)

func WithDepth(depth int) Option {
	return func(m *MinMax) {
		if depth > 0 {
			m.depth = depth
		}
	}
}

func WithMetrics(collector MetricsCollector) Option {
	return func(m *MinMax) {
		if collector != nil {
			m.metrics = collector
		}
	}
}

func WithFallback(fallback Strategy) Option {
	return func(m *MinMax) {
		if fallback != nil {
			m.fallback = fallback
		}
	}
}

// MinMax searches the game tree with alpha-beta pruning. Once the opponent can no
// longer be caught up it resigns and plays like Random.
type MinMax struct {
	depth    int
	fallback Strategy
	metrics  MetricsCollector
	last     SearchMetrics
}

func NewMinMax(rng *rand.Rand, options ...Option) *MinMax {
	m := &MinMax{
		depth:   DefaultDepth,
		metrics: NewNoMetricsCollector(),
	}
	for _, option := range options {
		option(m)
	}

	if m.fallback == nil {
		m.fallback = NewRandom(rng)
	}

	return m
}

func (that *MinMax) Depth() int {
	return that.depth
}

// LastSearch returns the metrics of the previous ChooseColumn call.
func (that *MinMax) LastSearch() SearchMetrics {
	return that.last
}

func (that *MinMax) ChooseColumn(game Controller) (int, error) {
	that.metrics.Start()
	defer func() {
		that.last = that.metrics.Complete()
	}()

	if game.OpposingPlayer().Score() >= ResignScore {
		that.metrics.Resign()

		return that.fallback.ChooseColumn(game)
	}

	maximizer := game.Turn()
	best, bestValue := -1, math.MinInt

	for column := 0; column < entity.Width; column++ {
		_, err := probe(game, column, func(int) error {
			value, err := that.child(game, maximizer, that.depth, bestValue, math.MaxInt)
			if err != nil {
				return err
			}

			if value > bestValue || best < 0 {
				best, bestValue = column, value
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

// child values the position right after a probe at the root.
func (that *MinMax) child(game Controller, maximizer, depth, alpha, beta int) (int, error) {
	if game.HasEnded() {
		return evaluate(game, maximizer), nil
	}

	playable, err := game.ValidatePlayable()
	if err != nil {
		return 0, fmt.Errorf("failed to validate position: %w", err)
	}

	// the mover keeps the turn when the opponent has to pass
	return that.search(game, maximizer, !playable, depth, alpha, beta)
}

// search is a fail-hard alpha-beta node. The value never leaves [alpha, beta].
func (that *MinMax) search(game Controller, maximizer int, maximizing bool, depth, alpha, beta int) (int, error) {
	that.metrics.AddNode()

	value := beta
	if maximizing {
		value = alpha
	}

	for column := 0; column < entity.Width; column++ {
		pairs, err := game.PlayTurn(column)
		if err != nil {
			return 0, fmt.Errorf("failed to search column %d: %w", column, err)
		}

		if pairs == uril.Rejected {
			continue
		}

		var childValue int
		if game.HasEnded() || depth-1 <= 0 {
			childValue = evaluate(game, maximizer)
		} else {
			playable, err := game.ValidatePlayable()
			if err != nil {
				return 0, fmt.Errorf("failed to validate position: %w", err)
			}

			// roles swap only when the next player can move
			nextMaximizing := maximizing != playable
			if maximizing {
				childValue, err = that.search(game, maximizer, nextMaximizing, depth-1, value, beta)
			} else {
				childValue, err = that.search(game, maximizer, nextMaximizing, depth-1, alpha, value)
			}

			if err != nil {
				return 0, err
			}
		}

		if err = game.UndoTurn(); err != nil {
			return 0, fmt.Errorf("failed to undo column %d: %w", column, err)
		}

		if maximizing && childValue > value {
			value = childValue
			if value >= beta {
				that.metrics.AddCutoff()
				break
			}
		}

		if !maximizing && childValue < value {
			value = childValue
			if value <= alpha {
				that.metrics.AddCutoff()
				break
			}
		}
	}

	return value, nil
}

// evaluate scores the position for the maximizer: the score lead, or WinValue once decided.
func evaluate(game Controller, maximizer int) int {
	if game.HasEnded() {
		if winner, err := game.Winner(); err == nil {
			if winner == game.Player(maximizer) {
				return WinValue
			}

			return -WinValue
		}
	}

	return game.Player(maximizer).Score() - game.Player(1-maximizer).Score()
}
