package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/rocketscienceinc/uril/internal/apperror"
	"github.com/rocketscienceinc/uril/internal/entity"
	"github.com/rocketscienceinc/uril/internal/uril"
)

func newGame(t *testing.T, grid entity.Grid, scores [2]int, turn int) *uril.Game {
	t.Helper()

	game, err := uril.NewGameFromPosition(uril.Position{Grid: grid, Scores: scores, Turn: turn},
		entity.NewPlayer("A", entity.ModeHuman, nil),
		entity.NewPlayer("B", entity.ModeHuman, nil),
		nil,
	)
	require.NoError(t, err)

	return game
}

func rows(top, bottom [entity.Width]int) entity.Grid {
	return entity.Grid{top, bottom}
}

// randomPositions plays seeded random games and collects the running positions on the way.
func randomPositions(t *testing.T, seed uint64, count int) []*uril.Game {
	t.Helper()

	rng := rand.New(rand.NewSource(seed))
	random := NewRandom(rng)

	var games []*uril.Game
	for len(games) < count {
		game := newGame(t, entity.InitialGrid(), [2]int{}, 0)
		plies := rng.Intn(40)

		for i := 0; i < plies && !game.HasEnded(); i++ {
			playable, err := game.ValidatePlayable()
			require.NoError(t, err)
			if !playable {
				continue
			}

			column, err := random.ChooseColumn(game)
			require.NoError(t, err)
			_, err = game.PlayTurn(column)
			require.NoError(t, err)
		}

		if game.HasEnded() {
			continue
		}

		if playable, err := game.ValidatePlayable(); err != nil || !playable {
			continue
		}

		if game.OpposingPlayer().Score() >= ResignScore {
			continue
		}

		position := game.Position()
		games = append(games, newGame(t, position.Grid, position.Scores, position.Turn))
	}

	return games
}

func TestNew(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	t.Run("Builds a strategy for every computer mode", func(t *testing.T) {
		for _, mode := range []entity.Mode{entity.ModeRandom, entity.ModeGreedy, entity.ModeDefensive, entity.ModeMinMax} {
			strategy, err := New(mode, rng, WithDepth(3))
			require.NoError(t, err)
			assert.NotNil(t, strategy)
		}
	})

	t.Run("Depth option reaches MinMax", func(t *testing.T) {
		strategy, err := New(entity.ModeMinMax, rng, WithDepth(3))
		require.NoError(t, err)

		minMax, ok := strategy.(*MinMax)
		require.True(t, ok)
		assert.Equal(t, 3, minMax.Depth())
	})

	t.Run("Error on human mode", func(t *testing.T) {
		_, err := New(entity.ModeHuman, rng)
		require.ErrorIs(t, err, apperror.ErrHumanMode)
	})

	t.Run("Error on unknown mode", func(t *testing.T) {
		_, err := New(entity.Mode("oracle"), rng)
		require.ErrorIs(t, err, apperror.ErrUnknownMode)
	})
}

func TestStrategies_LeaveGameUnchanged(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	strategies := map[string]Strategy{
		"random":    NewRandom(rng),
		"greedy":    NewGreedy(),
		"defensive": NewDefensive(),
		"minmax":    NewMinMax(rng, WithDepth(4)),
	}

	for name, strategy := range strategies {
		t.Run(name, func(t *testing.T) {
			for _, game := range randomPositions(t, 11, 20) {
				// Given: a running position
				before := game.Position()

				// When: the strategy chooses a column
				column, err := strategy.ChooseColumn(game)
				require.NoError(t, err)

				// Then: the column is legal and the game is untouched
				assert.Equal(t, before, game.Position())
				assert.Zero(t, game.HistoryDepth())

				seeds, err := game.Board().PitSeeds(game.Turn(), column)
				require.NoError(t, err)
				assert.Positive(t, seeds)
			}
		})
	}
}

func TestStrategies_NoLegalMove(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	// Given: a game that has ended
	grid := rows([entity.Width]int{1, 0, 0, 0, 0, 0}, [entity.Width]int{1, 0, 0, 0, 0, 0})
	game := newGame(t, grid, [2]int{11, 12}, 0)
	require.True(t, game.HasEnded())

	for _, strategy := range []Strategy{NewRandom(rng), NewGreedy(), NewDefensive()} {
		// When: a column is requested
		_, err := strategy.ChooseColumn(game)

		// Then: ErrNoLegalMove is returned
		require.ErrorIs(t, err, apperror.ErrNoLegalMove)
	}
}

func TestRandom_ChooseColumn(t *testing.T) {
	t.Run("Only legal column is always chosen", func(t *testing.T) {
		// Given: A can only play column 3
		grid := rows([entity.Width]int{0, 0, 0, 2, 0, 0}, [entity.Width]int{4, 4, 4, 4, 4, 4})
		game := newGame(t, grid, [2]int{5, 6}, 0)
		random := NewRandom(rand.New(rand.NewSource(5)))

		for i := 0; i < 20; i++ {
			// When: a column is chosen
			column, err := random.ChooseColumn(game)

			// Then: it is column 3
			require.NoError(t, err)
			assert.Equal(t, 3, column)
		}
	})

	t.Run("Same seed gives the same choices", func(t *testing.T) {
		// Given: two random strategies with the same seed
		first := NewRandom(rand.New(rand.NewSource(99)))
		second := NewRandom(rand.New(rand.NewSource(99)))
		game := newGame(t, entity.InitialGrid(), [2]int{}, 0)

		for i := 0; i < 20; i++ {
			a, err := first.ChooseColumn(game)
			require.NoError(t, err)
			b, err := second.ChooseColumn(game)
			require.NoError(t, err)

			// Then: both choose the same column
			assert.Equal(t, a, b)
		}
	})
}

func TestGreedy_ChooseColumn(t *testing.T) {
	t.Run("Lowest column wins a tie", func(t *testing.T) {
		// Given: columns 4 and 5 both capture two pairs
		grid := rows([entity.Width]int{0, 0, 0, 0, 3, 2}, [entity.Width]int{6, 4, 4, 1, 1, 1})
		game := newGame(t, grid, [2]int{6, 7}, 0)

		// When: Greedy chooses
		column, err := NewGreedy().ChooseColumn(game)

		// Then: column 4 is taken
		require.NoError(t, err)
		assert.Equal(t, 4, column)
	})

	t.Run("Most pairs win", func(t *testing.T) {
		// Given: column 4 captures one pair and column 5 two
		grid := rows([entity.Width]int{0, 0, 0, 0, 2, 2}, [entity.Width]int{5, 4, 4, 1, 1, 1})
		game := newGame(t, grid, [2]int{7, 7}, 0)

		// When: Greedy chooses
		column, err := NewGreedy().ChooseColumn(game)

		// Then: column 5 is taken
		require.NoError(t, err)
		assert.Equal(t, 5, column)
	})

	t.Run("Plays the first legal column without captures", func(t *testing.T) {
		// Given: B to move on a fresh board, no capture anywhere
		game := newGame(t, entity.InitialGrid(), [2]int{}, 1)

		// When: Greedy chooses
		column, err := NewGreedy().ChooseColumn(game)

		// Then: column 0 is taken
		require.NoError(t, err)
		assert.Equal(t, 0, column)
	})
}

func TestDefensive_ChooseColumn(t *testing.T) {
	t.Run("Leaves the fewest single seeds", func(t *testing.T) {
		// Given: only column 4 leaves a single exposed seed
		grid := rows([entity.Width]int{1, 0, 0, 0, 1, 2}, [entity.Width]int{3, 3, 3, 3, 3, 3})
		game := newGame(t, grid, [2]int{6, 7}, 0)

		// When: Defensive chooses
		column, err := NewDefensive().ChooseColumn(game)

		// Then: column 4 is taken
		require.NoError(t, err)
		assert.Equal(t, 4, column)
	})

	t.Run("Counts the row of player B when B moves", func(t *testing.T) {
		// Given: B to move with three candidate columns
		grid := rows([entity.Width]int{3, 3, 3, 3, 3, 3}, [entity.Width]int{0, 1, 2, 1, 0, 0})
		game := newGame(t, grid, [2]int{7, 6}, 1)

		// When: Defensive chooses
		column, err := NewDefensive().ChooseColumn(game)

		// Then: column 3 is taken, it turns (1,2) into 3 and leaves only (1,1)
		require.NoError(t, err)
		assert.Equal(t, 3, column)
	})
}

func TestMinMax_Resigns(t *testing.T) {
	t.Run("Falls back once the opponent reaches the resign score", func(t *testing.T) {
		// Given: B already holds 11 pairs
		grid := rows([entity.Width]int{4, 4, 4, 0, 0, 0}, [entity.Width]int{0, 0, 0, 0, 0, 2})
		game := newGame(t, grid, [2]int{6, ResignScore}, 0)
		fallback := &fixedStrategy{column: 2}
		collector := NewMetricsCollector()
		minMax := NewMinMax(nil, WithDepth(4), WithFallback(fallback), WithMetrics(collector))

		// When: MinMax chooses for A
		column, err := minMax.ChooseColumn(game)

		// Then: the fallback decided and no node was searched
		require.NoError(t, err)
		assert.Equal(t, 2, column)
		assert.Equal(t, 1, fallback.calls)
		assert.True(t, minMax.LastSearch().Resigned)
		assert.Zero(t, minMax.LastSearch().Nodes)
	})

	t.Run("Searches below the resign score", func(t *testing.T) {
		// Given: B holds 10 pairs
		grid := rows([entity.Width]int{4, 4, 4, 0, 0, 0}, [entity.Width]int{0, 0, 0, 0, 2, 4})
		game := newGame(t, grid, [2]int{5, ResignScore - 1}, 0)
		fallback := &fixedStrategy{column: 2}
		minMax := NewMinMax(nil, WithDepth(3), WithFallback(fallback), WithMetrics(NewMetricsCollector()))

		// When: MinMax chooses for A
		_, err := minMax.ChooseColumn(game)

		// Then: the search ran
		require.NoError(t, err)
		assert.Zero(t, fallback.calls)
		assert.False(t, minMax.LastSearch().Resigned)
		assert.Positive(t, minMax.LastSearch().Nodes)
	})
}

func TestMinMax_ChooseColumn(t *testing.T) {
	t.Run("Takes the winning capture", func(t *testing.T) {
		// Given: column 5 captures the pair that ends the game with A ahead
		grid := rows([entity.Width]int{2, 0, 0, 0, 0, 1}, [entity.Width]int{0, 0, 0, 0, 0, 1})
		game := newGame(t, grid, [2]int{12, 10}, 0)

		// When: MinMax chooses
		column, err := NewMinMax(nil, WithDepth(2)).ChooseColumn(game)

		// Then: column 5 is taken
		require.NoError(t, err)
		assert.Equal(t, 5, column)
	})

	t.Run("Depth below one is searched at depth one", func(t *testing.T) {
		minMax := NewMinMax(nil, WithDepth(0))
		assert.Equal(t, DefaultDepth, minMax.Depth())
	})
}

func TestMinMax_MatchesUnprunedSearch(t *testing.T) {
	for depth := 1; depth <= 4; depth++ {
		minMax := NewMinMax(nil, WithDepth(depth))

		for i, game := range randomPositions(t, uint64(depth), 25) {
			// When: both searches choose on the same position
			expected := referenceChoose(t, game, depth)
			actual, err := minMax.ChooseColumn(game)

			// Then: pruning does not change the decision
			require.NoError(t, err)
			assert.Equal(t, expected, actual, "depth %d position %d: %v", depth, i, game.Position())
		}
	}
}

type fixedStrategy struct {
	column int
	calls  int
}

func (that *fixedStrategy) ChooseColumn(Controller) (int, error) {
	that.calls++
	return that.column, nil
}

func referenceChoose(t *testing.T, game *uril.Game, depth int) int {
	t.Helper()

	maximizer := game.Turn()
	best, bestValue := -1, 0

	for column := 0; column < entity.Width; column++ {
		pairs, err := game.PlayTurn(column)
		require.NoError(t, err)
		if pairs == uril.Rejected {
			continue
		}

		var value int
		if game.HasEnded() {
			value = evaluate(game, maximizer)
		} else {
			playable, err := game.ValidatePlayable()
			require.NoError(t, err)
			value = referenceSearch(t, game, maximizer, !playable, depth)
		}

		require.NoError(t, game.UndoTurn())

		if best < 0 || value > bestValue {
			best, bestValue = column, value
		}
	}

	return best
}

func referenceSearch(t *testing.T, game *uril.Game, maximizer int, maximizing bool, depth int) int {
	t.Helper()

	found := false
	best := 0

	for column := 0; column < entity.Width; column++ {
		pairs, err := game.PlayTurn(column)
		require.NoError(t, err)
		if pairs == uril.Rejected {
			continue
		}

		var value int
		if game.HasEnded() || depth-1 <= 0 {
			value = evaluate(game, maximizer)
		} else {
			playable, err := game.ValidatePlayable()
			require.NoError(t, err)
			value = referenceSearch(t, game, maximizer, maximizing != playable, depth-1)
		}

		require.NoError(t, game.UndoTurn())

		if !found || (maximizing && value > best) || (!maximizing && value < best) {
			best, found = value, true
		}
	}

	return best
}
