package ui

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/uril/internal/entity"
	"github.com/rocketscienceinc/uril/internal/uril"
	"github.com/rocketscienceinc/uril/internal/usecase"
)

// newTestView drops queued updates, the application is never started.
func newTestView() *GameView {
	view := NewGameView(tview.NewApplication(),
		[2]string{"Alice", "Bob"},
		[2]entity.Mode{entity.ModeHuman, entity.ModeMinMax},
		uril.Position{Grid: entity.InitialGrid()},
	)
	view.queue = func(func()) {}

	return view
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestGameView_Apply(t *testing.T) {
	t.Run("Board changes are drawn with row 0 on top", func(t *testing.T) {
		// Given: a fresh view
		view := newTestView()

		grid := entity.InitialGrid()
		grid[0][2] = 0
		grid[0][3], grid[0][4], grid[0][5], grid[1][5] = 5, 5, 5, 5

		// When: a board change arrives
		view.apply(entity.Event{Kind: entity.EventBoardChanged, Grid: grid, Pits: []entity.Pit{{Row: 0, Column: 2}, {Row: 1, Column: 5}}})

		// Then: the table shows the new seeds next to the player labels
		assert.Equal(t, "Alice (Human)", view.board.GetCell(0, 0).Text)
		assert.Equal(t, "Bob (Optimal)", view.board.GetCell(1, 0).Text)
		assert.Equal(t, "  0", view.board.GetCell(0, 3).Text)
		assert.Equal(t, "  5", view.board.GetCell(1, 6).Text)
		assert.Equal(t, tcell.ColorYellow, view.board.GetCell(1, 6).Color)
	})

	t.Run("Scores and turn show up in the status", func(t *testing.T) {
		// Given: a fresh view
		view := newTestView()

		// When: Bob scores and gets the turn
		view.apply(entity.Event{Kind: entity.EventScoreChanged, Player: "Bob", Score: 4})
		view.apply(entity.Event{Kind: entity.EventTurnChanged, Turn: 1})

		// Then: the status reflects both
		assert.Equal(t, [2]int{0, 4}, view.scores)
		assert.Equal(t, 1, view.turn)
		assert.Contains(t, view.statusText(), "Bob (Optimal): [::b]4")
	})

	t.Run("Turn count shows up in the status", func(t *testing.T) {
		// Given: a fresh view
		view := newTestView()

		// When: the session counts its twelfth turn
		view.apply(entity.Event{Kind: entity.EventTurnCounted, Turns: 12})

		// Then: the status shows it
		assert.Contains(t, view.statusText(), "Turn 12")
	})

	t.Run("Reset clears the result", func(t *testing.T) {
		// Given: a view showing a result
		view := newTestView()
		view.result.SetText("Alice wins")

		// When: the board is reset
		view.apply(entity.Event{Kind: entity.EventBoardReset, Grid: entity.InitialGrid()})

		// Then: the result is gone
		assert.Empty(t, view.result.GetText(true))
		assert.Nil(t, view.last)
	})
}

func TestGameView_NextColumn(t *testing.T) {
	t.Run("Digit keys deliver the column", func(t *testing.T) {
		// Given: a view waiting for the human player
		view := newTestView()
		done := make(chan int, 1)
		go func() {
			column, err := view.NextColumn(context.Background())
			if err == nil {
				done <- column
			}
		}()

		require.Eventually(t, view.awaiting.Load, time.Second, time.Millisecond)

		// When: key 3 is pressed
		assert.Nil(t, view.handleKey(runeKey('3')))

		// Then: column 2 is delivered
		select {
		case column := <-done:
			assert.Equal(t, 2, column)
		case <-time.After(time.Second):
			t.Fatal("no column delivered")
		}
	})

	t.Run("Arrow keys move the cursor", func(t *testing.T) {
		// Given: a fresh view
		view := newTestView()

		// When: moving left from the first column
		view.handleKey(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))

		// Then: the cursor wraps around
		assert.Equal(t, entity.Width-1, view.cursor)

		view.handleKey(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
		assert.Zero(t, view.cursor)
	})

	t.Run("Keys are ignored while nobody waits", func(t *testing.T) {
		// Given: a view without a pending request
		view := newTestView()

		// When: a column key is pressed
		view.handleKey(runeKey('1'))

		// Then: nothing was queued
		assert.Empty(t, view.columns)
	})

	t.Run("Canceled context stops waiting", func(t *testing.T) {
		// Given: a canceled context
		view := newTestView()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// When: NextColumn is called
		_, err := view.NextColumn(ctx)

		// Then: the context error is returned
		require.ErrorIs(t, err, context.Canceled)
		assert.False(t, view.awaiting.Load())
	})
}

func TestGameView_Restarts(t *testing.T) {
	// Given: a fresh view
	view := newTestView()

	// When: r is pressed twice
	view.handleKey(runeKey('r'))
	view.handleKey(runeKey('r'))

	// Then: a single restart is pending
	assert.Len(t, view.Restarts(), 1)
}

func TestNewGameView_Position(t *testing.T) {
	// Given: a loaded position with B to move
	position := uril.Position{
		Grid:   entity.Grid{{0, 0, 0, 0, 3, 2}, {6, 4, 4, 1, 1, 1}},
		Scores: [2]int{6, 7},
		Turn:   1,
	}

	// When: the view is built from it
	view := NewGameView(tview.NewApplication(),
		[2]string{"Alice", "Bob"},
		[2]entity.Mode{entity.ModeGreedy, entity.ModeMinMax},
		position,
	)

	// Then: board, scores and turn match the position
	assert.Equal(t, "  3", view.board.GetCell(0, 5).Text)
	assert.Equal(t, [2]int{6, 7}, view.scores)
	assert.Equal(t, 1, view.turn)
}

func TestGameView_Modes(t *testing.T) {
	t.Run("Keys a and b pick the next mode", func(t *testing.T) {
		// Given: Alice is human and Bob optimal
		view := newTestView()

		// When: a is pressed once and b twice
		assert.Nil(t, view.handleKey(runeKey('a')))
		view.handleKey(runeKey('b'))
		view.handleKey(runeKey('b'))

		// Then: both follow the order of entity.Modes for the next game
		assert.Equal(t, [2]entity.Mode{entity.ModeHuman.Next(), entity.ModeMinMax.Next().Next()}, view.Modes())
		assert.Equal(t, "Alice (Human, next Optimal)", view.board.GetCell(0, 0).Text)
	})

	t.Run("Running modes change on ShowModes", func(t *testing.T) {
		// Given: a view that applies queued updates at once
		view := newTestView()
		view.queue = func(update func()) { update() }
		view.handleKey(runeKey('a'))

		// When: the new game starts with the picked modes
		view.ShowModes(view.Modes())

		// Then: the label no longer shows a pending change
		assert.Equal(t, "Alice (Optimal)", view.board.GetCell(0, 0).Text)
	})
}

func TestFormatResult(t *testing.T) {
	// Given: a finished game with statistics
	result := &usecase.Result{
		Record: &entity.GameRecord{
			Turns:  31,
			Winner: entity.PlayerResult{Name: "Bob", Mode: entity.ModeMinMax, Score: 14},
			Loser:  entity.PlayerResult{Name: "Alice", Mode: entity.ModeHuman, Score: 9},
		},
		Statistics: &entity.Statistics{
			GamesPlayed:  2,
			AverageTurns: 30,
			Modes:        []entity.ModeRecord{{Mode: entity.ModeMinMax, Wins: 2}},
		},
	}

	// When: the result is formatted
	text := formatResult(result)

	// Then: winner, score and statistics are listed
	assert.Contains(t, text, "Bob wins")
	assert.Contains(t, text, "14:9 after 31 turns")
	assert.Contains(t, text, "Games played: 2")
	assert.Contains(t, text, "Optimal")
	assert.NotContains(t, text, "Recent games")
	assert.Empty(t, formatResult(nil))

	// When: recent games are listed as well
	result.RecentGames = []*entity.GameRecord{result.Record, {
		Turns:  20,
		Winner: entity.PlayerResult{Name: "Alice", Mode: entity.ModeHuman, Score: 12},
		Loser:  entity.PlayerResult{Name: "Bob", Mode: entity.ModeHuman, Score: 12},
		Tie:    true,
	}}
	text = formatResult(result)

	// Then: each one gets a line
	assert.Contains(t, text, "Recent games")
	assert.Contains(t, text, "Bob (Optimal) beat Alice (Human) 14:9 in 31 turns")
	assert.Contains(t, text, "tie 12:12 in 20 turns")
}
