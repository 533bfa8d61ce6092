// Package ui renders a running game in the terminal and reads human moves.
package ui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/rocketscienceinc/uril/internal/entity"
	"github.com/rocketscienceinc/uril/internal/uril"
	"github.com/rocketscienceinc/uril/internal/usecase"
)

const helpText = "[dimgray]←/→ select  enter/1-6 play  a/b change player  r restart  q quit[-]"

// GameView shows the board with row 0 on top, so seeds travel clockwise on screen.
type GameView struct {
	app    *tview.Application
	queue  func(update func())
	layout *tview.Flex
	board  *tview.Table
	status *tview.TextView
	result *tview.TextView

	names  [2]string
	modes  [2]entity.Mode
	grid   entity.Grid
	scores [2]int
	turn   int
	turns  int
	last   []entity.Pit
	cursor int

	// next holds the modes picked for the next game
	mu   sync.Mutex
	next [2]entity.Mode

	awaiting atomic.Bool
	columns  chan int
	restarts chan struct{}
}

func NewGameView(app *tview.Application, names [2]string, modes [2]entity.Mode, position uril.Position) *GameView {
	view := &GameView{
		app:      app,
		board:    tview.NewTable(),
		status:   tview.NewTextView(),
		result:   tview.NewTextView(),
		names:    names,
		modes:    modes,
		next:     modes,
		grid:     position.Grid,
		scores:   position.Scores,
		turn:     position.Turn,
		columns:  make(chan int, 1),
		restarts: make(chan struct{}, 1),
	}

	view.queue = func(update func()) {
		app.QueueUpdateDraw(update)
	}

	view.board.SetBorders(true)
	view.board.SetSelectable(false, false)
	view.board.SetBorder(true)
	view.board.SetTitle(" Uril ")

	view.status.SetDynamicColors(true)
	view.result.SetDynamicColors(true)

	help := tview.NewTextView().SetDynamicColors(true).SetText(helpText)

	view.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(view.board, 2*entity.Height+3, 0, true).
		AddItem(view.status, entity.Height+1, 0, false).
		AddItem(view.result, 0, 1, false).
		AddItem(help, 1, 0, false)

	view.layout.SetInputCapture(view.handleKey)
	view.render()

	return view
}

// Root returns the top level primitive.
func (that *GameView) Root() tview.Primitive {
	return that.layout
}

// Restarts delivers a value whenever the player asks for a new game.
func (that *GameView) Restarts() <-chan struct{} {
	return that.restarts
}

// Modes returns the player modes picked for the next game.
func (that *GameView) Modes() [2]entity.Mode {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.next
}

// ShowModes updates the modes of the players in the running game.
func (that *GameView) ShowModes(modes [2]entity.Mode) {
	that.queue(func() {
		that.modes = modes
		that.render()
	})
}

// Listen is a notify listener. It may be called from any goroutine.
func (that *GameView) Listen(event entity.Event) {
	that.queue(func() {
		that.apply(event)
	})
}

// NextColumn blocks until the human player picks a column.
func (that *GameView) NextColumn(ctx context.Context) (int, error) {
	select {
	case <-that.columns:
	default:
	}

	that.awaiting.Store(true)
	defer that.awaiting.Store(false)

	that.queue(that.render)

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case column := <-that.columns:
		return column, nil
	}
}

// ShowResult prints the outcome of a finished game and the running statistics.
func (that *GameView) ShowResult(result *usecase.Result) {
	that.queue(func() {
		that.result.SetText(formatResult(result))
	})
}

func (that *GameView) apply(event entity.Event) {
	switch event.Kind {
	case entity.EventBoardChanged:
		that.grid = event.Grid
		that.last = event.Pits
	case entity.EventBoardReset:
		that.grid = event.Grid
		that.last = nil
		that.result.SetText("")
	case entity.EventScoreChanged:
		for i, name := range that.names {
			if name == event.Player {
				that.scores[i] = event.Score
			}
		}
	case entity.EventTurnChanged:
		that.turn = event.Turn
	case entity.EventTurnCounted:
		that.turns = event.Turns
	}

	that.render()
}

func (that *GameView) handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyLeft:
		that.moveCursor(-1)
		return nil
	case tcell.KeyRight:
		that.moveCursor(1)
		return nil
	case tcell.KeyEnter:
		that.submit(that.cursor)
		return nil
	case tcell.KeyRune:
		switch r := event.Rune(); {
		case r == 'q':
			that.app.Stop()
			return nil
		case r == 'a' || r == 'b':
			that.cycleMode(int(r - 'a'))
			return nil
		case r == 'r':
			select {
			case that.restarts <- struct{}{}:
			default:
			}
			return nil
		case r >= '1' && r < '1'+entity.Width:
			that.cursor = int(r - '1')
			that.submit(that.cursor)
			return nil
		}
	}

	return event
}

func (that *GameView) cycleMode(player int) {
	that.mu.Lock()
	that.next[player] = that.next[player].Next()
	that.mu.Unlock()

	that.render()
}

func (that *GameView) moveCursor(step int) {
	// row 1 is drawn in the same column order, only sown the other way
	that.cursor = (that.cursor + step + entity.Width) % entity.Width
	that.render()
}

func (that *GameView) submit(column int) {
	if !that.awaiting.Load() {
		return
	}

	select {
	case that.columns <- column:
	default:
	}
}

func (that *GameView) render() {
	highlighted := make(map[entity.Pit]bool, len(that.last))
	for _, pit := range that.last {
		highlighted[pit] = true
	}

	for row := 0; row < entity.Height; row++ {
		that.board.SetCell(row, 0, tview.NewTableCell(that.playerLabel(row)).
			SetTextColor(that.playerColor(row)).
			SetAlign(tview.AlignLeft))

		for column := 0; column < entity.Width; column++ {
			cell := tview.NewTableCell(fmt.Sprintf("%3d", that.grid[row][column])).
				SetAlign(tview.AlignCenter).
				SetExpansion(1)

			if highlighted[entity.Pit{Row: row, Column: column}] {
				cell.SetTextColor(tcell.ColorYellow)
			}

			if that.awaiting.Load() && row == that.turn && column == that.cursor {
				cell.SetAttributes(tcell.AttrReverse)
			}

			that.board.SetCell(row, column+1, cell)
		}
	}

	that.status.SetText(that.statusText())
}

func (that *GameView) playerLabel(row int) string {
	next := that.Modes()[row]
	if next != that.modes[row] {
		return fmt.Sprintf("%s (%s, next %s)", that.names[row], that.modes[row].Label(), next.Label())
	}

	return fmt.Sprintf("%s (%s)", that.names[row], that.modes[row].Label())
}

func (that *GameView) playerColor(row int) tcell.Color {
	if row == that.turn {
		return tcell.ColorGreen
	}

	return tcell.ColorWhite
}

func (that *GameView) statusText() string {
	var text strings.Builder

	fmt.Fprintf(&text, "  Turn %d\n", that.turns)

	for i := range that.names {
		marker := " "
		if i == that.turn {
			marker = "[green]>[-]"
		}

		fmt.Fprintf(&text, "%s %s: [::b]%d[::-]\n", marker, that.playerLabel(i), that.scores[i])
	}

	return text.String()
}

func formatResult(result *usecase.Result) string {
	if result == nil || result.Record == nil {
		return ""
	}

	var text strings.Builder

	record := result.Record
	if record.Tie {
		fmt.Fprintf(&text, "[yellow::b]Tie[-:-:-] %d:%d after %d turns\n", record.Winner.Score, record.Loser.Score, record.Turns)
	} else {
		fmt.Fprintf(&text, "[yellow::b]%s wins[-:-:-] %d:%d after %d turns\n",
			record.Winner.Name, record.Winner.Score, record.Loser.Score, record.Turns)
	}

	if stats := result.Statistics; stats != nil {
		fmt.Fprintf(&text, "\nGames played: %d  Average turns: %d\n", stats.GamesPlayed, stats.AverageTurns)
		for _, mode := range stats.Modes {
			fmt.Fprintf(&text, "  %-10s won %d  lost %d\n", mode.Mode.Label(), mode.Wins, mode.Losses)
		}
	}

	if len(result.RecentGames) > 0 {
		text.WriteString("\nRecent games:\n")
		for _, game := range result.RecentGames {
			fmt.Fprintf(&text, "  %s\n", formatRecord(game))
		}
	}

	text.WriteString("\n[dimgray]press r for a new game[-]")

	return text.String()
}

func formatRecord(record *entity.GameRecord) string {
	if record.Tie {
		return fmt.Sprintf("%s  tie %d:%d in %d turns",
			record.PlayedAt.Local().Format("Jan 02 15:04"), record.Winner.Score, record.Loser.Score, record.Turns)
	}

	return fmt.Sprintf("%s  %s (%s) beat %s (%s) %d:%d in %d turns",
		record.PlayedAt.Local().Format("Jan 02 15:04"),
		record.Winner.Name, record.Winner.Mode.Label(),
		record.Loser.Name, record.Loser.Mode.Label(),
		record.Winner.Score, record.Loser.Score, record.Turns)
}
