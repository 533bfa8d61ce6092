package uril

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/uril/internal/apperror"
	"github.com/rocketscienceinc/uril/internal/entity"
)

// Rejected is returned by PlayTurn when the move was not applied.
const Rejected = -1

type State int

const (
	StateRunning State = iota
	StateEnded
)

func (that State) String() string {
	if that == StateEnded {
		return "ended"
	}

	return "running"
}

var ErrInvalidPosition = errors.New("invalid position")

// Position is everything needed to resume a game.
type Position struct {
	Grid   entity.Grid `json:"grid"`
	Scores [2]int      `json:"scores"`
	Turn   int         `json:"turn"`
}

// Game drives the turns of two players on one board. Player i sows from row i.
type Game struct {
	board   *entity.Board
	players [2]*entity.Player
	turn    int
	history []int
	ended   bool

	publisher entity.Publisher
}

func NewGame(playerA, playerB *entity.Player, publisher entity.Publisher) *Game {
	if publisher == nil {
		publisher = entity.NopPublisher{}
	}

	return &Game{
		board:     entity.NewBoard(publisher),
		players:   [2]*entity.Player{playerA, playerB},
		publisher: publisher,
	}
}

func NewGameFromPosition(position Position, playerA, playerB *entity.Player, publisher entity.Publisher) (*Game, error) {
	if position.Turn != 0 && position.Turn != 1 {
		return nil, fmt.Errorf("%w: turn %d", ErrInvalidPosition, position.Turn)
	}

	for row := range position.Grid {
		for column, seeds := range position.Grid[row] {
			if seeds < 0 {
				return nil, fmt.Errorf("%w: negative seeds in (%d, %d)", ErrInvalidPosition, row, column)
			}
		}
	}

	if position.Scores[0] < 0 || position.Scores[1] < 0 {
		return nil, fmt.Errorf("%w: negative score", ErrInvalidPosition)
	}

	// captured pairs left the board two seeds at a time
	if kept := position.Grid.Total() + 2*(position.Scores[0]+position.Scores[1]); kept != entity.TotalSeeds {
		return nil, fmt.Errorf("%w: %d seeds accounted for, want %d", ErrInvalidPosition, kept, entity.TotalSeeds)
	}

	game := NewGame(playerA, playerB, publisher)
	game.board = entity.NewBoardFromGrid(position.Grid, game.publisher)
	game.players[0].SetScore(position.Scores[0])
	game.players[1].SetScore(position.Scores[1])
	game.turn = position.Turn
	game.ended = game.checkEnded()

	return game, nil
}

// PlayTurn sows the given pit of the active player and returns the captured pairs,
// or Rejected when the game is over or the pit is empty.
func (that *Game) PlayTurn(column int) (int, error) {
	seeds, err := that.board.PitSeeds(that.turn, column)
	if err != nil {
		return Rejected, fmt.Errorf("failed to read pit: %w", err)
	}

	if that.ended || seeds == 0 {
		return Rejected, nil
	}

	that.board.SaveSnapshot()
	that.players[0].SaveScore()
	that.players[1].SaveScore()
	that.history = append(that.history, that.turn)

	captured, err := that.board.Play(that.turn, column)
	if err != nil {
		return Rejected, fmt.Errorf("failed to play pit: %w", err)
	}

	pairs := captured / 2
	that.players[that.turn].IncreaseScore(pairs)

	that.ended = that.checkEnded()
	that.toggleTurn()

	return pairs, nil
}

// UndoTurn reverts the last accepted PlayTurn exactly.
func (that *Game) UndoTurn() error {
	if len(that.history) == 0 {
		return apperror.ErrEmptyHistory
	}

	if _, err := that.board.RestoreSnapshot(); err != nil {
		return fmt.Errorf("failed to restore board: %w", err)
	}

	for _, player := range that.players {
		if err := player.UndoScore(); err != nil {
			return fmt.Errorf("failed to restore score of %s: %w", player.Name, err)
		}
	}

	last := len(that.history) - 1
	that.turn = that.history[last]
	that.history = that.history[:last]
	that.ended = that.checkEnded()

	that.publisher.Publish(entity.Event{Kind: entity.EventTurnChanged, Turn: that.turn})

	return nil
}

// ValidatePlayable passes the turn when the active player has no seeds to sow.
func (that *Game) ValidatePlayable() (bool, error) {
	empty, err := that.board.RowIsEmpty(that.turn)
	if err != nil {
		return false, fmt.Errorf("failed to check row: %w", err)
	}

	if empty {
		that.toggleTurn()

		return false, nil
	}

	return true, nil
}

// Winner returns player A when A scored more, otherwise player B.
func (that *Game) Winner() (*entity.Player, error) {
	if !that.ended {
		return nil, apperror.ErrGameNotEnded
	}

	if that.players[0].Score() > that.players[1].Score() {
		return that.players[0], nil
	}

	return that.players[1], nil
}

// Loser returns player A when A scored less, otherwise player B. On a tie B is both.
func (that *Game) Loser() (*entity.Player, error) {
	if !that.ended {
		return nil, apperror.ErrGameNotEnded
	}

	if that.players[0].Score() < that.players[1].Score() {
		return that.players[0], nil
	}

	return that.players[1], nil
}

func (that *Game) IsTie() bool {
	return that.ended && that.players[0].Score() == that.players[1].Score()
}

func (that *Game) Restart() {
	that.board.Reset()
	for _, player := range that.players {
		player.ResetScore()
	}

	that.history = that.history[:0]
	that.ended = false
	that.turn = 0

	that.publisher.Publish(entity.Event{Kind: entity.EventTurnChanged, Turn: that.turn})
}

func (that *Game) Turn() int {
	return that.turn
}

func (that *Game) HasEnded() bool {
	return that.ended
}

func (that *Game) State() State {
	if that.ended {
		return StateEnded
	}

	return StateRunning
}

func (that *Game) Board() *entity.Board {
	return that.board
}

func (that *Game) Player(index int) *entity.Player {
	return that.players[index]
}

func (that *Game) CurrentPlayer() *entity.Player {
	return that.players[that.turn]
}

func (that *Game) OpposingPlayer() *entity.Player {
	return that.players[1-that.turn]
}

func (that *Game) Position() Position {
	return Position{
		Grid:   that.board.Grid(),
		Scores: [2]int{that.players[0].Score(), that.players[1].Score()},
		Turn:   that.turn,
	}
}

func (that *Game) HistoryDepth() int {
	return len(that.history)
}

// checkEnded reports the end once at most EndSeeds seeds are left on the board.
func (that *Game) checkEnded() bool {
	return that.board.TotalSeeds() <= entity.EndSeeds
}

func (that *Game) toggleTurn() {
	that.turn = 1 - that.turn

	that.publisher.Publish(entity.Event{Kind: entity.EventTurnChanged, Turn: that.turn})
}
