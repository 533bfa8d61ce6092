package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rocketscienceinc/uril/internal/entity"
	"github.com/rocketscienceinc/uril/internal/strategy"
	"github.com/rocketscienceinc/uril/internal/uril"
)

// recentResults is how many finished games are listed with a result.
const recentResults = 5

var (
	ErrNoHumanInput  = errors.New("no input for human player")
	ErrRejectedMove  = errors.New("strategy chose a rejected move")
	ErrSessionClosed = errors.New("session already finished")
)

type statisticsRepo interface {
	Record(ctx context.Context, record *entity.GameRecord) (*entity.Statistics, error)
	RecentGames(ctx context.Context, limit int64) ([]*entity.GameRecord, error)
}

type eventBus interface {
	Publish(event entity.Event)
	Suspend() func()
}

type nopBus struct{}

func (nopBus) Publish(entity.Event) {}

func (nopBus) Suspend() func() { return func() {} }

// HumanInput delivers the column picked by a human player.
type HumanInput interface {
	NextColumn(ctx context.Context) (int, error)
}

type searchReporter interface {
	LastSearch() strategy.SearchMetrics
}

type Result struct {
	Record      *entity.GameRecord
	Statistics  *entity.Statistics
	RecentGames []*entity.GameRecord
}

// Session plays one game at a time between two players and records the outcome.
type Session struct {
	logger zerolog.Logger

	game       *uril.Game
	bus        eventBus
	strategies [2]strategy.Strategy
	human      HumanInput
	statsRepo  statisticsRepo
	delay      time.Duration

	turns    int
	finished bool
}

// NewSession takes a nil strategy for every human player.
func NewSession(
	logger zerolog.Logger,
	game *uril.Game,
	bus eventBus,
	strategies [2]strategy.Strategy,
	human HumanInput,
	statsRepo statisticsRepo,
	delay time.Duration,
) *Session {
	if bus == nil {
		bus = nopBus{}
	}

	return &Session{
		logger:     logger.With().Str("component", "session").Logger(),
		game:       game,
		bus:        bus,
		strategies: strategies,
		human:      human,
		statsRepo:  statsRepo,
		delay:      delay,
	}
}

// Turns counts applied moves and passes.
func (that *Session) Turns() int {
	return that.turns
}

// Run plays until the game ends or ctx is done.
func (that *Session) Run(ctx context.Context) (*Result, error) {
	if that.finished {
		return nil, ErrSessionClosed
	}

	for !that.game.HasEnded() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("session interrupted: %w", err)
		}

		playable, err := that.game.ValidatePlayable()
		if err != nil {
			return nil, fmt.Errorf("failed to validate position: %w", err)
		}

		if !playable {
			that.countTurn()
			that.logger.Debug().Int("turn", that.game.Turn()).Msg("player has no seeds, turn passed")

			continue
		}

		if err = that.playTurn(ctx); err != nil {
			return nil, err
		}
	}

	return that.finish(ctx)
}

func (that *Session) playTurn(ctx context.Context) error {
	turn := that.game.Turn()
	player := that.game.CurrentPlayer()
	computer := that.strategies[turn]

	column, err := that.chooseColumn(ctx, computer)
	if err != nil {
		return fmt.Errorf("failed to choose column for %s: %w", player.Name, err)
	}

	pairs, err := that.game.PlayTurn(column)
	if err != nil {
		return fmt.Errorf("failed to play column %d: %w", column, err)
	}

	if pairs == uril.Rejected {
		if computer != nil {
			return fmt.Errorf("%w: column %d by %s", ErrRejectedMove, column, player.Name)
		}

		that.logger.Debug().Str("player", player.Name).Int("column", column).Msg("empty pit chosen")

		return nil
	}

	that.countTurn()
	that.logger.Debug().
		Str("player", player.Name).
		Str("mode", string(player.Mode)).
		Int("column", column).
		Int("pairs", pairs).
		Int("score", player.Score()).
		Msg("turn played")

	return nil
}

func (that *Session) countTurn() {
	that.turns++
	that.bus.Publish(entity.Event{Kind: entity.EventTurnCounted, Turns: that.turns})
}

// SetPlayers changes the modes and strategies used from the next Run on. It must not run concurrently with Run.
func (that *Session) SetPlayers(modes [2]entity.Mode, strategies [2]strategy.Strategy) {
	for i, mode := range modes {
		that.game.Player(i).Mode = mode
	}

	that.strategies = strategies
}

func (that *Session) chooseColumn(ctx context.Context, computer strategy.Strategy) (int, error) {
	if computer == nil {
		if that.human == nil {
			return 0, ErrNoHumanInput
		}

		column, err := that.human.NextColumn(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to read human input: %w", err)
		}

		return column, nil
	}

	started := time.Now()

	resume := that.bus.Suspend()
	column, err := computer.ChooseColumn(that.game)
	resume()

	if err != nil {
		return 0, fmt.Errorf("strategy failed: %w", err)
	}

	if reporter, ok := computer.(searchReporter); ok {
		metrics := reporter.LastSearch()
		that.logger.Debug().
			Int64("nodes", metrics.Nodes).
			Int64("cutoffs", metrics.Cutoffs).
			Bool("resigned", metrics.Resigned).
			Dur("duration", metrics.Duration).
			Msg("search finished")
	}

	if err = that.pace(ctx, that.delay-time.Since(started)); err != nil {
		return 0, err
	}

	return column, nil
}

func (that *Session) pace(ctx context.Context, wait time.Duration) error {
	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("session interrupted: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}

func (that *Session) finish(ctx context.Context) (*Result, error) {
	winner, err := that.game.Winner()
	if err != nil {
		return nil, fmt.Errorf("failed to get winner: %w", err)
	}

	loser, err := that.game.Loser()
	if err != nil {
		return nil, fmt.Errorf("failed to get loser: %w", err)
	}

	record := &entity.GameRecord{
		ID:       uuid.NewString(),
		PlayedAt: time.Now().UTC(),
		Turns:    that.turns,
		Winner:   entity.PlayerResult{Name: winner.Name, Mode: winner.Mode, Score: winner.Score()},
		Loser:    entity.PlayerResult{Name: loser.Name, Mode: loser.Mode, Score: loser.Score()},
		Tie:      that.game.IsTie(),
	}

	that.logger.Info().
		Str("game_id", record.ID).
		Str("winner", record.Winner.Name).
		Int("winner_score", record.Winner.Score).
		Int("loser_score", record.Loser.Score).
		Bool("tie", record.Tie).
		Int("turns", record.Turns).
		Msg("game finished")

	that.finished = true

	result := &Result{Record: record}
	if that.statsRepo == nil {
		return result, nil
	}

	stats, err := that.statsRepo.Record(ctx, record)
	if err != nil {
		return result, fmt.Errorf("failed to record statistics: %w", err)
	}

	result.Statistics = stats

	recent, err := that.statsRepo.RecentGames(ctx, recentResults)
	if err != nil {
		that.logger.Warn().Err(err).Msg("could not load recent games")

		return result, nil
	}

	result.RecentGames = recent

	return result, nil
}

// Restart resets the game and the turn counter. It must not run concurrently with Run.
func (that *Session) Restart() {
	that.game.Restart()
	that.turns = 0
	that.finished = false

	that.bus.Publish(entity.Event{Kind: entity.EventTurnCounted})
}
