package application

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rivo/tview"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"github.com/rocketscienceinc/uril/internal/config"
	"github.com/rocketscienceinc/uril/internal/entity"
	"github.com/rocketscienceinc/uril/internal/notify"
	"github.com/rocketscienceinc/uril/internal/repository"
	"github.com/rocketscienceinc/uril/internal/repository/storage"
	"github.com/rocketscienceinc/uril/internal/strategy"
	"github.com/rocketscienceinc/uril/internal/ui"
	"github.com/rocketscienceinc/uril/internal/uril"
	"github.com/rocketscienceinc/uril/internal/usecase"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger zerolog.Logger, conf *config.Config) error {
	log := logger.With().Str("component", "app").Logger()

	if err := conf.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigs:
			log.Info().Str("signal", sig.String()).Msg("Received signal, shutting down")
			cancel()
		case <-ctx.Done():
		}
	}()

	statsRepo, closeRepo, err := newStatisticsRepository(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeRepo()

	modeA, modeB, err := conf.Modes()
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	bus := notify.NewBus()
	bus.Subscribe(notify.LogListener(logger))

	game, err := newGame(conf, bus, [2]entity.Mode{modeA, modeB})
	if err != nil {
		return err
	}

	strategies, err := newStrategies(conf, [2]entity.Mode{modeA, modeB})
	if err != nil {
		return err
	}

	if conf.Interface == config.InterfaceHeadless {
		session := usecase.NewSession(logger, game, bus, strategies, nil, statsRepo, 0)

		return runHeadless(ctx, log, session, statsRepo, conf.Games)
	}

	return runTerminal(ctx, logger, conf, game, bus, strategies, statsRepo)
}

// newGame starts from the configured position if there is one. Restarts always use the initial board.
func newGame(conf *config.Config, bus *notify.Bus, modes [2]entity.Mode) (*uril.Game, error) {
	playerA := entity.NewPlayer(conf.PlayerA.Name, modes[0], bus)
	playerB := entity.NewPlayer(conf.PlayerB.Name, modes[1], bus)

	if conf.Position == nil {
		return uril.NewGame(playerA, playerB, bus), nil
	}

	grid, scores, err := conf.Position.Parse()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	position := uril.Position{Grid: grid, Scores: scores, Turn: conf.Position.Turn}

	game, err := uril.NewGameFromPosition(position, playerA, playerB, bus)
	if err != nil {
		return nil, fmt.Errorf("could not load position: %w", err)
	}

	return game, nil
}

func newStatisticsRepository(
	ctx context.Context,
	log zerolog.Logger,
	conf *config.Config,
) (repository.StatisticsRepository, func(), error) {
	if !conf.Redis.Enabled {
		return repository.NewMemoryStatisticsRepository(conf.Redis.RecentGames), func() {}, nil
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if conf.Redis.Host == "" {
		return nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeRepo := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error().Err(err).Msg("could not close redis storage")
		}
	}

	return repository.NewStatisticsRepository(redisStorage.Connection, conf.Redis.RecentGames), closeRepo, nil
}

func newStrategies(conf *config.Config, modes [2]entity.Mode) ([2]strategy.Strategy, error) {
	var strategies [2]strategy.Strategy

	seed := conf.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	rng := rand.New(rand.NewSource(seed))

	for i, mode := range modes {
		if !mode.IsComputer() {
			continue
		}

		computer, err := strategy.New(mode, rng,
			strategy.WithDepth(conf.SearchDepth),
			strategy.WithMetrics(strategy.NewMetricsCollector()),
		)
		if err != nil {
			return strategies, fmt.Errorf("could not create strategy for player %d: %w", i+1, err)
		}

		strategies[i] = computer
	}

	return strategies, nil
}

type statisticsReader interface {
	Get(ctx context.Context) (*entity.Statistics, error)
}

// runHeadless plays the given number of games and logs the stored statistics afterwards.
func runHeadless(ctx context.Context, log zerolog.Logger, session *usecase.Session, statsRepo statisticsReader, games int) error {
	for i := 0; i < games; i++ {
		result, err := session.Run(ctx)
		if errors.Is(err, context.Canceled) {
			log.Info().Int("played", i).Msg("Application context canceled, shutting down")
			return nil
		}

		if err != nil {
			return fmt.Errorf("game %d failed: %w", i+1, err)
		}

		log.Debug().Int("game", i+1).Str("winner", result.Record.Winner.Name).Msg("game played")
		session.Restart()
	}

	if statsRepo == nil {
		return nil
	}

	stats, err := statsRepo.Get(ctx)
	if err != nil {
		return fmt.Errorf("could not read statistics: %w", err)
	}

	event := log.Info().Int("games_played", stats.GamesPlayed).Int("average_turns", stats.AverageTurns)
	for _, record := range stats.Modes {
		event = event.Str(string(record.Mode), fmt.Sprintf("%d/%d", record.Wins, record.Losses))
	}

	event.Msg("statistics")

	return nil
}

func runTerminal(
	ctx context.Context,
	logger zerolog.Logger,
	conf *config.Config,
	game *uril.Game,
	bus *notify.Bus,
	strategies [2]strategy.Strategy,
	statsRepo repository.StatisticsRepository,
) error {
	log := logger.With().Str("component", "terminal").Logger()

	app := tview.NewApplication()
	view := ui.NewGameView(app,
		[2]string{game.Player(0).Name, game.Player(1).Name},
		[2]entity.Mode{game.Player(0).Mode, game.Player(1).Mode},
		game.Position(),
	)
	bus.Subscribe(view.Listen)

	session := usecase.NewSession(logger, game, bus, strategies, view, statsRepo, conf.Delay)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loopErr := make(chan error, 1)
	go func() {
		defer app.Stop()
		loopErr <- playLoop(ctx, log, session, view, func(modes [2]entity.Mode) ([2]strategy.Strategy, error) {
			return newStrategies(conf, modes)
		})
	}()

	if err := app.SetRoot(view.Root(), true).Run(); err != nil {
		return fmt.Errorf("terminal UI error: %w", err)
	}

	cancel()

	select {
	case err := <-loopErr:
		return err
	default:
		return nil
	}
}

type strategyBuilder func(modes [2]entity.Mode) ([2]strategy.Strategy, error)

// playLoop plays games until ctx is done. A restart request cancels the running game.
// Player modes picked in the view take effect with the next game.
func playLoop(
	ctx context.Context,
	log zerolog.Logger,
	session *usecase.Session,
	view *ui.GameView,
	build strategyBuilder,
) error {
	modes := view.Modes()

	for {
		runCtx, cancelRun := context.WithCancel(ctx)
		go func() {
			select {
			case <-view.Restarts():
				cancelRun()
			case <-runCtx.Done():
			}
		}()

		result, err := session.Run(runCtx)
		cancelRun()

		switch {
		case ctx.Err() != nil:
			return nil
		case errors.Is(err, context.Canceled):
			log.Info().Int("turns", session.Turns()).Msg("game restarted")
		case result != nil:
			if err != nil {
				log.Error().Err(err).Msg("could not record statistics")
			}

			view.ShowResult(result)

			select {
			case <-view.Restarts():
			case <-ctx.Done():
				return nil
			}
		default:
			return err
		}

		if next := view.Modes(); next != modes {
			strategies, err := build(next)
			if err != nil {
				return err
			}

			session.SetPlayers(next, strategies)
			view.ShowModes(next)
			modes = next

			log.Info().Str("player_a", string(next[0])).Str("player_b", string(next[1])).Msg("players changed")
		}

		session.Restart()
	}
}
