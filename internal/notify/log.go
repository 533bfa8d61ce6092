package notify

import (
	"github.com/rs/zerolog"

	"github.com/rocketscienceinc/uril/internal/entity"
)

// LogListener writes every delivered event at debug level.
func LogListener(logger zerolog.Logger) Listener {
	log := logger.With().Str("component", "events").Logger()

	return func(event entity.Event) {
		entry := log.Debug().Str("kind", event.Kind.String())

		switch event.Kind {
		case entity.EventBoardChanged, entity.EventBoardReset:
			entry = entry.Int("pits", len(event.Pits)).Int("seeds", event.Grid.Total())
		case entity.EventScoreChanged:
			entry = entry.Str("player", event.Player).Int("score", event.Score)
		case entity.EventTurnChanged:
			entry = entry.Int("turn", event.Turn)
		case entity.EventTurnCounted:
			entry = entry.Int("turns", event.Turns)
		}

		entry.Msg("game event")
	}
}
