package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/uril/internal/entity"
)

const (
	statisticsKey  = "uril:statistics"
	recentGamesKey = "uril:games"

	DefaultRecentGames = 100
	maxRetries         = 5
)

var ErrStatisticsConflict = errors.New("statistics kept changing during update")

type StatisticsRepository interface {
	Get(ctx context.Context) (*entity.Statistics, error)
	Record(ctx context.Context, record *entity.GameRecord) (*entity.Statistics, error)
	RecentGames(ctx context.Context, limit int64) ([]*entity.GameRecord, error)
}

type dbStatistics struct {
	client      *redis.Client
	recentGames int64
}

// NewStatisticsRepository keeps the last recentGames game records next to the totals.
func NewStatisticsRepository(client *redis.Client, recentGames int64) StatisticsRepository {
	if recentGames <= 0 {
		recentGames = DefaultRecentGames
	}

	return &dbStatistics{
		client:      client,
		recentGames: recentGames,
	}
}

func (that *dbStatistics) Get(ctx context.Context) (*entity.Statistics, error) {
	return getStatistics(ctx, that.client)
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func getStatistics(ctx context.Context, client stringGetter) (*entity.Statistics, error) {
	response, err := client.Get(ctx, statisticsKey).Result()
	if errors.Is(err, redis.Nil) {
		return &entity.Statistics{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get statistics: %w", err)
	}

	var stats entity.Statistics
	if err = json.Unmarshal([]byte(response), &stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal statistics: %w", err)
	}

	return &stats, nil
}

// Record adds the finished game to the totals and the recent games list in one transaction.
func (that *dbStatistics) Record(ctx context.Context, record *entity.GameRecord) (*entity.Statistics, error) {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("could not marshal game record: %w", err)
	}

	var updated *entity.Statistics

	update := func(tx *redis.Tx) error {
		stats, err := getStatistics(ctx, tx)
		if err != nil {
			return err
		}

		stats.Record(record.Turns, record.Winner.Mode, record.Loser.Mode)

		statsJSON, err := json.Marshal(stats)
		if err != nil {
			return fmt.Errorf("could not marshal statistics: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, statisticsKey, statsJSON, 0)
			pipe.LPush(ctx, recentGamesKey, recordJSON)
			pipe.LTrim(ctx, recentGamesKey, 0, that.recentGames-1)

			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to write statistics: %w", err)
		}

		updated = stats

		return nil
	}

	for i := 0; i < maxRetries; i++ {
		err = that.client.Watch(ctx, update, statisticsKey)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("failed to record game: %w", err)
		}

		return updated, nil
	}

	return nil, ErrStatisticsConflict
}

func (that *dbStatistics) RecentGames(ctx context.Context, limit int64) ([]*entity.GameRecord, error) {
	if limit <= 0 || limit > that.recentGames {
		limit = that.recentGames
	}

	response, err := that.client.LRange(ctx, recentGamesKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get recent games: %w", err)
	}

	records := make([]*entity.GameRecord, 0, len(response))
	for _, item := range response {
		var record entity.GameRecord
		if err = json.Unmarshal([]byte(item), &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal game record: %w", err)
		}

		records = append(records, &record)
	}

	return records, nil
}
