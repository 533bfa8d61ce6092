package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/uril/internal/entity"
)

type memoryStatistics struct {
	mu          sync.Mutex
	stats       entity.Statistics
	games       []*entity.GameRecord
	recentGames int64
}

// NewMemoryStatisticsRepository is used when Redis is disabled. Nothing survives a restart.
func NewMemoryStatisticsRepository(recentGames int64) StatisticsRepository {
	if recentGames <= 0 {
		recentGames = DefaultRecentGames
	}

	return &memoryStatistics{recentGames: recentGames}
}

func (that *memoryStatistics) Get(context.Context) (*entity.Statistics, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.copyStatistics(), nil
}

func (that *memoryStatistics) Record(_ context.Context, record *entity.GameRecord) (*entity.Statistics, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.stats.Record(record.Turns, record.Winner.Mode, record.Loser.Mode)

	stored := *record
	that.games = append([]*entity.GameRecord{&stored}, that.games...)
	if int64(len(that.games)) > that.recentGames {
		that.games = that.games[:that.recentGames]
	}

	return that.copyStatistics(), nil
}

func (that *memoryStatistics) RecentGames(_ context.Context, limit int64) ([]*entity.GameRecord, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if limit <= 0 || limit > int64(len(that.games)) {
		limit = int64(len(that.games))
	}

	records := make([]*entity.GameRecord, 0, limit)
	for _, record := range that.games[:limit] {
		stored := *record
		records = append(records, &stored)
	}

	return records, nil
}

func (that *memoryStatistics) copyStatistics() *entity.Statistics {
	stats := that.stats
	stats.Modes = append([]entity.ModeRecord(nil), that.stats.Modes...)

	return &stats
}
