package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatistics_Record(t *testing.T) {
	t.Run("Running average uses integer arithmetic", func(t *testing.T) {
		// Given: empty statistics
		stats := &Statistics{}

		// When: three games are recorded
		stats.Record(30, ModeGreedy, ModeRandom)
		stats.Record(41, ModeGreedy, ModeRandom)
		stats.Record(20, ModeRandom, ModeGreedy)

		// Then: the average follows ((n-1)*avg + turns) / n
		assert.Equal(t, 3, stats.GamesPlayed)
		assert.Equal(t, 30, stats.AverageTurns) // 30, (30+41)/2=35, (70+20)/3=30
	})

	t.Run("Wins and losses only count across different modes", func(t *testing.T) {
		// Given: empty statistics
		stats := &Statistics{}

		// When: a mirror match and a mixed match are recorded
		stats.Record(25, ModeMinMax, ModeMinMax)
		stats.Record(25, ModeMinMax, ModeDefensive)

		// Then: only the mixed match shows up per mode, in first-seen order
		assert.Equal(t, 2, stats.GamesPlayed)
		assert.Equal(t, []ModeRecord{
			{Mode: ModeMinMax, Wins: 1},
			{Mode: ModeDefensive, Losses: 1},
		}, stats.Modes)
		assert.Equal(t, ModeRecord{Mode: ModeGreedy}, stats.ModeRecord(ModeGreedy))
	})
}
