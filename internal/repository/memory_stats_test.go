package repository

import (
	"context"
	"testing"

	"github.com/rocketscienceinc/tictactoe-timed/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timed/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStatsRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Get before Save returns ErrNotFound", func(t *testing.T) {
		statsRepo := NewMemoryStatsRepository()

		stats, err := statsRepo.Get(ctx)

		require.ErrorIs(t, err, apperror.ErrNotFound)
		assert.Equal(t, &entity.Stats{}, stats)
	})

	t.Run("Saved stats are returned as a copy", func(t *testing.T) {
		// Given: saved stats
		statsRepo := NewMemoryStatsRepository()
		stats := &entity.Stats{WinsO: 3, TotalGames: 3}
		require.NoError(t, statsRepo.Save(ctx, stats))

		// When: the caller keeps changing its own value
		stats.WinsO = 99

		// Then: the stored record is unaffected
		retrieved, err := statsRepo.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, &entity.Stats{WinsO: 3, TotalGames: 3}, retrieved)
	})
}

func TestDecodeStats(t *testing.T) {
	t.Run("Rejects counters that do not add up", func(t *testing.T) {
		_, err := decodeStats([]byte(`{"X":1,"O":1,"Draw":0,"totalGames":5}`))

		require.ErrorIs(t, err, apperror.ErrMalformedStats)
	})

	t.Run("Rejects negative counters", func(t *testing.T) {
		_, err := decodeStats([]byte(`{"X":-1,"O":1,"Draw":0,"totalGames":0}`))

		require.ErrorIs(t, err, apperror.ErrMalformedStats)
	})

	t.Run("Missing fields default to zero", func(t *testing.T) {
		stats, err := decodeStats([]byte(`{"X":1,"totalGames":1}`))

		require.NoError(t, err)
		assert.Equal(t, &entity.Stats{WinsX: 1, TotalGames: 1}, stats)
	})
}
