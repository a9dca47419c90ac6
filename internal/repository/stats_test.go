package repository

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-timed/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timed/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timed/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsRepository_Save(t *testing.T) {
	ctx, st := suite.New(t)

	statsRepo := NewStatsRepository(st.Storage, DefaultStatsKey)

	// Given: some stats
	stats := &entity.Stats{WinsX: 2, WinsO: 1, Draws: 1, TotalGames: 4}

	// When: Save is called
	err := statsRepo.Save(ctx, stats)

	// Then: the record is stored in the persisted format
	require.NoError(t, err)

	raw, err := st.Storage.Get(ctx, DefaultStatsKey).Result()
	require.NoError(t, err)
	assert.JSONEq(t, `{"X":2,"O":1,"Draw":1,"totalGames":4}`, raw)
}

func TestStatsRepository_Get(t *testing.T) {
	t.Run("Get_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		statsRepo := NewStatsRepository(st.Storage, DefaultStatsKey)

		// Given: saved stats
		stats := &entity.Stats{WinsX: 1, Draws: 2, TotalGames: 3}
		require.NoError(t, statsRepo.Save(ctx, stats))

		// When: Get is called
		retrieved, err := statsRepo.Get(ctx)

		// Then: the same stats come back
		require.NoError(t, err)
		assert.Equal(t, stats, retrieved)
	})

	t.Run("Get_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		statsRepo := NewStatsRepository(st.Storage, "missing")

		// When: Get is called before anything was saved
		retrieved, err := statsRepo.Get(ctx)

		// Then: ErrNotFound is returned with zero stats
		require.ErrorIs(t, err, apperror.ErrNotFound)
		assert.Equal(t, &entity.Stats{}, retrieved)
	})

	t.Run("Get_Malformed", func(t *testing.T) {
		ctx, st := suite.New(t)

		statsRepo := NewStatsRepository(st.Storage, DefaultStatsKey)

		// Given: a record that is not JSON
		require.NoError(t, st.Storage.Set(ctx, DefaultStatsKey, "not json", 0).Err())

		// When: Get is called
		retrieved, err := statsRepo.Get(ctx)

		// Then: ErrMalformedStats is returned with zero stats
		require.ErrorIs(t, err, apperror.ErrMalformedStats)
		assert.Equal(t, &entity.Stats{}, retrieved)
	})
}
