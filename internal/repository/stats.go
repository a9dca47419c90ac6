package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-timed/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timed/internal/entity"
)

const DefaultStatsKey = "tttStats"

type StatsRepository interface {
	Get(ctx context.Context) (*entity.Stats, error)
	Save(ctx context.Context, stats *entity.Stats) error
}

type dbStats struct {
	client *redis.Client
	key    string
}

// NewStatsRepository - keeps the stats record as JSON under a single redis key.
func NewStatsRepository(client *redis.Client, key string) StatsRepository {
	if key == "" {
		key = DefaultStatsKey
	}

	return &dbStats{
		client: client,
		key:    key,
	}
}

func (that *dbStats) Get(ctx context.Context) (*entity.Stats, error) {
	response, err := that.client.Get(ctx, that.key).Bytes()

	if errors.Is(err, redis.Nil) {
		return &entity.Stats{}, fmt.Errorf("stats key %q: %w", that.key, apperror.ErrNotFound)
	}

	if err != nil {
		return &entity.Stats{}, fmt.Errorf("failed to get stats: %w", err)
	}

	return decodeStats(response)
}

func (that *dbStats) Save(ctx context.Context, stats *entity.Stats) error {
	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("could not marshal stats: %w", err)
	}

	if err = that.client.Set(ctx, that.key, statsJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set stats: %w", err)
	}

	return nil
}

// decodeStats - a record that does not parse or breaks the counter invariants is reported as malformed.
func decodeStats(raw []byte) (*entity.Stats, error) {
	var stats entity.Stats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return &entity.Stats{}, fmt.Errorf("%w: %w", apperror.ErrMalformedStats, err)
	}

	if !stats.IsValid() {
		return &entity.Stats{}, fmt.Errorf("%w: %+v", apperror.ErrMalformedStats, stats)
	}

	return &stats, nil
}
