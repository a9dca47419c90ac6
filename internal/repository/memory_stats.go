package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rocketscienceinc/tictactoe-timed/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timed/internal/entity"
)

type memoryStats struct {
	mu     sync.Mutex
	record []byte
}

// NewMemoryStatsRepository - process-local store that keeps the same JSON record the redis store does.
func NewMemoryStatsRepository() StatsRepository {
	return &memoryStats{}
}

func (that *memoryStats) Get(_ context.Context) (*entity.Stats, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.record == nil {
		return &entity.Stats{}, fmt.Errorf("stats: %w", apperror.ErrNotFound)
	}

	return decodeStats(that.record)
}

func (that *memoryStats) Save(_ context.Context, stats *entity.Stats) error {
	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("could not marshal stats: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.record = statsJSON

	return nil
}
