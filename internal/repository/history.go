package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-chat/internal/entity"
)

const historyKey = "history"

type HistoryRepository interface {
	Add(ctx context.Context, entry *entity.GameHistory) error
	List(ctx context.Context, limit int) ([]*entity.GameHistory, error)
}

type dbHistory struct {
	client *redis.Client
	limit  int
}

// NewHistoryRepository - keeps at most limit entries, newest first; limit <= 0 keeps everything.
func NewHistoryRepository(client *redis.Client, limit int) HistoryRepository {
	return &dbHistory{
		client: client,
		limit:  limit,
	}
}

func (that *dbHistory) Add(ctx context.Context, entry *entity.GameHistory) error {
	entryJSON, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal history entry: %w", err)
	}

	pipe := that.client.TxPipeline()
	pipe.LPush(ctx, historyKey, entryJSON)
	if that.limit > 0 {
		pipe.LTrim(ctx, historyKey, 0, int64(that.limit-1))
	}

	if _, err = pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to push history entry: %w", err)
	}

	return nil
}

// List - newest first; limit <= 0 returns every stored entry.
func (that *dbHistory) List(ctx context.Context, limit int) ([]*entity.GameHistory, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	response, err := that.client.LRange(ctx, historyKey, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}

	history := make([]*entity.GameHistory, 0, len(response))
	for _, item := range response {
		var entry entity.GameHistory
		if err = json.Unmarshal([]byte(item), &entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal history entry: %w", err)
		}
		history = append(history, &entry)
	}

	return history, nil
}
