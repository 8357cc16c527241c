package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const scoresKey = "scores"

type ScoreRepository interface {
	Add(ctx context.Context, name string, points int) error
	GetAll(ctx context.Context) (map[string]int, error)
}

type dbScore struct {
	client *redis.Client
}

func NewScoreRepository(client *redis.Client) ScoreRepository {
	return &dbScore{
		client: client,
	}
}

func (that *dbScore) Add(ctx context.Context, name string, points int) error {
	if err := that.client.HIncrBy(ctx, scoresKey, name, int64(points)).Err(); err != nil {
		return fmt.Errorf("failed to add score: %w", err)
	}

	return nil
}

func (that *dbScore) GetAll(ctx context.Context) (map[string]int, error) {
	response, err := that.client.HGetAll(ctx, scoresKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get scores: %w", err)
	}

	scores := make(map[string]int, len(response))
	for name, value := range response {
		points, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("failed to parse score of %s: %w", name, err)
		}
		scores[name] = points
	}

	return scores, nil
}
