package usecase

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-chat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-chat/internal/entity"
	"github.com/stretchr/testify/mock"
)

type mockGameRepo struct {
	mock.Mock
}

func (that *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	args := that.Called(ctx, game)
	return args.Error(0)
}

func (that *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := that.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameRepo) DeleteByID(ctx context.Context, id string) error {
	args := that.Called(ctx, id)
	return args.Error(0)
}

type mockHistoryRepo struct {
	mock.Mock
}

func (that *mockHistoryRepo) Add(ctx context.Context, entry *entity.GameHistory) error {
	args := that.Called(ctx, entry)
	return args.Error(0)
}

func (that *mockHistoryRepo) List(ctx context.Context, limit int) ([]*entity.GameHistory, error) {
	args := that.Called(ctx, limit)
	history, _ := args.Get(0).([]*entity.GameHistory)
	return history, args.Error(1)
}

type mockScoreRepo struct {
	mock.Mock
}

func (that *mockScoreRepo) Add(ctx context.Context, name string, points int) error {
	args := that.Called(ctx, name, points)
	return args.Error(0)
}

func (that *mockScoreRepo) GetAll(ctx context.Context) (map[string]int, error) {
	args := that.Called(ctx)
	scores, _ := args.Get(0).(map[string]int)
	return scores, args.Error(1)
}

type mockSelector struct {
	mock.Mock
}

func (that *mockSelector) Select(board entity.Board, difficulty entity.Difficulty, botMark string) (int, error) {
	args := that.Called(board, difficulty, botMark)
	return args.Int(0), args.Error(1)
}

// memoryGameRepo - keeps copies of games in a map, enough to run the manager without redis.
type memoryGameRepo struct {
	mutex sync.Mutex
	games map[string]entity.Game
}

func newMemoryGameRepo() *memoryGameRepo {
	return &memoryGameRepo{games: make(map[string]entity.Game)}
}

func (that *memoryGameRepo) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	that.mutex.Lock()
	defer that.mutex.Unlock()

	that.games[game.ID] = *game
	return nil
}

func (that *memoryGameRepo) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mutex.Lock()
	defer that.mutex.Unlock()

	game, ok := that.games[id]
	if !ok {
		return nil, apperror.ErrGameNotFound
	}
	return &game, nil
}

func (that *memoryGameRepo) DeleteByID(_ context.Context, id string) error {
	that.mutex.Lock()
	defer that.mutex.Unlock()

	if _, ok := that.games[id]; !ok {
		return apperror.ErrGameNotFound
	}
	delete(that.games, id)
	return nil
}

// flakyGameRepo - fails the first saves, then behaves like memoryGameRepo.
type flakyGameRepo struct {
	*memoryGameRepo

	failures int
	err      error
}

func (that *flakyGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	that.mutex.Lock()
	if that.failures > 0 {
		that.failures--
		that.mutex.Unlock()
		return that.err
	}
	that.mutex.Unlock()

	return that.memoryGameRepo.CreateOrUpdate(ctx, game)
}
