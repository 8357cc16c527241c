package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-chat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-chat/internal/bot"
	"github.com/rocketscienceinc/tictactoe-chat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-chat/internal/telegram"
)

var ErrNoMoveAvailable = errors.New("bot has no move available")

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type historyRepo interface {
	Add(ctx context.Context, entry *entity.GameHistory) error
	List(ctx context.Context, limit int) ([]*entity.GameHistory, error)
}

type scoreRepo interface {
	Add(ctx context.Context, name string, points int) error
	GetAll(ctx context.Context) (map[string]int, error)
}

type moveSelector interface {
	Select(board entity.Board, difficulty entity.Difficulty, botMark string) (int, error)
}

type gameLock struct {
	mutex sync.Mutex
	refs  int
}

type GameManager struct {
	logger *slog.Logger

	gameRepo    gameRepo
	historyRepo historyRepo
	scoreRepo   scoreRepo

	selector          moveSelector
	selectorMutex     sync.Mutex
	defaultDifficulty entity.Difficulty

	// one mutex per game id, dropped once nobody holds or waits for it
	locksMutex sync.Mutex
	locks      map[string]*gameLock

	newID func() string
	now   func() time.Time
}

func NewGameManager(
	logger *slog.Logger,
	gameRepo gameRepo,
	historyRepo historyRepo,
	scoreRepo scoreRepo,
	selector moveSelector,
	defaultDifficulty entity.Difficulty,
) *GameManager {
	return &GameManager{
		logger: logger.With("component", "gameManager"),

		gameRepo:    gameRepo,
		historyRepo: historyRepo,
		scoreRepo:   scoreRepo,

		selector:          selector,
		defaultDifficulty: defaultDifficulty,

		locks: make(map[string]*gameLock),

		newID: uuid.NewString,
		now:   time.Now,
	}
}

// StartGame - creates a game; if the bot plays X it moves immediately.
func (that *GameManager) StartGame(ctx context.Context, options *entity.StartOptions) (*entity.Game, error) {
	if err := options.Validate(that.defaultDifficulty); err != nil {
		return nil, fmt.Errorf("invalid game options: %w", err)
	}

	game := entity.NewGame(that.newID(), options.Mode)
	if game.IsWithBot() {
		game.BotDifficulty = options.Difficulty
		game.BotMark = options.BotMark
	}
	game.Chat = options.Chat
	game.Players = options.Players
	game.SetPlayerNames(options.PlayerXName, options.PlayerOName)

	if game.IsBotTurn() {
		if err := that.botTurn(game); err != nil {
			return nil, fmt.Errorf("bot failed to make first turn: %w", err)
		}
	}

	if err := that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	that.logger.Info("game started", "gameID", game.ID, "mode", game.Mode, "difficulty", game.BotDifficulty)

	return game, nil
}

// HandleCommand - starts a game from a chat command such as "/bot hard".
func (that *GameManager) HandleCommand(ctx context.Context, chatID int64, from *entity.TelegramUser, text string) (*entity.Game, error) {
	options, err := telegram.BuildStart(text, chatID, from, that.defaultDifficulty)
	if err != nil {
		return nil, fmt.Errorf("failed to handle command: %w", err)
	}

	return that.StartGame(ctx, options)
}

func (that *GameManager) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	return that.getGameByID(ctx, gameID)
}

// MakeTurn - places the mark of the side to move; in bot games only the human side may call it.
func (that *GameManager) MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error) {
	unlock := that.lock(gameID)
	defer unlock()

	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if game.IsBotTurn() {
		return nil, apperror.ErrNotYourTurn
	}

	if err = game.MakeTurn(game.HumanMark(), cell); err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	if err = that.saveAndFinish(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

// MakeBotTurn - lets the bot answer; fails with ErrNotBotTurn when the human should move.
func (that *GameManager) MakeBotTurn(ctx context.Context, gameID string) (*entity.Game, error) {
	unlock := that.lock(gameID)
	defer unlock()

	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if !game.IsBotTurn() {
		return nil, apperror.ErrNotBotTurn
	}

	if err = that.botTurn(game); err != nil {
		return nil, fmt.Errorf("bot failed to make turn: %w", err)
	}

	if err = that.saveAndFinish(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

// DeleteGame - removes a stored game; its history entry and scores stay.
func (that *GameManager) DeleteGame(ctx context.Context, gameID string) error {
	unlock := that.lock(gameID)
	defer unlock()

	if err := that.gameRepo.DeleteByID(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "gameID", gameID)

	return nil
}

func (that *GameManager) ResetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	unlock := that.lock(gameID)
	defer unlock()

	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	game.Reset()

	if game.IsBotTurn() {
		if err = that.botTurn(game); err != nil {
			return nil, fmt.Errorf("bot failed to make first turn: %w", err)
		}
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

func (that *GameManager) SetPlayerNames(ctx context.Context, gameID, playerX, playerO string) (*entity.Game, error) {
	unlock := that.lock(gameID)
	defer unlock()

	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	game.SetPlayerNames(playerX, playerO)

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

func (that *GameManager) Leaderboard(ctx context.Context) ([]*entity.LeaderboardEntry, error) {
	history, err := that.historyRepo.List(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}

	scores, err := that.scoreRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get scores: %w", err)
	}

	return entity.BuildLeaderboard(history, scores), nil
}

func (that *GameManager) History(ctx context.Context, limit int) ([]*entity.GameHistory, error) {
	history, err := that.historyRepo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}

	return history, nil
}

func (that *GameManager) Stats(ctx context.Context) (entity.Stats, error) {
	history, err := that.historyRepo.List(ctx, 0)
	if err != nil {
		return entity.Stats{}, fmt.Errorf("failed to get history: %w", err)
	}

	return entity.BuildStats(history), nil
}

// botTurn - plays the bot's move on game without storing it.
func (that *GameManager) botTurn(game *entity.Game) error {
	that.selectorMutex.Lock()
	cell, err := that.selector.Select(game.Board, game.BotDifficulty, game.BotMark)
	that.selectorMutex.Unlock()

	if err != nil {
		return fmt.Errorf("failed to select move: %w", err)
	}

	if cell == bot.NoMove {
		return ErrNoMoveAvailable
	}

	if err = game.MakeTurn(game.BotMark, cell); err != nil {
		return fmt.Errorf("failed to make turn: %w", err)
	}

	that.logger.Debug("bot moved", "gameID", game.ID, "cell", cell, "difficulty", game.BotDifficulty)

	return nil
}

// saveAndFinish - stores game, then records the result if it just ended.
// A failed save leaves nothing recorded, so a retried move cannot score twice.
func (that *GameManager) saveAndFinish(ctx context.Context, game *entity.Game) error {
	if err := that.updateGame(ctx, game); err != nil {
		return err
	}

	return that.finishIfOver(ctx, game)
}

// finishIfOver - records history and scores once the game has ended.
func (that *GameManager) finishIfOver(ctx context.Context, game *entity.Game) error {
	if !game.IsFinished() {
		return nil
	}

	log := that.logger.With("method", "finishIfOver", "gameID", game.ID)

	entry := entity.NewGameHistory(that.newID(), that.now(), game)
	if err := that.historyRepo.Add(ctx, entry); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}

	for name, points := range entity.ScoreChanges(game) {
		if err := that.scoreRepo.Add(ctx, name, points); err != nil {
			return fmt.Errorf("failed to update score: %w", err)
		}
	}

	log.Info("game finished", "status", game.Status, "winner", entry.Winner)

	return nil
}

func (that *GameManager) lock(gameID string) func() {
	that.locksMutex.Lock()
	current, ok := that.locks[gameID]
	if !ok {
		current = &gameLock{}
		that.locks[gameID] = current
	}
	current.refs++
	that.locksMutex.Unlock()

	current.mutex.Lock()

	return func() {
		current.mutex.Unlock()

		that.locksMutex.Lock()
		current.refs--
		if current.refs == 0 {
			delete(that.locks, gameID)
		}
		that.locksMutex.Unlock()
	}
}

// lockCount - number of game ids with a live lock.
func (that *GameManager) lockCount() int {
	that.locksMutex.Lock()
	defer that.locksMutex.Unlock()

	return len(that.locks)
}

func (that *GameManager) getGameByID(ctx context.Context, id string) (*entity.Game, error) {
	existingGame, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return existingGame, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}
