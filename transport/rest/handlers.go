package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rocketscienceinc/tictactoe-chat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-chat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-chat/pkg/handlers"
)

type gameManager interface {
	StartGame(ctx context.Context, options *entity.StartOptions) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error)
	MakeBotTurn(ctx context.Context, gameID string) (*entity.Game, error)
	ResetGame(ctx context.Context, gameID string) (*entity.Game, error)
	DeleteGame(ctx context.Context, gameID string) error
	SetPlayerNames(ctx context.Context, gameID, playerX, playerO string) (*entity.Game, error)
	HandleCommand(ctx context.Context, chatID int64, from *entity.TelegramUser, text string) (*entity.Game, error)
	Leaderboard(ctx context.Context) ([]*entity.LeaderboardEntry, error)
	History(ctx context.Context, limit int) ([]*entity.GameHistory, error)
	Stats(ctx context.Context) (entity.Stats, error)
}

type TurnRequest struct {
	Cell *int `json:"cell"`
}

type PlayersRequest struct {
	PlayerXName string `json:"player_x_name"`
	PlayerOName string `json:"player_o_name"`
}

type CommandRequest struct {
	ChatID int64                `json:"chat_id"`
	From   *entity.TelegramUser `json:"from"`
	Text   string               `json:"text"`
}

type gameHandlers struct {
	logger      *slog.Logger
	gameManager gameManager
}

func newHandlers(logger *slog.Logger, gameManager gameManager) *gameHandlers {
	return &gameHandlers{
		logger:      logger.With("component", "rest"),
		gameManager: gameManager,
	}
}

func (that *gameHandlers) StartGame(w http.ResponseWriter, r *http.Request) {
	var options entity.StartOptions
	if err := decodeBody(r, &options); err != nil {
		that.writeError(w, "StartGame", err)
		return
	}

	game, err := that.gameManager.StartGame(r.Context(), &options)
	if err != nil {
		that.writeError(w, "StartGame", err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, game)
}

func (that *gameHandlers) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameManager.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "GetGame", err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, game)
}

// MakeTurn - applies the human move; in a bot game the bot answers before the response is written.
func (that *gameHandlers) MakeTurn(w http.ResponseWriter, r *http.Request) {
	var request TurnRequest
	if err := decodeBody(r, &request); err != nil {
		that.writeError(w, "MakeTurn", err)
		return
	}

	if request.Cell == nil {
		that.writeError(w, "MakeTurn", fmt.Errorf("%w: cell is required", apperror.ErrInvalidCell))
		return
	}

	gameID := chi.URLParam(r, "id")

	game, err := that.gameManager.MakeTurn(r.Context(), gameID, *request.Cell)
	if err != nil {
		that.writeError(w, "MakeTurn", err)
		return
	}

	if game.IsBotTurn() {
		if game, err = that.gameManager.MakeBotTurn(r.Context(), gameID); err != nil {
			that.writeError(w, "MakeTurn", err)
			return
		}
	}

	handlers.WriteJSON(w, http.StatusOK, game)
}

func (that *gameHandlers) DeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.gameManager.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, "DeleteGame", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *gameHandlers) ResetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameManager.ResetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "ResetGame", err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, game)
}

func (that *gameHandlers) SetPlayerNames(w http.ResponseWriter, r *http.Request) {
	var request PlayersRequest
	if err := decodeBody(r, &request); err != nil {
		that.writeError(w, "SetPlayerNames", err)
		return
	}

	game, err := that.gameManager.SetPlayerNames(r.Context(), chi.URLParam(r, "id"), request.PlayerXName, request.PlayerOName)
	if err != nil {
		that.writeError(w, "SetPlayerNames", err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, game)
}

func (that *gameHandlers) HandleCommand(w http.ResponseWriter, r *http.Request) {
	var request CommandRequest
	if err := decodeBody(r, &request); err != nil {
		that.writeError(w, "HandleCommand", err)
		return
	}

	if request.From == nil {
		that.writeError(w, "HandleCommand", apperror.ErrMissingSender)
		return
	}

	game, err := that.gameManager.HandleCommand(r.Context(), request.ChatID, request.From, request.Text)
	if err != nil {
		that.writeError(w, "HandleCommand", err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, game)
}

func (that *gameHandlers) Leaderboard(w http.ResponseWriter, r *http.Request) {
	leaderboard, err := that.gameManager.Leaderboard(r.Context())
	if err != nil {
		that.writeError(w, "Leaderboard", err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, leaderboard)
}

func (that *gameHandlers) History(w http.ResponseWriter, r *http.Request) {
	var limit int
	if value := r.URL.Query().Get("limit"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 0 {
			that.writeError(w, "History", fmt.Errorf("%w: limit %q", ErrInvalidBody, value))
			return
		}
		limit = parsed
	}

	history, err := that.gameManager.History(r.Context(), limit)
	if err != nil {
		that.writeError(w, "History", err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, history)
}

func (that *gameHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := that.gameManager.Stats(r.Context())
	if err != nil {
		that.writeError(w, "Stats", err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, stats)
}

func (that *gameHandlers) writeError(w http.ResponseWriter, method string, err error) {
	status := statusFor(err)

	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
		handlers.WriteError(w, status, "Internal Server Error")
		return
	}

	that.logger.Debug("request rejected", "method", method, "error", err)
	handlers.WriteError(w, status, err.Error())
}

func decodeBody(r *http.Request, target any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}

	return nil
}
