package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-chat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-chat/internal/entity"
)

const errInternal = "internal error"

var clientErrors = []error{
	apperror.ErrGameNotFound,
	apperror.ErrGameFinished,
	apperror.ErrNotYourTurn,
	apperror.ErrNotBotTurn,
	apperror.ErrCellOccupied,
	apperror.ErrInvalidCell,
	apperror.ErrInvalidMark,
	apperror.ErrInvalidDifficulty,
	apperror.ErrInvalidGameMode,
	apperror.ErrUnknownCommand,
	apperror.ErrMissingOpponent,
	apperror.ErrEmptyCommand,
	apperror.ErrMissingSender,
}

func (that *Server) handleNewGame(ctx context.Context, msg *Message, current *client) error {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		return that.replyError(current, msg.Action, err)
	}

	if payloadReq.Options == nil {
		return that.replyError(current, msg.Action, &payloadError{reason: "options are required"})
	}

	game, err := that.gameManager.StartGame(ctx, payloadReq.Options)
	if err != nil {
		return that.replyError(current, msg.Action, err)
	}

	return that.sendMessage(current, msg.Action, ResponsePayload{Game: game})
}

func (that *Server) handleGetGame(ctx context.Context, msg *Message, current *client) error {
	payloadReq, err := decodeGamePayload(msg)
	if err != nil {
		return that.replyError(current, msg.Action, err)
	}

	game, err := that.gameManager.GetGame(ctx, payloadReq.GameID)
	if err != nil {
		return that.replyError(current, msg.Action, err)
	}

	return that.sendMessage(current, msg.Action, ResponsePayload{Game: game})
}

// handleGameTurn - answers with the human move; the bot reply follows as game:bot-turn after the think delay.
func (that *Server) handleGameTurn(ctx context.Context, msg *Message, current *client) error {
	log := that.logger.With("method", "handleGameTurn")

	payloadReq, err := decodeGamePayload(msg)
	if err != nil {
		return that.replyError(current, msg.Action, err)
	}

	if payloadReq.Cell == nil {
		return that.replyError(current, msg.Action, fmt.Errorf("%w: cell is required", apperror.ErrInvalidCell))
	}

	game, err := that.gameManager.MakeTurn(ctx, payloadReq.GameID, *payloadReq.Cell)
	if err != nil {
		return that.replyError(current, msg.Action, err)
	}

	if err = that.sendMessage(current, msg.Action, ResponsePayload{Game: game}); err != nil {
		return err
	}

	if game.IsBotTurn() {
		log.Debug("bot is thinking", "gameID", game.ID, "delay", that.thinkDelay)

		current.replies.Add(1)
		go that.botReply(ctx, current, game.ID)
	}

	return nil
}

// botReply - waits the think delay unless the connection goes away first.
func (that *Server) botReply(ctx context.Context, current *client, gameID string) {
	defer current.replies.Done()

	log := that.logger.With("method", "botReply", "gameID", gameID)

	timer := time.NewTimer(that.thinkDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		log.Debug("bot reply canceled")
		return
	case <-timer.C:
	}

	// once started the move is stored even if the client leaves meanwhile
	game, err := that.gameManager.MakeBotTurn(context.WithoutCancel(ctx), gameID)
	if err != nil {
		if replyErr := that.replyError(current, actionGameBotTurn, err); replyErr != nil {
			log.Error("failed to send bot turn error", "error", replyErr)
		}
		return
	}

	if err = that.sendMessage(current, actionGameBotTurn, ResponsePayload{Game: game}); err != nil {
		log.Error("failed to send bot turn", "error", err)
	}
}

func (that *Server) handleResetGame(ctx context.Context, msg *Message, current *client) error {
	payloadReq, err := decodeGamePayload(msg)
	if err != nil {
		return that.replyError(current, msg.Action, err)
	}

	game, err := that.gameManager.ResetGame(ctx, payloadReq.GameID)
	if err != nil {
		return that.replyError(current, msg.Action, err)
	}

	return that.sendMessage(current, msg.Action, ResponsePayload{Game: game})
}

func (that *Server) handleSetPlayers(ctx context.Context, msg *Message, current *client) error {
	payloadReq, err := decodeGamePayload(msg)
	if err != nil {
		return that.replyError(current, msg.Action, err)
	}

	game, err := that.gameManager.SetPlayerNames(ctx, payloadReq.GameID, payloadReq.PlayerXName, payloadReq.PlayerOName)
	if err != nil {
		return that.replyError(current, msg.Action, err)
	}

	return that.sendMessage(current, msg.Action, ResponsePayload{Game: game})
}

func (that *Server) handleTelegramCommand(ctx context.Context, msg *Message, current *client) error {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		return that.replyError(current, msg.Action, err)
	}

	if payloadReq.From == nil {
		return that.replyError(current, msg.Action, apperror.ErrMissingSender)
	}

	game, err := that.gameManager.HandleCommand(ctx, payloadReq.ChatID, payloadReq.From, payloadReq.Text)
	if err != nil {
		return that.replyError(current, msg.Action, err)
	}

	return that.sendMessage(current, msg.Action, ResponsePayload{Game: game})
}

func (that *Server) handleLeaderboard(ctx context.Context, msg *Message, current *client) error {
	leaderboard, err := that.gameManager.Leaderboard(ctx)
	if err != nil {
		return that.replyError(current, msg.Action, err)
	}

	if leaderboard == nil {
		leaderboard = []*entity.LeaderboardEntry{}
	}

	return that.sendMessage(current, msg.Action, LeaderboardPayload{Leaderboard: leaderboard})
}

// replyError - known errors are shown to the client as is, anything else is logged and hidden.
func (that *Server) replyError(current *client, action string, err error) error {
	message := err.Error()

	if !isClientError(err) {
		that.logger.Error("request failed", "action", action, "error", err)
		message = errInternal
	}

	return that.sendMessage(current, action, ResponsePayload{Error: message})
}

func isClientError(err error) bool {
	var payloadErr *payloadError
	if errors.As(err, &payloadErr) {
		return true
	}

	for _, target := range clientErrors {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

type payloadError struct {
	reason string
}

func (that *payloadError) Error() string {
	return that.reason
}

func decodePayload(msg *Message) (*RequestPayload, error) {
	var payloadReq RequestPayload

	if len(msg.Payload) == 0 {
		return &payloadReq, nil
	}

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return nil, &payloadError{reason: "failed to unmarshal payload: " + err.Error()}
	}

	return &payloadReq, nil
}

func decodeGamePayload(msg *Message) (*RequestPayload, error) {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		return nil, err
	}

	if payloadReq.GameID == "" {
		return nil, &payloadError{reason: "game_id is required"}
	}

	return payloadReq, nil
}
