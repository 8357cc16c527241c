package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-chat/internal/entity"
)

const (
	actionGameNew         = "game:new"
	actionGameGet         = "game:get"
	actionGameTurn        = "game:turn"
	actionGameBotTurn     = "game:bot-turn"
	actionGameReset       = "game:reset"
	actionGamePlayers     = "game:players"
	actionTelegramCommand = "telegram:command"
	actionLeaderboard     = "leaderboard"
	actionError           = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	GameID  string               `json:"game_id,omitempty"`
	Cell    *int                 `json:"cell,omitempty"`
	Options *entity.StartOptions `json:"options,omitempty"`

	PlayerXName string `json:"player_x_name,omitempty"`
	PlayerOName string `json:"player_o_name,omitempty"`

	ChatID int64                `json:"chat_id,omitempty"`
	From   *entity.TelegramUser `json:"from,omitempty"`
	Text   string               `json:"text,omitempty"`
}

type ResponsePayload struct {
	Game  *entity.Game `json:"game,omitempty"`
	Error string       `json:"error,omitempty"`
}

// LeaderboardPayload - an empty leaderboard is sent as [].
type LeaderboardPayload struct {
	Leaderboard []*entity.LeaderboardEntry `json:"leaderboard"`
}
