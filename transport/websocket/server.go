package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	ws "github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-chat/internal/entity"
)

type gameManager interface {
	StartGame(ctx context.Context, options *entity.StartOptions) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error)
	MakeBotTurn(ctx context.Context, gameID string) (*entity.Game, error)
	ResetGame(ctx context.Context, gameID string) (*entity.Game, error)
	SetPlayerNames(ctx context.Context, gameID, playerX, playerO string) (*entity.Game, error)
	HandleCommand(ctx context.Context, chatID int64, from *entity.TelegramUser, text string) (*entity.Game, error)
	Leaderboard(ctx context.Context) ([]*entity.LeaderboardEntry, error)
}

type handlerFunc func(ctx context.Context, message *Message, client *client) error

type Server struct {
	logger      *slog.Logger
	gameManager gameManager

	// pause before the bot answers a human move
	thinkDelay time.Duration
	upgrader   ws.Upgrader

	handlers map[string]handlerFunc
}

// client - one websocket connection; writes from the read loop and bot replies are serialised.
type client struct {
	conn       *ws.Conn
	writeMutex sync.Mutex

	// pending bot replies
	replies sync.WaitGroup
}

func New(logger *slog.Logger, gameManager gameManager, thinkDelay time.Duration) *Server {
	server := &Server{
		logger:      logger.With("component", "websocket"),
		gameManager: gameManager,
		thinkDelay:  thinkDelay,
		upgrader: ws.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}

	server.handlers = map[string]handlerFunc{
		actionGameNew:         server.handleNewGame,
		actionGameGet:         server.handleGetGame,
		actionGameTurn:        server.handleGameTurn,
		actionGameReset:       server.handleResetGame,
		actionGamePlayers:     server.handleSetPlayers,
		actionTelegramCommand: server.handleTelegramCommand,
		actionLeaderboard:     server.handleLeaderboard,
	}

	return server
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.upgradeToWebSocket)

	return mux
}

// Start - starts WebSocket server; open connections are closed once ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) upgradeToWebSocket(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(req.Context())
	current := &client{conn: conn}

	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	log.Info("WebSocket connection established", "remote", conn.RemoteAddr().String())

	if err = that.handleMessages(ctx, current); err != nil {
		log.Debug("connection closed", "error", err)
	}

	cancel()
	current.replies.Wait()
}

// handleMessages - processes messages from the client until the connection is closed.
func (that *Server) handleMessages(ctx context.Context, current *client) error {
	log := that.logger.With("method", "handleMessages")

	for {
		messageType, data, err := current.conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		if messageType != ws.TextMessage {
			continue
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			that.sendError(current, actionError, "malformed message")
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			that.sendError(current, message.Action, "unknown action")
			continue
		}

		if err = handler(ctx, &message, current); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

func (that *Server) sendMessage(current *client, action string, payload any) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	current.writeMutex.Lock()
	defer current.writeMutex.Unlock()

	if err = current.conn.WriteJSON(Message{Action: action, Payload: payloadJSON}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendError(current *client, action, errorMsg string) {
	if err := that.sendMessage(current, action, ResponsePayload{Error: errorMsg}); err != nil {
		that.logger.Error("failed to send error response", "action", action, "error", err)
	}
}
