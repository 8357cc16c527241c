package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rocketscienceinc/tictactoe-chat/pkg/handlers"
)

const shutdownTimeout = 5 * time.Second

// NewRouter - REST routes of the game service.
func NewRouter(logger *slog.Logger, gameManager gameManager) http.Handler {
	h := newHandlers(logger, gameManager)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	router.Get("/ping", handlers.PingHandler)

	router.Route("/api", func(r chi.Router) {
		r.Post("/games", h.StartGame)
		r.Route("/games/{id}", func(r chi.Router) {
			r.Get("/", h.GetGame)
			r.Delete("/", h.DeleteGame)
			r.Post("/turn", h.MakeTurn)
			r.Post("/reset", h.ResetGame)
			r.Put("/players", h.SetPlayerNames)
		})

		r.Post("/telegram/command", h.HandleCommand)

		r.Get("/leaderboard", h.Leaderboard)
		r.Get("/history", h.History)
		r.Get("/stats", h.Stats)
	})

	return router
}

// Start - serves handler until ctx is canceled.
func Start(ctx context.Context, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
