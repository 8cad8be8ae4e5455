// Package server exposes the character repository, the chat history and the
// chat relay as a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edgard/charsheet/internal/config"
	"github.com/edgard/charsheet/internal/database"
	"github.com/edgard/charsheet/internal/logger"
	"github.com/edgard/charsheet/internal/relay"
)

const shutdownTimeout = 10 * time.Second

// Relayer forwards a conversation to a language model.
type Relayer interface {
	Relay(ctx context.Context, model string, messages []relay.Message) (string, error)
}

// Server serves the HTTP API.
type Server struct {
	store   database.Store
	relayer Relayer
	logger  *slog.Logger
	engine  *gin.Engine
	http    *http.Server
}

// New builds the server and registers its routes. A nil logger discards output.
func New(cfg config.HTTPConfig, store database.Store, relayer Relayer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &Server{
		store:   store,
		relayer: relayer,
		logger:  log.With("component", "http_server"),
	}

	s.engine = gin.New()
	s.engine.Use(gin.Recovery(), logger.Middleware(s.logger))
	s.routes()

	s.http = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.engine,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() {
	s.engine.GET("/healthz", s.health)

	characters := s.engine.Group("/characters")
	{
		characters.POST("", s.createCharacter)
		characters.GET("", s.listCharacters)
		characters.GET("/:id", s.getCharacter)
		characters.PUT("/:id", s.updateCharacter)
		characters.DELETE("/:id", s.deleteCharacter)
	}

	s.engine.POST("/chats", s.addChatMessage)
	s.engine.GET("/chats", s.listChatHistory)
	s.engine.POST("/chat/gpt", s.relayChat)
}

// Run listens until ctx is cancelled, then shuts the listener down, waiting
// for in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server failed: %w", err)
		}
		return errors.New("http server stopped unexpectedly")
	case <-ctx.Done():
	}

	s.logger.Info("Shutdown signal received, stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}

	s.logger.Info("HTTP server stopped gracefully.")
	return nil
}

func (s *Server) health(c *gin.Context) {
	if err := s.store.Ping(c.Request.Context()); err != nil {
		s.logger.ErrorContext(c.Request.Context(), "Health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func errorBody(msg string) gin.H {
	return gin.H{"error": msg}
}
