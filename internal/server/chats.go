package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edgard/charsheet/internal/relay"
)

type chatMessageRequest struct {
	From    string `json:"from"    binding:"required"`
	To      string `json:"to"      binding:"required"`
	Content string `json:"content" binding:"required"`
}

type relayRequest struct {
	Model    string          `json:"model"`
	Messages []relay.Message `json:"messages" binding:"required,min=1,dive"`
}

func (s *Server) addChatMessage(c *gin.Context) {
	var req chatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, errorBody(err.Error()))
		return
	}

	msg, err := s.store.AddChatMessage(c.Request.Context(), req.From, req.To, req.Content)
	if err != nil {
		s.storageError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (s *Server) listChatHistory(c *gin.Context) {
	messages, err := s.store.ListChatHistory(c.Request.Context())
	if err != nil {
		s.storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (s *Server) relayChat(c *gin.Context) {
	var req relayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, errorBody(err.Error()))
		return
	}

	reply, err := s.relayer.Relay(c.Request.Context(), req.Model, req.Messages)
	if err != nil {
		var relayErr *relay.RelayError
		if errors.As(err, &relayErr) {
			c.JSON(relayStatus(relayErr), errorBody(relayErr.Error()))
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, errorBody("relay error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": reply})
}

// relayStatus keeps 502 for failures of the model backend itself.
func relayStatus(err *relay.RelayError) int {
	switch {
	case errors.Is(err, relay.ErrInvalidConversation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, relay.ErrNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}
