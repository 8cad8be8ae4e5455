package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edgard/charsheet/internal/database"
	"github.com/edgard/charsheet/internal/sheet"
)

func (s *Server) createCharacter(c *gin.Context) {
	character, ok := s.bindCharacter(c)
	if !ok {
		return
	}

	created, err := s.store.CreateCharacter(c.Request.Context(), character)
	if err != nil {
		s.storageError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) listCharacters(c *gin.Context) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", strconv.Itoa(database.DefaultListSkip)))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("skip should be a number"))
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(database.DefaultListLimit)))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("limit should be a number"))
		return
	}

	characters, err := s.store.ListCharacters(c.Request.Context(), skip, limit)
	if err != nil {
		s.storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, characters)
}

func (s *Server) getCharacter(c *gin.Context) {
	id, ok := characterID(c)
	if !ok {
		return
	}

	character, err := s.store.GetCharacter(c.Request.Context(), id)
	if err != nil {
		s.storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, character)
}

func (s *Server) updateCharacter(c *gin.Context) {
	id, ok := characterID(c)
	if !ok {
		return
	}
	character, ok := s.bindCharacter(c)
	if !ok {
		return
	}

	updated, err := s.store.UpdateCharacter(c.Request.Context(), id, character)
	if err != nil {
		s.storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteCharacter(c *gin.Context) {
	id, ok := characterID(c)
	if !ok {
		return
	}

	deleted, err := s.store.DeleteCharacter(c.Request.Context(), id)
	if err != nil {
		s.storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// bindCharacter reads and validates the request body. On failure it writes
// the response and returns false.
func (s *Server) bindCharacter(c *gin.Context) (*sheet.Character, bool) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("failed to read request body"))
		return nil, false
	}

	character, err := sheet.Parse(body)
	if err != nil {
		var validationErr *sheet.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":  validationErr.Error(),
				"fields": validationErr.Fields,
			})
			return nil, false
		}
		c.JSON(http.StatusBadRequest, errorBody(err.Error()))
		return nil, false
	}
	return character, true
}

func characterID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("id should be a number"))
		return 0, false
	}
	return id, true
}

func (s *Server) storageError(c *gin.Context, err error) {
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, errorBody(err.Error()))
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, errorBody("storage error"))
}
