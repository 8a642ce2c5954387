package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wacky444/Zarka-sub000/internal/constants"
	"github.com/wacky444/Zarka-sub000/internal/service"
)

type CreateMatchRequest struct {
	Name string `json:"name"`
}

type JoinMatchRequest struct {
	PlayerName string `json:"player_name"`
}

// ListMatches returns the newest joinable matches, limited to 10 by
// default.
func (h *GameHandler) ListMatches(c *gin.Context) {
	// optional ?limit=N
	limit := 10
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	matches, err := h.svc.OpenMatches(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedListMatches})
		return
	}
	c.JSON(http.StatusOK, matches)
}

// CreateMatch creates a fresh match and returns it with its join code.
func (h *GameHandler) CreateMatch(c *gin.Context) {
	var req CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if req.Name == "" {
		req.Name = "Unnamed match"
	}

	m, err := h.svc.CreateMatch(req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateMatch})
		return
	}
	c.JSON(http.StatusCreated, m)
}

// JoinMatch adds the caller to a waiting match and returns the minted
// player id alongside the match state.
func (h *GameHandler) JoinMatch(c *gin.Context) {
	code := normalizeJoinCode(c.Param("code"))
	if !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidJoinCode})
		return
	}
	var req JoinMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if req.PlayerName == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	m, pid, err := h.svc.JoinMatch(code, req.PlayerName)
	if err != nil {
		switch err {
		case service.ErrMatchNotFound:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		case service.ErrMatchAlreadyStarted:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrMatchAlreadyStarted})
		case service.ErrMatchFull:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrMatchFull})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedJoinMatch})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"player_id": pid, "match": m})
}

// StartMatch fills the roster with bots and opens the first turn.
func (h *GameHandler) StartMatch(c *gin.Context) {
	code := normalizeJoinCode(c.Param("code"))
	if !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidJoinCode})
		return
	}

	m, err := h.svc.StartMatch(code)
	if err != nil {
		switch err {
		case service.ErrMatchNotFound:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		case service.ErrMatchAlreadyStarted:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrMatchAlreadyStarted})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		}
		return
	}
	c.JSON(http.StatusOK, m)
}

// GetMatch returns the match as seen by the calling player.
func (h *GameHandler) GetMatch(c *gin.Context) {
	code := normalizeJoinCode(c.Param("code"))
	if !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidJoinCode})
		return
	}
	pid := playerID(c)
	if pid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrPlayerIDRequired})
		return
	}

	m, err := h.svc.MatchForPlayer(code, pid)
	if err != nil {
		switch err {
		case service.ErrMatchNotFound:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		case service.ErrPlayerNotInMatch:
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInMatch})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		}
		return
	}
	c.JSON(http.StatusOK, m)
}
