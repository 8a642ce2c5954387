package api

import (
	"github.com/wacky444/Zarka-sub000/internal/service"
)

// GameHandler groups all match-related HTTP handlers.
type GameHandler struct {
	svc *service.Service
}

// NewGameHandler creates a new GameHandler backed by the given service.
func NewGameHandler(svc *service.Service) *GameHandler {
	return &GameHandler{svc: svc}
}
