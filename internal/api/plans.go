package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wacky444/Zarka-sub000/internal/constants"
	"github.com/wacky444/Zarka-sub000/internal/game"
	"github.com/wacky444/Zarka-sub000/internal/service"
)

type PlanRequest struct {
	Slot             string   `json:"slot"`
	ActionID         string   `json:"action_id"`
	TargetLocationID string   `json:"target_location_id"`
	TargetPlayerIDs  []string `json:"target_player_ids"`
	TargetItemIDs    []string `json:"target_item_ids"`
	ExtraEffort      int      `json:"extra_effort"`
}

// SubmitPlan stores the caller's plan for one slot of the pending turn.
// The response reports whether the submission completed the turn and
// triggered resolution.
func (h *GameHandler) SubmitPlan(c *gin.Context) {
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
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	key := game.PlanKey(req.Slot)
	if key != game.PlanMain && key != game.PlanSecondary {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	plan := &game.PlannedAction{
		ActionID:         game.ActionID(req.ActionID),
		TargetLocationID: req.TargetLocationID,
		TargetPlayerIDs:  req.TargetPlayerIDs,
		TargetItemIDs:    req.TargetItemIDs,
		ExtraEffort:      req.ExtraEffort,
	}

	resolved, err := h.svc.SubmitPlan(code, pid, key, plan)
	if err != nil {
		switch err {
		case service.ErrMatchNotFound:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		case service.ErrMatchNotInProgress:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrMatchNotInProgress})
		case service.ErrPlayerNotInMatch:
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInMatch})
		case service.ErrCharacterDown:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrCharacterDown})
		case service.ErrUnknownAction:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownAction})
		case service.ErrActionNotDeveloped:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrActionNotDeveloped})
		case service.ErrWrongSlotCategory:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrWrongSlotCategory})
		case service.ErrNegativeEffort:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrNegativeEffort})
		case service.ErrActionOnCooldown:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrActionOnCooldown})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStorePlan})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"resolved": resolved})
}
