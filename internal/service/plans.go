package service

import (
	"errors"

	"github.com/wacky444/Zarka-sub000/internal/engine"
	"github.com/wacky444/Zarka-sub000/internal/game"
	"github.com/wacky444/Zarka-sub000/internal/storage"
)

// SubmitPlan validates and stores one plan slot for a player. Filling the
// main slot marks the player ready; when every living human is ready the
// pending turn resolves immediately and the returned flag is true.
func (s *Service) SubmitPlan(joinCode, playerID string, key game.PlanKey, plan *game.PlannedAction) (bool, error) {
	var matchID string
	for attempt := 0; attempt < 3; attempt++ {
		m, version, err := s.repo.FindMatchByJoinCode(joinCode)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return false, ErrMatchNotFound
			}
			return false, err
		}
		if m.Status != game.StatusInProgress {
			return false, ErrMatchNotInProgress
		}
		ch, ok := m.Characters[playerID]
		if !ok {
			return false, ErrPlayerNotInMatch
		}
		if ch.IsIncapacitated() {
			return false, ErrCharacterDown
		}
		if err := s.validatePlan(ch, key, plan, m.CurrentTurn); err != nil {
			return false, err
		}

		ch.SetPlan(key, plan)
		if key == game.PlanMain {
			m.ReadyStates[playerID] = true
		}
		matchID = m.ID

		switch err := s.repo.UpdateMatch(m, version); {
		case err == nil:
			if allHumansReady(m) {
				if err := s.ResolveMatchTurn(matchID); err != nil {
					return false, err
				}
				return true, nil
			}
			return false, nil
		case errors.Is(err, storage.ErrVersionConflict):
			continue
		case errors.Is(err, storage.ErrNotFound):
			return false, ErrMatchNotFound
		default:
			return false, err
		}
	}
	return false, storage.ErrVersionConflict
}

func (s *Service) validatePlan(ch *game.Character, key game.PlanKey, plan *game.PlannedAction, currentTurn int) error {
	if plan == nil {
		return ErrUnknownAction
	}
	if plan.ExtraEffort < 0 {
		return ErrNegativeEffort
	}
	def, ok := s.eng.Actions().Get(plan.ActionID)
	if !ok {
		return ErrUnknownAction
	}
	if !def.Developed {
		return ErrActionNotDeveloped
	}
	if def.Category != game.CategoryAny && def.Category != string(key) {
		return ErrWrongSlotCategory
	}
	if engine.IsActionOnCooldown(ch, plan.ActionID, currentTurn) {
		return ErrActionOnCooldown
	}
	return nil
}

// allHumansReady reports whether every living human player has a ready
// main plan. Bots and downed characters never gate resolution.
func allHumansReady(m *game.Match) bool {
	sawHuman := false
	for _, ch := range m.Roster() {
		if ch.IsBot() || ch.IsIncapacitated() {
			continue
		}
		sawHuman = true
		if !m.ReadyStates[ch.ID] {
			return false
		}
	}
	return sawHuman
}
