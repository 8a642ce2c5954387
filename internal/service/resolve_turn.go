package service

import (
	"errors"
	"time"

	"github.com/wacky444/Zarka-sub000/internal/dedupe"
	"github.com/wacky444/Zarka-sub000/internal/game"
	"github.com/wacky444/Zarka-sub000/internal/logging"
	"github.com/wacky444/Zarka-sub000/internal/storage"
)

// ResolveMatchTurn resolves the pending turn of a match exactly once.
// Concurrent triggers for the same match (the ready path and the cutoff
// scanner) collapse into a single resolution via the shared singleflight
// group; a stale version write means another process already resolved the
// turn, which is logged and treated as success.
func (s *Service) ResolveMatchTurn(matchID string) error {
	_, err, _ := dedupe.ResolveGroup.Do(matchID, func() (interface{}, error) {
		return nil, s.resolveMatchTurnOnce(matchID)
	})
	return err
}

func (s *Service) resolveMatchTurnOnce(matchID string) error {
	m, version, err := s.repo.GetMatch(matchID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrMatchNotFound
		}
		return err
	}
	if m.Status != game.StatusInProgress {
		return ErrMatchNotInProgress
	}

	result := s.eng.ResolveTurn(m, s.newRng())
	if !result.Advanced {
		return nil
	}

	if len(m.LivingCharacters()) <= 1 {
		m.Status = game.StatusFinished
		m.Removed = true
	} else {
		m.Deadline = time.Now().Add(s.cfg.TurnCutoff)
	}

	if err := s.repo.UpdateMatch(m, version); err != nil {
		if errors.Is(err, storage.ErrVersionConflict) {
			logging.Warn("skipping turn resolution, match changed underneath", logging.Fields{
				"match_id": matchID,
				"turn":     result.ResolvedTurn,
			})
			return nil
		}
		return err
	}

	rec := &game.ReplayRecord{
		MatchID:   m.ID,
		Turn:      result.ResolvedTurn,
		Events:    result.Events,
		CreatedAt: time.Now().Unix(),
	}
	if err := s.repo.SaveReplay(rec); err != nil {
		logging.Error("failed to save turn replay", err, logging.Fields{
			"match_id": matchID,
			"turn":     result.ResolvedTurn,
		})
		return err
	}

	logging.Info("turn resolved", logging.Fields{
		"match_id": matchID,
		"turn":     result.ResolvedTurn,
		"events":   len(result.Events),
		"status":   m.Status,
	})
	return nil
}

// ResolveExpiredMatches resolves every in-progress match whose turn cutoff
// has passed. The cutoff scanner calls this on a ticker.
func (s *Service) ResolveExpiredMatches(now time.Time) {
	ids, err := s.repo.FindMatchesPastDeadline(now)
	if err != nil {
		logging.Error("failed to scan for expired turns", err, nil)
		return
	}
	for _, id := range ids {
		if err := s.ResolveMatchTurn(id); err != nil {
			logging.Error("failed to resolve expired turn", err, logging.Fields{
				"match_id": id,
			})
		}
	}
}
