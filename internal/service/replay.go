package service

import (
	"errors"

	"github.com/wacky444/Zarka-sub000/internal/engine"
	"github.com/wacky444/Zarka-sub000/internal/game"
	"github.com/wacky444/Zarka-sub000/internal/storage"
)

// ReplayForPlayer returns the stored replay of a resolved turn, trimmed
// to the events the viewer was in a position to witness.
func (s *Service) ReplayForPlayer(joinCode string, turn int, viewerID string) (*game.ReplayRecord, error) {
	m, _, err := s.repo.FindMatchByJoinCode(joinCode)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	if _, ok := m.Characters[viewerID]; !ok {
		return nil, ErrPlayerNotInMatch
	}

	rec, err := s.repo.GetReplay(m.ID, turn)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrReplayNotFound
		}
		return nil, err
	}

	tailored := *rec
	tailored.Events = engine.TailorReplayEvents(rec.Events, viewerID, m.Characters, m.Settings.ViewDistance)
	return &tailored, nil
}
