package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wacky444/Zarka-sub000/internal/game"
	"github.com/wacky444/Zarka-sub000/internal/storage"
)

// Character spawn defaults. Balance tuning lives with the catalog config;
// these are the fixed baselines every character starts from.
const (
	spawnHealthCurrent = 10
	spawnHealthMax     = 12
	spawnEnergyCurrent = 20
	spawnEnergyMax     = 30
	spawnLoadMax       = 30
)

// CreateMatch builds a fresh match with a generated map and scattered
// items and persists it in the waiting state.
func (s *Service) CreateMatch(name string) (*game.Match, error) {
	rng := s.newRng()
	m := &game.Match{
		ID:          uuid.NewString(),
		Name:        name,
		JoinCode:    generateJoinCode(rng),
		PlayerIDs:   []string{},
		Characters:  map[string]*game.Character{},
		ReadyStates: map[string]bool{},
		CurrentTurn: 1,
		Status:      game.StatusWaiting,
		Settings: game.Settings{
			ViewDistance: s.cfg.ViewDistance,
			MinPlayers:   s.cfg.MinPlayers,
		},
	}
	m.MapTiles = buildMatchMap(s.cfg.MapRadius, s.cfg.Locations, rng)
	m.Items = scatterItems(m, s.cfg.ItemSpawns, rng)

	if err := s.repo.CreateMatch(m); err != nil {
		return nil, err
	}
	return m, nil
}

// MatchSummary is the lobby-browser projection of a joinable match.
type MatchSummary struct {
	Name     string `json:"name"`
	JoinCode string `json:"join_code"`
	Players  int    `json:"players"`
	Capacity int    `json:"capacity"`
	Status   string `json:"status"`
}

// OpenMatches lists the newest joinable matches, at most limit.
func (s *Service) OpenMatches(limit int) ([]MatchSummary, error) {
	matches, err := s.repo.ListOpenMatches(limit)
	if err != nil {
		return nil, err
	}
	out := make([]MatchSummary, 0, len(matches))
	for _, m := range matches {
		out = append(out, MatchSummary{
			Name:     m.Name,
			JoinCode: m.JoinCode,
			Players:  len(m.PlayerIDs),
			Capacity: m.Settings.MinPlayers,
			Status:   m.Status,
		})
	}
	return out, nil
}

// JoinMatch adds a human player to a waiting match, minting their player
// id and spawning a character on a random walkable tile.
func (s *Service) JoinMatch(joinCode, playerName string) (*game.Match, string, error) {
	for attempt := 0; attempt < 3; attempt++ {
		m, version, err := s.repo.FindMatchByJoinCode(joinCode)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, "", ErrMatchNotFound
			}
			return nil, "", err
		}
		if m.Status != game.StatusWaiting {
			return nil, "", ErrMatchAlreadyStarted
		}
		if len(m.PlayerIDs) >= m.Settings.MinPlayers {
			return nil, "", ErrMatchFull
		}

		playerID := uuid.NewString()
		ch := newCharacter(playerID, playerName)
		placeCharacter(m, ch, s.newRng())
		m.PlayerIDs = append(m.PlayerIDs, playerID)
		m.Characters[playerID] = ch
		m.ReadyStates[playerID] = false

		switch err := s.repo.UpdateMatch(m, version); {
		case err == nil:
			return m, playerID, nil
		case errors.Is(err, storage.ErrVersionConflict):
			continue
		case errors.Is(err, storage.ErrNotFound):
			return nil, "", ErrMatchNotFound
		default:
			return nil, "", err
		}
	}
	return nil, "", storage.ErrVersionConflict
}

// StartMatch fills the roster with bot characters up to the configured
// minimum, sets the first turn deadline and moves the match in progress.
func (s *Service) StartMatch(joinCode string) (*game.Match, error) {
	for attempt := 0; attempt < 3; attempt++ {
		m, version, err := s.repo.FindMatchByJoinCode(joinCode)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, ErrMatchNotFound
			}
			return nil, err
		}
		if m.Status != game.StatusWaiting {
			return nil, ErrMatchAlreadyStarted
		}
		if len(m.PlayerIDs) == 0 {
			return nil, ErrMatchNotFound
		}

		rng := s.newRng()
		for n := 1; len(m.PlayerIDs) < m.Settings.MinPlayers; n++ {
			botID := fmt.Sprintf("bot%d", n)
			if _, taken := m.Characters[botID]; taken {
				continue
			}
			ch := newCharacter(botID, fmt.Sprintf("Drifter %d", n))
			placeCharacter(m, ch, rng)
			m.PlayerIDs = append(m.PlayerIDs, botID)
			m.Characters[botID] = ch
			m.ReadyStates[botID] = false
		}

		m.Status = game.StatusInProgress
		m.Deadline = time.Now().Add(s.cfg.TurnCutoff)

		switch err := s.repo.UpdateMatch(m, version); {
		case err == nil:
			return m, nil
		case errors.Is(err, storage.ErrVersionConflict):
			continue
		case errors.Is(err, storage.ErrNotFound):
			return nil, ErrMatchNotFound
		default:
			return nil, err
		}
	}
	return nil, storage.ErrVersionConflict
}

// MatchForPlayer returns the match tailored to what the viewer may see.
func (s *Service) MatchForPlayer(joinCode, playerID string) (*game.Match, error) {
	m, _, err := s.repo.FindMatchByJoinCode(joinCode)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	if _, ok := m.Characters[playerID]; !ok {
		return nil, ErrPlayerNotInMatch
	}
	return tailoredMatch(m, playerID), nil
}

func newCharacter(id, name string) *game.Character {
	c := &game.Character{
		ID:         id,
		Name:       name,
		Health:     game.StatPair{Current: spawnHealthCurrent, Max: spawnHealthMax},
		Energy:     game.EnergyPool{Current: spawnEnergyCurrent, Max: spawnEnergyMax},
		Load:       game.StatPair{Max: spawnLoadMax},
		Plans:      map[game.PlanKey]*game.PlannedAction{},
		FoundItems: []string{},
	}
	// Starter rations so feed is usable on turn one.
	c.AddItem(game.ItemFood, 2)
	c.AddItem(game.ItemDrink, 1)
	return c
}
