package storage

import (
	"errors"
	"time"

	"github.com/wacky444/Zarka-sub000/internal/game"
)

var (
	// ErrNotFound is returned when no record matches the lookup.
	ErrNotFound = errors.New("record not found")
	// ErrVersionConflict is returned when a write's version token no
	// longer matches the stored version. The caller decides whether to
	// re-fetch and recompute or surface the conflict; the store never
	// retries.
	ErrVersionConflict = errors.New("match version conflict")
)

// Repository is the persistent store for match and replay records. Every
// match read hands out a version token; writes are rejected when the token
// is stale (optimistic concurrency).
type Repository interface {
	CreateMatch(m *game.Match) error
	// GetMatch returns the match record and its current version token.
	GetMatch(id string) (*game.Match, int64, error)
	FindMatchByJoinCode(code string) (*game.Match, int64, error)
	// UpdateMatch persists the record if version still matches, returning
	// ErrVersionConflict otherwise.
	UpdateMatch(m *game.Match, version int64) error
	// FindMatchesPastDeadline lists in-progress matches whose turn cutoff
	// passed at or before now.
	FindMatchesPastDeadline(now time.Time) ([]string, error)
	// ListOpenMatches returns the newest joinable matches, at most limit.
	ListOpenMatches(limit int) ([]*game.Match, error)

	SaveReplay(rec *game.ReplayRecord) error
	GetReplay(matchID string, turn int) (*game.ReplayRecord, error)
}
