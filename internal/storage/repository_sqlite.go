package storage

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/wacky444/Zarka-sub000/internal/game"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
}

// NewSQLiteRepository wraps a gorm DB in the Repository contract.
func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateMatch(m *game.Match) error {
	state, err := json.Marshal(m)
	if err != nil {
		return err
	}
	row := MatchRow{
		ID:       m.ID,
		JoinCode: m.JoinCode,
		Version:  1,
		Turn:     m.CurrentTurn,
		Status:   m.Status,
		Removed:  m.Removed,
		Deadline: m.Deadline,
		State:    datatypes.JSON(state),
	}
	return r.db.Create(&row).Error
}

func (r *sqliteRepository) GetMatch(id string) (*game.Match, int64, error) {
	var row MatchRow
	if err := r.db.First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, err
	}
	return decodeMatchRow(&row)
}

func (r *sqliteRepository) FindMatchByJoinCode(code string) (*game.Match, int64, error) {
	var row MatchRow
	if err := r.db.First(&row, "join_code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, err
	}
	return decodeMatchRow(&row)
}

func decodeMatchRow(row *MatchRow) (*game.Match, int64, error) {
	var m game.Match
	if err := json.Unmarshal(row.State, &m); err != nil {
		return nil, 0, err
	}
	return &m, row.Version, nil
}

// UpdateMatch writes the record under a version guard: the UPDATE only
// matches the row when the stored version equals the caller's token. Zero
// rows affected means either another writer got there first or the row is
// gone; the two are told apart so callers do not retry a missing match.
func (r *sqliteRepository) UpdateMatch(m *game.Match, version int64) error {
	state, err := json.Marshal(m)
	if err != nil {
		return err
	}
	res := r.db.Model(&MatchRow{}).
		Where("id = ? AND version = ?", m.ID, version).
		Updates(map[string]interface{}{
			"version":  version + 1,
			"turn":     m.CurrentTurn,
			"status":   m.Status,
			"removed":  m.Removed,
			"deadline": m.Deadline,
			"state":    datatypes.JSON(state),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.Model(&MatchRow{}).Where("id = ?", m.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrVersionConflict
	}
	return nil
}

func (r *sqliteRepository) FindMatchesPastDeadline(now time.Time) ([]string, error) {
	var ids []string
	err := r.db.Model(&MatchRow{}).
		Where("status = ? AND removed = ? AND deadline <= ?", game.StatusInProgress, false, now).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *sqliteRepository) ListOpenMatches(limit int) ([]*game.Match, error) {
	var rows []MatchRow
	err := r.db.
		Where("status = ? AND removed = ?", game.StatusWaiting, false).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]*game.Match, 0, len(rows))
	for i := range rows {
		m, _, err := decodeMatchRow(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *sqliteRepository) SaveReplay(rec *game.ReplayRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	row := ReplayRow{
		MatchID: rec.MatchID,
		Turn:    rec.Turn,
		Payload: datatypes.JSON(payload),
	}
	return r.db.Create(&row).Error
}

func (r *sqliteRepository) GetReplay(matchID string, turn int) (*game.ReplayRecord, error) {
	var row ReplayRow
	if err := r.db.First(&row, "match_id = ? AND turn = ?", matchID, turn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var rec game.ReplayRecord
	if err := json.Unmarshal(row.Payload, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
