package storage

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// MatchRow is the persisted form of a match. The nested record graph is
// stored as one JSON document; the version column carries the optimistic-
// concurrency token and the remaining columns exist for indexed queries.
type MatchRow struct {
	ID        string `gorm:"primaryKey"`
	JoinCode  string `gorm:"uniqueIndex"`
	Version   int64
	Turn      int
	Status    string `gorm:"index"`
	Removed   bool
	Deadline  time.Time
	State     datatypes.JSON
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (MatchRow) TableName() string { return "matches" }

// ReplayRow stores one turn's replay document keyed by (match_id, turn).
// The payload holds the full serialized replay record so it round-trips
// byte for byte.
type ReplayRow struct {
	ID        uint   `gorm:"primaryKey"`
	MatchID   string `gorm:"uniqueIndex:idx_replays_match_turn"`
	Turn      int    `gorm:"uniqueIndex:idx_replays_match_turn"`
	Payload   datatypes.JSON
	CreatedAt time.Time
}

func (ReplayRow) TableName() string { return "replays" }

// OpenAndMigrate opens the SQLite database and keeps the schema updated
// via AutoMigrate.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&MatchRow{}, &ReplayRow{}); err != nil {
		return nil, err
	}
	return db, nil
}
