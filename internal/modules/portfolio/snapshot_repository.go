package portfolio

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

// snapshotKey is the single fixed key the whole portfolio is stored under.
const snapshotKey = "portfolioFunds"

// SnapshotRepository persists the fund collection as one msgpack blob:
// read wholesale at startup, overwritten wholesale after every mutation.
// Writes are advisory - a crash mid-write leaves the previous (stale)
// snapshot behind, which the next successful save overwrites.
type SnapshotRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewSnapshotRepository creates a new snapshot repository.
func NewSnapshotRepository(db *sql.DB, log zerolog.Logger) *SnapshotRepository {
	return &SnapshotRepository{
		db:  db,
		log: log.With().Str("repo", "snapshot").Logger(),
	}
}

// Save overwrites the stored snapshot with the given funds.
func (r *SnapshotRepository) Save(funds []Fund) error {
	blob, err := msgpack.Marshal(funds)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	_, err = r.db.Exec(
		"INSERT OR REPLACE INTO snapshots (key, data, updated_at) VALUES (?, ?, ?)",
		snapshotKey, blob, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	r.log.Debug().Int("bytes", len(blob)).Msg("Snapshot saved")
	return nil
}

// Load reads the stored snapshot. Returns (nil, nil) when no snapshot
// exists yet (first run).
func (r *SnapshotRepository) Load() ([]Fund, error) {
	var blob []byte
	err := r.db.QueryRow(
		"SELECT data FROM snapshots WHERE key = ?", snapshotKey).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var funds []Fund
	if err := msgpack.Unmarshal(blob, &funds); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return funds, nil
}
