// Package prefs persists the two user preferences that survive
// restarts: the polling interval and the display scale. Metric history
// is deliberately not persisted; the daemon is stateless across
// restarts apart from these values.
package prefs

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"codeberg.org/seliv/sysvitals/internal/errors"
	"codeberg.org/seliv/sysvitals/internal/logger"
)

const (
	// MinScale and MaxScale bound the display-scale preference.
	MinScale = 0
	MaxScale = 4

	DefaultScale       = 1
	DefaultIntervalSec = 2

	defaultDirPerm = 0o755

	keyScale    = "scale"
	keyInterval = "interval_sec"
)

const schemaVersion = 1

const createTablesSQL = `
	CREATE TABLE IF NOT EXISTS schema_versions (
		version    INTEGER PRIMARY KEY,
		applied_at TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS preferences (
		key   TEXT PRIMARY KEY,
		value INTEGER NOT NULL CHECK (typeof(value) = 'integer')
	);`

var errFactory = errors.New()

// ClampScale bounds a display-scale value.
func ClampScale(v int) int {
	if v < MinScale {
		return MinScale
	}
	if v > MaxScale {
		return MaxScale
	}

	return v
}

// Store is the sqlite-backed preference repository.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the preference database at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errFactory.New(errors.ErrPrefsInit)
	}

	if err := os.MkdirAll(filepath.Dir(path), defaultDirPerm); err != nil {
		return nil, errFactory.Wrap(errors.ErrPrefsInit, err)
	}

	dsn := path + "?_journal=WAL&_auto_vacuum=2"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errFactory.Wrap(errors.ErrPrefsInit, err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug().Str("path", path).Msg("Preferences store opened")

	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return errFactory.Wrap(errors.ErrPrefsInit, err)
	}

	committed := false
	defer func() {
		if !committed {
			if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
				logger.Debug().Err(err).Msg("Failed to roll back schema transaction")
			}
		}
	}()

	if _, err := tx.Exec(createTablesSQL); err != nil {
		return errFactory.Wrap(errors.ErrPrefsInit, err)
	}

	if _, err := tx.Exec(`
		INSERT OR IGNORE INTO schema_versions (version, applied_at)
		VALUES (?, datetime('now'))
	`, schemaVersion); err != nil {
		return errFactory.Wrap(errors.ErrPrefsInit, err)
	}

	if err := tx.Commit(); err != nil {
		return errFactory.Wrap(errors.ErrPrefsInit, err)
	}
	committed = true

	return nil
}

func (s *Store) getInt(key string, fallback int) (int, error) {
	var v int
	err := s.db.QueryRow(`SELECT value FROM preferences WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return fallback, nil
	}
	if err != nil {
		return fallback, errFactory.Wrap(errors.ErrPrefsRead, err)
	}

	return v, nil
}

func (s *Store) setInt(key string, value int) error {
	_, err := s.db.Exec(`
		INSERT INTO preferences (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return errFactory.Wrap(errors.ErrPrefsWrite, err)
	}

	return nil
}

// Scale returns the stored display scale, clamped.
func (s *Store) Scale() (int, error) {
	v, err := s.getInt(keyScale, DefaultScale)

	return ClampScale(v), err
}

// SetScale stores a display scale, clamped.
func (s *Store) SetScale(v int) error {
	return s.setInt(keyScale, ClampScale(v))
}

// IntervalSec returns the stored polling interval in seconds. Clamping
// to the scheduler's bounds is the caller's concern.
func (s *Store) IntervalSec() (int, error) {
	return s.getInt(keyInterval, DefaultIntervalSec)
}

// SetIntervalSec stores a polling interval in seconds.
func (s *Store) SetIntervalSec(v int) error {
	return s.setInt(keyInterval, v)
}

// Close checkpoints and closes the database.
func (s *Store) Close() error {
	if _, err := s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return errFactory.Wrap(errors.ErrPrefsClose, err)
	}

	if err := s.db.Close(); err != nil {
		return errFactory.Wrap(errors.ErrPrefsClose, err)
	}

	return nil
}
