package repository

import (
	"aggregat4/gonewtab/pkg/migrations"
	"database/sql"
	"errors"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const (
	SettingsKey  = "mtab_settings"
	BookmarksKey = "mtab_bookmarks"
)

// KeyValueStore is the persistence capability the settings and bookmark stores write their
// snapshots to. Get reports ok=false when the key has never been set.
type KeyValueStore interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

type Store struct {
	db *sql.DB
}

var _ KeyValueStore = (*Store)(nil)

func (store *Store) Close() {
	store.db.Close()
}

func (store *Store) InitAndVerifyDb(dbFilename string) error {
	var err error
	store.db, err = sql.Open("sqlite3", "file:"+dbFilename+"?_foreign_keys=on")
	if err != nil {
		return err
	}
	return migrations.MigrateSchema(store.db, newtabMigrations)
}

func (store *Store) Get(key string) (string, bool, error) {
	var value string
	err := store.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (store *Store) Set(key, value string) error {
	// upsert, the whole record is replaced on every write
	_, err := store.db.Exec(`
		INSERT INTO kv (key, value, updated) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated = excluded.updated`,
		key, value, time.Now().Unix())
	return err
}

// GetLastModifiedDate returns when any record was last written, the zero time if nothing was.
func (store *Store) GetLastModifiedDate() (time.Time, error) {
	var updated sql.NullInt64
	err := store.db.QueryRow("SELECT MAX(updated) FROM kv").Scan(&updated)
	if err != nil {
		return time.Time{}, err
	}
	if !updated.Valid {
		return time.Time{}, nil
	}
	return time.Unix(updated.Int64, 0), nil
}
