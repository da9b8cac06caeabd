package migrations

import (
	"database/sql"
	"fmt"
	"log"
	"slices"
)

// Migration is one schema change. SequenceIds must be unique and are applied in slice order.
type Migration struct {
	SequenceId int
	Sql        string
}

func initMigrationTable(db *sql.DB) error {
	_, err := db.Exec("CREATE TABLE IF NOT EXISTS migrations (sequence_id INTEGER NOT NULL PRIMARY KEY)")
	return err
}

func getAppliedMigrations(db *sql.DB) ([]int, error) {
	rows, err := db.Query("SELECT sequence_id FROM migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var applied []int
	for rows.Next() {
		var sequenceId int
		if err := rows.Scan(&sequenceId); err != nil {
			return nil, err
		}
		applied = append(applied, sequenceId)
	}
	return applied, rows.Err()
}

// MigrateSchema applies every migration that is not yet recorded in the migrations table.
func MigrateSchema(db *sql.DB, migrations []Migration) error {
	if err := initMigrationTable(db); err != nil {
		return fmt.Errorf("creating migrations table: %w", err)
	}
	appliedMigrations, err := getAppliedMigrations(db)
	if err != nil {
		return fmt.Errorf("reading applied migrations: %w", err)
	}
	for _, migration := range migrations {
		if slices.Contains(appliedMigrations, migration.SequenceId) {
			continue
		}
		log.Printf("Executing migration %d", migration.SequenceId)
		if _, err = db.Exec(migration.Sql); err != nil {
			return fmt.Errorf("migration %d: %w", migration.SequenceId, err)
		}
		if _, err = db.Exec("INSERT INTO migrations (sequence_id) VALUES (?)", migration.SequenceId); err != nil {
			return err
		}
	}
	return nil
}
