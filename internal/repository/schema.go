package repository

import "aggregat4/gonewtab/pkg/migrations"

var newtabMigrations = []migrations.Migration{
	{SequenceId: 1,
		Sql: `
		-- every record is a complete JSON snapshot stored under a fixed key
		CREATE TABLE IF NOT EXISTS kv (
		key TEXT NOT NULL PRIMARY KEY,
		value TEXT NOT NULL,
		updated INTEGER NOT NULL
		);
		`,
	},
	{SequenceId: 2,
		Sql: `
		-- Enable WAL mode on the database so the importer can write while the server reads
		PRAGMA journal_mode=WAL;
		`,
	},
}
