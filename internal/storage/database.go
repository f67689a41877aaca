package storage

import (
	"database/sql"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// New opens a SQLite database connection at the given path.
// It enables foreign keys and sets connection pool settings.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys (disabled by default in SQLite)
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate runs database migrations to create the required tables.
// It is idempotent and can be run multiple times safely.
//
// The FTS5 index is created best-effort: builds of go-sqlite3 without the
// sqlite_fts5 tag lack the fts5 module, in which case keyword search runs
// on the pattern-match fallback only. Migrate reports FTS availability.
func Migrate(db *sql.DB) (ftsAvailable bool, err error) {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS memories (
			id TEXT PRIMARY KEY,
			namespace TEXT NOT NULL,
			source_id TEXT NOT NULL,
			content TEXT NOT NULL,
			metadata TEXT NOT NULL DEFAULT '{}',
			summary_content TEXT NOT NULL DEFAULT '',
			named_entities TEXT NOT NULL DEFAULT '',
			content_classification TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE INDEX IF NOT EXISTS idx_memories_namespace ON memories(namespace);`,
		`CREATE INDEX IF NOT EXISTS idx_memories_updated_at ON memories(updated_at);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return false, err
		}
	}

	ftsSchema := []string{
		`CREATE VIRTUAL TABLE IF NOT EXISTS memories_fts USING fts5(
			content,
			summary_content,
			named_entities,
			content_classification,
			memory_id UNINDEXED
		);`,
		`CREATE TRIGGER IF NOT EXISTS memories_fts_insert AFTER INSERT ON memories BEGIN
			INSERT INTO memories_fts (content, summary_content, named_entities, content_classification, memory_id)
			VALUES (new.content, new.summary_content, new.named_entities, new.content_classification, new.id);
		END;`,
		`CREATE TRIGGER IF NOT EXISTS memories_fts_update AFTER UPDATE ON memories BEGIN
			DELETE FROM memories_fts WHERE memory_id = old.id;
			INSERT INTO memories_fts (content, summary_content, named_entities, content_classification, memory_id)
			VALUES (new.content, new.summary_content, new.named_entities, new.content_classification, new.id);
		END;`,
		`CREATE TRIGGER IF NOT EXISTS memories_fts_delete AFTER DELETE ON memories BEGIN
			DELETE FROM memories_fts WHERE memory_id = old.id;
		END;`,
	}

	for _, stmt := range ftsSchema {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "fts5") {
				return false, nil
			}
			return false, err
		}
	}

	return true, nil
}
