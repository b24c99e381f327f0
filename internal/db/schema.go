package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY,
    email         TEXT NOT NULL UNIQUE,
    display_name  TEXT NOT NULL DEFAULT '',
    password_hash TEXT NOT NULL,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS items (
    id                  TEXT PRIMARY KEY,
    name                TEXT NOT NULL CHECK (name <> ''),
    owner               TEXT NOT NULL CHECK (owner <> ''),
    address             TEXT NOT NULL CHECK (address <> ''),
    available           INTEGER NOT NULL DEFAULT 1 CHECK (available IN (0, 1)),
    borrowed_by         TEXT,
    borrowed_by_user_id INTEGER REFERENCES users(id),
    borrowed_at         DATETIME,
    image               BLOB,
    image_mime          TEXT,
    created_at          DATETIME NOT NULL,
    created_by_user_id  INTEGER NOT NULL REFERENCES users(id),
    CHECK (
        (available = 1 AND borrowed_by IS NULL AND borrowed_at IS NULL AND borrowed_by_user_id IS NULL)
        OR (available = 0 AND borrowed_by IS NOT NULL AND borrowed_at IS NOT NULL)
    )
);

CREATE TABLE IF NOT EXISTS loans (
    id          INTEGER PRIMARY KEY,
    item_id     TEXT NOT NULL REFERENCES items(id),
    kind        TEXT NOT NULL CHECK (kind IN ('borrow', 'return')),
    by_name     TEXT NOT NULL,
    by_user_id  INTEGER REFERENCES users(id),
    occurred_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);
`

// indexes are applied after the tables. Each statement must be idempotent.
var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_items_created_at ON items(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_loans_item ON loans(item_id, occurred_at)`,
}

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	for i, stmt := range indexes {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating index %d: %w", i+1, err)
		}
	}
	return nil
}
