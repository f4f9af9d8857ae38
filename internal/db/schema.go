package db

// schemaSQL is the authoritative schema. Tests load it through
// GetSchemaSQL so the test schema can never drift from production.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS tasks (
    id         TEXT PRIMARY KEY,
    user_id    TEXT NOT NULL,
    name       TEXT NOT NULL CHECK (name <> ''),
    due_at     TIMESTAMP NOT NULL,
    latitude   REAL,
    longitude  REAL,
    completed  INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_tasks_user_due ON tasks(user_id, due_at, id);

CREATE TABLE IF NOT EXISTS daily_schedules (
    id                 TEXT PRIMARY KEY,
    user_id            TEXT NOT NULL,
    total_hours        REAL NOT NULL,
    urgent_count       INTEGER NOT NULL,
    important_count    INTEGER NOT NULL,
    urgent_block       REAL NOT NULL,
    important_block    REAL NOT NULL,
    break_block        REAL NOT NULL,
    flex_block         REAL NOT NULL,
    per_urgent_task    REAL NOT NULL,
    per_important_task REAL NOT NULL,
    saved_at           TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_daily_schedules_user ON daily_schedules(user_id, saved_at);

-- Monotonic id counters. Ids are assigned exactly once and never reused,
-- so counters only ever grow; MAX(id) would recycle ids after deletes.
CREATE TABLE IF NOT EXISTS counters (
    name  TEXT PRIMARY KEY,
    value INTEGER NOT NULL
);

INSERT OR IGNORE INTO counters (name, value) VALUES ('tasks', 0);
INSERT OR IGNORE INTO counters (name, value) VALUES ('daily_schedules', 0);
`

// GetSchemaSQL returns the full schema creation SQL.
func GetSchemaSQL() string {
	return schemaSQL
}
