package history

import (
	"database/sql"
	"time"
)

const SchemaVersion = 1

// Run is one completed generation run for a project.
type Run struct {
	ProjectKey   string
	Timestamp    time.Time
	FileCount    int
	TestCount    int
	FailureCount int
	OutputBytes  int
	OutputPath   string
	Duration     time.Duration
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
  project_key    TEXT    NOT NULL,
  schema_version INTEGER NOT NULL,
  ts_utc         TEXT    NOT NULL,
  file_count     INTEGER NOT NULL,
  test_count     INTEGER NOT NULL,
  failure_count  INTEGER NOT NULL,
  output_bytes   INTEGER NOT NULL,
  output_path    TEXT    NOT NULL,
  duration_ms    INTEGER NOT NULL,
  PRIMARY KEY (project_key, ts_utc)
);
CREATE INDEX IF NOT EXISTS idx_runs_project_ts ON runs (project_key, ts_utc);
`

func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schemaSQL)
	return err
}
