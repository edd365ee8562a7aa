package kv

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultNamespace is the namespace used by local (non-SSH) play.
const DefaultNamespace = "local"

// SQLite is a SQLite-backed store. Keys live in namespaces so that several
// players (SSH users) can share one database file; Bucket returns the Store
// view of a single namespace.
type SQLite struct {
	db *sql.DB
}

// Round is one finished round kept in the score history.
type Round struct {
	ID        int64
	Namespace string
	GameID    string
	Score     int
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*SQLite, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("kv: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("kv: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("kv: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("kv: cannot connect to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("kv: migration failed: %w", err)
	}

	return s, nil
}

func (s *SQLite) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS kv (
			namespace TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (namespace, key)
		);

		CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			namespace TEXT NOT NULL,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_top ON rounds(namespace, game_id, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Bucket returns the Store view of one namespace.
func (s *SQLite) Bucket(namespace string) *Bucket {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Bucket{db: s, namespace: namespace}
}

// Get returns the value of key in namespace.
func (s *SQLite) Get(namespace, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(
		"SELECT value FROM kv WHERE namespace = ? AND key = ?",
		namespace, key,
	).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("kv: cannot read %s/%s: %w", namespace, key, err)
	}
	return value, true, nil
}

// Set upserts key in namespace.
func (s *SQLite) Set(namespace, key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (namespace, key, value) VALUES (?, ?, ?)
		 ON CONFLICT(namespace, key) DO UPDATE
		 SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		namespace, key, value,
	)
	if err != nil {
		return fmt.Errorf("kv: cannot write %s/%s: %w", namespace, key, err)
	}
	return nil
}

// Delete removes key from namespace. Deleting a missing key is not an error.
func (s *SQLite) Delete(namespace, key string) error {
	_, err := s.db.Exec("DELETE FROM kv WHERE namespace = ? AND key = ?", namespace, key)
	if err != nil {
		return fmt.Errorf("kv: cannot delete %s/%s: %w", namespace, key, err)
	}
	return nil
}

// RecordRound appends a finished round to the score history.
// Returns the ID of the inserted record.
func (s *SQLite) RecordRound(namespace, gameID string, score int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO rounds (namespace, game_id, score) VALUES (?, ?, ?)",
		namespace, gameID, score,
	)
	if err != nil {
		return 0, fmt.Errorf("kv: cannot record round: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("kv: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopRounds retrieves the best N rounds of a game in a namespace,
// ordered by score descending.
func (s *SQLite) TopRounds(namespace, gameID string, limit int) ([]Round, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, namespace, game_id, score, created_at
		 FROM rounds
		 WHERE namespace = ? AND game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		namespace, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("kv: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var rounds []Round
	for rows.Next() {
		var r Round
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Namespace, &r.GameID, &r.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("kv: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTimestamp(createdAt)
		rounds = append(rounds, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("kv: row iteration error: %w", err)
	}
	return rounds, nil
}

// parseTimestamp handles both driver-decoded times and raw SQLite strings.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Bucket is a Store bound to one namespace of a SQLite database.
type Bucket struct {
	db        *SQLite
	namespace string
}

// Namespace returns the bucket's namespace.
func (b *Bucket) Namespace() string {
	return b.namespace
}

// Get implements Store.
func (b *Bucket) Get(key string) (string, bool, error) {
	return b.db.Get(b.namespace, key)
}

// Set implements Store.
func (b *Bucket) Set(key, value string) error {
	return b.db.Set(b.namespace, key, value)
}

// RecordRound appends a finished round for this namespace.
func (b *Bucket) RecordRound(gameID string, score int) error {
	_, err := b.db.RecordRound(b.namespace, gameID, score)
	return err
}

var (
	_ Store = (*Memory)(nil)
	_ Store = (*Bucket)(nil)
)
