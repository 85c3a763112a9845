package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/agenthands/memoryvault/internal/core/model"
)

// SQLiteStore keeps memories in a single SQLite table. Tags and embeddings
// are stored as JSON text; rowid order is insertion order.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at dbPath.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS memories (
		id         TEXT PRIMARY KEY,
		text       TEXT NOT NULL,
		summary    TEXT NOT NULL DEFAULT '',
		embedding  TEXT,
		tags       TEXT,
		year       INTEGER,
		theme      TEXT,
		timeframe  TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_memories_year ON memories(year);
	`)
	return err
}

const selectMemory = `SELECT id, text, summary, embedding, tags, year, theme, timeframe, created_at FROM memories`

func (s *SQLiteStore) List(ctx context.Context) ([]model.Memory, error) {
	rows, err := s.db.QueryContext(ctx, selectMemory+` ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list memories: %w", err)
	}
	defer rows.Close()

	memories := []model.Memory{}
	for rows.Next() {
		m, err := scanMemory(rows)
		if err != nil {
			return nil, err
		}
		memories = append(memories, m)
	}
	return memories, rows.Err()
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (model.Memory, error) {
	m, err := scanMemory(s.db.QueryRowContext(ctx, selectMemory+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Memory{}, ErrNotFound
	}
	return m, err
}

func (s *SQLiteStore) Put(ctx context.Context, m model.Memory) error {
	return s.PutAll(ctx, []model.Memory{m})
}

// PutAll upserts inside one transaction. Replaced rows keep their rowid, so
// a memory keeps its place in List.
func (s *SQLiteStore) PutAll(ctx context.Context, memories []model.Memory) error {
	if len(memories) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, m := range memories {
		args, err := rowArgs(m)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO memories (id, text, summary, embedding, tags, year, theme, timeframe, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
			   text = excluded.text, summary = excluded.summary, embedding = excluded.embedding,
			   tags = excluded.tags, year = excluded.year, theme = excluded.theme,
			   timeframe = excluded.timeframe, created_at = excluded.created_at`,
			args...)
		if err != nil {
			return fmt.Errorf("upsert memory %s: %w", m.ID, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM memories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete memory: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) Close(ctx context.Context) error {
	return s.db.Close()
}

func rowArgs(m model.Memory) ([]any, error) {
	var embedding, tags, year, theme any
	if len(m.Embedding) > 0 {
		b, err := json.Marshal(m.Embedding)
		if err != nil {
			return nil, fmt.Errorf("marshal embedding: %w", err)
		}
		embedding = string(b)
	}
	if m.Tags != nil {
		b, _ := json.Marshal(m.Tags)
		tags = string(b)
	}
	if m.Year != nil {
		year = *m.Year
	}
	if m.Theme.Classified() {
		theme = string(m.Theme)
	}
	return []any{
		m.ID, m.Text, m.Summary, embedding, tags, year, theme, m.Timeframe,
		m.CreatedAt.UTC().Format(time.RFC3339Nano),
	}, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMemory(row scanner) (model.Memory, error) {
	var m model.Memory
	var embedding, tags, theme sql.NullString
	var year sql.NullInt64
	var createdAt string

	err := row.Scan(&m.ID, &m.Text, &m.Summary, &embedding, &tags, &year, &theme, &m.Timeframe, &createdAt)
	if err != nil {
		return m, err
	}

	if embedding.Valid {
		if err := json.Unmarshal([]byte(embedding.String), &m.Embedding); err != nil {
			return m, fmt.Errorf("decode embedding of %s: %w", m.ID, err)
		}
	}
	if tags.Valid {
		_ = json.Unmarshal([]byte(tags.String), &m.Tags)
	}
	if year.Valid {
		m.Year = model.YearPtr(int(year.Int64))
	}
	if theme.Valid {
		m.Theme, _ = model.ParseTheme(theme.String)
	}
	m.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return m, nil
}
