package genesymbol

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore persists resolved symbols in a SQLite database inside the
// data directory, so repeated runs skip the lookup service entirely.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore creates or opens the symbol database at path.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS symbols (
		id TEXT PRIMARY KEY,
		symbol TEXT NOT NULL
	);`)
	return err
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (string, bool, error) {
	var symbol string
	err := s.db.QueryRowContext(ctx,
		"SELECT symbol FROM symbols WHERE id = ?", id).Scan(&symbol)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return symbol, true, nil
}

func (s *SQLiteStore) Put(ctx context.Context, id, symbol string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO symbols (id, symbol) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET symbol=excluded.symbol
	`, id, symbol)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
