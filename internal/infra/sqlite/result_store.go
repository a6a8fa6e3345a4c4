package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"millionaire-quiz/internal/domain"
)

// ResultStore keeps results in a SQLite table; each append is one INSERT.
type ResultStore struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and ensures the
// results table exists.
func Open(path string) (*ResultStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	// SQLite allows a single writer at a time.
	db.SetMaxOpenConns(1)

	store := &ResultStore{db: db}
	if err := store.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *ResultStore) Close() error {
	return s.db.Close()
}

func (s *ResultStore) createTables() error {
	query := `CREATE TABLE IF NOT EXISTS results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		amount INTEGER NOT NULL,
		status TEXT NOT NULL,
		created_at DATETIME NOT NULL
	)`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create results table: %w", err)
	}
	return nil
}

func (s *ResultStore) LoadAll(ctx context.Context) ([]domain.ResultRecord, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name, amount, status FROM results ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to load results: %w", err)
	}
	defer rows.Close()

	records := []domain.ResultRecord{}
	for rows.Next() {
		var (
			record domain.ResultRecord
			status string
		)
		if err := rows.Scan(&record.Name, &record.Amount, &status); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		record.Status = domain.ResultStatus(status)
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *ResultStore) Append(ctx context.Context, record domain.ResultRecord) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO results (name, amount, status, created_at) VALUES (?, ?, ?, ?)",
		record.Name, record.Amount, string(record.Status), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to append result: %w", err)
	}
	return nil
}
