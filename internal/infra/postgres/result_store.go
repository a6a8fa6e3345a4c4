package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"millionaire-quiz/internal/domain"
)

type resultRow struct {
	bun.BaseModel `bun:"table:results,alias:r"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Name      string    `bun:"name,notnull"`
	Amount    int       `bun:"amount,notnull"`
	Status    string    `bun:"status,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// ResultStore keeps results as rows of the results table; each append is a
// single INSERT.
type ResultStore struct {
	db *bun.DB
}

// OpenDB opens a bun handle on a Postgres DSN.
func OpenDB(dsn string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

func NewResultStore(db *bun.DB) *ResultStore {
	return &ResultStore{db: db}
}

func (s *ResultStore) LoadAll(ctx context.Context) ([]domain.ResultRecord, error) {
	var rows []resultRow
	if err := s.db.NewSelect().Model(&rows).Order("id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}
	records := make([]domain.ResultRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, domain.ResultRecord{
			Name:   row.Name,
			Amount: row.Amount,
			Status: domain.ResultStatus(row.Status),
		})
	}
	return records, nil
}

func (s *ResultStore) Append(ctx context.Context, record domain.ResultRecord) error {
	row := resultRow{
		Name:   record.Name,
		Amount: record.Amount,
		Status: string(record.Status),
	}
	if _, err := s.db.NewInsert().Model(&row).Exec(ctx); err != nil {
		return fmt.Errorf("append result: %w", err)
	}
	return nil
}
