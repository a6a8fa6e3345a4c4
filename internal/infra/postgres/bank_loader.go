package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	"millionaire-quiz/internal/domain"
)

// BankLoader loads the question bank from the questions table, ordered by
// position. Options are stored as a JSONB array of four strings.
type BankLoader struct {
	pool *pgxpool.Pool
}

func NewBankLoader(pool *pgxpool.Pool) *BankLoader {
	return &BankLoader{pool: pool}
}

func (l *BankLoader) LoadBank(ctx context.Context) (*domain.Bank, error) {
	rows, err := l.pool.Query(ctx, `SELECT text, options, correct_index, prize FROM questions ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	var (
		questions []domain.Question
		prizes    []int
	)
	for rows.Next() {
		var (
			q       domain.Question
			raw     []byte
			options []string
			prize   int64
		)
		if err := rows.Scan(&q.Text, &raw, &q.Correct, &prize); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		if err := json.Unmarshal(raw, &options); err != nil {
			return nil, fmt.Errorf("unmarshal options: %w", err)
		}
		if len(options) != domain.OptionCount {
			return nil, fmt.Errorf("%w: question %q has %d options", domain.ErrInvalidBank, q.Text, len(options))
		}
		copy(q.Options[:], options)
		questions = append(questions, q)
		prizes = append(prizes, int(prize))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	return domain.NewBank(questions, prizes)
}

// SeedBank replaces the questions table with the given bank content.
func SeedBank(ctx context.Context, pool *pgxpool.Pool, questions []domain.Question, prizes []int) error {
	if len(questions) != len(prizes) {
		return fmt.Errorf("%w: %d questions but %d prizes", domain.ErrInvalidBank, len(questions), len(prizes))
	}
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM questions`); err != nil {
		return fmt.Errorf("clear questions: %w", err)
	}
	for i, q := range questions {
		options, err := json.Marshal(q.Options[:])
		if err != nil {
			return fmt.Errorf("marshal options: %w", err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO questions (position, text, options, correct_index, prize) VALUES ($1, $2, $3::jsonb, $4, $5)`,
			i, q.Text, string(options), q.Correct, prizes[i]); err != nil {
			return fmt.Errorf("insert question %d: %w", i, err)
		}
	}
	return tx.Commit(ctx)
}
