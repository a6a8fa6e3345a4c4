package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun/migrate"
	"millionaire-quiz/internal/config"
	"millionaire-quiz/internal/infra/file"
	"millionaire-quiz/internal/infra/memory"
	pgstore "millionaire-quiz/internal/infra/postgres"
	pgmigrations "millionaire-quiz/internal/infra/postgres/migrations"
)

// NewMigrateCmd applies database migrations and optionally seeds the question bank.
func NewMigrateCmd(configPath *string) *cobra.Command {
	var seed bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrations(cmd.Context(), *configPath, seed)
		},
	}
	cmd.Flags().BoolVar(&seed, "seed-questions", false, "replace the questions table with the configured bank")
	return cmd
}

func runMigrations(ctx context.Context, configPath string, seed bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if err := runMigrationsWithConfig(ctx, cfg); err != nil {
		return err
	}
	if seed {
		return seedQuestions(ctx, cfg)
	}
	return nil
}

func runMigrationsWithConfig(ctx context.Context, cfg config.Config) error {
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}

	db := pgstore.OpenDB(cfg.Postgres.URL)
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)

	if err := migrator.Init(ctx); err != nil {
		return err
	}

	group, err := migrator.Migrate(ctx)
	if err != nil {
		return err
	}
	if group.IsZero() {
		log.Printf("migrations up to date")
		return nil
	}
	log.Printf("migrations applied: %s", group)
	return nil
}

func seedQuestions(ctx context.Context, cfg config.Config) error {
	questions, prizes := memory.DefaultQuestions(), memory.DefaultPrizes()
	if cfg.Quiz.QuestionsFile != "" {
		bank, err := file.NewBankLoader(cfg.Quiz.QuestionsFile).LoadBank(ctx)
		if err != nil {
			return err
		}
		questions, prizes = bank.Questions(), bank.Prizes()
	}

	pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pgstore.SeedBank(ctx, pool, questions, prizes); err != nil {
		return err
	}
	log.Printf("seeded %d questions", len(questions))
	return nil
}
