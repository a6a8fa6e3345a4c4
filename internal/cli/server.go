package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/sessions"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"millionaire-quiz/internal/app"
	"millionaire-quiz/internal/config"
	"millionaire-quiz/internal/domain"
	"millionaire-quiz/internal/infra/file"
	"millionaire-quiz/internal/infra/memory"
	pgstore "millionaire-quiz/internal/infra/postgres"
	redisstore "millionaire-quiz/internal/infra/redis"
	"millionaire-quiz/internal/infra/sqlite"
	"millionaire-quiz/internal/metrics"
	transport "millionaire-quiz/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	bank, err := loadBank(ctx, cfg, pool)
	if err != nil {
		return err
	}

	results, closeResults, err := openResults(cfg, redisClient)
	if err != nil {
		return err
	}
	defer closeResults()

	var attempts app.AttemptRepository
	if redisClient != nil {
		attempts = redisstore.NewAttemptStore(redisClient, config.TTLDuration(cfg.Attempts.TTL, 2*time.Hour))
	} else {
		attempts = memory.NewAttemptStore()
	}

	service := app.NewQuizService(bank, attempts, results, metrics.NewMetrics())

	cookies := sessions.NewCookieStore([]byte(cfg.Server.SessionSecret))
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	router := transport.NewRouter(transport.NewHandler(service, cookies), transport.NewWSHandler(service))

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("starting quiz service on :%s (%d questions, %s results)", finalPort, bank.Len(), cfg.Results.Backend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// loadBank picks the question bank: a YAML file if configured, else the
// postgres questions table when it holds a usable bank, else the built-in one.
func loadBank(ctx context.Context, cfg config.Config, pool *pgxpool.Pool) (*domain.Bank, error) {
	if cfg.Quiz.QuestionsFile != "" {
		return file.NewBankLoader(cfg.Quiz.QuestionsFile).LoadBank(ctx)
	}

	if pool != nil {
		bank, err := pgstore.NewBankLoader(pool).LoadBank(ctx)
		if err == nil {
			return bank, nil
		}
		if !errors.Is(err, domain.ErrInvalidBank) {
			return nil, err
		}
		log.Printf("postgres question bank unusable (%v), using built-in questions", err)
	}
	return memory.NewDefaultBankLoader().LoadBank(ctx)
}

func openResults(cfg config.Config, redisClient *redis.Client) (app.ResultRepository, func(), error) {
	switch cfg.Results.Backend {
	case config.BackendSQLite:
		store, err := sqlite.Open(cfg.Results.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	case config.BackendPostgres:
		db := pgstore.OpenDB(cfg.Postgres.URL)
		return pgstore.NewResultStore(db), func() { _ = db.Close() }, nil
	case config.BackendRedis:
		return redisstore.NewResultStore(redisClient), func() {}, nil
	case config.BackendMemory:
		return memory.NewResultStore(), func() {}, nil
	default:
		return file.NewResultStore(cfg.Results.Path), func() {}, nil
	}
}
