package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chaining-quiz-service/internal/app"
	"chaining-quiz-service/internal/config"
	"chaining-quiz-service/internal/infra/file"
	"chaining-quiz-service/internal/infra/memory"
	"chaining-quiz-service/internal/infra/postgres"
	redisinfra "chaining-quiz-service/internal/infra/redis"
	transport "chaining-quiz-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the placement quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := config.NewLogger(cfg)

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
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
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 30*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	var loader memory.PoolLoader = file.NewPoolLoader(cfg.Quiz.PoolDir)
	if pool != nil {
		loader = postgres.NewPoolLoader(pool)
	}

	poolTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	var pools app.PoolRepository
	if redisClient != nil {
		pools = redisinfra.NewPoolRepository(redisClient, loader, poolTTL, log)
	} else {
		pools = memory.NewPoolRepository(loader, poolTTL)
	}

	var sessions app.SessionRepository
	if redisClient != nil {
		sessions = redisinfra.NewSessionStore(redisClient, redisTTL)
	} else {
		sessions = memory.NewSessionStore()
	}

	var scores app.ScoreStore
	switch {
	case pool != nil:
		scores = postgres.NewScoreStore(pool)
	case redisClient != nil:
		scores = redisinfra.NewScoreStore(redisClient)
	default:
		log.Warn("no postgres or redis configured; placements are kept in memory only")
		scores = memory.NewScoreStore()
	}

	service := app.NewPlacementService(pools, sessions, scores, log, app.WithSeed(cfg.Quiz.Seed))

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", transport.NewWSHandler(service, log).ServeWS)
	mux.Handle("/placements", transport.NewPlacementHandler(service, log))

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{"port": finalPort, "pool_dir": cfg.Quiz.PoolDir}).Info("starting placement quiz service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("failed to start server")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info("shutting down server...")
	case <-ctx.Done():
		log.Info("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
