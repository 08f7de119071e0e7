package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/civic-topics-backend/internal/adapter/classifier"
	"github.com/heartmarshall/civic-topics-backend/internal/adapter/postgres"
	"github.com/heartmarshall/civic-topics-backend/internal/adapter/postgres/appearance"
	"github.com/heartmarshall/civic-topics-backend/internal/adapter/postgres/blocklist"
	"github.com/heartmarshall/civic-topics-backend/internal/adapter/postgres/civic"
	"github.com/heartmarshall/civic-topics-backend/internal/adapter/postgres/reviewevent"
	"github.com/heartmarshall/civic-topics-backend/internal/adapter/postgres/statusevent"
	topicrepo "github.com/heartmarshall/civic-topics-backend/internal/adapter/postgres/topic"
	"github.com/heartmarshall/civic-topics-backend/internal/adapter/redisqueue"
	"github.com/heartmarshall/civic-topics-backend/internal/config"
	"github.com/heartmarshall/civic-topics-backend/internal/service/continuity"
	"github.com/heartmarshall/civic-topics-backend/internal/service/extraction"
	"github.com/heartmarshall/civic-topics-backend/internal/service/governance"
	"github.com/heartmarshall/civic-topics-backend/internal/service/identity"
	"github.com/heartmarshall/civic-topics-backend/internal/service/topic"
	"github.com/heartmarshall/civic-topics-backend/internal/service/triage"
	"github.com/heartmarshall/civic-topics-backend/internal/transport/middleware"
	"github.com/heartmarshall/civic-topics-backend/internal/transport/rest"
	"github.com/heartmarshall/civic-topics-backend/internal/worker"
)

// Container holds the wired services and the connections they share.
type Container struct {
	Config *config.Config
	Log    *slog.Logger
	Pool   *pgxpool.Pool
	Queue  *redisqueue.Queue

	Identity   *identity.Service
	Continuity *continuity.Service
	Governance *governance.Service
	Triage     *triage.Service
	Extraction *extraction.Service
	Topics     *topic.Service
}

// Build connects to PostgreSQL and Redis and wires every service.
func Build(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Container, error) {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	queue, err := redisqueue.New(ctx, cfg.Redis)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to queue: %w", err)
	}

	tx := postgres.NewTxManager(pool)
	topics := topicrepo.New(pool)
	appearances := appearance.New(pool)
	civicRepo := civic.New(pool)
	blocked := blocklist.New(pool)
	statusEvents := statusevent.New(pool)
	reviewEvents := reviewevent.New(pool)

	llm := classifier.New(cfg.Classifier, log)

	identitySvc := identity.NewService(log, topics, blocked, tx, identity.Config{
		SimilarityThreshold: cfg.Identity.SimilarityThreshold,
		MaxAttempts:         cfg.Identity.MaxResolveAttempts,
	})
	continuitySvc := continuity.NewService(log, topics, appearances, civicRepo, statusEvents, tx, continuity.Config{
		Rules:              ContinuityRules(cfg.Continuity),
		MeetingConcurrency: cfg.Continuity.MeetingConcurrency,
	})
	governanceSvc := governance.NewService(log, topics, appearances, reviewEvents, queue, tx)
	triageSvc := triage.NewService(log, topics, appearances, reviewEvents, llm, governanceSvc, triage.Config{
		SimilarityThreshold: cfg.Triage.SimilarityThreshold,
		MaxSimilar:          cfg.Triage.MaxSimilar,
		AgendaItemSample:    cfg.Triage.AgendaItemSample,
	})
	extractionSvc := extraction.NewService(log, civicRepo, topics, appearances, identitySvc, llm, tx)
	topicSvc := topic.NewService(log, topics, blocked, governanceSvc, tx)

	return &Container{
		Config:     cfg,
		Log:        log,
		Pool:       pool,
		Queue:      queue,
		Identity:   identitySvc,
		Continuity: continuitySvc,
		Governance: governanceSvc,
		Triage:     triageSvc,
		Extraction: extractionSvc,
		Topics:     topicSvc,
	}, nil
}

// Close releases the database pool and the Redis client.
func (c *Container) Close() {
	if err := c.Queue.Close(); err != nil {
		c.Log.Warn("close queue", slog.String("error", err.Error()))
	}
	c.Pool.Close()
}

// ContinuityRules converts the continuity section into engine rules.
func ContinuityRules(cfg config.ContinuityConfig) continuity.Rules {
	return continuity.Rules{
		ActivityWindowMonths:      cfg.ActivityWindowMonths,
		DisappearanceWindowMonths: cfg.DisappearanceWindowMonths,
		CooldownMonths:            cfg.CooldownMonths,
		Location:                  cfg.Location,
	}
}

// TriageThresholds returns the configured per-category thresholds.
func TriageThresholds(cfg config.TriageConfig) triage.Thresholds {
	return triage.Thresholds{
		Block:        cfg.BlockThreshold,
		Merge:        cfg.MergeThreshold,
		Approve:      cfg.ApproveThreshold,
		ApproveNovel: cfg.ApproveNovelThreshold,
	}
}

// NewWorker creates a worker with every task handler registered.
func (c *Container) NewWorker() *worker.Worker {
	w := worker.New(c.Log, c.Queue, c.Config.Worker)
	handlers := worker.NewHandlers(c.Log, c.Continuity, c.Extraction, c.Triage, c.Queue, worker.AutoTriage{
		MaxTopics:  c.Config.Triage.AutoMaxTopics,
		Thresholds: TriageThresholds(c.Config.Triage),
		Delay:      c.Config.Triage.AutoDelay,
	})
	handlers.Register(w)
	return w
}

// Run is the worker entry point. It loads configuration, connects to storage,
// serves the health endpoints and consumes tasks until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting worker",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	c, err := Build(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	health := rest.NewHealthHandler(BuildVersion(),
		rest.Component{Name: "database", Pinger: c.Pool},
		rest.Component{Name: "redis", Pinger: c.Queue},
	)
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      middleware.Chain(middleware.Recovery(logger), middleware.AccessLog(logger))(health.Routes()),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	srvErr := make(chan error, 1)
	go func() {
		logger.Info("health server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
		}
		close(srvErr)
	}()

	workerCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		if err, ok := <-srvErr; ok {
			logger.Error("health server failed", slog.String("error", err.Error()))
			cancel()
		}
	}()

	runErr := c.NewWorker().Run(workerCtx)

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout(cfg.Server))
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("health server shutdown", slog.String("error", err.Error()))
	}

	return runErr
}

func shutdownTimeout(cfg config.ServerConfig) time.Duration {
	if cfg.ShutdownTimeout > 0 {
		return cfg.ShutdownTimeout
	}
	return 10 * time.Second
}
