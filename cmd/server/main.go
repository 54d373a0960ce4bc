// Command server runs the training progression service: the HTTP API, the
// write-behind status syncer, and the audit pipeline.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"tutela/internal/assessment"
	"tutela/internal/export"
	httpapi "tutela/internal/http"
	"tutela/internal/platform/config"
	"tutela/internal/platform/httpserver"
	"tutela/internal/platform/kafka"
	"tutela/internal/platform/logger"
	platformmetrics "tutela/internal/platform/metrics"
	"tutela/internal/platform/postgres"
	platformredis "tutela/internal/platform/redis"
	"tutela/internal/platform/token"
	"tutela/internal/training/catalog"
	"tutela/internal/training/handler"
	"tutela/internal/training/metrics"
	"tutela/internal/training/session"
	"tutela/internal/training/store/completion"
	statussync "tutela/internal/training/sync"
	"tutela/pkg/platform/audit"
	auditpublisher "tutela/pkg/platform/audit/publisher"
	auditmemory "tutela/pkg/platform/audit/store/memory"
	auditpostgres "tutela/pkg/platform/audit/store/postgres"
	auditworker "tutela/pkg/platform/audit/worker"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat := catalog.Default()
	m := metrics.New()

	// Completion storage: postgres when configured, in-memory otherwise,
	// with an optional redis read-through cache in front.
	var completionStore completion.Store = completion.NewInMemoryStore()
	var auditStore audit.Store = auditmemory.NewInMemoryStore()
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			log.Error("postgres unavailable", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		completionStore = completion.NewPostgresStore(db)
		auditStore = auditpostgres.New(db)
	}
	if cfg.Redis.URL != "" {
		cache, err := platformredis.New(cfg.Redis)
		if err != nil {
			log.Error("redis unavailable", "error", err)
			os.Exit(1)
		}
		defer cache.Close()
		completionStore = completion.NewCachedStore(completionStore, cache.Client, cfg.Redis.CacheTTL)
	}

	// Status gateway: the remote service when configured, the local store
	// otherwise.
	var gateway statussync.Gateway = statussync.NewStoreGateway(completionStore)
	if cfg.StatusServiceURL != "" {
		gateway = statussync.NewHTTPGateway(cfg.StatusServiceURL)
	}

	syncer := statussync.NewSyncer(gateway,
		statussync.WithLogger(log),
		statussync.WithMetrics(m),
		statussync.WithInboxSize(cfg.SyncInboxSize),
	)

	// Audit pipeline: channel recorder, durable store, optional kafka
	// stream.
	recorder := audit.NewRecorder(cfg.AuditBufferSize, audit.WithRecorderLogger(log))
	var workerOpts []auditworker.Option
	workerOpts = append(workerOpts, auditworker.WithLogger(log))
	if len(cfg.KafkaBrokers) > 0 {
		client, err := kafka.NewClient(cfg.KafkaBrokers, "tutela-server")
		if err != nil {
			log.Error("kafka unavailable", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		if err := kafka.EnsureTopic(ctx, client, cfg.KafkaAuditTopic, 3); err != nil {
			log.Error("kafka topic bootstrap failed", "error", err)
			os.Exit(1)
		}
		sink := auditpublisher.NewKafkaSink(client, cfg.KafkaAuditTopic, auditpublisher.WithLogger(log))
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = sink.Close(flushCtx)
		}()
		workerOpts = append(workerOpts, auditworker.WithSink(sink))
	}
	worker := auditworker.NewWorker(auditStore, recorder.Inbox(), workerOpts...)

	registry := session.NewRegistry(cat, gateway, syncer,
		session.WithLogger(log),
		session.WithMetrics(m),
		session.WithAuditEmitter(recorder),
		session.WithHydrateTimeout(cfg.HydrateTimeout),
	)

	notifier := assessment.NewHTTPNotifier(cfg.AssessmentServiceURL)
	tokens := token.NewService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience)

	trainingHandler := handler.New(
		registry,
		notifier,
		export.NewAssembler(cat),
		recorder,
		syncer,
		log,
		m,
	)

	srv := httpserver.New(cfg.Addr, httpapi.NewRouter(trainingHandler, tokens, platformmetrics.NewHTTP(), log))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting server", "addr", cfg.Addr, "modules", cat.Len())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		err := syncer.Run(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		err := worker.Run(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
