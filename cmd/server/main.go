package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"

	"github.com/Rabi-developer/ZMS-sub002/aging"
	"github.com/Rabi-developer/ZMS-sub002/config"
	"github.com/Rabi-developer/ZMS-sub002/db"
	"github.com/Rabi-developer/ZMS-sub002/db/mongo"
	"github.com/Rabi-developer/ZMS-sub002/db/postgres"
	"github.com/Rabi-developer/ZMS-sub002/export"
	"github.com/Rabi-developer/ZMS-sub002/handlers"
	"github.com/Rabi-developer/ZMS-sub002/observability"
	"github.com/Rabi-developer/ZMS-sub002/repository"
	"github.com/Rabi-developer/ZMS-sub002/routes"
	"github.com/Rabi-developer/ZMS-sub002/utils"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := config.NewLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		consignmentRepo repository.ConsignmentRepository
		paymentRepo     repository.PaymentRepository
		initialRepo     repository.InitialRepository
		settings        aging.Settings
	)

	switch db.DBType(cfg.DBType) {
	case db.Postgres:
		if err := db.RunMigrations(cfg.PostgresURL, cfg.MigrationsPath, logger); err != nil {
			return err
		}
		pg := postgres.NewPostgresDB(cfg.PostgresURL)
		if err := pg.Connect(ctx); err != nil {
			return err
		}
		defer pg.Disconnect(context.Background())

		consignmentRepo = repository.NewPostgresConsignmentRepo(pg.Conn)
		paymentRepo = repository.NewPostgresPaymentRepo(pg.Conn)
		initialRepo = repository.NewPostgresInitialRepo(pg.Conn)
		settings = repository.NewPostgresSettingsRepo(pg.Conn)

	case db.Mongo:
		mg := mongo.NewMongoDB(cfg.MongoURL)
		if err := mg.Connect(ctx); err != nil {
			return err
		}
		defer mg.Disconnect(context.Background())

		consignmentRepo = repository.NewMongoConsignmentRepo(mg.Client, cfg.MongoDB)
		paymentRepo = repository.NewMongoPaymentRepo(mg.Client, cfg.MongoDB)
		initialRepo = repository.NewMongoInitialRepo(mg.Client, cfg.MongoDB)
		settings = repository.NewMongoSettingsRepo(mg.Client, cfg.MongoDB)

	case db.HTTP:
		remote := repository.NewRemoteRepo(cfg.SourceBaseURL, cfg.SourceToken, &http.Client{Timeout: time.Minute})
		consignmentRepo = remote
		paymentRepo = remote
		initialRepo = repository.NewMemoryInitialRepo()
		settings = aging.NewMemorySettings()
	}

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return err
		}
		defer rdb.Close()
		settings = repository.NewRedisSettingsRepo(rdb, cfg.SettingsTTL)
	}

	metrics := observability.NewMetrics()
	validate := validator.New()

	sessions := aging.NewSessions(func(id string) *aging.Session {
		loader := aging.NewLoader(consignmentRepo, paymentRepo,
			aging.WithPageSize(cfg.ReportPageSize),
			aging.WithLogger(logger.With(slog.String("session", id))),
			aging.WithObserver(metrics),
		)
		prefs := &aging.Preferences{Settings: aging.ScopedSettings{Inner: settings, Scope: id}}
		initial := aging.NewViewState().WithWHTPercent(cfg.DefaultWHTPercent)
		return aging.NewSessionWithState(id, loader, prefs, initial)
	}, aging.WithIdleTTL(cfg.SessionIdleTTL), aging.WithSessionLogger(logger))

	var store handlers.ArtifactStore
	if cfg.R2Enabled() {
		r2, err := utils.NewR2Store(ctx, utils.R2Config{
			AccountID: cfg.R2AccountID,
			AccessKey: cfg.R2AccessKey,
			SecretKey: cfg.R2SecretKey,
			Bucket:    cfg.R2Bucket,
			PublicURL: cfg.R2PublicURL,
		})
		if err != nil {
			return err
		}
		store = r2
	}

	reportHandler := &handlers.ReportHandler{Sessions: sessions, Validate: validate, Logger: logger}
	router := routes.NewRouter(routes.Params{
		Logger:      logger,
		Metrics:     metrics,
		Production:  cfg.Production,
		ExportLimit: cfg.ExportRateLimit,
		Report:      reportHandler,
		Export: &handlers.ExportHandler{
			Reports:  reportHandler,
			Exporter: export.NewExporter(export.NewPDFRenderer(cfg.ChromeTimeout)),
			Company:  initialRepo,
			Store:    store,
			Metrics:  metrics,
			Logger:   logger,
		},
		Consignment: &handlers.ConsignmentHandler{Repo: consignmentRepo, Validate: validate, Logger: logger},
		Payment:     &handlers.PaymentHandler{Repo: paymentRepo, Validate: validate, Logger: logger},
		Initial:     &handlers.InitialHandler{Repo: initialRepo, Validate: validate, Logger: logger},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running", slog.String("port", cfg.Port), slog.String("db_type", cfg.DBType))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
