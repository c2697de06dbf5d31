package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"ordering/cmd"
	"ordering/internal/adapters/out/catalog"
	"ordering/internal/adapters/out/postgres"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	cfg, err := cmd.LoadConfig()
	if err != nil {
		_, _ = os.Stderr.WriteString("load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		_, _ = os.Stderr.WriteString("create logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, cfg, logger); err != nil {
		logger.Error("Service stopped with error", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("Service stopped")
}

func run(ctx context.Context, cfg *cmd.Config, logger *zap.Logger) error {
	gormDB, err := gorm.Open(postgresdriver.Open(cfg.DB.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return errors.Wrap(err, "connect database")
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return errors.Wrap(err, "get sql db")
	}
	defer func() { _ = sqlDB.Close() }()

	if err = gormDB.WithContext(ctx).AutoMigrate(postgres.Models()...); err != nil {
		return errors.Wrap(err, "migrate")
	}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return errors.Wrap(err, "load catalog")
	}
	variants, promotions, methods := cat.Size()
	logger.Info("Catalog loaded",
		zap.String("path", cfg.Catalog.Path),
		zap.Int("variants", variants),
		zap.Int("promotions", promotions),
		zap.Int("shipping_methods", methods),
	)

	app, err := cmd.NewCompositionRoot(*cfg, gormDB, cat, logger)
	if err != nil {
		return err
	}

	jobManager, err := app.CreateJobManager()
	if err != nil {
		return err
	}
	server, err := app.CreateHTTPServer()
	if err != nil {
		return err
	}
	e := server.Echo()

	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTP.Addr))
		if startErr := e.Start(cfg.HTTP.Addr); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
			return errors.Wrap(startErr, "http server")
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("Shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
		if shutdownErr := e.Shutdown(shutdownCtx); shutdownErr != nil {
			return errors.Wrap(shutdownErr, "http shutdown")
		}
		return nil
	})

	return g.Wait()
}

func newLogger(cfg *cmd.Config) (*zap.Logger, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.Log.Development {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
