package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"school-admissions/backend/config"
	"school-admissions/backend/internal/api/handler"
	"school-admissions/backend/internal/api/router"
	"school-admissions/backend/internal/repository"
	"school-admissions/backend/internal/scheduler"
	"school-admissions/backend/internal/service"
	"school-admissions/backend/internal/worker"
	"school-admissions/backend/pkg/database"
	"school-admissions/backend/pkg/jwt"
	applogger "school-admissions/backend/pkg/logger"
	"school-admissions/backend/pkg/mailer"
	"school-admissions/backend/pkg/redis"
	"school-admissions/backend/pkg/storage"
)

func main() {
	// 1. configuration
	cfg, err := config.Load(os.Getenv("ADMISSIONS_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. logging
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting admissions service",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
		zap.String("storage", cfg.Storage.Driver),
	)

	// 3. database and migrations
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("get sql.DB", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("run migrations", zap.Error(err))
	}

	// 4. Redis is optional; without it the service runs degraded
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("redis unavailable, running without blacklist, shared rate limits, cache and queue", zap.Error(err))
			rdb = nil
		}
	}

	// 5. uploads, mail and notifications
	store, err := storage.New(&cfg.Storage)
	if err != nil {
		logger.Fatal("init storage", zap.Error(err))
	}

	processor := worker.NewProcessor(mailer.New(&cfg.Mail, logger), logger)

	deps := service.Deps{Storage: store, Notifier: worker.NewInlineNotifier(processor)}
	var (
		queue *worker.QueueNotifier
		wrk   *worker.Worker
	)
	if rdb != nil {
		deps.Tokens, deps.Cache = rdb, rdb

		queue, err = worker.NewQueueNotifier(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("task queue unavailable, sending notifications inline", zap.Error(err))
		} else {
			wrk = worker.NewWorker(&cfg.Redis, processor, logger)
			if err := wrk.Start(); err != nil {
				logger.Warn("task worker failed to start, sending notifications inline", zap.Error(err))
				queue.Close()
				queue, wrk = nil, nil
			} else {
				deps.Notifier = queue
			}
		}
	}

	// 6. Repository → Service → Handler
	jwtMgr := jwt.NewManager(&cfg.Auth)
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, deps, logger)
	h := handler.NewHandler(svc)

	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 30*time.Second)
	if err := svc.Auth.EnsureBootstrapAdmin(bootCtx); err != nil {
		logger.Error("bootstrap admin", zap.Error(err))
	}
	cancelBoot()

	// 7. maintenance sweep
	sched := scheduler.New(svc.Application, logger)
	if _, err := sched.Register(cfg.Admission.MaintenanceCron); err != nil {
		logger.Fatal("schedule maintenance", zap.Error(err))
	}
	sched.Start()

	// 8. HTTP server with graceful shutdown
	engine, err := router.Setup(cfg, h, jwtMgr, rdb, logger)
	if err != nil {
		logger.Fatal("init router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("http shutdown", zap.Error(err))
	}

	sched.Stop()
	if wrk != nil {
		wrk.Stop()
	}
	if queue != nil {
		queue.Close()
	}

	sqlDB.Close()
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server stopped")
}
