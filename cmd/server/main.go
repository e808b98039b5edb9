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

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Manirmaths/Naijaprep/internal/api"
	"github.com/Manirmaths/Naijaprep/internal/auth"
	"github.com/Manirmaths/Naijaprep/internal/domain/quiz"
	"github.com/Manirmaths/Naijaprep/internal/feedback"
	"github.com/Manirmaths/Naijaprep/internal/infrastructure/config"
	"github.com/Manirmaths/Naijaprep/internal/metrics"
	"github.com/Manirmaths/Naijaprep/internal/notify"
	"github.com/Manirmaths/Naijaprep/internal/service"
	"github.com/Manirmaths/Naijaprep/internal/sessionstore"
	"github.com/Manirmaths/Naijaprep/internal/store"

	_ "github.com/Manirmaths/Naijaprep/docs" // generated swagger docs
)

// @title           NaijaPrep API
// @version         1.0
// @description     Adaptive multiple-choice maths practice for JAMB and WAEC candidates.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// ── Dependencies ────────────────────────────────────────────────
	db, err := store.NewSQLite(cfg.DatabasePath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	sessions, closeSessions, err := openSessionStore(cfg, logger)
	if err != nil {
		logger.Error("failed to connect session store", "error", err)
		os.Exit(1)
	}
	defer closeSessions()

	notifier, closeNotifier := openNotifier(cfg, logger)
	defer closeNotifier()
	dispatcher := notify.NewDispatcher(notifier, 2, logger)
	defer dispatcher.Close()

	m := metrics.New()

	var advisor feedback.Advisor
	if a, err := feedback.FromConfig(cfg); err != nil {
		logger.Warn("AI feedback disabled", "error", err)
		advisor = feedback.Disabled{Err: err}
	} else {
		advisor = a
	}

	stats := service.NewStatsService(db)
	handler := api.NewHandler(api.Services{
		Quiz: service.NewQuizService(db, sessions, quiz.NewSelector(cfg.BatchSize, nil),
			service.QuizConfig{TimeLimit: cfg.TimeLimit, PointsPerCorrect: cfg.PointsPerCorrect}, m, logger),
		Review:   service.NewReviewService(db, logger),
		Auth:     service.NewAuthService(db, auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL), dispatcher, cfg.BaseURL, logger),
		Stats:    stats,
		Feedback: service.NewFeedbackService(stats, advisor, m, logger),
	}, logger)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	})

	api.RegisterRoutes(mux, handler)

	mux.Handle("GET /metrics", m.Handler())

	// Swagger UI served at /swagger/
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// ── Middleware chain: Logging → CORS → mux ──────────────────────
	logged := api.Logging(logger, m)(api.CORS(cfg.CORSOrigin)(mux))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           logged,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      45 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "address", cfg.ServerAddress)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}

// openSessionStore uses Redis when REDIS_ADDR is set so sessions survive
// restarts and are shared between replicas.
func openSessionStore(cfg *config.Config, logger *slog.Logger) (sessionstore.Store, func(), error) {
	if cfg.RedisAddr == "" {
		logger.Info("using in-memory session store")
		return sessionstore.NewMemoryStore(), func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := sessionstore.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("using redis session store", "address", cfg.RedisAddr)
	return sessionstore.NewRedisStore(client, cfg.SessionTTL), func() { client.Close() }, nil
}

func openNotifier(cfg *config.Config, logger *slog.Logger) (notify.Notifier, func()) {
	if cfg.AMQPURL == "" {
		return notify.NewLogNotifier(logger), func() {}
	}

	n, err := notify.DialAMQP(cfg.AMQPURL, cfg.AMQPQueue)
	if err != nil {
		logger.Warn("amqp unavailable, logging notifications instead", "error", err)
		return notify.NewLogNotifier(logger), func() {}
	}
	logger.Info("publishing notifications to amqp", "queue", cfg.AMQPQueue)
	return n, func() { n.Close() }
}
