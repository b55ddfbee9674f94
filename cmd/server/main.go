// Interview Coach API server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ashvale/coach-labs/internal/api"
	"github.com/ashvale/coach-labs/internal/config"
	"github.com/ashvale/coach-labs/internal/gen"
	"github.com/ashvale/coach-labs/internal/metrics"
	"github.com/ashvale/coach-labs/internal/middleware"
	"github.com/ashvale/coach-labs/internal/session"
	"github.com/ashvale/coach-labs/internal/store"
	"github.com/ashvale/coach-labs/internal/workflow"
	"github.com/ashvale/coach-labs/internal/ws"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

const version = "1.0.0"

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "store", cfg.StoreDriver, "mode", cfg.CoachMode)

	// Initialize storage backend.
	repo, err := newRepository(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage backend", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			slog.Error("Failed to close repository", "error", closeErr)
		}
	}()

	if err := repo.Ping(context.Background()); err != nil {
		slog.Error("Storage backend health check failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Storage backend connected")

	m := metrics.New()

	// Initialize generation backend.
	var generator gen.Generator = gen.Disabled{}
	if cfg.GenerationEnabled() {
		azure, err := gen.NewAzureClient(cfg.AzureOpenAIEndpoint, cfg.AzureOpenAIKey, cfg.AzureOpenAIDeployment)
		if err != nil {
			slog.Error("Failed to initialize Azure OpenAI client", "error", err)
			os.Exit(1)
		}
		generator = azure
		slog.Info("Generation backend initialized", "deployment", cfg.AzureOpenAIDeployment)
	} else {
		slog.Warn("Generation backend not configured, replies will use fallback text")
	}

	// Each actor gets its own responder; workflow engines carry per-actor
	// rng state and must not be shared across users.
	var newResponder session.ResponderFactory
	if cfg.CoachMode == config.ModeWorkflow {
		interviewType := workflow.InterviewType(cfg.InterviewType)
		newResponder = func() session.Responder {
			rng := rand.New(rand.NewSource(time.Now().UnixNano()))
			return session.NewWorkflowResponder(workflow.NewEngine(interviewType, rng), m.WorkflowCompletions)
		}
	} else {
		chat := session.NewChatResponder(generator, cfg.GenerationTimeout, m.GenerationFallbacks)
		newResponder = func() session.Responder { return chat }
	}

	sessionRouter := session.NewRouter(repo, newResponder)
	sessionHandler := api.NewSessionHandler(sessionRouter, m, version)
	chatSocket := ws.NewChatHandler(sessionRouter, ws.NewHub())

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))

	r.NotFound(api.NotFound)
	r.MethodNotAllowed(api.MethodNotAllowed)

	sessionHandler.RegisterRoutes(r)
	r.Get("/ws/chat", chatSocket.ServeHTTP)
	r.Handle("/metrics", m.Handler())
	r.Get("/", api.Index)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute, // generation calls can be slow
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store.StartJanitor(ctx, repo, cfg.SessionTTL)

	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}

func newRepository(cfg *config.Config) (store.Repository, error) {
	switch cfg.StoreDriver {
	case config.StoreRedis:
		return store.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.SessionTTL)
	case config.StoreMemory:
		return store.NewMemory(), nil
	default:
		return store.NewSQLite(cfg.DBPath)
	}
}
