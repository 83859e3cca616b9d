package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"outdoor-chat/internal/config"
	"outdoor-chat/internal/db"
	apihttp "outdoor-chat/internal/http"
	"outdoor-chat/internal/llm"
	"outdoor-chat/internal/persona"
	"outdoor-chat/internal/repository"
	"outdoor-chat/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	instruction, err := persona.Load(cfg.PersonaFile)
	if err != nil {
		logger.Fatal("load persona", zap.Error(err))
	}

	transcripts, pinger, closeStore := newTranscriptStore(ctx, cfg, logger)
	defer closeStore()

	llmClient := newLLMClient(ctx, cfg, logger)

	var turns apihttp.TurnHandler
	if llmClient != nil && transcripts != nil {
		turns = service.NewChatService(llmClient, transcripts, instruction, logger)
	} else {
		logger.Warn("chat bindings incomplete; /api/chat will answer 500",
			zap.Bool("model", llmClient != nil),
			zap.Bool("store", transcripts != nil),
		)
	}

	chatHandler := apihttp.NewChatHandler(logger, turns)
	healthHandler := apihttp.NewHealthHandler(pinger)
	router := apihttp.NewRouter(logger, chatHandler, healthHandler, cfg.ExposeStack)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server",
		zap.String("port", cfg.HTTPPort),
		zap.String("store", cfg.StoreBackend),
		zap.String("provider", cfg.LLMProvider),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	}
}

// newTranscriptStore construye el backend elegido. Si no se puede abrir devuelve un repositorio nil
// y el endpoint responde como bindings faltantes.
func newTranscriptStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.TranscriptRepository, apihttp.Pinger, func()) {
	noop := func() {}

	switch cfg.StoreBackend {
	case config.StoreRedis:
		client := db.NewRedisClient(cfg)
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := client.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		}
		cancel()
		ping := apihttp.PingFunc(func(ctx context.Context) error { return client.Ping(ctx).Err() })
		return repository.NewRedisTranscriptRepository(client), ping, func() { _ = client.Close() }

	case config.StorePostgres:
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			logger.Error("db connect", zap.Error(err))
			return nil, nil, noop
		}
		repo := repository.NewPgTranscriptRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			logger.Error("ensure postgres schema", zap.Error(err))
			pool.Close()
			return nil, nil, noop
		}
		return repo, apihttp.PingFunc(pool.Ping), pool.Close

	case config.StoreSQLite:
		sqlDB, err := db.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			logger.Error("open sqlite", zap.Error(err))
			return nil, nil, noop
		}
		repo := repository.NewSQLiteTranscriptRepository(sqlDB)
		if err := repo.EnsureSchema(ctx); err != nil {
			logger.Error("ensure sqlite schema", zap.Error(err))
			_ = sqlDB.Close()
			return nil, nil, noop
		}
		return repo, apihttp.PingFunc(sqlDB.PingContext), func() { _ = sqlDB.Close() }

	default:
		logger.Warn("using in-memory transcript store; history is lost on restart")
		return repository.NewMemoryTranscriptRepository(), nil, noop
	}
}

// newLLMClient devuelve nil cuando faltan credenciales del proveedor elegido.
func newLLMClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) llm.LLMClient {
	switch cfg.LLMProvider {
	case config.ProviderWorkersAI:
		client, err := llm.NewWorkersAIClient(cfg.LLMBaseURL, cfg.CloudflareAccountID, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTimeout, logger)
		if err != nil {
			logger.Warn("workers ai client not configured", zap.Error(err))
			return nil
		}
		return client

	case config.ProviderArk:
		client, err := llm.NewArkClient(ctx, llm.ArkConfig{
			APIKey:    cfg.ArkAPIKey,
			AccessKey: cfg.ArkAccessKey,
			SecretKey: cfg.ArkSecretKey,
			Model:     cfg.LLMModel,
			BaseURL:   cfg.ArkBaseURL,
			Region:    cfg.ArkRegion,
		})
		if err != nil {
			logger.Warn("ark client not configured", zap.Error(err))
			return nil
		}
		return client

	default:
		if cfg.LLMAPIKey == "" {
			logger.Warn("LLM_API_KEY not configured")
			return nil
		}
		return llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTimeout, logger)
	}
}
