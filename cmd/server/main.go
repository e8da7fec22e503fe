package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"placements-assistant/internal/adapter/api"
	"placements-assistant/internal/adapter/client"
	"placements-assistant/internal/adapter/store"
	"placements-assistant/internal/config"
	"placements-assistant/internal/domain/repository"
	"placements-assistant/internal/logger"
	"placements-assistant/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/qdrant/go-client/qdrant"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLog := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)
	defer appLog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis for the response cache
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()
	cache := store.NewRedisCache(rdb, cfg.Cache.Prefix, cfg.Cache.TTL)

	// Qdrant for role documents and stats records
	qClient, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Qdrant.Host,
		Port:   cfg.Qdrant.Port,
		APIKey: cfg.Qdrant.APIKey,
	})
	if err != nil {
		fatal(appLog, "failed to connect to qdrant", err)
	}
	defer qClient.Close()

	docStore := store.NewQdrantStore(qClient, cfg.Qdrant.InsightsCollection, cfg.Qdrant.StatsCollection, appLog)
	if err := docStore.InitCollections(ctx, cfg.Embedding.Dimension); err != nil {
		fatal(appLog, "failed to init qdrant collections", err)
	}

	genaiClient, err := client.NewGenAIClient(ctx, cfg.Google.Project, cfg.Google.Location, cfg.Google.APIKey)
	if err != nil {
		fatal(appLog, "failed to init genai client", err)
	}

	var embedder repository.Embedder
	switch cfg.Embedding.Provider {
	case config.ProviderOllama:
		embedder = client.NewOllamaEmbedder(cfg.Embedding.OllamaBaseURL, cfg.Embedding.Model)
	default:
		embedder = client.NewEmbedderFromClient(genaiClient, cfg.Embedding.Model, int32(cfg.Embedding.Dimension))
	}

	var completer repository.Completer
	switch cfg.Chatbot.Provider {
	case config.ProviderGemini:
		completer = client.NewGeminiCompleter(genaiClient, cfg.Chatbot.Model)
	default:
		completer = client.NewOllamaCompleter(cfg.Chatbot.Endpoint, cfg.Chatbot.Model)
	}

	recognizer := client.NewGeminiRecognizer(genaiClient, cfg.NER.Model)

	orchestrator := usecase.NewOrchestrator(
		usecase.NewCacheGate(cache, appLog),
		recognizer,
		usecase.NewContextRetriever(embedder, docStore, docStore, appLog),
		usecase.NewAnswerGenerator(completer, cfg.Chatbot.Timeout, appLog),
		appLog,
	)
	insights := usecase.NewInsightsService(docStore, embedder, appLog)
	stats := usecase.NewStatsService(docStore, docStore, appLog)

	go func() {
		warmCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, err := embedder.CreateEmbedding(warmCtx, "warmup"); err != nil {
			appLog.WithError(err).Warn("embedder warm-up failed", nil)
			return
		}
		appLog.Info("embedder warm-up complete", nil)
	}()

	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
	})

	api.SetupRouter(app, api.RouterConfig{
		Version:     cfg.App.Version,
		Environment: cfg.App.Environment,
		CORSOrigins: cfg.App.CORSOrigins,
		AdminAPIKey: cfg.App.AdminAPIKey,
		Chatbot:     api.NewChatbotHandler(orchestrator, appLog),
		Dashboard:   api.NewDashboardHandler(insights, stats, appLog),
		Checks: map[string]api.Pinger{
			"redis":  cache,
			"qdrant": docStore,
		},
	})

	go func() {
		<-ctx.Done()
		appLog.Info("shutting down", nil)
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			appLog.WithError(err).Error("shutdown failed", nil)
		}
	}()

	appLog.Info("server starting", map[string]interface{}{
		"port":     cfg.App.Port,
		"chatbot":  cfg.Chatbot.Provider,
		"embedder": cfg.Embedding.Provider,
	})
	if err := app.Listen(":" + cfg.App.Port); err != nil {
		appLog.WithError(err).Error("server stopped", nil)
		os.Exit(1)
	}
}

func fatal(l logger.Logger, msg string, err error) {
	l.WithError(err).Error(msg, nil)
	_ = l.Sync()
	os.Exit(1)
}
