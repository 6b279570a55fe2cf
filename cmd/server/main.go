package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/trafficai/backend/internal/ai"
	"github.com/trafficai/backend/internal/api"
	"github.com/trafficai/backend/internal/api/handlers"
	"github.com/trafficai/backend/internal/api/middleware"
	"github.com/trafficai/backend/internal/auth"
	"github.com/trafficai/backend/internal/cache"
	"github.com/trafficai/backend/internal/chat"
	"github.com/trafficai/backend/internal/config"
	"github.com/trafficai/backend/internal/database"
	"github.com/trafficai/backend/internal/store"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	// Initialize database connections
	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	redisClient := database.InitRedis(cfg, logger)

	// Select the AI provider once at startup
	completer, err := newCompleter(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize AI provider",
			zap.String("provider", cfg.AIProvider),
			zap.Error(err))
	}

	// Wire stores, orchestrator and handlers
	users := store.NewUsers(db)
	conversations := store.NewConversations(db)
	messages := store.NewMessages(db)
	orchestrator := chat.NewOrchestrator(conversations, messages, completer, cfg.HistoryLimit, logger)

	tokens := auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLMinutes)*time.Minute)
	msgCache := cache.NewMessageCache(redisClient, logger)

	handler := handlers.NewHandler(users, conversations, messages, orchestrator, tokens, msgCache, logger)
	authMiddleware := middleware.NewAuthMiddleware(tokens)

	r := api.NewRouter(handler, authMiddleware, cfg, db)

	logger.Info("server starting", zap.String("port", cfg.ServerPort))
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

func newCompleter(cfg *config.Config, logger *zap.Logger) (ai.Completer, error) {
	timeout := time.Duration(cfg.AITimeoutSeconds) * time.Second

	switch cfg.AIProvider {
	case config.ProviderGemini:
		return ai.NewGemini(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, timeout, logger)
	case config.ProviderOpenAI:
		return ai.NewOpenAI(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel, timeout, logger)
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.AIProvider)
	}
}
