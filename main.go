package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finance-tracker/api/auth"
	"finance-tracker/api/config"
	"finance-tracker/api/handlers"
	"finance-tracker/api/llm"
	"finance-tracker/api/logger"
	"finance-tracker/api/memstore"
	"finance-tracker/api/middleware"
	"finance-tracker/api/mongodb"
	"finance-tracker/api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type repositories struct {
	transactions service.TransactionRepository
	users        service.UserRepository
	chats        service.ChatRepository
	close        func(ctx context.Context)
}

func openStore(ctx context.Context, cfg *config.Config) (*repositories, error) {
	if cfg.Store == config.StoreMemory {
		logger.Get().Warn("using in-memory store; data is lost on restart")
		store := memstore.New()
		return &repositories{
			transactions: store.Transactions(),
			users:        store.Users(),
			chats:        store.Chats(),
			close:        func(context.Context) {},
		}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongodb.Connect(connectCtx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		return nil, err
	}
	if err := client.EnsureIndexes(connectCtx); err != nil {
		client.Close(ctx)
		return nil, err
	}
	return &repositories{
		transactions: client.Transactions(),
		users:        client.Users(),
		chats:        client.Chats(),
		close:        client.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		// The logger is not configured yet.
		_ = logger.Init(true, logger.InfoLevel)
		logger.Get().Fatal("invalid configuration", zap.Error(err))
	}

	if err := logger.Init(cfg.Development, logger.ParseLevel(cfg.LogLevel)); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal("failed to open store", zap.String("store", cfg.Store), zap.Error(err))
	}
	defer repos.close(context.Background())

	generator, err := llm.NewGeminiClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatal("failed to create gemini client", zap.Error(err))
	}

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)
	authService := service.NewAuthService(repos.users, tokens)
	transactionService := service.NewTransactionService(repos.transactions)
	aiService := service.NewAIService(repos.transactions, service.NewChatService(repos.chats), generator, cfg.AIContextLimit)

	if !cfg.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})
	router.Use(middleware.Recovery(), middleware.RequestLogger(), middleware.Cors(cfg.CORSOrigin))

	handlers.New(authService, transactionService, aiService).
		Register(router, middleware.Auth(tokens, authService))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info("server starting", zap.String("port", cfg.Port), zap.String("store", cfg.Store))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
