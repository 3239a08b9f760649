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

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/wuwenbin0122/persona-studio/internal/api"
	"github.com/wuwenbin0122/persona-studio/internal/db"
	"github.com/wuwenbin0122/persona-studio/internal/generator"
	"github.com/wuwenbin0122/persona-studio/internal/middleware"
	"github.com/wuwenbin0122/persona-studio/internal/persona"
	"github.com/wuwenbin0122/persona-studio/internal/store"
	"github.com/wuwenbin0122/persona-studio/internal/users"
	"github.com/wuwenbin0122/persona-studio/internal/utils"
	"github.com/wuwenbin0122/persona-studio/internal/web"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("config: no .env file loaded: %v", err)
	}

	cfg, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("config: failed to load: %v", err)
	}

	logger, err := utils.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("logger: failed to build: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	adapter, err := generator.New(ctx, cfg.Generation, logger)
	if err != nil {
		logger.Fatal("generator: failed to initialise", zap.Error(err))
	}
	defer adapter.Close()

	recorder, closeRecorder, err := openAuditSink(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("audit: failed to initialise", zap.String("sink", cfg.Audit.Sink), zap.Error(err))
	}
	defer closeRecorder()

	memory := store.NewMemory()
	if err := seedUser(ctx, users.NewService(memory), cfg.Users, logger); err != nil {
		logger.Fatal("users: failed to seed account", zap.String("username", cfg.Users.SeedUsername), zap.Error(err))
	}

	service := persona.NewService(memory, adapter, recorder, logger)

	router, err := setupRouter(cfg, service, logger)
	if err != nil {
		logger.Fatal("router: failed to initialise", zap.Error(err))
	}

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Generation.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening",
			zap.String("addr", server.Addr),
			zap.String("base_url", cfg.BaseURL),
			zap.String("provider", adapter.Provider()),
			zap.String("model", adapter.Model()),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server crashed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}

	logger.Info("server stopped cleanly")
}

// openAuditSink connects the configured generation event sink. The returned
// close func is always safe to call.
func openAuditSink(ctx context.Context, cfg *utils.Config, logger *zap.Logger) (persona.EventRecorder, func(), error) {
	switch cfg.Audit.Sink {
	case utils.AuditSinkPostgres:
		postgres, err := db.NewPostgres(ctx, cfg.Postgres)
		if err != nil {
			return nil, func() {}, err
		}
		if err := postgres.Ping(ctx); err != nil {
			postgres.Close()
			return nil, func() {}, err
		}
		if err := postgres.EnsureSchema(ctx); err != nil {
			postgres.Close()
			return nil, func() {}, err
		}
		logger.Info("audit: recording generations to postgres")
		return postgres, postgres.Close, nil
	case utils.AuditSinkMongo:
		mongoStore, err := db.NewMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, func() {}, err
		}
		closeMongo := func() {
			if err := mongoStore.Close(context.Background()); err != nil {
				logger.Warn("mongo: close error", zap.Error(err))
			}
		}
		if err := mongoStore.EnsureCollections(ctx); err != nil {
			closeMongo()
			return nil, func() {}, err
		}
		logger.Info("audit: recording generations to mongo", zap.String("database", cfg.Mongo.Database))
		return mongoStore, closeMongo, nil
	default:
		return nil, func() {}, nil
	}
}

// seedUser registers the configured account, if any. An existing account is kept.
func seedUser(ctx context.Context, accounts *users.Service, cfg utils.UsersConfig, logger *zap.Logger) error {
	if cfg.SeedUsername == "" {
		return nil
	}

	user, err := accounts.Register(ctx, users.RegisterInput{
		Username: cfg.SeedUsername,
		Password: cfg.SeedPassword,
	})
	switch {
	case errors.Is(err, users.ErrUserExists):
		return nil
	case err != nil:
		return err
	}

	logger.Info("users: seeded account", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	return nil
}

func setupRouter(cfg *utils.Config, service *persona.Service, logger *zap.Logger) (*gin.Engine, error) {
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	api.NewHandler(service, cfg.BaseURL, logger).RegisterRoutes(router)

	pages, err := web.NewHandler(service, logger)
	if err != nil {
		return nil, err
	}
	pages.RegisterRoutes(router)

	return router, nil
}
