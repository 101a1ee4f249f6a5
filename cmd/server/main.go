package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"

	"github.com/NguyenLeDuy2k7/Chatbot-AI/internal/config"
	"github.com/NguyenLeDuy2k7/Chatbot-AI/internal/domain/chat"
	"github.com/NguyenLeDuy2k7/Chatbot-AI/internal/infrastructure/database"
	"github.com/NguyenLeDuy2k7/Chatbot-AI/internal/infrastructure/llmprovider"
	"github.com/NguyenLeDuy2k7/Chatbot-AI/internal/infrastructure/logger"
	"github.com/NguyenLeDuy2k7/Chatbot-AI/internal/infrastructure/observability"
	conversationrepo "github.com/NguyenLeDuy2k7/Chatbot-AI/internal/infrastructure/repository/conversation"
	"github.com/NguyenLeDuy2k7/Chatbot-AI/internal/interfaces/httpserver"
)

// Application bundles the serving pieces behind a single Start.
type Application struct {
	httpServer *httpserver.HTTPServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HTTPServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := database.Connect(database.Config{
		DSN:             cfg.DatabaseDSN,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := database.AutoMigrate(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	conversationRepository := conversationrepo.NewRepository(db)
	llmClient := llmprovider.NewClient(cfg.CompletionURL, cfg.ModelName, cfg.LLMTimeout)
	chatService := chat.NewService(conversationRepository, llmClient, cfg.SystemPrompt, log)

	log.Info().Str("completion_url", cfg.CompletionURL).Str("model", cfg.ModelName).
		Msg("make sure the completion endpoint is running and reachable")

	httpServer := httpserver.New(cfg, log, chatService)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
