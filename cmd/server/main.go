// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"cookmate-backend/internal/bot"
	"cookmate-backend/internal/common/auth"
	"cookmate-backend/internal/common/aws"
	"cookmate-backend/internal/common/config"
	"cookmate-backend/internal/common/database"
	"cookmate-backend/internal/common/logger"
	"cookmate-backend/internal/common/observability"
	"cookmate-backend/internal/models"
	"cookmate-backend/internal/server"

	sendnotification "cookmate-backend/internal/workers/communication/send-notification"
	generatesuggestions "cookmate-backend/internal/workers/meal/generate-suggestions"
	savepreferences "cookmate-backend/internal/workers/meal/save-preferences"
	validatepreferences "cookmate-backend/internal/workers/meal/validate-preferences"
	enrichsuggestion "cookmate-backend/internal/workers/media/enrich-suggestion"
	selectvideo "cookmate-backend/internal/workers/media/select-video"
	archivesuggestion "cookmate-backend/internal/workers/search/archive-suggestion"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

// videoSelectorAdapter narrows the selection handler to the interface the
// enrichment worker consumes.
type videoSelectorAdapter struct {
	handler *selectvideo.Handler
}

func (a *videoSelectorAdapter) Select(ctx context.Context, searchTerm, preferredLanguage string) models.VideoSelection {
	output := a.handler.Execute(ctx, &selectvideo.Input{
		SearchTerm:        searchTerm,
		PreferredLanguage: preferredLanguage,
	})
	return output.Selection
}

type enricherAdapter struct {
	handler *enrichsuggestion.Handler
}

func (a *enricherAdapter) Enrich(ctx context.Context, suggestions []models.Suggestion, mealType, preferredLanguage string) []models.EnrichedSuggestion {
	output := a.handler.Execute(ctx, &enrichsuggestion.Input{
		Suggestions:       suggestions,
		MealType:          mealType,
		PreferredLanguage: preferredLanguage,
	})
	return output.Enriched
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting cookmate backend...",
		zap.String("environment", cfg.App.Environment),
		zap.String("version", cfg.App.Version),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	if err := database.Migrate(ctx, pg.GetDB()); err != nil {
		zapLog.Fatal("schema migration failed", zap.Error(err))
	}
	zapLog.Info("Schema migration completed")

	// --- Init Redis with retry ---
	var redisClient *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redisClient, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redisClient.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redisClient.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init Elasticsearch (optional) ---
	var esClient *database.ElasticsearchClient
	if cfg.Database.Elasticsearch.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		zapLog.Info("Elasticsearch connected successfully")
	} else {
		zapLog.Info("Elasticsearch disabled, suggestion history unavailable")
	}

	// --- Init AWS clients ---
	emailEnabled := cfg.Integrations.AWS.SES.Enabled
	smsEnabled := cfg.Integrations.AWS.SNS.Enabled

	var sesClient *aws.SESClient
	if emailEnabled {
		sesClient, err = aws.NewSESClient(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			zapLog.Fatal("ses client init failed", zap.Error(err))
		}
	}

	var snsClient *aws.SNSClient
	if smsEnabled {
		snsClient, err = aws.NewSNSClient(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			zapLog.Fatal("sns client init failed", zap.Error(err))
		}
	}

	// --- Assemble the generation pipeline ---
	selectorCfg := selectvideo.DefaultConfig()
	selectorCfg.APIKey = cfg.APIs.YouTube.APIKey
	if cfg.APIs.YouTube.BaseURL != "" {
		selectorCfg.BaseURL = cfg.APIs.YouTube.BaseURL
	}
	if cfg.APIs.YouTube.MaxResults > 0 {
		selectorCfg.MaxResults = cfg.APIs.YouTube.MaxResults
	}
	if cfg.APIs.YouTube.Timeout > 0 {
		selectorCfg.Timeout = time.Duration(cfg.APIs.YouTube.Timeout) * time.Second
	}
	selector := selectvideo.NewHandler(selectorCfg, log)

	enricher := enrichsuggestion.NewHandler(
		enrichsuggestion.DefaultConfig(),
		&videoSelectorAdapter{handler: selector},
		log,
	)

	generatorCfg := generatesuggestions.DefaultConfig()
	generatorCfg.APIKey = cfg.APIs.Gemini.APIKey
	if cfg.APIs.Gemini.BaseURL != "" {
		generatorCfg.BaseURL = cfg.APIs.Gemini.BaseURL
	}
	if len(cfg.APIs.Gemini.Models) > 0 {
		generatorCfg.Models = cfg.APIs.Gemini.Models
	}
	if cfg.APIs.Gemini.Timeout > 0 {
		generatorCfg.Timeout = time.Duration(cfg.APIs.Gemini.Timeout) * time.Second
	}
	geminiClient := generatesuggestions.NewGeminiClient(generatorCfg, log)
	generator := generatesuggestions.NewHandler(
		generatorCfg,
		geminiClient,
		&enricherAdapter{handler: enricher},
		log,
	)

	validator := validatepreferences.NewHandler(log)
	prefs := savepreferences.NewHandler(pg.GetDB(), log)

	var archiver server.SuggestionArchiver
	if esClient != nil {
		archiveCfg := archivesuggestion.DefaultConfig()
		if cfg.Database.Elasticsearch.Index != "" {
			archiveCfg.Index = cfg.Database.Elasticsearch.Index
		}
		archiver = archivesuggestion.NewHandler(archiveCfg, esClient.Client, log)
	}

	notifierCfg := sendnotification.DefaultConfig()
	notifierCfg.AWSRegion = cfg.Integrations.AWS.Region
	if cfg.Integrations.AWS.SES.FromEmail != "" {
		notifierCfg.FromEmail = cfg.Integrations.AWS.SES.FromEmail
	}
	notifierCfg.EmailEnabled = emailEnabled
	notifierCfg.SMSEnabled = smsEnabled
	notifier := sendnotification.NewHandler(notifierCfg, sesClient, snsClient, log)

	// --- Auth ---
	sessionTTL := time.Duration(cfg.Auth.SessionTTL) * time.Second
	sessions := auth.NewSessionStore(redisClient.GetClient(), sessionTTL, log)
	accounts := auth.NewUserStore(pg.GetDB(), cfg.Auth.BcryptCost)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.JWTTTLMinutes)*time.Minute)

	srv := server.New(cfg, server.Deps{
		Accounts:  accounts,
		Sessions:  sessions,
		Tokens:    tokens,
		Validator: validator,
		Prefs:     prefs,
		Generator: generator,
		Archiver:  archiver,
		Notifier:  notifier,
	}, log)

	// --- Telegram bot ---
	botCtx, stopBot := context.WithCancel(ctx)
	defer stopBot()
	if cfg.Integrations.Telegram.Enabled {
		botCfg := bot.DefaultConfig()
		botCfg.BotToken = cfg.Integrations.Telegram.BotToken
		if cfg.Integrations.Telegram.APIBaseURL != "" {
			botCfg.APIBaseURL = cfg.Integrations.Telegram.APIBaseURL
		}
		if cfg.Integrations.Telegram.PollTimeout > 0 {
			botCfg.PollTimeout = cfg.Integrations.Telegram.PollTimeout
		}
		if cfg.Integrations.Telegram.PollInterval > 0 {
			botCfg.PollInterval = time.Duration(cfg.Integrations.Telegram.PollInterval) * time.Second
		}
		go bot.New(botCfg, generator, srv.Hub(), log).Run(botCtx)
	} else {
		zapLog.Info("Telegram bot disabled")
	}

	// --- HTTP server ---
	// WriteTimeout stays at the configured value; zero keeps SSE streams open.
	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      srv.Router(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// Wait for termination signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	zapLog.Info("Shutting down...")
	stopBot()

	shutdownTimeout := time.Duration(cfg.Server.ShutdownTimeout) * time.Second
	if shutdownTimeout <= 0 {
		shutdownTimeout = 15 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("http shutdown failed", zap.Error(err))
	}
	zapLog.Info("Shutdown complete")
}
