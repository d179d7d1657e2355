package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/proposal-backend/internal/ai"
	"github.com/ignatzorin/proposal-backend/internal/config"
	"github.com/ignatzorin/proposal-backend/internal/goroutine"
	httpHandlers "github.com/ignatzorin/proposal-backend/internal/http/handlers"
	httpRouter "github.com/ignatzorin/proposal-backend/internal/http/router"
	"github.com/ignatzorin/proposal-backend/internal/logger"
	"github.com/ignatzorin/proposal-backend/internal/service"
	"github.com/ignatzorin/proposal-backend/internal/storage"
	"github.com/ignatzorin/proposal-backend/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	logger.Init(cfg.LogLevel)
	if !cfg.IsProduction() {
		logger.SetTextFormatter()
	}
	gin.DefaultWriter = logger.SetFileOutput(logger.FileOptions{
		Path:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})
	defer logger.Close()

	// Хранилище предложений и настроек.
	store, closeStore, err := storage.Open(ctx, cfg.StorageOptions())
	if err != nil {
		logger.Log.WithError(err).Fatal("main: не удалось открыть хранилище")
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Log.WithError(err).Warn("main: ошибка закрытия хранилища")
		}
	}()
	logger.Log.WithField("mode", store.Mode()).Info("main: хранилище готово")

	// Фоновые удаления устаревших предложений.
	background := goroutine.NewGroup(logger.Log)
	sweeper := service.NewExpirationSweeper(store, background, logger.Log)
	defer sweeper.Wait()

	syncManager := service.NewSyncManager(store, sweeper, logger.Log)
	if err := syncManager.Load(ctx); err != nil {
		// Работаем на значениях по умолчанию, хранилище может подняться позже.
		logger.Log.WithError(err).Warn("main: начальная загрузка из хранилища не удалась")
	}

	// Вебсокеты.
	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	hub := ws.NewHub(logger.Log)
	go hub.Run(hubCtx)
	syncManager.SetNotifier(hub)

	// Генерация.
	text, err := newTextGenerator(cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("main: не удалось настроить AI провайдера")
	}
	generator := ai.NewProposalGenerator(text, logger.Log)
	generationService := service.NewGenerationService(generator, syncManager, logger.Log)

	var tokenManager *service.TokenManager
	if cfg.APITokenSecret != "" {
		tokenManager, err = service.NewTokenManager(cfg.APITokenSecret)
		if err != nil {
			logger.Log.WithError(err).Fatal("main: некорректный API_TOKEN_SECRET")
		}
	} else {
		logger.Log.Warn("main: API_TOKEN_SECRET не задан, API доступен без авторизации")
	}

	// HTTP хэндлеры.
	catalogHandler := httpHandlers.NewCatalogHandler()
	generationHandler := httpHandlers.NewGenerationHandler(generationService)
	proposalHandler := httpHandlers.NewProposalHandler(syncManager)
	aeHandler := httpHandlers.NewAccountExecutiveHandler(syncManager)
	promptHandler := httpHandlers.NewPromptHandler(syncManager)
	transcriptHandler := httpHandlers.NewTranscriptHandler(cfg.MaxUploadSizeMB)
	wsHandler := httpHandlers.NewWSHandler(hub, cfg.AllowedOrigins)
	healthHandler := httpHandlers.NewHealthHandler(store, hub)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, catalogHandler, generationHandler, proposalHandler, aeHandler, promptHandler, transcriptHandler, wsHandler, healthHandler, tokenManager)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.WithError(err).Error("main: ошибка остановки http сервера")
		}
		stopHub()
	}()

	logger.Log.WithField("port", cfg.HTTPPort).Info("main: HTTP сервер запущен")

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Log.WithError(err).Error("main: сервер завершился с ошибкой")
	}
	logger.Log.Info("main: сервер остановлен")
}

// newTextGenerator выбирает провайдера по AI_PROVIDER.
func newTextGenerator(cfg *config.Config) (ai.TextGenerator, error) {
	switch cfg.AIProvider {
	case config.AIProviderGemini:
		return ai.NewGeminiClient(cfg.GeminiAPIKey, "", cfg.AIModel, cfg.AITimeout)
	default:
		if cfg.AIAPIKey == "" {
			logger.Log.Warn("main: AI_API_KEY не задан, запросы генерации будут отклонены провайдером")
		}
		return ai.NewClient(cfg.AIBaseURL, cfg.AIModel, cfg.AIAPIKey, cfg.AITimeout), nil
	}
}
