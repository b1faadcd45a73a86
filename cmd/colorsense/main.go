// main.go — точка входа colorsense API.
// Сборка зависимостей: конфигурация, PostgreSQL, кэши, сервисы, консультант,
// мониторинг зависимостей, HTTP-сервер.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/bigkaa/colorsense/internal/api/handlers"
	"github.com/bigkaa/colorsense/internal/api/middleware"
	"github.com/bigkaa/colorsense/internal/config"
	"github.com/bigkaa/colorsense/internal/consultant"
	"github.com/bigkaa/colorsense/internal/database"
	"github.com/bigkaa/colorsense/internal/domain/model"
	"github.com/bigkaa/colorsense/internal/repository"
	"github.com/bigkaa/colorsense/internal/server"
	"github.com/bigkaa/colorsense/internal/service"
)

// warmTimeout — ограничение на прогрев кэша каталога при старте.
const warmTimeout = 30 * time.Second

func main() {
	// 1. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Настройка логирования
	logger := config.SetupLogger(cfg)
	logger.Info("colorsense запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
	)

	// 3. Применение миграций БД
	logger.Info("Применение миграций БД...")
	if err := database.Migrate(cfg, logger); err != nil {
		logger.Error("Ошибка миграций БД", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Подключение к PostgreSQL (pgxpool)
	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Error("Ошибка подключения к PostgreSQL", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	// 4.1 Адаптер pgxpool → *sql.DB для topologymetrics (connection pool mode).
	pgDB := stdlib.OpenDBFromPool(pool)
	defer pgDB.Close()

	// 5. Репозиторий и кэши
	colorRepo := repository.NewColorRepository(pool)
	catalogCache := service.NewTTLCache[*model.Color](service.CatalogCacheName, cfg.CatalogCacheSize, cfg.CatalogCacheTTL)
	searchCache := service.NewTTLCache[*service.SearchResult](service.SearchCacheName, cfg.SearchCacheSize, cfg.SearchCacheTTL)

	// 6. Сервисы каталога и поиска
	catalogSvc := service.NewCatalogService(colorRepo, catalogCache, logger)
	searchSvc := service.NewSearchService(colorRepo, searchCache, logger)

	// 6.1 Прогрев кэша каталога. Ошибка не фатальна — кэш заполнится по запросам.
	warmCtx, cancelWarm := context.WithTimeout(ctx, warmTimeout)
	if _, warmErr := catalogSvc.Warm(warmCtx); warmErr != nil {
		logger.Warn("Кэш каталога не прогрет, продолжаем без прогрева",
			slog.String("error", warmErr.Error()),
		)
	}
	cancelWarm()

	// 7. AI-консультант (опционально, если задан CS_LLM_API_KEY)
	var llm consultant.LLM
	if cfg.LLMEnabled() {
		llm = consultant.NewClient(consultant.ClientConfig{
			APIKey:      cfg.LLMAPIKey,
			BaseURL:     cfg.LLMBaseURL,
			Model:       cfg.LLMModel,
			Timeout:     cfg.LLMTimeout,
			MaxTokens:   cfg.LLMMaxTokens,
			Temperature: cfg.LLMTemperature,
		}, logger)
		logger.Info("Консультант включён",
			slog.String("model", cfg.LLMModel),
			slog.String("base_url", cfg.LLMBaseURL),
		)
	} else {
		logger.Warn("CS_LLM_API_KEY не задан, консультант отключён")
	}
	consultantSvc := consultant.NewService(llm, colorRepo, catalogSvc, logger)

	// 8. topologymetrics — мониторинг зависимостей (PostgreSQL)
	dephealthSvc, dephealthErr := service.NewDephealthService(
		config.ServiceName,
		cfg.DephealthGroup,
		pgDB,
		cfg.DatabaseURL(),
		cfg.DephealthCheckInterval,
		logger,
	)
	if dephealthErr != nil {
		logger.Warn("topologymetrics недоступен, запуск без мониторинга зависимостей",
			slog.String("error", dephealthErr.Error()),
		)
		dephealthSvc = nil
	} else if startErr := dephealthSvc.Start(ctx); startErr != nil {
		logger.Warn("Ошибка запуска topologymetrics",
			slog.String("error", startErr.Error()),
		)
	} else {
		logger.Info("topologymetrics запущен",
			slog.String("group", cfg.DephealthGroup),
			slog.String("check_interval", cfg.DephealthCheckInterval.String()),
		)
	}

	// 9. HTTP handlers
	healthHandler := handlers.NewHealthHandler(database.NewReadinessChecker(pool), consultantSvc)
	apiHandler := handlers.NewAPIHandler(
		catalogSvc,
		searchSvc,
		consultantSvc,
		healthHandler,
		!cfg.IsProduction(),
		logger,
	)

	// 10. Создание и запуск HTTP-сервера
	srv := server.New(cfg, logger, apiHandler,
		middleware.RequestID(),
		middleware.MetricsMiddleware(),
		middleware.RequestLogger(logger),
	)
	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 11. Остановка фоновых задач
	if dephealthSvc != nil {
		dephealthSvc.Stop()
	}

	logger.Info("colorsense остановлен")
}
