// Пакет config — загрузка и валидация конфигурации colorsense
// из переменных окружения (префикс CS_).
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// ServiceName — имя сервиса в логах, health и метриках зависимостей.
const ServiceName = "colorsense-api"

// Окружения запуска.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config содержит все параметры конфигурации colorsense.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера
	Port int
	// Окружение: development, production (в production детали ошибок не отдаются клиенту)
	Env string
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string
	// Разрешённые CORS origins (frontend)
	CORSOrigins []string

	// --- HTTP Server Timeouts ---

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration

	// --- PostgreSQL ---

	DBHost     string
	DBPort     int
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	// Размер пула pgxpool: максимум и минимум открытых соединений
	DBMaxConns int
	DBMinConns int
	// Время жизни соединения в пуле
	DBMaxConnLifetime time.Duration

	// --- Кэши ---

	// Максимальное количество цветов в кэше каталога
	CatalogCacheSize int
	// Время жизни записи кэша каталога
	CatalogCacheTTL time.Duration
	// Максимальное количество закэшированных поисковых запросов
	SearchCacheSize int
	// Время жизни результата поиска в кэше
	SearchCacheTTL time.Duration

	// --- LLM-консультант ---

	// API-ключ генеративной модели (пусто — консультант отключён)
	LLMAPIKey string
	// Базовый URL OpenAI-совместимого API
	LLMBaseURL string
	// Имя модели
	LLMModel string
	// Таймаут запроса к модели
	LLMTimeout time.Duration
	// Ограничение длины ответа в токенах
	LLMMaxTokens int
	// Температура генерации
	LLMTemperature float32

	// --- topologymetrics ---

	DephealthGroup         string
	DephealthCheckInterval time.Duration

	// --- Graceful shutdown ---

	ShutdownTimeout time.Duration
}

// Load загружает конфигурацию из переменных окружения.
// Возвращает ошибку, если обязательные переменные не заданы
// или значения некорректны.
//
//nolint:cyclop,funlen // линейный разбор переменных окружения
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	// --- Сервер ---

	// CS_PORT — порт HTTP-сервера (по умолчанию 5001)
	cfg.Port, err = getEnvInt("CS_PORT", 5001)
	if err != nil {
		return nil, fmt.Errorf("CS_PORT: %w", err)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("CS_PORT: порт %d вне диапазона 1-65535", cfg.Port)
	}

	cfg.Env = strings.ToLower(getEnvDefault("CS_ENV", EnvDevelopment))
	if cfg.Env != EnvDevelopment && cfg.Env != EnvProduction {
		return nil, fmt.Errorf("CS_ENV: недопустимое значение %q, допустимые: development, production", cfg.Env)
	}

	cfg.LogLevel, err = parseLogLevel(getEnvDefault("CS_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("CS_LOG_LEVEL: %w", err)
	}

	cfg.LogFormat = getEnvDefault("CS_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("CS_LOG_FORMAT: недопустимый формат %q, допустимые: json, text", cfg.LogFormat)
	}

	cfg.CORSOrigins = getEnvList("CS_CORS_ORIGINS", []string{"http://localhost:3000"})

	// --- HTTP Server Timeouts ---

	cfg.HTTPReadTimeout, err = getEnvDuration("CS_HTTP_READ_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("CS_HTTP_READ_TIMEOUT: %w", err)
	}

	// Запись включает ожидание ответа модели, поэтому таймаут больше LLM-таймаута
	cfg.HTTPWriteTimeout, err = getEnvDuration("CS_HTTP_WRITE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("CS_HTTP_WRITE_TIMEOUT: %w", err)
	}

	cfg.HTTPIdleTimeout, err = getEnvDuration("CS_HTTP_IDLE_TIMEOUT", 120*time.Second)
	if err != nil {
		return nil, fmt.Errorf("CS_HTTP_IDLE_TIMEOUT: %w", err)
	}

	// --- PostgreSQL ---

	cfg.DBHost, err = getEnvRequired("CS_DB_HOST")
	if err != nil {
		return nil, err
	}

	cfg.DBPort, err = getEnvInt("CS_DB_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("CS_DB_PORT: %w", err)
	}

	cfg.DBName, err = getEnvRequired("CS_DB_NAME")
	if err != nil {
		return nil, err
	}

	cfg.DBUser, err = getEnvRequired("CS_DB_USER")
	if err != nil {
		return nil, err
	}

	cfg.DBPassword, err = getEnvRequired("CS_DB_PASSWORD")
	if err != nil {
		return nil, err
	}

	cfg.DBSSLMode = getEnvDefault("CS_DB_SSL_MODE", "disable")
	validSSLModes := map[string]bool{
		"disable": true, "require": true, "verify-ca": true, "verify-full": true,
	}
	if !validSSLModes[cfg.DBSSLMode] {
		return nil, fmt.Errorf("CS_DB_SSL_MODE: недопустимое значение %q, допустимые: disable, require, verify-ca, verify-full", cfg.DBSSLMode)
	}

	cfg.DBMaxConns, err = getEnvPositiveInt("CS_DB_MAX_CONNS", 10)
	if err != nil {
		return nil, fmt.Errorf("CS_DB_MAX_CONNS: %w", err)
	}
	cfg.DBMinConns, err = getEnvInt("CS_DB_MIN_CONNS", 0)
	if err != nil {
		return nil, fmt.Errorf("CS_DB_MIN_CONNS: %w", err)
	}
	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		return nil, fmt.Errorf("CS_DB_MIN_CONNS: значение %d вне диапазона 0-%d", cfg.DBMinConns, cfg.DBMaxConns)
	}
	cfg.DBMaxConnLifetime, err = getEnvDurationFallback("CS_DB_MAX_CONN_LIFETIME", time.Hour)
	if err != nil {
		return nil, fmt.Errorf("CS_DB_MAX_CONN_LIFETIME: %w", err)
	}

	// --- Кэши ---

	cfg.CatalogCacheSize, err = getEnvPositiveInt("CS_CATALOG_CACHE_SIZE", 5000)
	if err != nil {
		return nil, fmt.Errorf("CS_CATALOG_CACHE_SIZE: %w", err)
	}

	cfg.CatalogCacheTTL, err = getEnvDurationFallback("CS_CATALOG_CACHE_TTL", 24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("CS_CATALOG_CACHE_TTL: %w", err)
	}

	cfg.SearchCacheSize, err = getEnvPositiveInt("CS_SEARCH_CACHE_SIZE", 1000)
	if err != nil {
		return nil, fmt.Errorf("CS_SEARCH_CACHE_SIZE: %w", err)
	}

	cfg.SearchCacheTTL, err = getEnvDurationFallback("CS_SEARCH_CACHE_TTL", 30*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("CS_SEARCH_CACHE_TTL: %w", err)
	}

	// --- LLM-консультант ---

	cfg.LLMAPIKey = os.Getenv("CS_LLM_API_KEY")
	cfg.LLMBaseURL = getEnvDefault("CS_LLM_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/openai/")
	if _, err := url.ParseRequestURI(cfg.LLMBaseURL); err != nil {
		return nil, fmt.Errorf("CS_LLM_BASE_URL: некорректный URL %q", cfg.LLMBaseURL)
	}
	cfg.LLMModel = getEnvDefault("CS_LLM_MODEL", "gemini-1.5-flash")

	cfg.LLMTimeout, err = getEnvDurationFallback("CS_LLM_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("CS_LLM_TIMEOUT: %w", err)
	}

	cfg.LLMMaxTokens, err = getEnvPositiveInt("CS_LLM_MAX_TOKENS", 600)
	if err != nil {
		return nil, fmt.Errorf("CS_LLM_MAX_TOKENS: %w", err)
	}

	cfg.LLMTemperature, err = getEnvFloat32("CS_LLM_TEMPERATURE", 0.7)
	if err != nil {
		return nil, fmt.Errorf("CS_LLM_TEMPERATURE: %w", err)
	}
	if cfg.LLMTemperature < 0 || cfg.LLMTemperature > 2 {
		return nil, fmt.Errorf("CS_LLM_TEMPERATURE: значение %v вне диапазона 0-2", cfg.LLMTemperature)
	}

	// --- topologymetrics ---

	cfg.DephealthGroup = getEnvDefault("CS_DEPHEALTH_GROUP", "colorsense")

	cfg.DephealthCheckInterval, err = getEnvDurationFallback("CS_DEPHEALTH_CHECK_INTERVAL", 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("CS_DEPHEALTH_CHECK_INTERVAL: %w", err)
	}

	// --- Graceful shutdown ---

	cfg.ShutdownTimeout, err = getEnvDuration("CS_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("CS_SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// IsProduction сообщает, запущен ли сервис в production-окружении.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// LLMEnabled сообщает, настроен ли консультант.
func (c *Config) LLMEnabled() bool {
	return c.LLMAPIKey != ""
}

// DatabaseDSN формирует DSN для pgxpool.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBName, c.DBUser, c.DBPassword, c.DBSSLMode,
	)
}

// DatabaseURL формирует URL PostgreSQL (для golang-migrate и лейблов topologymetrics).
func (c *Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     fmt.Sprintf("%s:%d", c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + c.DBSSLMode,
	}
	return u.String()
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler).With(
		slog.String("service", ServiceName),
		slog.String("env", cfg.Env),
	)
	slog.SetDefault(logger)
	return logger
}

// --- Вспомогательные функции ---

// getEnvRequired возвращает значение переменной окружения или ошибку, если она не задана.
func getEnvRequired(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%s: обязательная переменная окружения не задана", key)
	}
	return val, nil
}

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvList разбирает список через запятую, пустые элементы отбрасываются.
func getEnvList(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}

// getEnvInt возвращает целочисленное значение переменной окружения или значение по умолчанию.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvPositiveInt — как getEnvInt, но значение должно быть > 0.
func getEnvPositiveInt(key string, defaultVal int) (int, error) {
	n, err := getEnvInt(key, defaultVal)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("значение должно быть > 0")
	}
	return n, nil
}

// getEnvFloat32 возвращает дробное значение переменной окружения или значение по умолчанию.
func getEnvFloat32(key string, defaultVal float32) (float32, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	f, err := strconv.ParseFloat(val, 32)
	if err != nil {
		return 0, fmt.Errorf("некорректное число: %q", val)
	}
	return float32(f), nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 15m)", val)
	}
	return d, nil
}

// getEnvDurationFallback возвращает time.Duration из переменной окружения.
// Если переменная не задана, используется fallbackVal.
// Если задана — парсится и валидируется (> 0).
func getEnvDurationFallback(key string, fallbackVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallbackVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 15m)", val)
	}
	if d <= 0 {
		return 0, fmt.Errorf("значение должно быть > 0")
	}
	return d, nil
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}
