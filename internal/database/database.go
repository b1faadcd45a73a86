// Пакет database — пул PostgreSQL для каталога цветов, миграции таблицы
// colors и проверка готовности для /health/ready.
package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // pgx5://
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bigkaa/colorsense/internal/config"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// readyTimeout — ограничение на ping в проверке готовности.
const readyTimeout = 3 * time.Second

// PoolConfig собирает настройки pgxpool из конфигурации сервиса.
// Нулевые значения размеров и времени жизни оставляют умолчания pgx.
func PoolConfig(cfg *config.Config) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("разбор DSN: %w", err)
	}
	if cfg.DBMaxConns > 0 {
		poolCfg.MaxConns = int32(cfg.DBMaxConns)
	}
	if cfg.DBMinConns > 0 {
		poolCfg.MinConns = int32(cfg.DBMinConns)
	}
	if cfg.DBMaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.DBMaxConnLifetime
	}
	poolCfg.ConnConfig.RuntimeParams["application_name"] = config.ServiceName
	return poolCfg, nil
}

// Connect открывает пул и проверяет доступность базы.
func Connect(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := PoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("создание пула: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("PostgreSQL недоступен: %w", err)
	}

	logger.Info("Пул PostgreSQL открыт",
		slog.String("host", cfg.DBHost),
		slog.String("database", cfg.DBName),
		slog.Int("max_conns", cfg.DBMaxConns),
		slog.Int("min_conns", cfg.DBMinConns),
	)
	return pool, nil
}

// migrateURL переводит URL базы на схему драйвера pgx5 для golang-migrate.
func migrateURL(cfg *config.Config) string {
	return "pgx5" + strings.TrimPrefix(cfg.DatabaseURL(), "postgres")
}

// Migrate доводит схему каталога до последней версии.
// Повторный запуск без новых миграций ошибкой не считается.
func Migrate(cfg *config.Config, logger *slog.Logger) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("источник миграций: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, migrateURL(cfg))
	if err != nil {
		return fmt.Errorf("инициализация миграций: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("применение миграций: %w", err)
	}

	version, dirty, _ := m.Version()
	logger.Info("Схема каталога актуальна",
		slog.Uint64("version", uint64(version)),
		slog.Bool("dirty", dirty),
	)
	return nil
}

// Pinger — то, что умеет проверить соединение (*pgxpool.Pool).
type Pinger interface {
	Ping(ctx context.Context) error
}

// ReadinessChecker сообщает, доступно ли хранилище каталога.
type ReadinessChecker struct {
	db Pinger
}

// NewReadinessChecker создаёт проверку готовности хранилища.
func NewReadinessChecker(db Pinger) *ReadinessChecker {
	return &ReadinessChecker{db: db}
}

// CheckReady возвращает "ok" или "fail" с пояснением.
func (c *ReadinessChecker) CheckReady() (status, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), readyTimeout)
	defer cancel()

	if err := c.db.Ping(ctx); err != nil {
		return "fail", fmt.Sprintf("каталог недоступен: %v", err)
	}
	return "ok", "каталог доступен"
}
