// Пакет dbtest — запуск PostgreSQL в Docker-контейнере (testcontainers)
// для интеграционных тестов. Тесты пропускаются без TEST_INTEGRATION.
package dbtest

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/bigkaa/colorsense/internal/config"
)

// Start запускает контейнер PostgreSQL и возвращает конфигурацию для подключения к нему.
// Контейнер останавливается через t.Cleanup.
func Start(t *testing.T) *config.Config {
	t.Helper()

	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("Пропуск интеграционного теста: TEST_INTEGRATION не установлена")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"docker.io/postgres:17-alpine",
		postgres.WithDatabase("colorsense_test"),
		postgres.WithUsername("colorsense"),
		postgres.WithPassword("test-password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("Не удалось запустить PostgreSQL контейнер: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Ошибка остановки контейнера: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Не удалось получить host контейнера: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Не удалось получить port контейнера: %v", err)
	}

	t.Setenv("CS_DB_HOST", host)
	t.Setenv("CS_DB_PORT", port.Port())
	t.Setenv("CS_DB_NAME", "colorsense_test")
	t.Setenv("CS_DB_USER", "colorsense")
	t.Setenv("CS_DB_PASSWORD", "test-password")
	t.Setenv("CS_DB_SSL_MODE", "disable")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}
	return cfg
}
