// colorsense-seed — загрузка каталога цветов из JSON-файла в PostgreSQL.
//
// Подключение к базе настраивается теми же переменными CS_DB_*, что и у API.
// Перед загрузкой применяются миграции. Дубликаты пропускаются.
// Код выхода 1 — если хотя бы одна запись не загружена по причине,
// отличной от дубликата.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bigkaa/colorsense/internal/config"
	"github.com/bigkaa/colorsense/internal/database"
	"github.com/bigkaa/colorsense/internal/repository"
	"github.com/bigkaa/colorsense/internal/seed"
)

var (
	flagFile   string
	flagDryRun bool
)

var rootCmd = &cobra.Command{
	Use:          "colorsense-seed",
	Short:        "Загрузка каталога цветов в PostgreSQL",
	Long:         "colorsense-seed читает JSON-массив записей цветов, валидирует каждую и добавляет в таблицу colors.",
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVarP(&flagFile, "file", "f", "", "путь к JSON-файлу с цветами")
	rootCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "только валидация, без записи в базу")
	_ = rootCmd.MarkFlagRequired("file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}
	logger := config.SetupLogger(cfg)

	f, err := os.Open(flagFile)
	if err != nil {
		return fmt.Errorf("ошибка открытия файла: %w", err)
	}
	defer f.Close()

	colors, err := seed.Decode(f)
	if err != nil {
		return err
	}
	logger.Info("Файл прочитан",
		slog.String("file", flagFile),
		slog.Int("records", len(colors)),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var repo repository.ColorRepository
	if !flagDryRun {
		if err := database.Migrate(cfg, logger); err != nil {
			return err
		}
		pool, err := database.Connect(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer pool.Close()
		repo = repository.NewColorRepository(pool)
	}

	report, err := seed.NewLoader(repo, flagDryRun, logger).Load(ctx, colors)
	if err != nil {
		return err
	}

	for _, fail := range report.Failures {
		logger.Error("Запись не загружена",
			slog.Int("index", fail.Index),
			slog.String("code", fail.Code),
			slog.String("error", fail.Err.Error()),
		)
	}
	if report.Failed() {
		return fmt.Errorf("не загружено записей: %d из %d", len(report.Failures), report.Total)
	}
	return nil
}
