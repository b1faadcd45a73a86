// Пакет seed — загрузка каталога цветов из JSON-файла в хранилище.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/bigkaa/colorsense/internal/domain/model"
	"github.com/bigkaa/colorsense/internal/repository"
)

// Failure — запись, которую не удалось загрузить.
type Failure struct {
	Index int
	Code  string
	Err   error
}

// Report — итог загрузки.
type Report struct {
	Total      int
	Created    int
	Duplicates int
	Failures   []Failure
}

// Failed — были ли ошибки, кроме дубликатов.
func (r Report) Failed() bool {
	return len(r.Failures) > 0
}

// Decode читает JSON-массив цветов.
func Decode(r io.Reader) ([]*model.Color, error) {
	var colors []*model.Color
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&colors); err != nil {
		return nil, fmt.Errorf("разбор JSON: %w", err)
	}
	return colors, nil
}

// Loader — загрузчик каталога.
type Loader struct {
	repo   repository.ColorRepository
	dryRun bool
	logger *slog.Logger
}

// NewLoader создаёт загрузчик. dryRun — только валидация, без записи.
func NewLoader(repo repository.ColorRepository, dryRun bool, logger *slog.Logger) *Loader {
	return &Loader{
		repo:   repo,
		dryRun: dryRun,
		logger: logger.With(slog.String("component", "seed")),
	}
}

// Load валидирует и добавляет цвета по одному.
// Дубликаты (code или name) пропускаются и считаются отдельно.
// Ошибка хранилища, кроме дубликата, прерывает загрузку.
func (l *Loader) Load(ctx context.Context, colors []*model.Color) (Report, error) {
	report := Report{Total: len(colors)}

	for i, c := range colors {
		if c == nil {
			report.Failures = append(report.Failures, Failure{Index: i, Err: errors.New("пустая запись")})
			continue
		}
		if err := c.Validate(); err != nil {
			report.Failures = append(report.Failures, Failure{Index: i, Code: c.Code, Err: err})
			l.logger.Warn("Некорректная запись",
				slog.Int("index", i),
				slog.String("code", c.Code),
				slog.String("error", err.Error()),
			)
			continue
		}
		if l.dryRun {
			continue
		}

		if _, err := l.repo.Create(ctx, c); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				report.Duplicates++
				l.logger.Debug("Дубликат пропущен", slog.String("code", c.Code))
				continue
			}
			return report, fmt.Errorf("запись %d (%s): %w", i, c.Code, err)
		}
		report.Created++
	}

	l.logger.Info("Загрузка завершена",
		slog.Int("total", report.Total),
		slog.Int("created", report.Created),
		slog.Int("duplicates", report.Duplicates),
		slog.Int("failed", len(report.Failures)),
		slog.Bool("dry_run", l.dryRun),
	)
	return report, nil
}
