// catalog.go — каталог цветов по коду.
// Координирует repository, TTL-кэш каталога и singleflight.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/bigkaa/colorsense/internal/domain/model"
	"github.com/bigkaa/colorsense/internal/domain/palette"
	"github.com/bigkaa/colorsense/internal/repository"
)

// Ошибки сервисного слоя.
var (
	// ErrNotFound — цвет не найден ни в кэше, ни в хранилище.
	ErrNotFound = errors.New("цвет не найден")
	// ErrCatalogEmpty — в хранилище нет ни одного цвета.
	ErrCatalogEmpty = errors.New("каталог пуст")
)

// CatalogService — получение цветов по коду через кэш каталога.
type CatalogService struct {
	repo   repository.ColorRepository
	cache  *TTLCache[*model.Color]
	group  singleflight.Group
	logger *slog.Logger
}

// NewCatalogService создаёт сервис каталога.
func NewCatalogService(
	repo repository.ColorRepository,
	cache *TTLCache[*model.Color],
	logger *slog.Logger,
) *CatalogService {
	return &CatalogService{
		repo:   repo,
		cache:  cache,
		logger: logger.With(slog.String("component", "catalog_service")),
	}
}

// Warm загружает весь каталог в кэш. Возвращает количество загруженных цветов.
// Ошибка не фатальна: вызывающий логирует её и продолжает работу,
// кэш заполнится при обращениях.
func (s *CatalogService) Warm(ctx context.Context) (int, error) {
	start := time.Now()

	colors, err := s.repo.Find(ctx, repository.ColorFilter{}, 0, 0)
	if err != nil {
		return 0, fmt.Errorf("прогрев кэша каталога: %w", err)
	}
	for _, c := range colors {
		s.cache.Set(c.Code, c)
	}

	s.logger.Info("Кэш каталога прогрет",
		slog.Int("colors", len(colors)),
		slog.Duration("duration", time.Since(start)),
	)
	return len(colors), nil
}

// lookupTimeout — ограничение на общий запрос к хранилищу при промахе кэша.
const lookupTimeout = 10 * time.Second

// Lookup возвращает цвет по коду: сначала кэш, при промахе — хранилище.
// Найденный цвет кэшируется. Одновременные промахи по одному коду
// выполняют один запрос к хранилищу. Если цвета нет — ErrNotFound.
//
// Общий запрос не зависит от отмены контекста первого вызывающего:
// каждый вызывающий прекращает ожидание только по своему ctx.
func (s *CatalogService) Lookup(ctx context.Context, code string) (*model.Color, error) {
	if c, ok := s.cache.Get(code); ok {
		return c, nil
	}

	ch := s.group.DoChan(code, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), lookupTimeout)
		defer cancel()

		c, err := s.repo.GetByCode(loadCtx, code)
		if err != nil {
			return nil, err
		}
		s.cache.Set(code, c)
		return c, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			if errors.Is(res.Err, repository.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("получение цвета %s: %w", code, res.Err)
		}
		return res.Val.(*model.Color), nil
	}
}

// GetColor возвращает цвет по коду. Если цвета нет, возвращает
// заглушку (model.NewPlaceholder), которая в кэш не попадает.
func (s *CatalogService) GetColor(ctx context.Context, code string) (*model.Color, error) {
	c, err := s.Lookup(ctx, code)
	if errors.Is(err, ErrNotFound) {
		s.logger.Debug("Цвет не найден, возвращаем заглушку", slog.String("code", code))
		return model.NewPlaceholder(code), nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Palette строит палитру для цвета с кодом code.
// Заглушка не используется: если цвета нет — ErrNotFound.
func (s *CatalogService) Palette(ctx context.Context, code string) ([]model.Swatch, error) {
	c, err := s.Lookup(ctx, code)
	if err != nil {
		return nil, err
	}
	return palette.Generate(c), nil
}
