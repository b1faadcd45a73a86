// search.go — сервис листинга и поиска цветов.
// Координирует repository, кэш поиска, пагинацию и Prometheus-метрики.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/colorsense/internal/domain/model"
	"github.com/bigkaa/colorsense/internal/repository"
)

// Источник результата поиска.
const (
	SourceCache    = "cache"
	SourceDatabase = "database"
)

// Prometheus-метрики поиска.
var (
	searchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cs_search_total",
		Help: "Общее количество поисковых запросов.",
	}, []string{"source"})
	searchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cs_search_duration_seconds",
		Help:    "Длительность поисковых запросов к хранилищу.",
		Buckets: prometheus.DefBuckets,
	})
)

// SearchResult — страница цветов с метаданными пагинации.
type SearchResult struct {
	// Items — цвета текущей страницы
	Items []*model.Color
	// Pagination — метаданные пагинации
	Pagination Pagination
	// Source — cache или database
	Source string
	// Filters — применённые фильтры
	Filters FilterEcho
}

// SearchService — листинг и поиск цветов.
type SearchService struct {
	repo   repository.ColorRepository
	cache  *TTLCache[*SearchResult]
	logger *slog.Logger
}

// NewSearchService создаёт сервис поиска.
func NewSearchService(
	repo repository.ColorRepository,
	cache *TTLCache[*SearchResult],
	logger *slog.Logger,
) *SearchService {
	return &SearchService{
		repo:   repo,
		cache:  cache,
		logger: logger.With(slog.String("component", "search_service")),
	}
}

// List возвращает страницу всего каталога. Результат не кэшируется.
// Пустое хранилище — ErrCatalogEmpty.
func (s *SearchService) List(ctx context.Context, page, limit int) (*SearchResult, error) {
	items, window, err := s.fetch(ctx, repository.ColorFilter{}, page, limit)
	if err != nil {
		return nil, fmt.Errorf("листинг цветов: %w", err)
	}
	if window.Total == 0 {
		return nil, ErrCatalogEmpty
	}

	return &SearchResult{
		Items:      items,
		Pagination: window.Pagination(),
		Source:     SourceDatabase,
	}, nil
}

// Search выполняет поиск по фильтрам с пагинацией.
// Результат кэшируется по каноническому ключу фильтров, страницы и лимита.
// При попадании в кэш Source = cache. Запись в хранилище кэш не сбрасывает:
// новые цвета появятся в поиске после истечения TTL.
func (s *SearchService) Search(ctx context.Context, filters SearchFilters, page, limit int) (*SearchResult, error) {
	key := filters.CacheKey(page, limit)

	if cached, ok := s.cache.Get(key); ok {
		searchTotal.WithLabelValues(SourceCache).Inc()
		s.logger.Debug("Кэш hit для поиска", slog.String("key", key))
		res := *cached
		res.Source = SourceCache
		return &res, nil
	}
	searchTotal.WithLabelValues(SourceDatabase).Inc()

	items, window, err := s.fetch(ctx, filters.ToRepository(), page, limit)
	if err != nil {
		return nil, fmt.Errorf("поиск цветов: %w", err)
	}

	res := &SearchResult{
		Items:      items,
		Pagination: window.Pagination(),
		Source:     SourceDatabase,
		Filters:    filters.Echo(),
	}
	s.cache.Set(key, res)

	return res, nil
}

// fetch считает совпадения и загружает страницу.
func (s *SearchService) fetch(ctx context.Context, filter repository.ColorFilter, page, limit int) ([]*model.Color, Window, error) {
	start := time.Now()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, Window{}, err
	}

	window := Paginate(total, page, limit)
	items := []*model.Color{}
	if !window.Empty() {
		items, err = s.repo.Find(ctx, filter, window.Skip, window.Limit)
		if err != nil {
			return nil, Window{}, err
		}
	}

	duration := time.Since(start)
	searchDuration.Observe(duration.Seconds())

	s.logger.Debug("Поиск выполнен",
		slog.Int("total", total),
		slog.Int("returned", len(items)),
		slog.Duration("duration", duration),
	)

	return items, window, nil
}

// Match возвращает все цвета по фильтрам, без пагинации и кэша.
func (s *SearchService) Match(ctx context.Context, filters SearchFilters) ([]*model.Color, error) {
	filter := filters.ToRepository()
	filter.SortBy = "name"
	items, err := s.repo.Find(ctx, filter, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("поиск цветов: %w", err)
	}
	return items, nil
}

// ByRoom возвращает цвета, рекомендованные для комнаты
// (точное совпадение элемента без учёта регистра).
func (s *SearchService) ByRoom(ctx context.Context, room string) ([]*model.Color, error) {
	room = normalizeValue(room)
	items, err := s.repo.Find(ctx, repository.ColorFilter{Room: optional(room), Exact: true, SortBy: "name"}, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("цвета для комнаты %s: %w", room, err)
	}
	return items, nil
}

// ByUndertone возвращает цвета с заданным подтоном (без учёта регистра).
func (s *SearchService) ByUndertone(ctx context.Context, undertone string) ([]*model.Color, error) {
	undertone = normalizeValue(undertone)
	items, err := s.repo.Find(ctx, repository.ColorFilter{Undertone: optional(undertone), Exact: true, SortBy: "name"}, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("цвета с подтоном %s: %w", undertone, err)
	}
	return items, nil
}
