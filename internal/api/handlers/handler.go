// handler.go — основной обработчик API colorsense.
// Регистрирует маршруты в chi и делегирует запросы в сервисный слой.
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/colorsense/internal/consultant"
	"github.com/bigkaa/colorsense/internal/domain/model"
	"github.com/bigkaa/colorsense/internal/service"
)

// maxBodySize — максимальный размер тела POST-запроса.
const maxBodySize = 1 << 20

// CatalogService — получение цветов по коду (service.CatalogService).
type CatalogService interface {
	GetColor(ctx context.Context, code string) (*model.Color, error)
	Palette(ctx context.Context, code string) ([]model.Swatch, error)
}

// SearchService — листинг и поиск цветов (service.SearchService).
type SearchService interface {
	List(ctx context.Context, page, limit int) (*service.SearchResult, error)
	Search(ctx context.Context, filters service.SearchFilters, page, limit int) (*service.SearchResult, error)
	Match(ctx context.Context, filters service.SearchFilters) ([]*model.Color, error)
	ByRoom(ctx context.Context, room string) ([]*model.Color, error)
	ByUndertone(ctx context.Context, undertone string) ([]*model.Color, error)
}

// Consultant — AI-консультант (consultant.Service).
type Consultant interface {
	Ask(ctx context.Context, req consultant.Request) (*consultant.Response, error)
}

// APIHandler — основной обработчик API colorsense.
type APIHandler struct {
	catalog      CatalogService
	search       SearchService
	consultant   Consultant
	health       *HealthHandler
	exposeErrors bool
	logger       *slog.Logger
}

// NewAPIHandler создаёт основной обработчик API.
// exposeErrors — отдавать клиенту технические детали ошибок (вне production).
func NewAPIHandler(
	catalog CatalogService,
	search SearchService,
	consultant Consultant,
	health *HealthHandler,
	exposeErrors bool,
	logger *slog.Logger,
) *APIHandler {
	return &APIHandler{
		catalog:      catalog,
		search:       search,
		consultant:   consultant,
		health:       health,
		exposeErrors: exposeErrors,
		logger:       logger.With(slog.String("component", "api_handler")),
	}
}

// Routes регистрирует маршруты API.
func (h *APIHandler) Routes(r chi.Router) {
	r.Get("/health/live", h.health.HealthLive)
	r.Get("/health/ready", h.health.HealthReady)
	r.Get("/metrics", h.health.GetMetrics)

	r.Route("/api", func(r chi.Router) {
		r.Get("/colors", h.listColors)
		r.Get("/colors/search", h.searchColors)
		r.Get("/colors/room/{room}", h.colorsByRoom)
		r.Get("/colors/undertone/{undertone}", h.colorsByUndertone)
		r.Get("/colors/{code}", h.getColor)
		r.Get("/colors/{code}/palette", h.getPalette)

		r.Get("/search-colors", h.legacySearchGet)
		r.Post("/search-colors", h.legacySearchPost)

		r.Post("/query", h.query)
	})
}

// --- Вспомогательные функции ---

// writeJSON записывает JSON-ответ с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// detail возвращает текст ошибки для клиента или пустую строку в production.
func (h *APIHandler) detail(err error) string {
	if err == nil || !h.exposeErrors {
		return ""
	}
	return err.Error()
}

// queryInt разбирает целочисленный query-параметр.
// Отсутствующее или некорректное значение — 0 (далее заменяется значением по умолчанию).
func queryInt(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return v
}

// queryFloat разбирает числовой query-параметр.
// Отсутствующее или некорректное значение — nil (фильтр не применяется).
func queryFloat(r *http.Request, name string) *float64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// nonNil заменяет nil-срез пустым, чтобы в JSON был [] вместо null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
