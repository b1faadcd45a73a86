// colors.go — обработчики каталога: листинг, поиск, цвет по коду, палитра,
// выборки по комнате и подтону.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/bigkaa/colorsense/internal/api/errors"
	"github.com/bigkaa/colorsense/internal/domain/model"
	"github.com/bigkaa/colorsense/internal/service"
)

// pageResponse — ответ листинга.
type pageResponse struct {
	Success    bool               `json:"success"`
	Data       []*model.Color     `json:"data"`
	Pagination service.Pagination `json:"pagination"`
}

// searchResponse — ответ поиска.
type searchResponse struct {
	Success    bool               `json:"success"`
	Data       []*model.Color     `json:"data"`
	Pagination service.Pagination `json:"pagination"`
	Source     string             `json:"source"`
	Filters    service.FilterEcho `json:"filters"`
}

// dataResponse — ответ с произвольными данными.
type dataResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Source  string `json:"source,omitempty"`
}

// listColors — GET /api/colors?page&limit.
func (h *APIHandler) listColors(w http.ResponseWriter, r *http.Request) {
	res, err := h.search.List(r.Context(), queryInt(r, "page"), queryInt(r, "limit"))
	if err != nil {
		if errors.Is(err, service.ErrCatalogEmpty) {
			apierrors.NotFound(w, "No colors found in database", "")
			return
		}
		h.logger.Error("Ошибка листинга цветов", slog.String("error", err.Error()))
		apierrors.EmptyResult(w, "Failed to fetch colors", h.detail(err))
		return
	}

	writeJSON(w, http.StatusOK, pageResponse{
		Success:    true,
		Data:       nonNil(res.Items),
		Pagination: res.Pagination,
	})
}

// searchColors — GET /api/colors/search.
func (h *APIHandler) searchColors(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := service.SearchFilters{
		Query:      q.Get("query"),
		Family:     q.Get("family"),
		Collection: q.Get("collection"),
		Undertone:  q.Get("undertone"),
		Style:      q.Get("style"),
		Room:       q.Get("room"),
		LRVMin:     queryFloat(r, "lrvMin"),
		LRVMax:     queryFloat(r, "lrvMax"),
	}

	res, err := h.search.Search(r.Context(), filters, queryInt(r, "page"), queryInt(r, "limit"))
	if err != nil {
		h.logger.Error("Ошибка поиска цветов", slog.String("error", err.Error()))
		apierrors.EmptyResult(w, "Failed to search colors", h.detail(err))
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Success:    true,
		Data:       nonNil(res.Items),
		Pagination: res.Pagination,
		Source:     res.Source,
		Filters:    res.Filters,
	})
}

// getColor — GET /api/colors/{code}. Неизвестный код — заглушка, не 404.
func (h *APIHandler) getColor(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	c, err := h.catalog.GetColor(r.Context(), code)
	if err != nil {
		h.logger.Error("Ошибка получения цвета",
			slog.String("code", code),
			slog.String("error", err.Error()),
		)
		apierrors.InternalError(w, "Failed to fetch color details", h.detail(err))
		return
	}

	writeJSON(w, http.StatusOK, dataResponse{Success: true, Data: c})
}

// getPalette — GET /api/colors/{code}/palette.
func (h *APIHandler) getPalette(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	swatches, err := h.catalog.Palette(r.Context(), code)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			apierrors.NotFound(w, "Color not found", "")
			return
		}
		h.logger.Error("Ошибка построения палитры",
			slog.String("code", code),
			slog.String("error", err.Error()),
		)
		apierrors.InternalError(w, "Failed to generate color palette", h.detail(err))
		return
	}

	writeJSON(w, http.StatusOK, dataResponse{Success: true, Data: swatches, Source: service.SourceDatabase})
}

// colorsByRoom — GET /api/colors/room/{room}.
func (h *APIHandler) colorsByRoom(w http.ResponseWriter, r *http.Request) {
	colors, err := h.search.ByRoom(r.Context(), chi.URLParam(r, "room"))
	if err != nil {
		h.logger.Error("Ошибка выборки по комнате", slog.String("error", err.Error()))
		apierrors.EmptyResult(w, "Error fetching colors for room", h.detail(err))
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{Success: true, Data: nonNil(colors)})
}

// colorsByUndertone — GET /api/colors/undertone/{undertone}.
func (h *APIHandler) colorsByUndertone(w http.ResponseWriter, r *http.Request) {
	colors, err := h.search.ByUndertone(r.Context(), chi.URLParam(r, "undertone"))
	if err != nil {
		h.logger.Error("Ошибка выборки по подтону", slog.String("error", err.Error()))
		apierrors.EmptyResult(w, "Error fetching colors by undertone", h.detail(err))
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{Success: true, Data: nonNil(colors)})
}
