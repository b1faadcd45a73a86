// legacy.go — совместимый с ранними клиентами поиск /api/search-colors.
// Свободный текст по тем же полям, что и /api/colors/search.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	apierrors "github.com/bigkaa/colorsense/internal/api/errors"
	"github.com/bigkaa/colorsense/internal/domain/model"
	"github.com/bigkaa/colorsense/internal/service"
)

// legacyDefaultLimit — размер страницы POST /api/search-colors по умолчанию.
const legacyDefaultLimit = 10

// legacySearchRequest — тело POST /api/search-colors.
type legacySearchRequest struct {
	Query string `json:"query"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}

// legacyColor — цвет в формате ранних клиентов (hex без '#').
type legacyColor struct {
	ColorName      string   `json:"color_name"`
	ColorNumber    string   `json:"color_number"`
	ColorHex       string   `json:"color_hex"`
	Description    string   `json:"description"`
	Family         string   `json:"family"`
	Collection     string   `json:"collection"`
	Undertone      string   `json:"undertone"`
	LRV            float64  `json:"lrv"`
	SuggestedRooms []string `json:"suggestedRooms"`
	Style          string   `json:"style"`
}

// legacySearchResponse — ответ POST /api/search-colors.
type legacySearchResponse struct {
	Success    bool               `json:"success"`
	Colors     []legacyColor      `json:"colors"`
	Pagination service.Pagination `json:"pagination"`
	Source     string             `json:"source"`
}

func toLegacy(c *model.Color) legacyColor {
	return legacyColor{
		ColorName:      c.Name,
		ColorNumber:    c.Code,
		ColorHex:       strings.TrimPrefix(c.Hex, "#"),
		Description:    c.Description,
		Family:         c.Family,
		Collection:     c.Collection,
		Undertone:      c.Undertone,
		LRV:            c.LRV,
		SuggestedRooms: c.SuggestedRooms,
		Style:          c.Style,
	}
}

// legacySearchPost — POST /api/search-colors {query, page, limit}.
// Пустой query — без ограничения: весь каталог постранично.
func (h *APIHandler) legacySearchPost(w http.ResponseWriter, r *http.Request) {
	var req legacySearchRequest
	// Пустое тело равносильно пустому query
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		apierrors.ValidationError(w, "Invalid request body", h.detail(err))
		return
	}
	if req.Limit < 1 {
		req.Limit = legacyDefaultLimit
	}

	res, err := h.search.Search(r.Context(), service.SearchFilters{Query: req.Query}, req.Page, req.Limit)
	if err != nil {
		h.logger.Error("Ошибка поиска цветов", slog.String("error", err.Error()))
		apierrors.EmptyResult(w, "Failed to search colors", h.detail(err))
		return
	}

	colors := make([]legacyColor, len(res.Items))
	for i, c := range res.Items {
		colors[i] = toLegacy(c)
	}

	writeJSON(w, http.StatusOK, legacySearchResponse{
		Success:    true,
		Colors:     colors,
		Pagination: res.Pagination,
		Source:     res.Source,
	})
}

// legacySearchGet — GET /api/search-colors?query. Все совпадения без пагинации,
// при пустом query — весь каталог.
func (h *APIHandler) legacySearchGet(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	colors, err := h.search.Match(r.Context(), service.SearchFilters{Query: query})
	if err != nil {
		h.logger.Error("Ошибка поиска цветов", slog.String("error", err.Error()))
		apierrors.EmptyResult(w, "Failed to search colors", h.detail(err))
		return
	}

	writeJSON(w, http.StatusOK, dataResponse{
		Success: true,
		Data:    nonNil(colors),
		Source:  service.SourceDatabase,
	})
}
