package service

import (
	"strconv"
	"strings"

	"github.com/bigkaa/colorsense/internal/repository"
)

// filterAll — значение в эхо фильтров, когда фильтр не задан.
const filterAll = "all"

// SearchFilters — фильтры поиска цветов из запроса.
// Пустая строка (или строка из пробелов) — фильтр не задан.
type SearchFilters struct {
	Query      string
	Family     string
	Collection string
	Undertone  string
	Style      string
	Room       string
	LRVMin     *float64
	LRVMax     *float64
}

// FilterEcho — применённые фильтры в ответе поиска.
type FilterEcho struct {
	Family     string `json:"family"`
	Collection string `json:"collection"`
	Undertone  string `json:"undertone"`
	Style      string `json:"style"`
	Room       string `json:"room"`
	LRVRange   string `json:"lrvRange"`
}

// normalize обрезает пробелы и схлопывает внутренние пробелы.
func (f SearchFilters) normalize() SearchFilters {
	f.Query = normalizeValue(f.Query)
	f.Family = normalizeValue(f.Family)
	f.Collection = normalizeValue(f.Collection)
	f.Undertone = normalizeValue(f.Undertone)
	f.Style = normalizeValue(f.Style)
	f.Room = normalizeValue(f.Room)
	return f
}

func normalizeValue(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ToRepository преобразует фильтры в параметры выборки репозитория.
// Пустые значения не становятся ограничениями.
func (f SearchFilters) ToRepository() repository.ColorFilter {
	f = f.normalize()
	return repository.ColorFilter{
		Query:      optional(f.Query),
		Family:     optional(f.Family),
		Collection: optional(f.Collection),
		Undertone:  optional(f.Undertone),
		Style:      optional(f.Style),
		Room:       optional(f.Room),
		LRVMin:     f.LRVMin,
		LRVMax:     f.LRVMax,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// CacheKey возвращает канонический ключ кэша поиска.
// Поля идут в фиксированном порядке, значения нормализованы и приведены
// к нижнему регистру, поэтому эквивалентные запросы дают один ключ.
func (f SearchFilters) CacheKey(page, limit int) string {
	f = f.normalize()
	parts := []string{
		"q=" + strings.ToLower(f.Query),
		"family=" + strings.ToLower(f.Family),
		"collection=" + strings.ToLower(f.Collection),
		"undertone=" + strings.ToLower(f.Undertone),
		"style=" + strings.ToLower(f.Style),
		"room=" + strings.ToLower(f.Room),
		"lrvMin=" + formatBound(f.LRVMin),
		"lrvMax=" + formatBound(f.LRVMax),
		"page=" + strconv.Itoa(page),
		"limit=" + strconv.Itoa(limit),
	}
	return strings.Join(parts, "&")
}

// Echo возвращает применённые фильтры; незаданные — "all".
// lrvRange заполняется только при заданных обеих границах.
func (f SearchFilters) Echo() FilterEcho {
	f = f.normalize()
	echo := FilterEcho{
		Family:     orAll(f.Family),
		Collection: orAll(f.Collection),
		Undertone:  orAll(f.Undertone),
		Style:      orAll(f.Style),
		Room:       orAll(f.Room),
		LRVRange:   filterAll,
	}
	if f.LRVMin != nil && f.LRVMax != nil {
		echo.LRVRange = formatBound(f.LRVMin) + "-" + formatBound(f.LRVMax)
	}
	return echo
}

func orAll(s string) string {
	if s == "" {
		return filterAll
	}
	return s
}

func formatBound(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
