package service

// Параметры пагинации по умолчанию.
const (
	DefaultPage  = 1
	DefaultLimit = 100
)

// Window — окно выборки для одной страницы.
type Window struct {
	// Page — номер страницы (с 1)
	Page int
	// Limit — эффективный размер страницы
	Limit int
	// Skip — количество пропускаемых записей
	Skip int
	// TotalPages — общее количество страниц
	TotalPages int
	// Total — общее количество подходящих записей
	Total int
}

// Paginate вычисляет окно выборки.
//
// page < 1 заменяется на DefaultPage, limit < 1 — на DefaultLimit.
// Если limit >= total, эффективный лимит равен total (одна страница).
// Skip и TotalPages считаются от эффективного лимита. При total == 0
// страниц нет. Для страницы за последней Skip равен total (пустое окно),
// произведение (page-1)*limit при этом не вычисляется.
func Paginate(total, page, limit int) Window {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if total <= 0 {
		return Window{Page: page}
	}

	effective := limit
	if limit >= total {
		effective = total
	}

	totalPages := (total + effective - 1) / effective
	skip := total
	if page <= totalPages {
		skip = (page - 1) * effective
	}

	return Window{
		Page:       page,
		Limit:      effective,
		Skip:       skip,
		TotalPages: totalPages,
		Total:      total,
	}
}

// Empty — страница за пределами результатов (или результатов нет).
func (w Window) Empty() bool {
	return w.Total == 0 || w.Skip >= w.Total
}

// Pagination — метаданные пагинации в ответе API.
type Pagination struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalResults int `json:"totalResults"`
	PerPage      int `json:"perPage"`
}

// Pagination возвращает метаданные для ответа API.
func (w Window) Pagination() Pagination {
	return Pagination{
		CurrentPage:  w.Page,
		TotalPages:   w.TotalPages,
		TotalResults: w.Total,
		PerPage:      w.Limit,
	}
}
