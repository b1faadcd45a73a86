package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/colorsense/internal/domain/model"
)

// colorColumns — список столбцов таблицы colors для SELECT-запросов.
const colorColumns = `code, name, hex, family, collection, undertone, style, lighting,
	lrv, description, suggested_rooms, complementary_colors, is_trending, year_introduced,
	created_at, updated_at`

// textSearchColumns — поля, по которым ищет свободный текст (логическое ИЛИ).
var textSearchColumns = []string{"name", "code", "family", "collection", "undertone", "description", "style"}

// ColorFilter — параметры выборки цветов.
// Все фильтры — указатели, nil = фильтр не применяется.
type ColorFilter struct {
	// Query — подстрока в любом из textSearchColumns
	Query *string
	// Family, Collection, Undertone, Style — подстрока (или точное значение при Exact)
	Family     *string
	Collection *string
	Undertone  *string
	Style      *string
	// Room — подстрока (или точное значение при Exact) в любом элементе suggested_rooms
	Room *string
	// LRVMin, LRVMax — включительные границы lrv
	LRVMin *float64
	LRVMax *float64
	// Exact — сравнивать категории и комнату на равенство без учёта регистра
	Exact bool
	// SortBy — поле сортировки: name, code, lrv, created_at (по умолчанию)
	SortBy string
	// SortOrder — направление: asc (по умолчанию), desc
	SortOrder string
}

// ColorRepository — доступ к таблице colors.
type ColorRepository interface {
	// GetByCode возвращает цвет по коду или ErrNotFound.
	GetByCode(ctx context.Context, code string) (*model.Color, error)
	// Find возвращает цвета по фильтру; limit <= 0 — без ограничения.
	Find(ctx context.Context, filter ColorFilter, offset, limit int) ([]*model.Color, error)
	// Count возвращает количество цветов, подходящих под фильтр.
	Count(ctx context.Context, filter ColorFilter) (int, error)
	// Create добавляет цвет. Дубликат code или name — ErrDuplicate.
	Create(ctx context.Context, c *model.Color) (*model.Color, error)
}

// colorRepo — реализация ColorRepository через pgx.
type colorRepo struct {
	db DBTX
}

// NewColorRepository создаёт репозиторий цветов.
func NewColorRepository(db DBTX) ColorRepository {
	return &colorRepo{db: db}
}

// scanner — общий интерфейс pgx.Row и pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanColor(s scanner) (*model.Color, error) {
	c := &model.Color{}
	err := s.Scan(
		&c.Code, &c.Name, &c.Hex, &c.Family, &c.Collection, &c.Undertone, &c.Style, &c.Lighting,
		&c.LRV, &c.Description, &c.SuggestedRooms, &c.ComplementaryColors, &c.IsTrending, &c.YearIntroduced,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetByCode возвращает цвет по коду или ErrNotFound.
func (r *colorRepo) GetByCode(ctx context.Context, code string) (*model.Color, error) {
	query := fmt.Sprintf(`SELECT %s FROM colors WHERE code = $1`, colorColumns)

	c, err := scanColor(r.db.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения цвета: %w", err)
	}
	return c, nil
}

// Find выполняет выборку с динамическими фильтрами, сортировкой и пагинацией.
func (r *colorRepo) Find(ctx context.Context, filter ColorFilter, offset, limit int) ([]*model.Color, error) {
	where, args := buildColorWhere(filter, 1)
	argNum := len(args) + 1

	query := fmt.Sprintf(`SELECT %s FROM colors %s %s`,
		colorColumns, where, buildOrderBy(filter.SortBy, filter.SortOrder))
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argNum)
		args = append(args, limit)
		argNum++
	}
	if offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argNum)
		args = append(args, offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки цветов: %w", err)
	}
	defer rows.Close()

	result := make([]*model.Color, 0)
	for rows.Next() {
		c, err := scanColor(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования цвета: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации результатов: %w", err)
	}

	return result, nil
}

// Count возвращает количество цветов под фильтр (без LIMIT/OFFSET).
func (r *colorRepo) Count(ctx context.Context, filter ColorFilter) (int, error) {
	where, args := buildColorWhere(filter, 1)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM colors %s`, where)

	var total int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта цветов: %w", err)
	}
	return total, nil
}

// Create добавляет цвет и возвращает его с проставленными created_at/updated_at.
func (r *colorRepo) Create(ctx context.Context, c *model.Color) (*model.Color, error) {
	query := `
		INSERT INTO colors (code, name, hex, family, collection, undertone, style, lighting,
			lrv, description, suggested_rooms, complementary_colors, is_trending, year_introduced)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at, updated_at`

	created := *c
	err := r.db.QueryRow(ctx, query,
		c.Code, c.Name, c.Hex, c.Family, c.Collection, c.Undertone, c.Style, c.Lighting,
		c.LRV, c.Description, c.SuggestedRooms, c.ComplementaryColors, c.IsTrending, c.YearIntroduced,
	).Scan(&created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		if constraint, ok := isUniqueViolation(err); ok {
			return nil, fmt.Errorf("цвет %s (%s): %w", c.Code, constraint, ErrDuplicate)
		}
		return nil, fmt.Errorf("ошибка создания цвета: %w", err)
	}
	return &created, nil
}

// buildColorWhere строит WHERE-условие и аргументы для выборки цветов.
// startArg — номер первого $-параметра (для корректной нумерации).
// Все условия объединяются через AND; свободный текст — одна ИЛИ-группа.
func buildColorWhere(f ColorFilter, startArg int) (whereClause string, args []any) {
	var conditions []string
	argNum := startArg

	// Свободный текст: один параметр на всю ИЛИ-группу
	if f.Query != nil && *f.Query != "" {
		ors := make([]string, 0, len(textSearchColumns))
		for _, col := range textSearchColumns {
			ors = append(ors, fmt.Sprintf("%s ILIKE $%d", col, argNum))
		}
		conditions = append(conditions, "("+strings.Join(ors, " OR ")+")")
		args = append(args, containsPattern(*f.Query))
		argNum++
	}

	// Категории: подстрока или точное значение
	for _, field := range []struct {
		column string
		value  *string
	}{
		{"family", f.Family},
		{"collection", f.Collection},
		{"undertone", f.Undertone},
		{"style", f.Style},
	} {
		if field.value == nil || *field.value == "" {
			continue
		}
		if f.Exact {
			conditions = append(conditions, fmt.Sprintf("LOWER(%s) = LOWER($%d)", field.column, argNum))
			args = append(args, *field.value)
		} else {
			conditions = append(conditions, fmt.Sprintf("%s ILIKE $%d", field.column, argNum))
			args = append(args, containsPattern(*field.value))
		}
		argNum++
	}

	// Комната: совпадение с любым элементом массива suggested_rooms
	if f.Room != nil && *f.Room != "" {
		if f.Exact {
			conditions = append(conditions, fmt.Sprintf(
				"EXISTS (SELECT 1 FROM unnest(suggested_rooms) AS room WHERE LOWER(room) = LOWER($%d))", argNum))
			args = append(args, *f.Room)
		} else {
			conditions = append(conditions, fmt.Sprintf(
				"EXISTS (SELECT 1 FROM unnest(suggested_rooms) AS room WHERE room ILIKE $%d)", argNum))
			args = append(args, containsPattern(*f.Room))
		}
		argNum++
	}

	if f.LRVMin != nil {
		conditions = append(conditions, fmt.Sprintf("lrv >= $%d", argNum))
		args = append(args, *f.LRVMin)
		argNum++
	}

	if f.LRVMax != nil {
		conditions = append(conditions, fmt.Sprintf("lrv <= $%d", argNum))
		args = append(args, *f.LRVMax)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}
	return where, args
}

// likeEscaper экранирует метасимволы LIKE: ввод сравнивается как буквальная подстрока.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

const defaultSortColumn = "created_at"

// buildOrderBy строит ORDER BY с безопасным whitelist полей.
// code добавляется вторым ключом, чтобы страницы не перекрывались.
func buildOrderBy(sortBy, sortOrder string) string {
	column := defaultSortColumn
	switch sortBy {
	case "name", "code", "lrv":
		column = sortBy
	}

	direction := "ASC"
	if strings.EqualFold(sortOrder, "desc") {
		direction = "DESC"
	}

	if column == "code" {
		return fmt.Sprintf("ORDER BY code %s", direction)
	}
	return fmt.Sprintf("ORDER BY %s %s, code ASC", column, direction)
}
