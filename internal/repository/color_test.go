package repository

import (
	"strings"
	"testing"
)

func strPtr(s string) *string { return &s }
func floatPtr(f float64) *float64 { return &f }

// --- Тесты buildColorWhere ---

// TestBuildColorWhere_Empty проверяет, что без фильтров выбираются все записи.
func TestBuildColorWhere_Empty(t *testing.T) {
	where, args := buildColorWhere(ColorFilter{}, 1)

	if where != "" {
		t.Errorf("where = %q, ожидалась пустая строка", where)
	}
	if len(args) != 0 {
		t.Errorf("args count = %d, ожидался 0", len(args))
	}
}

// TestBuildColorWhere_EmptyStrings проверяет, что пустые строки не создают условий.
func TestBuildColorWhere_EmptyStrings(t *testing.T) {
	empty := ""
	where, args := buildColorWhere(ColorFilter{
		Query: &empty, Family: &empty, Collection: &empty, Undertone: &empty, Style: &empty, Room: &empty,
	}, 1)

	if where != "" || len(args) != 0 {
		t.Errorf("where = %q, args = %v; ожидалось отсутствие условий", where, args)
	}
}

// TestBuildColorWhere_Query проверяет ИЛИ-группу свободного текста с одним параметром.
func TestBuildColorWhere_Query(t *testing.T) {
	where, args := buildColorWhere(ColorFilter{Query: strPtr("sky")}, 1)

	for _, col := range textSearchColumns {
		if !strings.Contains(where, col+" ILIKE $1") {
			t.Errorf("where = %q, ожидалось %s ILIKE $1", where, col)
		}
	}
	if strings.Count(where, " OR ") != len(textSearchColumns)-1 {
		t.Errorf("where = %q, ожидалось %d OR", where, len(textSearchColumns)-1)
	}
	if len(args) != 1 || args[0] != "%sky%" {
		t.Errorf("args = %v, ожидался ['%%sky%%']", args)
	}
}

// TestBuildColorWhere_FamilyAndQuery проверяет композицию: семья AND (ИЛИ-группа).
func TestBuildColorWhere_FamilyAndQuery(t *testing.T) {
	where, args := buildColorWhere(ColorFilter{
		Query:  strPtr("sky"),
		Family: strPtr("Blue"),
	}, 1)

	if !strings.HasPrefix(where, "WHERE (") {
		t.Errorf("where = %q, ожидалась ИЛИ-группа в скобках первой", where)
	}
	if !strings.Contains(where, ") AND family ILIKE $2") {
		t.Errorf("where = %q, ожидалось ') AND family ILIKE $2'", where)
	}
	if len(args) != 2 || args[1] != "%Blue%" {
		t.Errorf("args = %v", args)
	}
}

// TestBuildColorWhere_Exact проверяет режим точного совпадения категорий и комнаты.
func TestBuildColorWhere_Exact(t *testing.T) {
	where, args := buildColorWhere(ColorFilter{
		Undertone: strPtr("warm"),
		Room:      strPtr("kitchen"),
		Exact:     true,
	}, 1)

	if !strings.Contains(where, "LOWER(undertone) = LOWER($1)") {
		t.Errorf("where = %q, ожидалось LOWER(undertone) = LOWER($1)", where)
	}
	if !strings.Contains(where, "LOWER(room) = LOWER($2)") {
		t.Errorf("where = %q, ожидалось LOWER(room) = LOWER($2)", where)
	}
	if args[0] != "warm" || args[1] != "kitchen" {
		t.Errorf("args = %v, ожидались значения без %%", args)
	}
}

// TestBuildColorWhere_Room проверяет поиск по элементам массива комнат.
func TestBuildColorWhere_Room(t *testing.T) {
	where, args := buildColorWhere(ColorFilter{Room: strPtr("bed")}, 3)

	if !strings.Contains(where, "unnest(suggested_rooms)") || !strings.Contains(where, "room ILIKE $3") {
		t.Errorf("where = %q", where)
	}
	if args[0] != "%bed%" {
		t.Errorf("args[0] = %v", args[0])
	}
}

// TestBuildColorWhere_LRVRange проверяет включительные границы, в том числе по отдельности.
func TestBuildColorWhere_LRVRange(t *testing.T) {
	where, args := buildColorWhere(ColorFilter{LRVMin: floatPtr(50), LRVMax: floatPtr(80)}, 1)
	if !strings.Contains(where, "lrv >= $1") || !strings.Contains(where, "lrv <= $2") {
		t.Errorf("where = %q", where)
	}
	if args[0] != 50.0 || args[1] != 80.0 {
		t.Errorf("args = %v", args)
	}

	where, args = buildColorWhere(ColorFilter{LRVMax: floatPtr(10)}, 1)
	if where != "WHERE lrv <= $1" || len(args) != 1 {
		t.Errorf("where = %q, args = %v", where, args)
	}
}

// TestBuildColorWhere_AllFilters проверяет нумерацию параметров при всех фильтрах.
func TestBuildColorWhere_AllFilters(t *testing.T) {
	where, args := buildColorWhere(ColorFilter{
		Query:      strPtr("q"),
		Family:     strPtr("f"),
		Collection: strPtr("c"),
		Undertone:  strPtr("u"),
		Style:      strPtr("s"),
		Room:       strPtr("r"),
		LRVMin:     floatPtr(1),
		LRVMax:     floatPtr(2),
	}, 1)

	if len(args) != 8 {
		t.Fatalf("args count = %d, ожидалось 8", len(args))
	}
	if strings.Count(where, " AND ") != 7 {
		t.Errorf("where = %q, ожидалось 7 AND", where)
	}
	if !strings.Contains(where, "lrv <= $8") {
		t.Errorf("where = %q, ожидалось lrv <= $8", where)
	}
}

func TestContainsPattern_EscapesLikeMetacharacters(t *testing.T) {
	cases := map[string]string{
		"navy":     "%navy%",
		"50%":      `%50\%%`,
		"hc_154":   `%hc\_154%`,
		`back\sla`: `%back\\sla%`,
	}
	for in, want := range cases {
		if got := containsPattern(in); got != want {
			t.Errorf("containsPattern(%q) = %q, ожидался %q", in, got, want)
		}
	}
}

// --- Тесты buildOrderBy ---

func TestBuildOrderBy(t *testing.T) {
	cases := []struct {
		sortBy, order, want string
	}{
		{"", "", "ORDER BY created_at ASC, code ASC"},
		{"name", "desc", "ORDER BY name DESC, code ASC"},
		{"lrv", "ASC", "ORDER BY lrv ASC, code ASC"},
		{"code", "desc", "ORDER BY code DESC"},
		{"name; DROP TABLE colors", "", "ORDER BY created_at ASC, code ASC"},
	}
	for _, tc := range cases {
		if got := buildOrderBy(tc.sortBy, tc.order); got != tc.want {
			t.Errorf("buildOrderBy(%q, %q) = %q, ожидался %q", tc.sortBy, tc.order, got, tc.want)
		}
	}
}
