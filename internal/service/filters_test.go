package service

import "testing"

func floatPtr(f float64) *float64 { return &f }

func TestSearchFilters_ToRepository_BlankIsUnset(t *testing.T) {
	f := SearchFilters{Query: "  ", Family: "", Room: "\t"}.ToRepository()
	if f.Query != nil || f.Family != nil || f.Room != nil {
		t.Errorf("пустые фильтры должны быть nil: %+v", f)
	}
	if f.Exact {
		t.Error("поиск не должен использовать Exact")
	}
}

func TestSearchFilters_ToRepository(t *testing.T) {
	f := SearchFilters{
		Query:  "  navy   blue ",
		Family: "Blue",
		LRVMin: floatPtr(10),
	}.ToRepository()

	if f.Query == nil || *f.Query != "navy blue" {
		t.Errorf("Query = %v, ожидалось 'navy blue'", f.Query)
	}
	if f.Family == nil || *f.Family != "Blue" {
		t.Errorf("Family = %v, ожидалось Blue", f.Family)
	}
	if f.LRVMin == nil || *f.LRVMin != 10 || f.LRVMax != nil {
		t.Errorf("LRV = %v..%v", f.LRVMin, f.LRVMax)
	}
}

func TestSearchFilters_CacheKey_Canonical(t *testing.T) {
	a := SearchFilters{Query: "Navy", Family: " Blue "}
	b := SearchFilters{Family: "blue", Query: "  NAVY"}
	if a.CacheKey(1, 100) != b.CacheKey(1, 100) {
		t.Errorf("ключи различаются:\n%s\n%s", a.CacheKey(1, 100), b.CacheKey(1, 100))
	}

	if a.CacheKey(1, 100) == a.CacheKey(2, 100) {
		t.Error("ключ должен зависеть от страницы")
	}
	if a.CacheKey(1, 100) == a.CacheKey(1, 10) {
		t.Error("ключ должен зависеть от лимита")
	}

	// Значение не должно «перетекать» в соседнее поле
	c := SearchFilters{Family: "blue"}
	d := SearchFilters{Collection: "blue"}
	if c.CacheKey(1, 10) == d.CacheKey(1, 10) {
		t.Error("одинаковые значения в разных полях дают одинаковый ключ")
	}

	e := SearchFilters{LRVMin: floatPtr(50)}
	g := SearchFilters{LRVMax: floatPtr(50)}
	if e.CacheKey(1, 10) == g.CacheKey(1, 10) {
		t.Error("lrvMin и lrvMax дают одинаковый ключ")
	}
}

func TestSearchFilters_Echo(t *testing.T) {
	echo := SearchFilters{Family: "Blue", LRVMin: floatPtr(20)}.Echo()
	want := FilterEcho{
		Family: "Blue", Collection: "all", Undertone: "all",
		Style: "all", Room: "all", LRVRange: "all",
	}
	if echo != want {
		t.Errorf("Echo() = %+v, ожидалось %+v", echo, want)
	}

	echo = SearchFilters{LRVMin: floatPtr(20), LRVMax: floatPtr(62.5)}.Echo()
	if echo.LRVRange != "20-62.5" {
		t.Errorf("LRVRange = %q, ожидалось 20-62.5", echo.LRVRange)
	}
}
