package service

import (
	"testing"
	"time"

	"github.com/bigkaa/colorsense/internal/domain/model"
)

// TestTTLCache_GetSet проверяет базовые операции Get/Set.
func TestTTLCache_GetSet(t *testing.T) {
	cache := NewTTLCache[*model.Color]("test", 100, 5*time.Minute)

	if _, ok := cache.Get("HC-154"); ok {
		t.Fatal("ожидался cache miss для нового ключа")
	}

	cache.Set("HC-154", &model.Color{Code: "HC-154", Name: "Hale Navy"})
	got, ok := cache.Get("HC-154")
	if !ok {
		t.Fatal("ожидался cache hit после Set")
	}
	if got.Name != "Hale Navy" {
		t.Errorf("Name = %q, ожидался %q", got.Name, "Hale Navy")
	}
}

// TestTTLCache_Delete проверяет удаление из кэша.
func TestTTLCache_Delete(t *testing.T) {
	cache := NewTTLCache[string]("test", 100, 5*time.Minute)

	cache.Set("k", "v")
	cache.Delete("k")

	if _, ok := cache.Get("k"); ok {
		t.Fatal("ожидался cache miss после Delete")
	}
}

// TestTTLCache_TTLExpiration проверяет автоматическое истечение TTL.
func TestTTLCache_TTLExpiration(t *testing.T) {
	cache := NewTTLCache[string]("test", 100, 50*time.Millisecond)

	cache.Set("k", "v")
	if _, ok := cache.Get("k"); !ok {
		t.Fatal("ожидался cache hit сразу после Set")
	}

	time.Sleep(100 * time.Millisecond)

	if _, ok := cache.Get("k"); ok {
		t.Fatal("ожидался cache miss после истечения TTL")
	}
}

// TestTTLCache_Eviction проверяет вытеснение при превышении maxSize.
func TestTTLCache_Eviction(t *testing.T) {
	cache := NewTTLCache[string]("test", 2, 5*time.Minute)

	cache.Set("r1", "1")
	cache.Set("r2", "2")
	cache.Get("r1") // r2 становится наименее используемой

	cache.Set("r3", "3")

	if cache.Len() != 2 {
		t.Errorf("Len = %d, ожидалось 2", cache.Len())
	}
	if _, ok := cache.Get("r2"); ok {
		t.Error("ожидалось вытеснение r2")
	}
	if _, ok := cache.Get("r1"); !ok {
		t.Error("ожидался cache hit для r1")
	}
	if _, ok := cache.Get("r3"); !ok {
		t.Error("ожидался cache hit для r3")
	}
}

// TestTTLCache_Replace проверяет замену записи.
func TestTTLCache_Replace(t *testing.T) {
	cache := NewTTLCache[string]("test", 100, 5*time.Minute)

	cache.Set("k", "old")
	cache.Set("k", "new")

	got, ok := cache.Get("k")
	if !ok || got != "new" {
		t.Errorf("Get = %q, %v; ожидалось new", got, ok)
	}
}
