// Пакет service — бизнес-логика colorsense.
// TTLCache — ограниченный LRU-кэш с TTL.
// Обёртка над hashicorp/golang-lru/v2/expirable.
package service

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus-метрики кэшей (лейбл cache — имя кэша).
var (
	cacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cs_cache_hits_total",
		Help: "Общее количество попаданий в кэш.",
	}, []string{"cache"})
	cacheMissesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cs_cache_misses_total",
		Help: "Общее количество промахов кэша (включая устаревшие записи).",
	}, []string{"cache"})
)

// Имена кэшей для метрик.
const (
	CatalogCacheName = "catalog"
	SearchCacheName  = "search"
)

// TTLCache — LRU-кэш с ограничением размера и временем жизни записи.
// Запись, старше ttl, считается промахом. При переполнении вытесняется
// наименее используемая запись. Безопасен для конкурентного доступа.
type TTLCache[V any] struct {
	cache  *expirable.LRU[string, V]
	hits   prometheus.Counter
	misses prometheus.Counter
}

// NewTTLCache создаёт кэш.
// name — имя для метрик, maxSize — максимальное количество записей,
// ttl — время жизни записи после добавления.
func NewTTLCache[V any](name string, maxSize int, ttl time.Duration) *TTLCache[V] {
	return &TTLCache[V]{
		cache:  expirable.NewLRU[string, V](maxSize, nil, ttl),
		hits:   cacheHitsTotal.WithLabelValues(name),
		misses: cacheMissesTotal.WithLabelValues(name),
	}
}

// Get возвращает значение по ключу.
// Возвращает (значение, true) при hit или (нулевое значение, false) при miss.
func (c *TTLCache[V]) Get(key string) (V, bool) {
	val, ok := c.cache.Get(key)
	if ok {
		c.hits.Inc()
		return val, true
	}
	c.misses.Inc()
	return val, false
}

// Set добавляет или заменяет запись; время жизни отсчитывается заново.
func (c *TTLCache[V]) Set(key string, val V) {
	c.cache.Add(key, val)
}

// Delete удаляет запись.
func (c *TTLCache[V]) Delete(key string) {
	c.cache.Remove(key)
}

// Len возвращает текущее количество записей (включая ещё не вычищенные устаревшие).
func (c *TTLCache[V]) Len() int {
	return c.cache.Len()
}
