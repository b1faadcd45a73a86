// Пакет consultant — AI-консультант по подбору цветов.
// Собирает промпт из каталога и истории диалога, обращается к LLM
// и разбирает ответ на рекомендации и советы.
package consultant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/colorsense/internal/domain/model"
	"github.com/bigkaa/colorsense/internal/repository"
)

// fallbackHex — hex для рекомендации, цвет которой не удалось определить.
const fallbackHex = "#FFFFFF"

// Prometheus-метрики консультанта.
var (
	consultTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cs_consultant_requests_total",
		Help: "Общее количество запросов к консультанту.",
	}, []string{"result"})
	consultDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cs_consultant_duration_seconds",
		Help:    "Длительность запросов к LLM.",
		Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30},
	})
)

// ColorResolver — получение цвета по коду (с заглушкой для неизвестных кодов).
// Реализуется service.CatalogService.
type ColorResolver interface {
	GetColor(ctx context.Context, code string) (*model.Color, error)
}

// Request — запрос к консультанту.
type Request struct {
	Message             string `json:"message"`
	ConversationHistory []Turn `json:"conversationHistory"`
}

// Response — ответ консультанта.
type Response struct {
	Response        string           `json:"response"`
	Recommendations []Recommendation `json:"recommendations"`
	Suggestions     []string         `json:"suggestions"`
}

// Service — консультант.
type Service struct {
	llm      LLM
	colors   repository.ColorRepository
	resolver ColorResolver
	logger   *slog.Logger
}

// NewService создаёт консультанта. llm == nil — консультант не настроен,
// Ask возвращает ErrNotConfigured.
func NewService(llm LLM, colors repository.ColorRepository, resolver ColorResolver, logger *slog.Logger) *Service {
	return &Service{
		llm:      llm,
		colors:   colors,
		resolver: resolver,
		logger:   logger.With(slog.String("component", "consultant")),
	}
}

// Ask отвечает на сообщение пользователя.
// Пустое сообщение — ошибка валидации, вызывающий проверяет его до вызова.
func (s *Service) Ask(ctx context.Context, req Request) (*Response, error) {
	if s.llm == nil {
		consultTotal.WithLabelValues("not_configured").Inc()
		return nil, ErrNotConfigured
	}
	start := time.Now()

	s.logger.Info("Запрос к консультанту",
		slog.Int("message_length", len(req.Message)),
		slog.Int("history_length", len(req.ConversationHistory)),
	)

	// Каталог — контекст, а не обязательная часть: при ошибке хранилища
	// консультант отвечает без него.
	colors, err := s.colors.Find(ctx, repository.ColorFilter{SortBy: "name"}, 0, 0)
	if err != nil {
		s.logger.Warn("Каталог недоступен, запрос без контекста цветов",
			slog.String("error", err.Error()),
		)
		colors = nil
	}

	messages, err := buildMessages(strings.TrimSpace(req.Message), req.ConversationHistory, colors)
	if err != nil {
		consultTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("сборка промпта: %w", err)
	}

	text, err := s.llm.Complete(ctx, messages)
	consultDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		consultTotal.WithLabelValues(resultLabel(err)).Inc()
		s.logger.Error("Ошибка консультанта",
			slog.String("error", err.Error()),
			slog.Duration("duration", time.Since(start)),
		)
		return nil, err
	}

	recs, suggestions := parseResponse(text)
	for i := range recs {
		if !model.IsValidHex(recs[i].Hex) {
			recs[i].Hex = s.resolveHex(ctx, recs[i].Code)
		}
	}

	consultTotal.WithLabelValues("ok").Inc()
	s.logger.Info("Консультация завершена",
		slog.Duration("duration", time.Since(start)),
		slog.Int("length", len(text)),
		slog.Int("recommendations", len(recs)),
	)

	return &Response{
		Response:        text,
		Recommendations: recs,
		Suggestions:     suggestions,
	}, nil
}

// resolveHex определяет hex по коду через каталог.
func (s *Service) resolveHex(ctx context.Context, code string) string {
	if s.resolver == nil {
		return fallbackHex
	}
	c, err := s.resolver.GetColor(ctx, code)
	if err != nil {
		s.logger.Debug("Не удалось определить hex рекомендации",
			slog.String("code", code),
			slog.String("error", err.Error()),
		)
		return fallbackHex
	}
	return c.Hex
}

func resultLabel(err error) string {
	switch {
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, ErrEmptyResponse):
		return "empty"
	case errors.Is(err, ErrUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}

// CheckReady сообщает состояние консультанта для readiness probe.
// Ненастроенный консультант — degraded: каталог и поиск работают без него.
func (s *Service) CheckReady() (status, message string) {
	if s.llm == nil {
		return "degraded", "LLM-провайдер не настроен (CS_LLM_API_KEY)"
	}
	return "ok", "LLM-провайдер настроен"
}
