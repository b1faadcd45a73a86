package consultant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
)

// Ошибки консультанта.
var (
	// ErrNotConfigured — ключ LLM-провайдера не задан.
	ErrNotConfigured = errors.New("консультант не настроен")
	// ErrEmptyResponse — провайдер вернул пустой ответ.
	ErrEmptyResponse = errors.New("пустой ответ LLM")
	// ErrRateLimited — провайдер ограничил частоту запросов.
	ErrRateLimited = errors.New("превышен лимит запросов к LLM")
	// ErrUnavailable — провайдер недоступен или circuit breaker разомкнут.
	ErrUnavailable = errors.New("LLM недоступен")
)

// Роли сообщений диалога.
const (
	RoleSystem    = openai.ChatMessageRoleSystem
	RoleUser      = openai.ChatMessageRoleUser
	RoleAssistant = openai.ChatMessageRoleAssistant
)

// Message — сообщение для LLM.
type Message struct {
	Role    string
	Content string
}

// LLM — генерация ответа по списку сообщений.
type LLM interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// ClientConfig — параметры OpenAI-совместимого провайдера.
type ClientConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Timeout     time.Duration
	MaxTokens   int
	Temperature float32
}

// Client — LLM-клиент через OpenAI-совместимый API (по умолчанию Gemini)
// с circuit breaker. Повторов нет: ошибка сразу возвращается вызывающему.
type Client struct {
	client      *openai.Client
	breaker     *gobreaker.CircuitBreaker
	model       string
	maxTokens   int
	temperature float32
	logger      *slog.Logger
}

// NewClient создаёт LLM-клиент.
func NewClient(cfg ClientConfig, logger *slog.Logger) *Client {
	logger = logger.With(slog.String("component", "llm_client"))

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	clientConfig.HTTPClient = &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			MaxIdleConnsPerHost: 10,
		},
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "llm",
		MaxRequests: 1,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Состояние circuit breaker изменилось",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
		IsSuccessful: func(err error) bool {
			// Отмена запроса клиентом и лимиты — не отказ провайдера
			return err == nil ||
				errors.Is(err, context.Canceled) ||
				errors.Is(err, ErrRateLimited)
		},
	})

	return &Client{
		client:      openai.NewClientWithConfig(clientConfig),
		breaker:     breaker,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		logger:      logger,
	}
}

// Complete отправляет сообщения и возвращает текст первого варианта ответа.
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    make([]openai.ChatCompletionMessage, len(messages)),
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}
	for i, m := range messages {
		req.Messages[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}

	out, err := c.breaker.Execute(func() (any, error) {
		resp, err := c.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return nil, classify(err)
		}
		if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
			return nil, ErrEmptyResponse
		}
		return resp.Choices[0].Message.Content, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return "", err
	}
	return out.(string), nil
}

// classify приводит ошибку go-openai к ошибкам консультанта.
func classify(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}

	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	if status == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
