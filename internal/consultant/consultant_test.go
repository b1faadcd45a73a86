package consultant

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/bigkaa/colorsense/internal/domain/model"
	"github.com/bigkaa/colorsense/internal/repository"
)

// --- Моки ---

type mockLLM struct {
	completeFn func(ctx context.Context, messages []Message) (string, error)
	got        []Message
}

func (m *mockLLM) Complete(ctx context.Context, messages []Message) (string, error) {
	m.got = messages
	return m.completeFn(ctx, messages)
}

// mockColorRepo — мок ColorRepository; используется только Find.
type mockColorRepo struct {
	repository.ColorRepository
	findFn func(ctx context.Context, filter repository.ColorFilter, offset, limit int) ([]*model.Color, error)
}

func (m *mockColorRepo) Find(ctx context.Context, filter repository.ColorFilter, offset, limit int) ([]*model.Color, error) {
	return m.findFn(ctx, filter, offset, limit)
}

type mockResolver struct {
	colors map[string]*model.Color
	calls  int
}

func (m *mockResolver) GetColor(_ context.Context, code string) (*model.Color, error) {
	m.calls++
	if c, ok := m.colors[code]; ok {
		return c, nil
	}
	return model.NewPlaceholder(code), nil
}

func catalogRepo() *mockColorRepo {
	return &mockColorRepo{
		findFn: func(_ context.Context, _ repository.ColorFilter, _, _ int) ([]*model.Color, error) {
			return []*model.Color{{Code: "HC-154", Name: "Hale Navy", Hex: "#2D3142"}}, nil
		},
	}
}

// --- Тесты ---

func TestService_Ask(t *testing.T) {
	llm := &mockLLM{completeFn: func(_ context.Context, _ []Message) (string, error) {
		return sampleResponse, nil
	}}
	resolver := &mockResolver{colors: map[string]*model.Color{
		"HC-154": {Code: "HC-154", Hex: "#2D3142"},
	}}
	svc := NewService(llm, catalogRepo(), resolver, slog.Default())

	resp, err := svc.Ask(context.Background(), Request{Message: "  living room  "})
	if err != nil {
		t.Fatalf("Ask ошибка: %v", err)
	}

	if resp.Response != sampleResponse {
		t.Error("Response должен содержать исходный текст LLM")
	}
	if len(resp.Recommendations) != 2 {
		t.Fatalf("рекомендаций = %d, ожидалось 2", len(resp.Recommendations))
	}
	if resp.Recommendations[1].Hex != "#2D3142" {
		t.Errorf("hex Hale Navy = %q, ожидался #2D3142 из каталога", resp.Recommendations[1].Hex)
	}
	if resolver.calls != 1 {
		t.Errorf("resolver вызван %d раз, ожидался 1 (только для рекомендации без hex)", resolver.calls)
	}
	if len(resp.Suggestions) != 3 {
		t.Errorf("suggestions = %d, ожидалось 3", len(resp.Suggestions))
	}

	last := llm.got[len(llm.got)-1]
	if last.Content != "living room" {
		t.Errorf("сообщение пользователя = %q, ожидалось обрезанное", last.Content)
	}
	if !strings.Contains(llm.got[0].Content, "Hale Navy") {
		t.Error("системное сообщение не содержит каталог")
	}
}

func TestService_Ask_UnknownCodeGetsFallbackHex(t *testing.T) {
	llm := &mockLLM{completeFn: func(_ context.Context, _ []Message) (string, error) {
		return "🎨 Mystery (ZZ-000)\n• Hex: not a color", nil
	}}
	svc := NewService(llm, catalogRepo(), &mockResolver{}, slog.Default())

	resp, err := svc.Ask(context.Background(), Request{Message: "surprise me"})
	if err != nil {
		t.Fatalf("Ask ошибка: %v", err)
	}
	if got := resp.Recommendations[0].Hex; got != "#FFFFFF" {
		t.Errorf("hex = %q, ожидался #FFFFFF", got)
	}
}

func TestService_Ask_NotConfigured(t *testing.T) {
	svc := NewService(nil, catalogRepo(), &mockResolver{}, slog.Default())

	_, err := svc.Ask(context.Background(), Request{Message: "hi"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("ошибка = %v, ожидалась ErrNotConfigured", err)
	}
}

func TestService_Ask_LLMError(t *testing.T) {
	for _, want := range []error{ErrRateLimited, ErrEmptyResponse, ErrUnavailable} {
		t.Run(want.Error(), func(t *testing.T) {
			llm := &mockLLM{completeFn: func(_ context.Context, _ []Message) (string, error) {
				return "", want
			}}
			svc := NewService(llm, catalogRepo(), &mockResolver{}, slog.Default())

			_, err := svc.Ask(context.Background(), Request{Message: "hi"})
			if !errors.Is(err, want) {
				t.Errorf("ошибка = %v, ожидалась %v", err, want)
			}
		})
	}
}

// TestService_Ask_CatalogUnavailable проверяет ответ без контекста каталога.
func TestService_Ask_CatalogUnavailable(t *testing.T) {
	repo := &mockColorRepo{
		findFn: func(_ context.Context, _ repository.ColorFilter, _, _ int) ([]*model.Color, error) {
			return nil, errors.New("connection refused")
		},
	}
	llm := &mockLLM{completeFn: func(_ context.Context, _ []Message) (string, error) {
		return "Try a soft white.", nil
	}}
	svc := NewService(llm, repo, &mockResolver{}, slog.Default())

	resp, err := svc.Ask(context.Background(), Request{Message: "hi"})
	if err != nil {
		t.Fatalf("Ask ошибка: %v", err)
	}
	if resp.Response != "Try a soft white." {
		t.Errorf("Response = %q", resp.Response)
	}
	if !strings.Contains(llm.got[0].Content, "[]") {
		t.Error("ожидался пустой каталог в системном сообщении")
	}
}

func TestService_CheckReady(t *testing.T) {
	if st, _ := NewService(nil, catalogRepo(), nil, slog.Default()).CheckReady(); st != "degraded" {
		t.Errorf("status = %q, ожидался degraded", st)
	}
	llm := &mockLLM{}
	if st, _ := NewService(llm, catalogRepo(), nil, slog.Default()).CheckReady(); st != "ok" {
		t.Errorf("status = %q, ожидался ok", st)
	}
}
