package classifier_test

import (
	"context"
	"errors"
	"testing"

	"memokeeper/internal/classifier"
	"memokeeper/internal/cost"
	"memokeeper/internal/extractor"
	pkgOpenAI "memokeeper/pkg/openai"
)

type stubOpenAI struct {
	lastReq      *pkgOpenAI.Request
	completeFunc func(ctx context.Context, req *pkgOpenAI.Request) (*pkgOpenAI.Response, error)
}

func (s *stubOpenAI) CreateChatCompletion(ctx context.Context, req *pkgOpenAI.Request) (*pkgOpenAI.Response, error) {
	s.lastReq = req
	return s.completeFunc(ctx, req)
}

func completionWith(content string, promptTokens, completionTokens int) *pkgOpenAI.Response {
	return &pkgOpenAI.Response{
		Choices: []pkgOpenAI.Choice{{Message: pkgOpenAI.Message{Role: "assistant", Content: content}}},
		Usage: pkgOpenAI.Usage{
			PromptTokens:     promptTokens,
			CompletionTokens: completionTokens,
			TotalTokens:      promptTokens + completionTokens,
		},
	}
}

func TestOpenAIBackendClassify(t *testing.T) {
	ctx := context.Background()

	t.Run("Parses Result Into Item", func(t *testing.T) {
		client := &stubOpenAI{
			completeFunc: func(ctx context.Context, req *pkgOpenAI.Request) (*pkgOpenAI.Response, error) {
				return completionWith(`{
					"content_type": "decision",
					"confidence": 0.85,
					"summary": "Команда выбрала PostgreSQL",
					"metadata": {"deadline": "null", "links": [], "assignee": "null"}
				}`, 200, 50), nil
			},
		}
		b := classifier.NewOpenAIBackend(&mockLogger{}, client, "gpt-4o-mini", nil)

		item, err := b.Classify(ctx, "Решили использовать PostgreSQL")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if item == nil {
			t.Fatal("expected an item")
		}
		if item.Type != extractor.TypeDecision {
			t.Errorf("expected decision, got %s", item.Type)
		}
		if item.Content != "[Решение] Команда выбрала PostgreSQL" {
			t.Errorf("unexpected content %q", item.Content)
		}
		if _, ok := item.Metadata[extractor.MetaDeadline]; ok {
			t.Error(`"null" deadline must not become metadata`)
		}
	})

	t.Run("None Result Means No Item", func(t *testing.T) {
		client := &stubOpenAI{
			completeFunc: func(ctx context.Context, req *pkgOpenAI.Request) (*pkgOpenAI.Response, error) {
				return completionWith(`{"content_type": "none", "confidence": 0.95}`, 100, 10), nil
			},
		}
		b := classifier.NewOpenAIBackend(&mockLogger{}, client, "gpt-4o-mini", nil)

		item, err := b.Classify(ctx, "привет как дела")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if item != nil {
			t.Errorf("expected nil item for none, got %+v", item)
		}
	})

	t.Run("Low Confidence Means No Item", func(t *testing.T) {
		client := &stubOpenAI{
			completeFunc: func(ctx context.Context, req *pkgOpenAI.Request) (*pkgOpenAI.Response, error) {
				return completionWith(`{"content_type": "task", "confidence": 0.3}`, 100, 10), nil
			},
		}
		b := classifier.NewOpenAIBackend(&mockLogger{}, client, "gpt-4o-mini", nil)

		item, err := b.Classify(ctx, "может быть стоит подумать")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if item != nil {
			t.Errorf("expected nil item below min confidence, got %+v", item)
		}
	})

	t.Run("Usage Billed Even When Nothing Found", func(t *testing.T) {
		ledger := cost.New(&mockLogger{}, cost.NewMemoryStore(), cost.Budgets{})
		client := &stubOpenAI{
			completeFunc: func(ctx context.Context, req *pkgOpenAI.Request) (*pkgOpenAI.Response, error) {
				return completionWith(`{"content_type": "none", "confidence": 0.9}`, 300, 40), nil
			},
		}
		b := classifier.NewOpenAIBackend(&mockLogger{}, client, "gpt-4o-mini", ledger)

		if _, err := b.Classify(ctx, "привет"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		stats := ledger.DailyStats(ctx, "")
		if stats.TotalCalls != 1 {
			t.Errorf("expected the call billed, got %d calls", stats.TotalCalls)
		}
		if stats.TotalInputTokens != 300 || stats.TotalOutputTokens != 40 {
			t.Errorf("unexpected token totals: %d/%d", stats.TotalInputTokens, stats.TotalOutputTokens)
		}
	})

	t.Run("Malformed Completion Is An Error", func(t *testing.T) {
		client := &stubOpenAI{
			completeFunc: func(ctx context.Context, req *pkgOpenAI.Request) (*pkgOpenAI.Response, error) {
				return completionWith("not json at all", 10, 10), nil
			},
		}
		b := classifier.NewOpenAIBackend(&mockLogger{}, client, "gpt-4o-mini", nil)

		if _, err := b.Classify(ctx, "текст"); err == nil {
			t.Fatal("expected error for malformed completion")
		}
	})

	t.Run("Transport Error Propagates", func(t *testing.T) {
		client := &stubOpenAI{
			completeFunc: func(ctx context.Context, req *pkgOpenAI.Request) (*pkgOpenAI.Response, error) {
				return nil, errors.New("connection reset")
			},
		}
		b := classifier.NewOpenAIBackend(&mockLogger{}, client, "gpt-4o-mini", nil)

		if _, err := b.Classify(ctx, "текст"); err == nil {
			t.Fatal("expected transport error")
		}
	})

	t.Run("Request Uses JSON Response Format", func(t *testing.T) {
		client := &stubOpenAI{
			completeFunc: func(ctx context.Context, req *pkgOpenAI.Request) (*pkgOpenAI.Response, error) {
				return completionWith(`{"content_type": "none", "confidence": 1}`, 1, 1), nil
			},
		}
		b := classifier.NewOpenAIBackend(&mockLogger{}, client, "gpt-4o-mini", nil)

		if _, err := b.Classify(ctx, "текст"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if client.lastReq.ResponseFormat == nil || client.lastReq.ResponseFormat.Type != "json_object" {
			t.Error("expected json_object response format")
		}
		if len(client.lastReq.Messages) != 2 {
			t.Errorf("expected system + user messages, got %d", len(client.lastReq.Messages))
		}
	})
}
