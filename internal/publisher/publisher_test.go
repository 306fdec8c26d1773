package publisher_test

import (
	"context"
	"errors"
	"testing"

	"memokeeper/internal/extractor"
	"memokeeper/internal/publisher"
)

// ── Mocks ──────────────────────────────────────────────────────────────────

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) Info(ctx context.Context, args ...interface{})                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...interface{})   {}
func (m *mockLogger) Warn(ctx context.Context, args ...interface{})                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...interface{})   {}
func (m *mockLogger) Error(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...interface{})                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...interface{}) {}
func (m *mockLogger) Panic(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...interface{})  {}

type failingStore struct {
	*publisher.MemoryStore
	chatEnabledErr error
}

func (s *failingStore) ChatEnabled(ctx context.Context, chatID int64) (bool, error) {
	if s.chatEnabledErr != nil {
		return false, s.chatEnabledErr
	}
	return s.MemoryStore.ChatEnabled(ctx, chatID)
}

func newPublisher(t *testing.T, store publisher.Store) *publisher.Publisher {
	t.Helper()
	p, err := publisher.New(&mockLogger{}, store)
	if err != nil {
		t.Fatalf("publisher.New: %v", err)
	}
	return p
}

func taskItem() extractor.Item {
	return extractor.Item{
		Type:       extractor.TypeTask,
		Content:    "[Задача] сделать ревью до завтра",
		Confidence: 0.95,
		Metadata:   map[string]any{extractor.MetaDeadline: "tomorrow"},
	}
}

// ── Tests ──────────────────────────────────────────────────────────────────

func TestPublishMemoryAdded(t *testing.T) {
	ctx := context.Background()

	t.Run("First Publish Succeeds Second Is Suppressed", func(t *testing.T) {
		store := publisher.NewMemoryStore()
		p := newPublisher(t, store)

		item := extractor.Item{Type: extractor.TypeDecision, Content: "[Решение] используем Redis", Confidence: 0.6}

		published, err := p.PublishMemoryAdded(ctx, item, 100, 1, 42, 1700000000)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !published {
			t.Fatal("expected first publish to succeed")
		}

		published, err = p.PublishMemoryAdded(ctx, item, 100, 1, 42, 1700000000)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if published {
			t.Fatal("expected duplicate to be suppressed")
		}

		if got := len(store.Events()); got != 1 {
			t.Errorf("expected 1 event on the stream, got %d", got)
		}
	})

	t.Run("Different Kinds Publish Separately", func(t *testing.T) {
		store := publisher.NewMemoryStore()
		p := newPublisher(t, store)

		decision := extractor.Item{Type: extractor.TypeDecision, Content: "[Решение] x", Confidence: 0.6}
		deadline := extractor.Item{Type: extractor.TypeDeadline, Content: "[Срок] y", Confidence: 0.6}

		if ok, _ := p.PublishMemoryAdded(ctx, decision, 100, 1, 42, 0); !ok {
			t.Error("decision should publish")
		}
		if ok, _ := p.PublishMemoryAdded(ctx, deadline, 100, 1, 42, 0); !ok {
			t.Error("deadline for the same message should publish")
		}
	})

	t.Run("Event Shape", func(t *testing.T) {
		store := publisher.NewMemoryStore()
		p := newPublisher(t, store)

		item := extractor.Item{Type: extractor.TypeDecision, Content: "[Решение] используем Redis", Confidence: 0.6}
		if _, err := p.PublishMemoryAdded(ctx, item, 100, 7, 42, 1700000000); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		event := store.Events()[0]
		if event["event_type"] != publisher.EventMemoryAdded {
			t.Errorf("unexpected event type %v", event["event_type"])
		}
		if event["memory_id"] != "mem_100_7_decision" {
			t.Errorf("unexpected memory id %v", event["memory_id"])
		}
		if event["content_type"] != "decision" {
			t.Errorf("unexpected content type %v", event["content_type"])
		}
	})

	t.Run("Marker Store Failure Propagates", func(t *testing.T) {
		p := newPublisher(t, &markFailStore{MemoryStore: publisher.NewMemoryStore()})

		item := extractor.Item{Type: extractor.TypeDecision, Content: "[Решение] x", Confidence: 0.6}
		if _, err := p.PublishMemoryAdded(ctx, item, 100, 1, 42, 0); err == nil {
			t.Fatal("expected error from marker store")
		}
	})
}

type markFailStore struct {
	*publisher.MemoryStore
}

func (s *markFailStore) MarkProcessed(ctx context.Context, key string) (bool, error) {
	return false, errors.New("store down")
}

func TestPublishTaskCreated(t *testing.T) {
	ctx := context.Background()

	t.Run("Event Shape And Priority", func(t *testing.T) {
		store := publisher.NewMemoryStore()
		p := newPublisher(t, store)

		published, err := p.PublishTaskCreated(ctx, taskItem(), 100, 7, 42, 1700000000, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !published {
			t.Fatal("expected task to publish")
		}

		event := store.Events()[0]
		if event["task_id"] != "task_100_7" {
			t.Errorf("unexpected task id %v", event["task_id"])
		}
		if event["title"] != "сделать ревью до завтра" {
			t.Errorf("expected prefix stripped from title, got %v", event["title"])
		}
		if event["priority"] != publisher.PriorityHigh {
			t.Errorf("expected high priority at 0.95, got %v", event["priority"])
		}
		if event["due_at"] != "tomorrow" {
			t.Errorf("expected due date from metadata, got %v", event["due_at"])
		}
		if event["assignee_user_id"] != "" {
			t.Errorf("expected unassigned task, got %v", event["assignee_user_id"])
		}
	})

	t.Run("One Task Event Per Message", func(t *testing.T) {
		p := newPublisher(t, publisher.NewMemoryStore())

		if ok, _ := p.PublishTaskCreated(ctx, taskItem(), 100, 7, 42, 0, 0); !ok {
			t.Fatal("expected first task to publish")
		}

		// Same message, different classified kind: still the same task slot.
		other := taskItem()
		other.Type = extractor.TypeDeadline
		if ok, _ := p.PublishTaskCreated(ctx, other, 100, 7, 42, 0, 0); ok {
			t.Error("expected second task for the message to be suppressed")
		}
	})
}

func TestChatToggle(t *testing.T) {
	ctx := context.Background()

	t.Run("Defaults To Enabled", func(t *testing.T) {
		p := newPublisher(t, publisher.NewMemoryStore())
		if !p.IsChatEnabled(ctx, 500) {
			t.Error("chat with no recorded state should be enabled")
		}
	})

	t.Run("Toggle Round Trip", func(t *testing.T) {
		p := newPublisher(t, publisher.NewMemoryStore())

		if err := p.SetChatEnabled(ctx, 500, false); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.IsChatEnabled(ctx, 500) {
			t.Error("expected chat to be disabled")
		}

		if err := p.SetChatEnabled(ctx, 500, true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !p.IsChatEnabled(ctx, 500) {
			t.Error("expected chat to be re-enabled")
		}
	})

	t.Run("Fails Open On Store Error", func(t *testing.T) {
		store := &failingStore{
			MemoryStore:    publisher.NewMemoryStore(),
			chatEnabledErr: errors.New("connection refused"),
		}
		p := newPublisher(t, store)
		if !p.IsChatEnabled(ctx, 500) {
			t.Error("unreachable flag store must not stop monitoring")
		}
	})
}

func TestRecentMemories(t *testing.T) {
	ctx := context.Background()
	store := publisher.NewMemoryStore()
	p := newPublisher(t, store)

	decision := extractor.Item{Type: extractor.TypeDecision, Content: "[Решение] a", Confidence: 0.6}
	if _, err := p.PublishMemoryAdded(ctx, decision, 100, 1, 42, 111); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.PublishTaskCreated(ctx, taskItem(), 100, 2, 42, 222, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	memories, err := p.RecentMemories(ctx, 100, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(memories) != 1 {
		t.Fatalf("expected only memory.added events, got %d", len(memories))
	}
	if memories[0].Content != "[Решение] a" {
		t.Errorf("unexpected content %q", memories[0].Content)
	}
	if memories[0].Timestamp != 111 {
		t.Errorf("unexpected timestamp %d", memories[0].Timestamp)
	}
}
