package filter_test

import (
	"testing"

	"memokeeper/internal/filter"
)

func TestShouldProcess(t *testing.T) {
	f := filter.New(0)

	t.Run("Empty Message", func(t *testing.T) {
		ok, reason := f.ShouldProcess("   ")
		if ok {
			t.Fatal("expected rejection for blank message")
		}
		if reason != filter.ReasonEmpty {
			t.Errorf("expected reason %q, got %q", filter.ReasonEmpty, reason)
		}
	})

	t.Run("Short Message Is Noise", func(t *testing.T) {
		ok, reason := f.ShouldProcess("привет")
		if ok {
			t.Fatal("expected rejection for short message")
		}
		if reason != filter.ReasonNoise {
			t.Errorf("expected reason %q, got %q", filter.ReasonNoise, reason)
		}
	})

	t.Run("Ack Patterns Are Noise", func(t *testing.T) {
		for _, text := range []string{"+", "ок", "ok", "👍👍👍", "спасибо", "/status now please"} {
			if ok, _ := f.ShouldProcess(text); ok {
				t.Errorf("expected %q to be filtered", text)
			}
		}
	})

	t.Run("Too Long Message", func(t *testing.T) {
		short := filter.New(20)
		ok, reason := short.ShouldProcess("это сообщение существенно длиннее лимита")
		if ok {
			t.Fatal("expected rejection for long message")
		}
		if reason != filter.ReasonTooLong {
			t.Errorf("expected reason %q, got %q", filter.ReasonTooLong, reason)
		}
	})

	t.Run("Meaningful Message Passes", func(t *testing.T) {
		ok, reason := f.ShouldProcess("Решили использовать PostgreSQL для основного хранилища")
		if !ok {
			t.Fatalf("expected message to pass, got reason %q", reason)
		}
	})
}

func TestIsNoise(t *testing.T) {
	f := filter.New(0)

	cases := []struct {
		text string
		want bool
	}{
		{"хахахаха давайте уже начинать работу", false},
		{"пожалуйста", true},
		{"/tasks покажи все задачи", true},
		{"Нужно сделать ревью пулл-реквеста к пятнице", false},
	}
	for _, tc := range cases {
		if got := f.IsNoise(tc.text); got != tc.want {
			t.Errorf("IsNoise(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestClean(t *testing.T) {
	f := filter.New(0)

	t.Run("Strips Bot Mentions", func(t *testing.T) {
		got := f.Clean("@memo_keeper_bot запомни это решение")
		if got != "запомни это решение" {
			t.Errorf("unexpected cleaned text: %q", got)
		}
	})

	t.Run("Collapses Whitespace", func(t *testing.T) {
		got := f.Clean("  решили   использовать\n\tRedis  ")
		if got != "решили использовать Redis" {
			t.Errorf("unexpected cleaned text: %q", got)
		}
	})

	t.Run("Keeps Plain Mentions", func(t *testing.T) {
		got := f.Clean("спроси у @ivan про дедлайн")
		if got != "спроси у @ivan про дедлайн" {
			t.Errorf("unexpected cleaned text: %q", got)
		}
	})
}
