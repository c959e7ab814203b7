package cache

import (
	"testing"
	"time"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() {
		if err := c.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return c
}

func TestSetGetRoundTrip(t *testing.T) {
	c := newTestCache(t)

	entry := &Entry{
		Text:      "## Goal\nShip it.",
		Usage:     Usage{PromptTokens: 10, CompletionTokens: 20, TotalTokens: 30},
		CreatedAt: time.Now(),
	}
	if err := c.Set("k1", entry, DefaultTTL); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok := c.Get("k1")
	if !ok {
		t.Fatal("Get: entry missing")
	}
	if got.Text != entry.Text {
		t.Fatalf("text = %q, want %q", got.Text, entry.Text)
	}
	if got.Usage != entry.Usage {
		t.Fatalf("usage = %+v, want %+v", got.Usage, entry.Usage)
	}
}

func TestGetMissingKey(t *testing.T) {
	c := newTestCache(t)
	if _, ok := c.Get("nope"); ok {
		t.Fatal("Get on missing key should report not found")
	}
}

func TestGenerateKey(t *testing.T) {
	a := GenerateKey("anthropic", "model-x", "some text")
	b := GenerateKey("anthropic", "model-x", "some text")
	if a != b {
		t.Fatal("same parts must hash identically")
	}
	if a == GenerateKey("openai", "model-x", "some text") {
		t.Fatal("different parts must hash differently")
	}
	// Joined-part ambiguity must not collide.
	if GenerateKey("ab", "c") == GenerateKey("a", "bc") {
		t.Fatal("part boundaries must affect the key")
	}
}
