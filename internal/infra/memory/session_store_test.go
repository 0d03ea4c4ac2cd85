package memory

import (
	"context"
	"testing"

	"anagram-quiz-service/internal/app"
	"anagram-quiz-service/internal/dictionary"
	"anagram-quiz-service/internal/domain"
)

func TestSessionStoreLifecycle(t *testing.T) {
	created := 0
	store := NewSessionStore(func(channel string) *app.Session {
		created++
		return app.NewSession(channel, dictionary.NewCatalog())
	})

	session := store.GetOrCreate("ch-1")
	if session == nil || session.ID() != "ch-1" {
		t.Fatalf("expected session for ch-1, got %v", session)
	}
	if again := store.GetOrCreate("ch-1"); again != session {
		t.Fatalf("expected the same session on second call")
	}
	if created != 1 {
		t.Fatalf("expected factory once, got %d", created)
	}
	store.GetOrCreate("ch-0")
	if got := store.Channels(); len(got) != 2 || got[0] != "ch-0" {
		t.Fatalf("unexpected channels %v", got)
	}

	store.Delete("ch-1")
	if _, ok := store.Get("ch-1"); ok {
		t.Fatalf("expected session removed")
	}
}

func TestSettingsStore(t *testing.T) {
	ctx := context.Background()
	store := NewSettingsStore()

	_ = store.Enable(ctx, "b")
	_ = store.Enable(ctx, "a")
	got, _ := store.Enabled(ctx)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected enabled channels %v", got)
	}
	_ = store.Disable(ctx, "a")
	got, _ = store.Enabled(ctx)
	if len(got) != 1 || got[0] != "b" {
		t.Fatalf("unexpected enabled channels after disable %v", got)
	}

	if _, ok, _ := store.Prefix(ctx, "b"); ok {
		t.Fatalf("expected no prefix")
	}
	_ = store.SetPrefix(ctx, "b", "!")
	if p, ok, _ := store.Prefix(ctx, "b"); !ok || p != "!" {
		t.Fatalf("expected prefix !, got %q", p)
	}
}

func TestStaticDictionaryLoader(t *testing.T) {
	loader := NewStaticDictionaryLoader(map[domain.Language]dictionary.RawDictionary{
		"en": {Questions: []string{"listen"}},
	})
	raw, err := loader.LoadDictionary(context.Background(), "en")
	if err != nil || len(raw.Questions) != 1 {
		t.Fatalf("load en: %v %v", raw, err)
	}
	if _, err := loader.LoadDictionary(context.Background(), "fr"); err == nil {
		t.Fatalf("expected error for unknown language")
	}
}
