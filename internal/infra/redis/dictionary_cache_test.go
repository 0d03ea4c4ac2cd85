package redis

import (
	"context"
	"testing"
	"time"

	"anagram-quiz-service/internal/dictionary"
	"anagram-quiz-service/internal/domain"
	"anagram-quiz-service/internal/infra/memory"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestDictionaryCacheStoresInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)

	loader := &countingLoader{
		Loader: memory.NewStaticDictionaryLoader(map[domain.Language]dictionary.RawDictionary{
			"en": sampleDictionary(),
			"ja": {Questions: []string{"ねこ"}},
		}),
	}
	cache := NewDictionaryCache(client, loader, time.Minute)

	raw, err := cache.LoadDictionary(context.Background(), "en")
	if err != nil {
		t.Fatalf("load dictionary: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if !mr.Exists("dict:en:questions") {
		t.Fatalf("expected questions list in redis")
	}

	// Second call should hit cache, loader not incremented.
	raw2, err := cache.LoadDictionary(context.Background(), "en")
	if err != nil {
		t.Fatalf("load dictionary 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
	if len(raw2.Questions) != len(raw.Questions) || raw2.Questions[0] != "listen" || len(raw2.Full) != 3 {
		t.Fatalf("cached dictionary differs: %+v", raw2)
	}

	ja, err := cache.LoadDictionary(context.Background(), "ja")
	if err != nil {
		t.Fatalf("load ja: %v", err)
	}
	if ja.Full != nil {
		t.Fatalf("expected no full list for ja, got %v", ja.Full)
	}
	cachedJa, _ := cache.LoadDictionary(context.Background(), "ja")
	if cachedJa.Full != nil || loader.calls != 2 {
		t.Fatalf("expected cached ja without full list, calls=%d", loader.calls)
	}
}

func TestDictionaryCachePropagatesLoaderErrors(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	cache := NewDictionaryCache(newClient(mr), memory.NewStaticDictionaryLoader(nil), time.Minute)
	if _, err := cache.LoadDictionary(context.Background(), "xx"); err == nil {
		t.Fatalf("expected error for unknown language")
	}
}

type countingLoader struct {
	dictionary.Loader
	calls int
}

func (l *countingLoader) LoadDictionary(ctx context.Context, lang domain.Language) (dictionary.RawDictionary, error) {
	l.calls++
	return l.Loader.LoadDictionary(ctx, lang)
}

func sampleDictionary() dictionary.RawDictionary {
	return dictionary.RawDictionary{
		Questions: []string{"listen", "silent", "apple"},
		Full:      []string{"enlist", "inlets", "tinsel"},
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
