package redis

import (
	"context"
	"math/rand"
	"time"

	"anagram-quiz-service/internal/dictionary"
	"anagram-quiz-service/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// DictionaryCache caches raw word lists in Redis and falls back to a loader on cache miss.
// Lists are stored as:
//
//	RPUSH dict:{lang}:questions word...
//	RPUSH dict:{lang}:full      word...   (only when the language has a full list)
//	SET   dict:{lang}:hasfull   0|1
type DictionaryCache struct {
	client *redis.Client
	loader dictionary.Loader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewDictionaryCache(client *redis.Client, loader dictionary.Loader, ttl time.Duration) *DictionaryCache {
	return &DictionaryCache{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *DictionaryCache) LoadDictionary(ctx context.Context, lang domain.Language) (dictionary.RawDictionary, error) {
	if raw, ok := c.cached(ctx, lang); ok {
		return raw, nil
	}

	result, err, _ := c.sf.Do(string(lang), func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if raw, ok := c.cached(ctx, lang); ok {
			return raw, nil
		}

		raw, err := c.loader.LoadDictionary(ctx, lang)
		if err != nil {
			return dictionary.RawDictionary{}, err
		}

		ttl := c.ttlWithJitter()
		pipe := c.client.TxPipeline()
		pipe.Del(ctx, c.questionsKey(lang), c.fullKey(lang), c.hasFullKey(lang))
		if len(raw.Questions) > 0 {
			pipe.RPush(ctx, c.questionsKey(lang), toArgs(raw.Questions)...)
		}
		hasFull := "0"
		if raw.Full != nil {
			hasFull = "1"
			if len(raw.Full) > 0 {
				pipe.RPush(ctx, c.fullKey(lang), toArgs(raw.Full)...)
			}
		}
		pipe.Set(ctx, c.hasFullKey(lang), hasFull, ttl)
		if ttl > 0 {
			pipe.Expire(ctx, c.questionsKey(lang), ttl)
			pipe.Expire(ctx, c.fullKey(lang), ttl)
		}
		// best-effort: a failed write only costs another load next time
		_, _ = pipe.Exec(ctx)

		return raw, nil
	})
	if err != nil {
		return dictionary.RawDictionary{}, err
	}
	return result.(dictionary.RawDictionary), nil
}

func (c *DictionaryCache) cached(ctx context.Context, lang domain.Language) (dictionary.RawDictionary, bool) {
	hasFull, err := c.client.Get(ctx, c.hasFullKey(lang)).Result()
	if err != nil {
		return dictionary.RawDictionary{}, false
	}
	questions, err := c.client.LRange(ctx, c.questionsKey(lang), 0, -1).Result()
	if err != nil || len(questions) == 0 {
		return dictionary.RawDictionary{}, false
	}
	raw := dictionary.RawDictionary{Questions: questions}
	if hasFull == "1" {
		full, err := c.client.LRange(ctx, c.fullKey(lang), 0, -1).Result()
		if err != nil {
			return dictionary.RawDictionary{}, false
		}
		raw.Full = full
	}
	return raw, true
}

func (c *DictionaryCache) questionsKey(lang domain.Language) string {
	return "dict:" + string(lang) + ":questions"
}

func (c *DictionaryCache) fullKey(lang domain.Language) string {
	return "dict:" + string(lang) + ":full"
}

func (c *DictionaryCache) hasFullKey(lang domain.Language) string {
	return "dict:" + string(lang) + ":hasfull"
}

func toArgs(words []string) []interface{} {
	args := make([]interface{}, len(words))
	for i, w := range words {
		args[i] = w
	}
	return args
}

func (c *DictionaryCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
