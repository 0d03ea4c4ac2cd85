package redis

import (
	"context"
	"errors"
	"sort"

	"github.com/redis/go-redis/v9"
)

// SettingsStore persists channel settings in Redis so enabled channels and
// prefixes survive restarts.
//
//	SADD quiz:channels:enabled {channel}
//	HSET quiz:channels:prefix  {channel} {prefix}
type SettingsStore struct {
	client *redis.Client
}

const (
	enabledKey = "quiz:channels:enabled"
	prefixKey  = "quiz:channels:prefix"
)

func NewSettingsStore(client *redis.Client) *SettingsStore {
	return &SettingsStore{client: client}
}

func (s *SettingsStore) Enabled(ctx context.Context) ([]string, error) {
	channels, err := s.client.SMembers(ctx, enabledKey).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(channels)
	return channels, nil
}

func (s *SettingsStore) Enable(ctx context.Context, channel string) error {
	return s.client.SAdd(ctx, enabledKey, channel).Err()
}

func (s *SettingsStore) Disable(ctx context.Context, channel string) error {
	return s.client.SRem(ctx, enabledKey, channel).Err()
}

func (s *SettingsStore) Prefix(ctx context.Context, channel string) (string, bool, error) {
	p, err := s.client.HGet(ctx, prefixKey, channel).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return p, true, nil
}

func (s *SettingsStore) SetPrefix(ctx context.Context, channel, prefix string) error {
	return s.client.HSet(ctx, prefixKey, channel, prefix).Err()
}
