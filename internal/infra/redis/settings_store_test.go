package redis

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestSettingsStoreSetsAndClearsKeys(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewSettingsStore(client)

	if err := store.Enable(ctx, "ch-1"); err != nil {
		t.Fatalf("enable: %v", err)
	}
	if ok, _ := mr.SIsMember("quiz:channels:enabled", "ch-1"); !ok {
		t.Fatalf("expected channel in enabled set")
	}
	channels, err := store.Enabled(ctx)
	if err != nil || len(channels) != 1 || channels[0] != "ch-1" {
		t.Fatalf("unexpected enabled channels %v (%v)", channels, err)
	}

	if err := store.Disable(ctx, "ch-1"); err != nil {
		t.Fatalf("disable: %v", err)
	}
	if mr.Exists("quiz:channels:enabled") {
		t.Fatalf("expected enabled set to be removed")
	}

	if _, ok, err := store.Prefix(ctx, "ch-1"); ok || err != nil {
		t.Fatalf("expected missing prefix, got ok=%v err=%v", ok, err)
	}
	if err := store.SetPrefix(ctx, "ch-1", "!"); err != nil {
		t.Fatalf("set prefix: %v", err)
	}
	if p, ok, err := store.Prefix(ctx, "ch-1"); !ok || err != nil || p != "!" {
		t.Fatalf("expected prefix !, got %q ok=%v err=%v", p, ok, err)
	}
}
