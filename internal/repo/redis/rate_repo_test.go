package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func TestIncrementWindowStartsAndExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := NewRateRepo(client)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		count, ttl, err := repo.IncrementWindow(ctx, "rate:test", 10*time.Second)
		if err != nil {
			t.Fatalf("increment #%d: %v", i, err)
		}
		if count != i {
			t.Fatalf("unexpected count: got %d want %d", count, i)
		}
		if ttl <= 0 || ttl > 10*time.Second {
			t.Fatalf("unexpected ttl: %s", ttl)
		}
	}

	mr.FastForward(11 * time.Second)

	if mr.Exists("rate:test") {
		t.Fatalf("expected window key to expire")
	}
}

func TestIncrementWindowRepairsMissingTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	if err := mr.Set("rate:stuck", "5"); err != nil {
		t.Fatalf("seed key: %v", err)
	}

	count, ttl, err := NewRateRepo(client).IncrementWindow(context.Background(), "rate:stuck", time.Minute)
	if err != nil {
		t.Fatalf("increment: %v", err)
	}
	if count != 6 {
		t.Fatalf("unexpected count: got %d want 6", count)
	}
	if ttl != time.Minute {
		t.Fatalf("unexpected ttl: got %s want 1m", ttl)
	}
	if mr.TTL("rate:stuck") <= 0 {
		t.Fatalf("expected ttl to be restored")
	}
}
