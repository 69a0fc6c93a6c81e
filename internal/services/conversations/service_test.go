package conversations

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/meetitmo/backend/internal/domain/model"
	"github.com/meetitmo/backend/internal/repo/memory"
)

func TestEnsureIsOrderIndependent(t *testing.T) {
	svc := NewService(memory.NewStore().Conversations(), nil)
	ctx := context.Background()

	first, created, err := svc.Ensure(ctx, 1002, 1001)
	if err != nil {
		t.Fatalf("ensure conversation: %v", err)
	}
	if !created {
		t.Fatalf("expected first ensure to create")
	}
	if first.UserLowID != 1001 || first.UserHighID != 1002 {
		t.Fatalf("unexpected canonical pair: %d/%d", first.UserLowID, first.UserHighID)
	}

	second, created, err := svc.Ensure(ctx, 1001, 1002)
	if err != nil {
		t.Fatalf("ensure conversation: %v", err)
	}
	if created {
		t.Fatalf("expected second ensure to reuse the record")
	}
	if second.ID != first.ID {
		t.Fatalf("unexpected conversation id: got %s want %s", second.ID, first.ID)
	}
}

func TestEnsureConcurrentCallersShareOneConversation(t *testing.T) {
	svc := NewService(memory.NewStore().Conversations(), nil)
	ctx := context.Background()

	const callers = 50
	ids := make([]string, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, b := int64(3), int64(4)
			if i%2 == 1 {
				a, b = b, a
			}
			item, _, err := svc.Ensure(ctx, a, b)
			if err != nil {
				t.Errorf("ensure #%d: %v", i, err)
				return
			}
			ids[i] = item.ID
		}(i)
	}
	wg.Wait()

	for i, id := range ids {
		if id != ids[0] {
			t.Fatalf("caller %d got id %s, want %s", i, id, ids[0])
		}
	}

	items, err := svc.List(ctx, 3)
	if err != nil {
		t.Fatalf("list conversations: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("unexpected conversation count: got %d want 1", len(items))
	}
}

func TestEnsureRejectsInvalidPairs(t *testing.T) {
	svc := NewService(memory.NewStore().Conversations(), nil)

	for _, pair := range [][2]int64{{1, 1}, {0, 2}, {-1, 2}} {
		if _, _, err := svc.Ensure(context.Background(), pair[0], pair[1]); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation for %v, got %v", pair, err)
		}
	}
}

func TestRemoveMapsNotFound(t *testing.T) {
	svc := NewService(memory.NewStore().Conversations(), nil)
	ctx := context.Background()

	if err := svc.Remove(ctx, 1, 2); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, _, err := svc.Ensure(ctx, 1, 2); err != nil {
		t.Fatalf("ensure conversation: %v", err)
	}
	if err := svc.Remove(ctx, 2, 1); err != nil {
		t.Fatalf("remove conversation: %v", err)
	}
	items, err := svc.List(ctx, 1)
	if err != nil {
		t.Fatalf("list conversations: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no conversations after remove, got %d", len(items))
	}
}

type failingStore struct{}

func (failingStore) Ensure(context.Context, int64, int64, string, time.Time) (model.Conversation, bool, error) {
	return model.Conversation{}, false, errors.New("db down")
}

func (failingStore) Delete(context.Context, int64, int64) error {
	return errors.New("db down")
}

func (failingStore) ListForUser(context.Context, int64) ([]model.Conversation, error) {
	return nil, errors.New("db down")
}

func TestStorageFailuresAreNotNotFound(t *testing.T) {
	svc := NewService(failingStore{}, nil)

	if _, _, err := svc.Ensure(context.Background(), 1, 2); err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected wrapped storage error, got %v", err)
	}
	if err := svc.Remove(context.Background(), 1, 2); err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected wrapped storage error, got %v", err)
	}
}
