package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/meetitmo/backend/internal/domain/enums"
	"github.com/meetitmo/backend/internal/domain/model"
	"github.com/meetitmo/backend/internal/repo"
)

type ConversationRepo struct {
	store *Store
}

func (r *ConversationRepo) Ensure(ctx context.Context, userA, userB int64, candidateID string, at time.Time) (model.Conversation, bool, error) {
	if userA <= 0 || userB <= 0 || userA == userB || candidateID == "" {
		return model.Conversation{}, false, fmt.Errorf("invalid conversation payload")
	}
	if err := ctx.Err(); err != nil {
		return model.Conversation{}, false, err
	}
	if at.IsZero() {
		at = time.Now().UTC()
	}

	key := keyFor(userA, userB)

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if existing, ok := r.store.conversations[key]; ok {
		existing.Status = enums.ConversationStatusActive
		r.store.conversations[key] = existing
		return existing, false, nil
	}

	item := model.Conversation{
		ID:         candidateID,
		UserLowID:  key.low,
		UserHighID: key.high,
		Status:     enums.ConversationStatusActive,
		CreatedAt:  at.UTC(),
	}
	r.store.conversations[key] = item
	return item, true, nil
}

func (r *ConversationRepo) Delete(ctx context.Context, userA, userB int64) error {
	if userA <= 0 || userB <= 0 || userA == userB {
		return fmt.Errorf("invalid conversation payload")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	key := keyFor(userA, userB)

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.conversations[key]; !ok {
		return repo.ErrConversationNotFound
	}
	delete(r.store.conversations, key)
	return nil
}

func (r *ConversationRepo) ListForUser(ctx context.Context, userID int64) ([]model.Conversation, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	items := make([]model.Conversation, 0)
	for key, item := range r.store.conversations {
		if key.low == userID || key.high == userID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}
