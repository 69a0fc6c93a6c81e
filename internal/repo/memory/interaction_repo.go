package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/meetitmo/backend/internal/domain/enums"
	"github.com/meetitmo/backend/internal/domain/model"
)

type InteractionRepo struct {
	store *Store
}

func (r *InteractionRepo) Record(ctx context.Context, actorID, targetID int64, kind enums.InteractionKind, at time.Time) (model.Interaction, error) {
	if actorID <= 0 || targetID <= 0 || !kind.Valid() {
		return model.Interaction{}, fmt.Errorf("invalid interaction payload")
	}
	if err := ctx.Err(); err != nil {
		return model.Interaction{}, err
	}
	if at.IsZero() {
		at = time.Now().UTC()
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextID++
	item := model.Interaction{
		ID:        r.store.nextID,
		ActorID:   actorID,
		TargetID:  targetID,
		Kind:      kind,
		CreatedAt: at.UTC(),
	}
	r.store.interactions = append(r.store.interactions, item)
	return item, nil
}

func (r *InteractionRepo) HasLikeType(ctx context.Context, actorID, targetID int64) (bool, error) {
	if actorID <= 0 || targetID <= 0 {
		return false, fmt.Errorf("invalid interaction payload")
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, item := range r.store.interactions {
		if item.ActorID == actorID && item.TargetID == targetID && item.Kind.IsLikeType() {
			return true, nil
		}
	}
	return false, nil
}

func (r *InteractionRepo) ListTargets(ctx context.Context, actorID int64) ([]int64, error) {
	if actorID <= 0 {
		return nil, fmt.Errorf("invalid actor id")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	seen := make(map[int64]struct{})
	ids := make([]int64, 0)
	for _, item := range r.store.interactions {
		if item.ActorID != actorID {
			continue
		}
		if _, ok := seen[item.TargetID]; ok {
			continue
		}
		seen[item.TargetID] = struct{}{}
		ids = append(ids, item.TargetID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// ListLikers returns distinct like-type actors on targetID, most recent first.
func (r *InteractionRepo) ListLikers(ctx context.Context, targetID int64) ([]int64, error) {
	if targetID <= 0 {
		return nil, fmt.Errorf("invalid target id")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	latest := make(map[int64]int)
	for idx, item := range r.store.interactions {
		if item.TargetID == targetID && item.Kind.IsLikeType() {
			latest[item.ActorID] = idx
		}
	}

	ids := make([]int64, 0, len(latest))
	for id := range latest {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return latest[ids[i]] > latest[ids[j]]
	})
	return ids, nil
}
