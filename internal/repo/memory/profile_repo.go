package memory

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/meetitmo/backend/internal/domain/model"
	"github.com/meetitmo/backend/internal/domain/rules"
	"github.com/meetitmo/backend/internal/repo"
)

type ProfileRepo struct {
	store *Store
}

func (r *ProfileRepo) Upsert(ctx context.Context, p model.UserProfile) error {
	if p.SubjectID <= 0 {
		return fmt.Errorf("invalid profile subject id")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.profiles[p.SubjectID]; !ok {
		r.store.profileOrder = append(r.store.profileOrder, p.SubjectID)
	}
	r.store.profiles[p.SubjectID] = cloneProfile(p)
	return nil
}

// ListByIDs keeps the order of subjectIDs and skips unknown ids.
func (r *ProfileRepo) ListByIDs(ctx context.Context, subjectIDs []int64) ([]model.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	items := make([]model.UserProfile, 0, len(subjectIDs))
	for _, id := range subjectIDs {
		if p, ok := r.store.profiles[id]; ok {
			items = append(items, cloneProfile(p))
		}
	}
	return items, nil
}

// SelectRandomCandidate applies the same exclusion and filter rules as the postgres
// query and picks uniformly among the eligible profiles.
func (r *ProfileRepo) SelectRandomCandidate(ctx context.Context, q repo.CandidateQuery) (model.UserProfile, error) {
	if q.ViewerID <= 0 {
		return model.UserProfile{}, fmt.Errorf("invalid viewer id")
	}
	if err := ctx.Err(); err != nil {
		return model.UserProfile{}, err
	}
	if q.Now.IsZero() {
		q.Now = time.Now().UTC()
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	seen := make(map[int64]struct{})
	for _, item := range r.store.interactions {
		if item.ActorID == q.ViewerID {
			seen[item.TargetID] = struct{}{}
		}
	}

	eligible := make([]int64, 0, len(r.store.profileOrder))
	for _, id := range r.store.profileOrder {
		if id == q.ViewerID {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		if !rules.MatchesFilters(r.store.profiles[id], q.Filters, q.Now) {
			continue
		}
		eligible = append(eligible, id)
	}

	if len(eligible) == 0 {
		return model.UserProfile{}, repo.ErrNoCandidates
	}

	return cloneProfile(r.store.profiles[eligible[rand.Intn(len(eligible))]]), nil
}
