package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/meetitmo/backend/internal/domain/enums"
	"github.com/meetitmo/backend/internal/domain/model"
	"github.com/meetitmo/backend/internal/repo"
)

func testProfile(id int64, gender, birthdate, height string) model.UserProfile {
	return model.UserProfile{
		SubjectID: id,
		Username:  fmt.Sprintf("user-%d", id),
		MainFeatures: []model.Feature{
			{Kind: enums.FeatureKindGender, Value: gender},
			{Kind: enums.FeatureKindBirthdate, Value: birthdate},
			{Kind: enums.FeatureKindHeight, Value: height},
		},
		IsStudent: true,
	}
}

func TestSelectRandomCandidateExcludesViewerAndSeenTargets(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	profiles := store.Profiles()
	interactions := store.Interactions()

	for _, p := range []model.UserProfile{
		testProfile(1001, "male", "2003-05-01", "180 cm"),
		testProfile(1002, "female", "2004-03-15", "168 cm"),
	} {
		if err := profiles.Upsert(ctx, p); err != nil {
			t.Fatalf("upsert profile: %v", err)
		}
	}

	got, err := profiles.SelectRandomCandidate(ctx, repo.CandidateQuery{ViewerID: 1001})
	if err != nil {
		t.Fatalf("select candidate: %v", err)
	}
	if got.SubjectID != 1002 {
		t.Fatalf("unexpected candidate: got %d want 1002", got.SubjectID)
	}

	if _, err := interactions.Record(ctx, 1001, 1002, enums.InteractionKindDislike, time.Time{}); err != nil {
		t.Fatalf("record dislike: %v", err)
	}

	_, err = profiles.SelectRandomCandidate(ctx, repo.CandidateQuery{ViewerID: 1001})
	if !errors.Is(err, repo.ErrNoCandidates) {
		t.Fatalf("expected ErrNoCandidates, got %v", err)
	}
}

func TestSelectRandomCandidateAppliesFilters(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	profiles := store.Profiles()

	for _, p := range []model.UserProfile{
		testProfile(1, "male", "2003-05-01", "180 cm"),
		testProfile(2, "female", "2004-03-15", "168 cm"),
		testProfile(3, "male", "1990-01-01", "175 cm"),
	} {
		if err := profiles.Upsert(ctx, p); err != nil {
			t.Fatalf("upsert profile: %v", err)
		}
	}

	ageMax := 30
	now := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 20; i++ {
		got, err := profiles.SelectRandomCandidate(ctx, repo.CandidateQuery{
			ViewerID: 2,
			Filters:  model.CandidateFilters{Gender: "Male", AgeMax: &ageMax},
			Now:      now,
		})
		if err != nil {
			t.Fatalf("select candidate: %v", err)
		}
		if got.SubjectID != 1 {
			t.Fatalf("unexpected candidate: got %d want 1", got.SubjectID)
		}
	}
}

func TestEnsureConversationConcurrentSingleRecord(t *testing.T) {
	ctx := context.Background()
	conversations := NewStore().Conversations()

	const workers = 32
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		ids     = make(map[string]struct{})
		created int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, b := int64(7), int64(9)
			if i%2 == 0 {
				a, b = b, a
			}
			item, inserted, err := conversations.Ensure(ctx, a, b, fmt.Sprintf("candidate-%d", i), time.Time{})
			if err != nil {
				t.Errorf("ensure conversation: %v", err)
				return
			}
			mu.Lock()
			defer mu.Unlock()
			ids[item.ID] = struct{}{}
			if inserted {
				created++
			}
		}(i)
	}
	wg.Wait()

	if len(ids) != 1 {
		t.Fatalf("unexpected conversation ids: got %d want 1", len(ids))
	}
	if created != 1 {
		t.Fatalf("unexpected inserts: got %d want 1", created)
	}

	items, err := conversations.ListForUser(ctx, 9)
	if err != nil {
		t.Fatalf("list conversations: %v", err)
	}
	if len(items) != 1 || items[0].UserLowID != 7 || items[0].UserHighID != 9 {
		t.Fatalf("unexpected conversations: %+v", items)
	}
}

func TestEnsureConversationReactivatesInactive(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	conversations := store.Conversations()

	first, _, err := conversations.Ensure(ctx, 1, 2, "c-1", time.Time{})
	if err != nil {
		t.Fatalf("ensure conversation: %v", err)
	}

	store.mu.Lock()
	inactive := store.conversations[keyFor(1, 2)]
	inactive.Status = enums.ConversationStatusInactive
	store.conversations[keyFor(1, 2)] = inactive
	store.mu.Unlock()

	again, inserted, err := conversations.Ensure(ctx, 2, 1, "c-2", time.Time{})
	if err != nil {
		t.Fatalf("ensure conversation: %v", err)
	}
	if inserted || again.ID != first.ID {
		t.Fatalf("unexpected ensure result: inserted=%v id=%s want %s", inserted, again.ID, first.ID)
	}
	if again.Status != enums.ConversationStatusActive {
		t.Fatalf("unexpected status: got %s want active", again.Status)
	}
}

func TestDeleteConversationNotFound(t *testing.T) {
	ctx := context.Background()
	conversations := NewStore().Conversations()

	if err := conversations.Delete(ctx, 1, 2); !errors.Is(err, repo.ErrConversationNotFound) {
		t.Fatalf("expected ErrConversationNotFound, got %v", err)
	}
	if _, _, err := conversations.Ensure(ctx, 1, 2, "c-1", time.Time{}); err != nil {
		t.Fatalf("ensure conversation: %v", err)
	}
	if err := conversations.Delete(ctx, 2, 1); err != nil {
		t.Fatalf("delete conversation: %v", err)
	}
	items, err := conversations.ListForUser(ctx, 2)
	if err != nil {
		t.Fatalf("list conversations: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no conversations after delete, got %d", len(items))
	}
}

func TestListLikersMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	interactions := NewStore().Interactions()

	records := []struct {
		actor int64
		kind  enums.InteractionKind
	}{
		{actor: 11, kind: enums.InteractionKindLike},
		{actor: 12, kind: enums.InteractionKindDislike},
		{actor: 13, kind: enums.InteractionKindSuperLike},
		{actor: 11, kind: enums.InteractionKindLike},
	}
	for _, rec := range records {
		if _, err := interactions.Record(ctx, rec.actor, 50, rec.kind, time.Time{}); err != nil {
			t.Fatalf("record interaction: %v", err)
		}
	}

	got, err := interactions.ListLikers(ctx, 50)
	if err != nil {
		t.Fatalf("list likers: %v", err)
	}
	if len(got) != 2 || got[0] != 11 || got[1] != 13 {
		t.Fatalf("unexpected likers: got %v want [11 13]", got)
	}
}
