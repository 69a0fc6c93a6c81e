package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/meetitmo/backend/internal/domain/enums"
	"github.com/meetitmo/backend/internal/domain/model"
	"github.com/meetitmo/backend/internal/repo"
)

// Without a pool every call must fail as a storage error, never as an empty result.
func TestReposWithoutPoolReportStorageFailure(t *testing.T) {
	ctx := context.Background()
	profiles := NewProfileRepo(nil)
	interactions := NewInteractionRepo(nil)
	conversations := NewConversationRepo(nil)

	checks := []struct {
		name string
		call func() error
	}{
		{name: "upsert profile", call: func() error {
			return profiles.Upsert(ctx, model.UserProfile{SubjectID: 1001})
		}},
		{name: "list profiles", call: func() error {
			_, err := profiles.ListByIDs(ctx, []int64{1002})
			return err
		}},
		{name: "select candidate", call: func() error {
			_, err := profiles.SelectRandomCandidate(ctx, repo.CandidateQuery{ViewerID: 1001, Now: time.Now()})
			return err
		}},
		{name: "record interaction", call: func() error {
			_, err := interactions.Record(ctx, 1001, 1002, enums.InteractionKindLike, time.Now())
			return err
		}},
		{name: "has like type", call: func() error {
			_, err := interactions.HasLikeType(ctx, 1002, 1001)
			return err
		}},
		{name: "list targets", call: func() error {
			_, err := interactions.ListTargets(ctx, 1001)
			return err
		}},
		{name: "list likers", call: func() error {
			_, err := interactions.ListLikers(ctx, 1001)
			return err
		}},
		{name: "ensure conversation", call: func() error {
			_, _, err := conversations.Ensure(ctx, 1001, 1002, "c-1", time.Now())
			return err
		}},
		{name: "delete conversation", call: func() error {
			return conversations.Delete(ctx, 1001, 1002)
		}},
		{name: "list conversations", call: func() error {
			_, err := conversations.ListForUser(ctx, 1001)
			return err
		}},
	}

	for _, tc := range checks {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			if !errors.Is(err, errNilPool) {
				t.Fatalf("unexpected error: got %v want %v", err, errNilPool)
			}
			if errors.Is(err, repo.ErrNoCandidates) || errors.Is(err, repo.ErrConversationNotFound) {
				t.Fatalf("storage failure reported as not found: %v", err)
			}
		})
	}
}

func TestPingWithoutPool(t *testing.T) {
	if err := Ping(context.Background(), nil); !errors.Is(err, errNilPool) {
		t.Fatalf("unexpected error: got %v want %v", err, errNilPool)
	}
}
