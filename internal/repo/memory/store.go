// Package memory is a process-local storage backend used for development and tests.
// It mirrors the postgres repositories, including their not-found sentinels.
package memory

import (
	"sync"

	"github.com/meetitmo/backend/internal/domain/model"
)

type pairKey struct {
	low  int64
	high int64
}

// Store holds all tables behind one mutex, so find-or-create on conversations is atomic.
type Store struct {
	mu sync.Mutex

	profiles      map[int64]model.UserProfile
	profileOrder  []int64
	interactions  []model.Interaction
	nextID        int64
	conversations map[pairKey]model.Conversation
}

func NewStore() *Store {
	return &Store{
		profiles:      make(map[int64]model.UserProfile),
		conversations: make(map[pairKey]model.Conversation),
	}
}

func (s *Store) Profiles() *ProfileRepo {
	return &ProfileRepo{store: s}
}

func (s *Store) Interactions() *InteractionRepo {
	return &InteractionRepo{store: s}
}

func (s *Store) Conversations() *ConversationRepo {
	return &ConversationRepo{store: s}
}

func keyFor(a, b int64) pairKey {
	low, high := model.CanonicalPair(a, b)
	return pairKey{low: low, high: high}
}

func cloneProfile(p model.UserProfile) model.UserProfile {
	out := p
	out.Photos = append([]string(nil), p.Photos...)
	out.MainFeatures = append([]model.Feature(nil), p.MainFeatures...)
	out.Interests = append([]model.Tag(nil), p.Interests...)
	out.Institution = append([]model.Attribute(nil), p.Institution...)
	out.GenderPreferences = append([]string(nil), p.GenderPreferences...)
	out.RelationshipPreferences = append([]model.Tag(nil), p.RelationshipPreferences...)
	return out
}
