package conversations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meetitmo/backend/internal/domain/model"
	"github.com/meetitmo/backend/internal/repo"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("conversation not found")
)

type Store interface {
	Ensure(ctx context.Context, userA, userB int64, candidateID string, at time.Time) (model.Conversation, bool, error)
	Delete(ctx context.Context, userA, userB int64) error
	ListForUser(ctx context.Context, userID int64) ([]model.Conversation, error)
}

// Service provisions at most one conversation per unordered pair of users.
type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Ensure returns the pair's conversation, creating it when absent. Argument order does not matter.
func (s *Service) Ensure(ctx context.Context, userA, userB int64) (model.Conversation, bool, error) {
	if err := validatePair(userA, userB); err != nil {
		return model.Conversation{}, false, err
	}
	if s.store == nil {
		return model.Conversation{}, false, fmt.Errorf("conversation store is not configured")
	}

	item, created, err := s.store.Ensure(ctx, userA, userB, s.newID(), s.now().UTC())
	if err != nil {
		return model.Conversation{}, false, fmt.Errorf("ensure conversation: %w", err)
	}

	if created {
		s.logger.Info("conversation created",
			zap.String("conversation_id", item.ID),
			zap.Int64("user_low_id", item.UserLowID),
			zap.Int64("user_high_id", item.UserHighID),
		)
	}

	return item, created, nil
}

// Remove deletes the pair's conversation. It backs the block flow.
func (s *Service) Remove(ctx context.Context, userA, userB int64) error {
	if err := validatePair(userA, userB); err != nil {
		return err
	}
	if s.store == nil {
		return fmt.Errorf("conversation store is not configured")
	}

	if err := s.store.Delete(ctx, userA, userB); err != nil {
		if errors.Is(err, repo.ErrConversationNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("remove conversation: %w", err)
	}

	low, high := model.CanonicalPair(userA, userB)
	s.logger.Info("conversation removed", zap.Int64("user_low_id", low), zap.Int64("user_high_id", high))
	return nil
}

func (s *Service) List(ctx context.Context, userID int64) ([]model.Conversation, error) {
	if userID <= 0 {
		return nil, ErrValidation
	}
	if s.store == nil {
		return nil, fmt.Errorf("conversation store is not configured")
	}

	items, err := s.store.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return items, nil
}

func validatePair(userA, userB int64) error {
	if userA <= 0 || userB <= 0 || userA == userB {
		return ErrValidation
	}
	return nil
}
