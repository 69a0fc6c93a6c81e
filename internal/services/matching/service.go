package matching

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/meetitmo/backend/internal/domain/enums"
	"github.com/meetitmo/backend/internal/domain/model"
	"github.com/meetitmo/backend/internal/domain/rules"
	convsvc "github.com/meetitmo/backend/internal/services/conversations"
	ratesvc "github.com/meetitmo/backend/internal/services/rate"
)

var (
	ErrValidation           = errors.New("validation error")
	ErrConversationNotFound = errors.New("conversation not found")
)

type InteractionStore interface {
	Record(ctx context.Context, actorID, targetID int64, kind enums.InteractionKind, at time.Time) (model.Interaction, error)
	HasLikeType(ctx context.Context, actorID, targetID int64) (bool, error)
	ListLikers(ctx context.Context, targetID int64) ([]int64, error)
}

type ProfileStore interface {
	ListByIDs(ctx context.Context, subjectIDs []int64) ([]model.UserProfile, error)
}

type ConversationProvisioner interface {
	Ensure(ctx context.Context, userA, userB int64) (model.Conversation, bool, error)
	Remove(ctx context.Context, userA, userB int64) error
	List(ctx context.Context, userID int64) ([]model.Conversation, error)
}

// RateLimiter returns a rate.TooFastError when the user must slow down. Any other
// error means the limiter is unavailable and the action goes through unlimited.
type RateLimiter interface {
	Check(ctx context.Context, userID int64) error
}

type MediaResolver interface {
	ResolveProfile(ctx context.Context, p model.UserProfile) model.UserProfile
}

type Config struct {
	// SuperlikeBackfill records a like from the target back to the actor on superlike,
	// so the target's later like sees a reciprocal record in both directions.
	SuperlikeBackfill bool
}

type Dependencies struct {
	Interactions  InteractionStore
	Profiles      ProfileStore
	Conversations ConversationProvisioner
	RateLimiter   RateLimiter
	Media         MediaResolver
	Logger        *zap.Logger
}

type Result struct {
	Matched        bool
	ConversationID string
	// State is the pair state after a like or superlike. Dislikes leave it PairUnseen.
	State rules.PairState
}

type Service struct {
	interactions  InteractionStore
	profiles      ProfileStore
	conversations ConversationProvisioner
	rateLimiter   RateLimiter
	media         MediaResolver
	logger        *zap.Logger
	cfg           Config
	now           func() time.Time
}

func NewService(deps Dependencies, cfg Config) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		interactions:  deps.Interactions,
		profiles:      deps.Profiles,
		conversations: deps.Conversations,
		rateLimiter:   deps.RateLimiter,
		media:         deps.Media,
		logger:        logger,
		cfg:           cfg,
		now:           time.Now,
	}
}

func (s *Service) Like(ctx context.Context, actorID, targetID int64) (Result, error) {
	return s.interact(ctx, actorID, targetID, enums.InteractionKindLike)
}

func (s *Service) Superlike(ctx context.Context, actorID, targetID int64) (Result, error) {
	return s.interact(ctx, actorID, targetID, enums.InteractionKindSuperLike)
}

// Dislike only appends to the ledger. It never creates a conversation.
func (s *Service) Dislike(ctx context.Context, actorID, targetID int64) error {
	_, err := s.interact(ctx, actorID, targetID, enums.InteractionKindDislike)
	return err
}

// interact validates, records and then decides. A recorded interaction stays
// recorded when a later step fails.
func (s *Service) interact(ctx context.Context, actorID, targetID int64, kind enums.InteractionKind) (Result, error) {
	if actorID <= 0 || targetID <= 0 || actorID == targetID || !kind.Valid() {
		return Result{}, ErrValidation
	}
	if s.interactions == nil || s.conversations == nil {
		return Result{}, fmt.Errorf("matching dependencies are not configured")
	}

	if kind.IsLikeType() {
		if err := s.checkRate(ctx, actorID); err != nil {
			return Result{}, err
		}
	}

	now := s.now().UTC()
	if _, err := s.interactions.Record(ctx, actorID, targetID, kind, now); err != nil {
		return Result{}, fmt.Errorf("record %s: %w", kind, err)
	}

	if kind == enums.InteractionKindSuperLike && s.cfg.SuperlikeBackfill {
		if err := s.backfillLike(ctx, targetID, actorID, now); err != nil {
			return Result{}, err
		}
	}

	reciprocal := false
	if rules.NeedsReciprocity(kind) {
		var err error
		reciprocal, err = s.interactions.HasLikeType(ctx, targetID, actorID)
		if err != nil {
			return Result{}, fmt.Errorf("check reciprocal like: %w", err)
		}
	}

	decision := rules.Decide(kind, reciprocal)
	if !decision.EnsureConversation {
		state := rules.PairUnseen
		if kind.IsLikeType() {
			state = rules.StateOf(true, reciprocal, false)
			s.logger.Debug("pair state changed",
				zap.Int64("actor_id", actorID),
				zap.Int64("target_id", targetID),
				zap.Stringer("state", state),
			)
		}
		return Result{Matched: decision.Matched, State: state}, nil
	}

	conversation, created, err := s.conversations.Ensure(ctx, actorID, targetID)
	if err != nil {
		return Result{}, fmt.Errorf("ensure conversation after %s: %w", kind, err)
	}

	state := rules.StateOf(true, reciprocal, true)
	s.logger.Info("users matched",
		zap.Int64("actor_id", actorID),
		zap.Int64("target_id", targetID),
		zap.String("kind", string(kind)),
		zap.Stringer("state", state),
		zap.String("conversation_id", conversation.ID),
		zap.Bool("conversation_created", created),
	)

	return Result{
		Matched:        decision.Matched,
		ConversationID: conversation.ID,
		State:          state,
	}, nil
}

// checkRate fails open: only a TooFastError stops the action.
func (s *Service) checkRate(ctx context.Context, actorID int64) error {
	if s.rateLimiter == nil {
		return nil
	}
	err := s.rateLimiter.Check(ctx, actorID)
	if err == nil {
		return nil
	}
	if _, tooFast := ratesvc.IsTooFast(err); tooFast {
		return err
	}
	s.logger.Warn("like rate limiter unavailable, action not limited",
		zap.Int64("actor_id", actorID),
		zap.Error(err),
	)
	return nil
}

func (s *Service) backfillLike(ctx context.Context, actorID, targetID int64, at time.Time) error {
	exists, err := s.interactions.HasLikeType(ctx, actorID, targetID)
	if err != nil {
		return fmt.Errorf("check backfill like: %w", err)
	}
	if exists {
		return nil
	}
	if _, err := s.interactions.Record(ctx, actorID, targetID, enums.InteractionKindLike, at); err != nil {
		return fmt.Errorf("record backfill like: %w", err)
	}
	return nil
}

// LikedMe lists profiles of users with a like or superlike on userID.
func (s *Service) LikedMe(ctx context.Context, userID int64) ([]model.UserProfile, error) {
	if userID <= 0 {
		return nil, ErrValidation
	}
	if s.interactions == nil || s.profiles == nil {
		return nil, fmt.Errorf("matching dependencies are not configured")
	}

	likerIDs, err := s.interactions.ListLikers(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list likers: %w", err)
	}
	if len(likerIDs) == 0 {
		return []model.UserProfile{}, nil
	}

	profiles, err := s.profiles.ListByIDs(ctx, likerIDs)
	if err != nil {
		return nil, fmt.Errorf("load liker profiles: %w", err)
	}

	if s.media != nil {
		for i := range profiles {
			profiles[i] = s.media.ResolveProfile(ctx, profiles[i])
		}
	}
	return profiles, nil
}

// Block removes the pair's conversation. The ledger is left untouched.
func (s *Service) Block(ctx context.Context, actorID, targetID int64) error {
	if actorID <= 0 || targetID <= 0 || actorID == targetID {
		return ErrValidation
	}
	if s.conversations == nil {
		return fmt.Errorf("matching dependencies are not configured")
	}

	if err := s.conversations.Remove(ctx, actorID, targetID); err != nil {
		if errors.Is(err, convsvc.ErrNotFound) {
			return ErrConversationNotFound
		}
		return fmt.Errorf("block user: %w", err)
	}

	s.logger.Info("user blocked", zap.Int64("actor_id", actorID), zap.Int64("target_id", targetID))
	return nil
}

func (s *Service) Conversations(ctx context.Context, userID int64) ([]model.Conversation, error) {
	if userID <= 0 {
		return nil, ErrValidation
	}
	if s.conversations == nil {
		return nil, fmt.Errorf("matching dependencies are not configured")
	}

	items, err := s.conversations.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return items, nil
}
