package candidates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/meetitmo/backend/internal/domain/model"
	"github.com/meetitmo/backend/internal/repo"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("no more persons available")
)

type Store interface {
	SelectRandomCandidate(ctx context.Context, q repo.CandidateQuery) (model.UserProfile, error)
}

type MediaResolver interface {
	ResolveProfile(ctx context.Context, p model.UserProfile) model.UserProfile
}

type Service struct {
	store  Store
	media  MediaResolver
	logger *zap.Logger
	now    func() time.Time
}

func NewService(store Store, media MediaResolver, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		store:  store,
		media:  media,
		logger: logger,
		now:    time.Now,
	}
}

// Select returns one profile viewerID has not interacted with, sampled uniformly
// among those that pass filters. ErrNotFound is a normal outcome.
func (s *Service) Select(ctx context.Context, viewerID int64, filters model.CandidateFilters) (model.UserProfile, error) {
	if viewerID <= 0 {
		return model.UserProfile{}, ErrValidation
	}
	if err := ValidateFilters(filters); err != nil {
		return model.UserProfile{}, err
	}
	if s.store == nil {
		return model.UserProfile{}, fmt.Errorf("candidate store is not configured")
	}

	profile, err := s.store.SelectRandomCandidate(ctx, repo.CandidateQuery{
		ViewerID: viewerID,
		Filters:  filters,
		Now:      s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, repo.ErrNoCandidates) {
			s.logger.Debug("no candidates left", zap.Int64("viewer_id", viewerID))
			return model.UserProfile{}, ErrNotFound
		}
		return model.UserProfile{}, fmt.Errorf("select candidate: %w", err)
	}

	if s.media != nil {
		profile = s.media.ResolveProfile(ctx, profile)
	}
	return profile, nil
}

func ValidateFilters(f model.CandidateFilters) error {
	if err := validateRange(f.AgeMin, f.AgeMax); err != nil {
		return fmt.Errorf("age filter: %w", err)
	}
	if err := validateRange(f.HeightMin, f.HeightMax); err != nil {
		return fmt.Errorf("height filter: %w", err)
	}
	return nil
}

func validateRange(minV, maxV *int) error {
	if minV != nil && *minV < 0 {
		return ErrValidation
	}
	if maxV != nil && *maxV < 0 {
		return ErrValidation
	}
	if minV != nil && maxV != nil && *minV > *maxV {
		return ErrValidation
	}
	return nil
}
