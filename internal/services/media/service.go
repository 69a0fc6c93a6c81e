package media

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/meetitmo/backend/internal/domain/model"
)

var ErrValidation = errors.New("validation error")

const defaultPresignTTL = time.Hour

type URLSigner interface {
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type Config struct {
	Bucket     string
	PresignTTL time.Duration
}

// Service turns stored media references into URLs a client can fetch.
// References are object keys, optionally prefixed with "<bucket>/".
type Service struct {
	signer URLSigner
	cfg    Config
	logger *zap.Logger
}

func NewService(signer URLSigner, cfg Config, logger *zap.Logger) *Service {
	if cfg.PresignTTL <= 0 {
		cfg.PresignTTL = defaultPresignTTL
	}
	cfg.Bucket = strings.Trim(strings.TrimSpace(cfg.Bucket), "/")
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		signer: signer,
		cfg:    cfg,
		logger: logger,
	}
}

// ObjectKey strips the bucket prefix and leading slashes from a stored reference.
func (s *Service) ObjectKey(ref string) string {
	key := strings.TrimLeft(strings.TrimSpace(ref), "/")
	if s.cfg.Bucket != "" {
		key = strings.TrimPrefix(key, s.cfg.Bucket+"/")
	}
	return key
}

// Resolve returns a presigned URL for ref. Absolute URLs, empty references and
// signing failures pass the reference through unchanged.
func (s *Service) Resolve(ctx context.Context, ref string) string {
	if s == nil || s.signer == nil || ref == "" || isAbsoluteURL(ref) {
		return ref
	}

	key := s.ObjectKey(ref)
	if key == "" {
		return ref
	}

	signed, err := s.signer.PresignGet(ctx, key, s.cfg.PresignTTL)
	if err != nil {
		s.logger.Warn("presign media reference failed", zap.String("key", key), zap.Error(err))
		return ref
	}
	return signed
}

// ResolveProfile returns a copy of p with logo and photos resolved.
func (s *Service) ResolveProfile(ctx context.Context, p model.UserProfile) model.UserProfile {
	out := p
	out.Logo = s.Resolve(ctx, p.Logo)
	if len(p.Photos) > 0 {
		out.Photos = make([]string, 0, len(p.Photos))
		for _, photo := range p.Photos {
			out.Photos = append(out.Photos, s.Resolve(ctx, photo))
		}
	}
	return out
}

func isAbsoluteURL(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
