package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/meetitmo/backend/internal/config"
	s3infra "github.com/meetitmo/backend/internal/infra/s3"
	"github.com/meetitmo/backend/internal/repo/memory"
	pgrepo "github.com/meetitmo/backend/internal/repo/postgres"
	redrepo "github.com/meetitmo/backend/internal/repo/redis"
	authsvc "github.com/meetitmo/backend/internal/services/auth"
	candsvc "github.com/meetitmo/backend/internal/services/candidates"
	convsvc "github.com/meetitmo/backend/internal/services/conversations"
	matchsvc "github.com/meetitmo/backend/internal/services/matching"
	mediasvc "github.com/meetitmo/backend/internal/services/media"
	ratesvc "github.com/meetitmo/backend/internal/services/rate"
)

const s3ProbeTimeout = 3 * time.Second

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	s3         *minio.Client
	httpRouter http.Handler
}

type stores struct {
	profiles      candsvc.Store
	likers        matchsvc.ProfileStore
	interactions  matchsvc.InteractionStore
	conversations convsvc.Store
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log, cfg.HTTP.RequestTimeout, cfg.CORS.AllowedOrigins)

	var (
		pool *pgxpool.Pool
		st   stores
	)
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		log.Info("using in-memory storage")
		st = memoryStores(memory.NewStore())
	default:
		p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN)
		if err != nil {
			log.Error("postgres init failed, storage calls will answer 503", zap.Error(err))
		} else {
			pool = p
			if cfg.Postgres.Migrate {
				if err := pgrepo.Migrate(ctx, pool); err != nil {
					log.Warn("postgres migrate failed", zap.Error(err))
				}
			}
		}
		st = postgresStores(pool)
	}

	var limiter matchsvc.RateLimiter
	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := redrepo.Ping(ctx, redisClient); err != nil {
		log.Warn("redis unavailable, like rate limiting disabled", zap.Error(err))
	} else {
		limiter = ratesvc.NewLimiter(redrepo.NewRateRepo(redisClient), cfg.Limits.LikesPerMinute, cfg.Limits.LikesPer10Sec)
	}

	var (
		s3Client *minio.Client
		signer   mediasvc.URLSigner
	)
	if c, err := s3infra.NewClient(s3infra.Config{
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		UseSSL:    cfg.S3.UseSSL,
	}); err != nil {
		log.Warn("s3 init failed, media references are returned unsigned", zap.Error(err))
	} else {
		s3Client = c
		signer = mediasvc.NewBucketSigner(s3Client, cfg.S3.Bucket)

		probeCtx, cancel := context.WithTimeout(ctx, s3ProbeTimeout)
		if err := s3infra.Probe(probeCtx, s3Client, cfg.S3.Bucket); err != nil {
			log.Warn("s3 bucket probe failed, presigned links may not resolve", zap.Error(err))
		}
		cancel()
	}
	mediaService := mediasvc.NewService(signer, mediasvc.Config{
		Bucket:     cfg.S3.Bucket,
		PresignTTL: cfg.S3.PresignTTL,
	}, log)

	conversationService := convsvc.NewService(st.conversations, log)
	candidateService := candsvc.NewService(st.profiles, mediaService, log)
	matchingService := matchsvc.NewService(matchsvc.Dependencies{
		Interactions:  st.interactions,
		Profiles:      st.likers,
		Conversations: conversationService,
		RateLimiter:   limiter,
		Media:         mediaService,
		Logger:        log,
	}, matchsvc.Config{
		SuperlikeBackfill: cfg.Matching.SuperlikeBackfill,
	})

	RegisterRoutes(r, Dependencies{
		Tokens:           authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL),
		CandidateService: candidateService,
		MatchingService:  matchingService,
		Logger:           log,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		s3:         s3Client,
		httpRouter: r,
	}, nil
}

func memoryStores(store *memory.Store) stores {
	return stores{
		profiles:      store.Profiles(),
		likers:        store.Profiles(),
		interactions:  store.Interactions(),
		conversations: store.Conversations(),
	}
}

func postgresStores(pool *pgxpool.Pool) stores {
	profiles := pgrepo.NewProfileRepo(pool)
	return stores{
		profiles:      profiles,
		likers:        profiles,
		interactions:  pgrepo.NewInteractionRepo(pool),
		conversations: pgrepo.NewConversationRepo(pool),
	}
}

func (a *App) Run() error {
	a.logger.Info("api server started",
		zap.String("addr", a.cfg.HTTP.Addr),
		zap.String("storage", a.cfg.Storage.Driver),
	)
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
