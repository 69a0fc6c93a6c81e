package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meetitmo/backend/internal/config"
	"github.com/meetitmo/backend/internal/infra/logger"
	s3infra "github.com/meetitmo/backend/internal/infra/s3"
	pgrepo "github.com/meetitmo/backend/internal/repo/postgres"
	authsvc "github.com/meetitmo/backend/internal/services/auth"
	mediasvc "github.com/meetitmo/backend/internal/services/media"
	"github.com/meetitmo/backend/internal/seed"
)

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func openPool(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	pool, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN)
	if err != nil {
		return nil, err
	}
	if err := pgrepo.Ping(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the postgres schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			pool, err := openPool(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := pgrepo.Migrate(ctx, pool); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema applied")
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	var (
		count        int
		firstID      int64
		randomSeed   int64
		ensureBucket bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert generated test profiles",
		Long: `Generate fake profiles and upsert them into postgres.

Examples:
  matchctl seed --count 50
  matchctl seed --first-id 1001 --random-seed 7 --ensure-bucket`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.Log.Level, cfg.Env)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if ensureBucket {
				client, err := s3infra.NewClient(s3infra.Config{
					Endpoint:  cfg.S3.Endpoint,
					AccessKey: cfg.S3.AccessKey,
					SecretKey: cfg.S3.SecretKey,
					UseSSL:    cfg.S3.UseSSL,
				})
				if err != nil {
					return err
				}
				if err := mediasvc.NewBucketSigner(client, cfg.S3.Bucket).EnsureBucket(ctx); err != nil {
					return err
				}
			}

			pool, err := openPool(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			if cfg.Postgres.Migrate {
				if err := pgrepo.Migrate(ctx, pool); err != nil {
					return err
				}
			}

			profiles := pgrepo.NewProfileRepo(pool)
			items := seed.Profiles(seed.Options{
				Count:      count,
				FirstID:    firstID,
				Bucket:     cfg.S3.Bucket,
				RandomSeed: randomSeed,
			})
			for _, p := range items {
				if err := profiles.Upsert(ctx, p); err != nil {
					return fmt.Errorf("seed profile %d: %w", p.SubjectID, err)
				}
			}

			log.Info("profiles seeded",
				zap.Int("count", len(items)),
				zap.Int64("first_id", items[0].SubjectID),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d profiles\n", len(items))
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 10, "number of profiles to generate")
	cmd.Flags().Int64Var(&firstID, "first-id", 386871, "subject id of the first profile")
	cmd.Flags().Int64Var(&randomSeed, "random-seed", 0, "seed for reproducible output (0 = random)")
	cmd.Flags().BoolVar(&ensureBucket, "ensure-bucket", false, "create the media bucket when missing")

	return cmd
}

func tokenCmd() *cobra.Command {
	var subjectID int64

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print an access token for a subject id",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			token, expiresAt, err := authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL).GenerateAccessToken(subjectID)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires at %s\n", expiresAt.Format("2006-01-02T15:04:05Z07:00"))
			return nil
		},
	}

	cmd.Flags().Int64VarP(&subjectID, "subject", "s", 0, "subject id to put into the token")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}
