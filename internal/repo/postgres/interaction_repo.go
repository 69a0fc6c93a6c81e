package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meetitmo/backend/internal/domain/enums"
	"github.com/meetitmo/backend/internal/domain/model"
)

// InteractionRepo is the append-only ledger of like, dislike and superlike records.
type InteractionRepo struct {
	pool *pgxpool.Pool
}

func NewInteractionRepo(pool *pgxpool.Pool) *InteractionRepo {
	return &InteractionRepo{pool: pool}
}

func (r *InteractionRepo) Record(ctx context.Context, actorID, targetID int64, kind enums.InteractionKind, at time.Time) (model.Interaction, error) {
	if actorID <= 0 || targetID <= 0 || !kind.Valid() {
		return model.Interaction{}, fmt.Errorf("invalid interaction payload")
	}
	if r.pool == nil {
		return model.Interaction{}, errNilPool
	}
	if at.IsZero() {
		at = time.Now().UTC()
	}

	item := model.Interaction{
		ActorID:  actorID,
		TargetID: targetID,
		Kind:     kind,
	}
	if err := r.pool.QueryRow(ctx, `
INSERT INTO interactions (actor_id, target_id, kind, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at
`, actorID, targetID, string(kind), at.UTC()).Scan(&item.ID, &item.CreatedAt); err != nil {
		return model.Interaction{}, fmt.Errorf("record interaction: %w", err)
	}

	return item, nil
}

// HasLikeType reports whether actorID has ever liked or superliked targetID.
func (r *InteractionRepo) HasLikeType(ctx context.Context, actorID, targetID int64) (bool, error) {
	if actorID <= 0 || targetID <= 0 {
		return false, fmt.Errorf("invalid interaction payload")
	}
	if r.pool == nil {
		return false, errNilPool
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, `
SELECT EXISTS (
	SELECT 1
	FROM interactions
	WHERE actor_id = $1
		AND target_id = $2
		AND kind = ANY($3::text[])
)
`, actorID, targetID, enums.LikeTypeKinds()).Scan(&exists); err != nil {
		return false, fmt.Errorf("check like-type interaction: %w", err)
	}

	return exists, nil
}

// ListTargets returns every distinct user actorID has recorded an interaction on.
func (r *InteractionRepo) ListTargets(ctx context.Context, actorID int64) ([]int64, error) {
	if actorID <= 0 {
		return nil, fmt.Errorf("invalid actor id")
	}
	if r.pool == nil {
		return nil, errNilPool
	}

	return r.collectIDs(ctx, `
SELECT DISTINCT target_id
FROM interactions
WHERE actor_id = $1
ORDER BY target_id
`, actorID)
}

// ListLikers returns users with a like-type record on targetID, most recent first.
func (r *InteractionRepo) ListLikers(ctx context.Context, targetID int64) ([]int64, error) {
	if targetID <= 0 {
		return nil, fmt.Errorf("invalid target id")
	}
	if r.pool == nil {
		return nil, errNilPool
	}

	return r.collectIDs(ctx, `
SELECT actor_id
FROM interactions
WHERE target_id = $1
	AND kind = ANY($2::text[])
GROUP BY actor_id
ORDER BY MAX(created_at) DESC, actor_id
`, targetID, enums.LikeTypeKinds())
}

func (r *InteractionRepo) collectIDs(ctx context.Context, query string, args ...any) ([]int64, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query interactions: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan interaction user id: %w", err)
		}
		ids = append(ids, id)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate interactions: %w", rows.Err())
	}

	return ids, nil
}
