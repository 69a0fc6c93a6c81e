package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meetitmo/backend/internal/domain/enums"
	"github.com/meetitmo/backend/internal/domain/model"
	"github.com/meetitmo/backend/internal/repo"
)

type ConversationRepo struct {
	pool *pgxpool.Pool
}

func NewConversationRepo(pool *pgxpool.Pool) *ConversationRepo {
	return &ConversationRepo{pool: pool}
}

// Ensure finds or creates the conversation for the unordered pair in one statement.
// The unique (user_low_id, user_high_id) constraint arbitrates concurrent callers;
// the candidate id is only used when the row is inserted.
func (r *ConversationRepo) Ensure(ctx context.Context, userA, userB int64, candidateID string, at time.Time) (model.Conversation, bool, error) {
	if userA <= 0 || userB <= 0 || userA == userB || candidateID == "" {
		return model.Conversation{}, false, fmt.Errorf("invalid conversation payload")
	}
	if r.pool == nil {
		return model.Conversation{}, false, errNilPool
	}
	if at.IsZero() {
		at = time.Now().UTC()
	}

	low, high := model.CanonicalPair(userA, userB)

	var (
		item     model.Conversation
		status   string
		inserted bool
	)
	if err := r.pool.QueryRow(ctx, `
INSERT INTO conversations (id, user_low_id, user_high_id, status, created_at)
VALUES ($1::uuid, $2, $3, 'active', $4)
ON CONFLICT (user_low_id, user_high_id) DO UPDATE SET
	status = 'active'
RETURNING id::text, user_low_id, user_high_id, status, created_at, (xmax = 0) AS inserted
`, candidateID, low, high, at.UTC()).Scan(
		&item.ID,
		&item.UserLowID,
		&item.UserHighID,
		&status,
		&item.CreatedAt,
		&inserted,
	); err != nil {
		return model.Conversation{}, false, fmt.Errorf("ensure conversation: %w", err)
	}
	item.Status = enums.ConversationStatus(status)

	return item, inserted, nil
}

func (r *ConversationRepo) Delete(ctx context.Context, userA, userB int64) error {
	if userA <= 0 || userB <= 0 || userA == userB {
		return fmt.Errorf("invalid conversation payload")
	}
	if r.pool == nil {
		return errNilPool
	}

	low, high := model.CanonicalPair(userA, userB)
	tag, err := r.pool.Exec(ctx, `
DELETE FROM conversations
WHERE user_low_id = $1
	AND user_high_id = $2
`, low, high)
	if err != nil {
		return fmt.Errorf("delete conversation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrConversationNotFound
	}

	return nil
}

func (r *ConversationRepo) ListForUser(ctx context.Context, userID int64) ([]model.Conversation, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return nil, errNilPool
	}

	rows, err := r.pool.Query(ctx, `
SELECT id::text, user_low_id, user_high_id, status, created_at
FROM conversations
WHERE user_low_id = $1
	OR user_high_id = $1
ORDER BY created_at DESC, id
`, userID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer rows.Close()

	items := make([]model.Conversation, 0)
	for rows.Next() {
		item, err := scanConversation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		items = append(items, item)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate conversations: %w", rows.Err())
	}

	return items, nil
}

func scanConversation(row pgx.Row) (model.Conversation, error) {
	var (
		item   model.Conversation
		status string
	)
	if err := row.Scan(&item.ID, &item.UserLowID, &item.UserHighID, &status, &item.CreatedAt); err != nil {
		return model.Conversation{}, err
	}
	item.Status = enums.ConversationStatus(status)
	return item, nil
}
