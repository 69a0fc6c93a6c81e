package model

import (
	"time"

	"github.com/meetitmo/backend/internal/domain/enums"
)

// Conversation participants are stored with UserLowID < UserHighID.
type Conversation struct {
	ID         string                   `json:"id"`
	UserLowID  int64                    `json:"user_low_id"`
	UserHighID int64                    `json:"user_high_id"`
	Status     enums.ConversationStatus `json:"status"`
	CreatedAt  time.Time                `json:"created_at"`
}

func (c Conversation) Peer(userID int64) int64 {
	if c.UserLowID == userID {
		return c.UserHighID
	}
	return c.UserLowID
}

func CanonicalPair(a, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}
