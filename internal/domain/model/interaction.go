package model

import (
	"time"

	"github.com/meetitmo/backend/internal/domain/enums"
)

type Interaction struct {
	ID        int64                 `json:"id"`
	ActorID   int64                 `json:"actor_id"`
	TargetID  int64                 `json:"target_id"`
	Kind      enums.InteractionKind `json:"kind"`
	CreatedAt time.Time             `json:"created_at"`
}
