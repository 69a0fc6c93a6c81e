package dto

import (
	"time"

	"github.com/meetitmo/backend/internal/domain/model"
)

type ConversationDTO struct {
	ConversationID string    `json:"conversationId"`
	PeerID         int64     `json:"peerId"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

type ConversationListResponse struct {
	Items []ConversationDTO `json:"items"`
}

// ConversationsFromModel renders conversations from viewerID's side.
func ConversationsFromModel(viewerID int64, items []model.Conversation) []ConversationDTO {
	out := make([]ConversationDTO, 0, len(items))
	for _, c := range items {
		out = append(out, ConversationDTO{
			ConversationID: c.ID,
			PeerID:         c.Peer(viewerID),
			Status:         string(c.Status),
			CreatedAt:      c.CreatedAt,
		})
	}
	return out
}
