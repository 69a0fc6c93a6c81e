package dto

type InteractionRequest struct {
	TargetID int64 `json:"target_id"`
}

type MatchResponse struct {
	Matched        bool   `json:"matched"`
	ConversationID string `json:"conversationId,omitempty"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}
