package handlers

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	matchsvc "github.com/meetitmo/backend/internal/services/matching"
	ratesvc "github.com/meetitmo/backend/internal/services/rate"
	"github.com/meetitmo/backend/internal/transport/http/dto"
	httperrors "github.com/meetitmo/backend/internal/transport/http/errors"
)

type InteractionHandler struct {
	service *matchsvc.Service
	logger  *zap.Logger
}

func NewInteractionHandler(service *matchsvc.Service, logger *zap.Logger) *InteractionHandler {
	return &InteractionHandler{service: service, logger: nopIfNil(logger)}
}

func (h *InteractionHandler) Like(w http.ResponseWriter, r *http.Request) {
	h.handleMatch(w, r, "like", h.service.Like)
}

func (h *InteractionHandler) Superlike(w http.ResponseWriter, r *http.Request) {
	h.handleMatch(w, r, "superlike", h.service.Superlike)
}

func (h *InteractionHandler) Dislike(w http.ResponseWriter, r *http.Request) {
	actorID, targetID, ok := h.readPair(w, r)
	if !ok {
		return
	}

	if err := h.service.Dislike(r.Context(), actorID, targetID); err != nil {
		h.writeError(w, "dislike", err)
		return
	}

	writeOK(w, dto.OKResponse{OK: true})
}

func (h *InteractionHandler) Block(w http.ResponseWriter, r *http.Request) {
	actorID, targetID, ok := h.readPair(w, r)
	if !ok {
		return
	}

	if err := h.service.Block(r.Context(), actorID, targetID); err != nil {
		if errors.Is(err, matchsvc.ErrConversationNotFound) {
			writeNotFound(w, httperrors.CodeConversationNotFound, "conversation not found or user already blocked")
			return
		}
		h.writeError(w, "block", err)
		return
	}

	writeOK(w, dto.OKResponse{OK: true})
}

func (h *InteractionHandler) handleMatch(
	w http.ResponseWriter,
	r *http.Request,
	op string,
	fn func(ctx context.Context, actorID, targetID int64) (matchsvc.Result, error),
) {
	actorID, targetID, ok := h.readPair(w, r)
	if !ok {
		return
	}

	result, err := fn(r.Context(), actorID, targetID)
	if err != nil {
		h.writeError(w, op, err)
		return
	}

	writeOK(w, dto.MatchResponse{
		Matched:        result.Matched,
		ConversationID: result.ConversationID,
	})
}

func (h *InteractionHandler) readPair(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return 0, 0, false
	}

	var req dto.InteractionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, httperrors.CodeInvalidRequest, "invalid request body")
		return 0, 0, false
	}
	if req.TargetID <= 0 {
		writeBadRequest(w, httperrors.CodeInvalidRequest, "target_id is required")
		return 0, 0, false
	}
	if req.TargetID == identity.SubjectID {
		writeBadRequest(w, httperrors.CodeInvalidRequest, "cannot interact with yourself")
		return 0, 0, false
	}

	return identity.SubjectID, req.TargetID, true
}

func (h *InteractionHandler) writeError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, matchsvc.ErrValidation) {
		writeBadRequest(w, httperrors.CodeInvalidRequest, "invalid "+op+" request")
		return
	}
	if tf, ok := ratesvc.IsTooFast(err); ok {
		writeTooFast(w, tf)
		return
	}
	writeStorageFailure(w, h.logger, op, err)
}
