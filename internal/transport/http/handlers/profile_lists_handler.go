package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	matchsvc "github.com/meetitmo/backend/internal/services/matching"
	"github.com/meetitmo/backend/internal/transport/http/dto"
	httperrors "github.com/meetitmo/backend/internal/transport/http/errors"
)

type ListsHandler struct {
	service *matchsvc.Service
	logger  *zap.Logger
}

func NewListsHandler(service *matchsvc.Service, logger *zap.Logger) *ListsHandler {
	return &ListsHandler{service: service, logger: nopIfNil(logger)}
}

func (h *ListsHandler) LikedMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	items, err := h.service.LikedMe(r.Context(), identity.SubjectID)
	if err != nil {
		if errors.Is(err, matchsvc.ErrValidation) {
			writeBadRequest(w, httperrors.CodeInvalidRequest, "invalid user")
			return
		}
		writeStorageFailure(w, h.logger, "liked me", err)
		return
	}

	writeOK(w, dto.ProfileListResponse{Items: dto.ProfilesFromModel(items)})
}

func (h *ListsHandler) Conversations(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	items, err := h.service.Conversations(r.Context(), identity.SubjectID)
	if err != nil {
		if errors.Is(err, matchsvc.ErrValidation) {
			writeBadRequest(w, httperrors.CodeInvalidRequest, "invalid user")
			return
		}
		writeStorageFailure(w, h.logger, "list conversations", err)
		return
	}

	writeOK(w, dto.ConversationListResponse{Items: dto.ConversationsFromModel(identity.SubjectID, items)})
}
