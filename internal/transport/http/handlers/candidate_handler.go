package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/meetitmo/backend/internal/domain/model"
	candsvc "github.com/meetitmo/backend/internal/services/candidates"
	"github.com/meetitmo/backend/internal/transport/http/dto"
	httperrors "github.com/meetitmo/backend/internal/transport/http/errors"
)

type CandidateHandler struct {
	service *candsvc.Service
	logger  *zap.Logger
}

func NewCandidateHandler(service *candsvc.Service, logger *zap.Logger) *CandidateHandler {
	return &CandidateHandler{service: service, logger: nopIfNil(logger)}
}

func (h *CandidateHandler) RandomPerson(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	filters, err := parseCandidateFilters(r.URL.Query())
	if err != nil {
		writeBadRequest(w, httperrors.CodeInvalidRequest, err.Error())
		return
	}

	profile, err := h.service.Select(r.Context(), identity.SubjectID, filters)
	if err != nil {
		switch {
		case errors.Is(err, candsvc.ErrValidation):
			writeBadRequest(w, httperrors.CodeInvalidRequest, "invalid candidate filters")
		case errors.Is(err, candsvc.ErrNotFound):
			writeNotFound(w, httperrors.CodeNoCandidates, "no more persons available")
		default:
			writeStorageFailure(w, h.logger, "select candidate", err)
		}
		return
	}

	writeOK(w, dto.CandidateResponse{Profile: dto.ProfileFromModel(profile)})
}

func parseCandidateFilters(q url.Values) (model.CandidateFilters, error) {
	filters := model.CandidateFilters{
		Gender: strings.TrimSpace(q.Get("gender")),
	}

	bounds := []struct {
		key    string
		target **int
	}{
		{key: "age_min", target: &filters.AgeMin},
		{key: "age_max", target: &filters.AgeMax},
		{key: "height_min", target: &filters.HeightMin},
		{key: "height_max", target: &filters.HeightMax},
	}
	for _, b := range bounds {
		raw := strings.TrimSpace(q.Get(b.key))
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return model.CandidateFilters{}, errors.New(b.key + " must be a non-negative integer")
		}
		*b.target = &v
	}

	for _, raw := range q["relationship"] {
		for _, part := range strings.Split(raw, ",") {
			if v := strings.TrimSpace(part); v != "" {
				filters.RelationshipPreferences = append(filters.RelationshipPreferences, v)
			}
		}
	}

	return filters, nil
}
