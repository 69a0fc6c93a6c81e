package handlers

import (
	"net/http"

	"github.com/meetitmo/backend/internal/transport/http/dto"
	httperrors "github.com/meetitmo/backend/internal/transport/http/errors"
)

func Health(w http.ResponseWriter, _ *http.Request) {
	writeOK(w, dto.OKResponse{OK: true})
}

func NotFound(w http.ResponseWriter, _ *http.Request) {
	httperrors.Write(w, http.StatusNotFound, httperrors.APIError{
		Code:    httperrors.CodeNotFound,
		Message: "route not found",
	})
}
