package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	authsvc "github.com/meetitmo/backend/internal/services/auth"
	ratesvc "github.com/meetitmo/backend/internal/services/rate"
	httperrors "github.com/meetitmo/backend/internal/transport/http/errors"
)

const maxBodyBytes = 1 << 16

func decodeJSON(r *http.Request, target any) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return err
	}
	if decoder.More() {
		return errors.New("unexpected trailing data")
	}
	return nil
}

func requireIdentity(w http.ResponseWriter, r *http.Request) (authsvc.Identity, bool) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, httperrors.CodeUnauthorized, "authentication required")
		return authsvc.Identity{}, false
	}
	return identity, true
}

func writeOK(w http.ResponseWriter, payload any) {
	httperrors.Write(w, http.StatusOK, payload)
}

func writeBadRequest(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusBadRequest, httperrors.APIError{Code: code, Message: message})
}

func writeUnauthorized(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusUnauthorized, httperrors.APIError{Code: code, Message: message})
}

func writeNotFound(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusNotFound, httperrors.APIError{Code: code, Message: message})
}

func writeTooFast(w http.ResponseWriter, tf *ratesvc.TooFastError) {
	w.Header().Set("Retry-After", strconv.FormatInt(tf.RetryAfter(), 10))
	httperrors.Write(w, http.StatusTooManyRequests, httperrors.RateLimitError{
		Code:          httperrors.CodeTooFast,
		Message:       "too many like actions, slow down",
		RetryAfterSec: tf.RetryAfter(),
	})
}

// writeStorageFailure logs err and answers 503 so clients retry later.
func writeStorageFailure(w http.ResponseWriter, log *zap.Logger, op string, err error) {
	if log != nil {
		log.Error(op+" failed", zap.Error(err))
	}
	httperrors.Write(w, http.StatusServiceUnavailable, httperrors.APIError{
		Code:    httperrors.CodeStorageFailure,
		Message: "temporary storage failure, try again",
	})
}

func nopIfNil(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
