package errors

import (
	"encoding/json"
	"net/http"
)

const (
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeNoCandidates         = "NO_CANDIDATES"
	CodeConversationNotFound = "CONVERSATION_NOT_FOUND"
	CodeTooFast              = "TOO_FAST"
	CodeStorageFailure       = "STORAGE_FAILURE"
	CodeNotFound             = "NOT_FOUND"
)

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RateLimitError struct {
	Code          string `json:"code"`
	Message       string `json:"message"`
	RetryAfterSec int64  `json:"retry_after_sec"`
}

func Write(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
