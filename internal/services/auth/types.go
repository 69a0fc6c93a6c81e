package auth

import (
	"errors"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
)

type AccessClaims struct {
	SubjectID int64
	TokenID   string
	ExpiresAt time.Time
}
