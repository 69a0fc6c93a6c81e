// Package repo holds storage errors shared by the postgres and memory backends.
package repo

import "errors"

var (
	ErrNoCandidates         = errors.New("no candidates available")
	ErrConversationNotFound = errors.New("conversation not found")
)
