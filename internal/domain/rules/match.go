package rules

import "github.com/meetitmo/backend/internal/domain/enums"

// PairState is the relationship between two users as seen by the matching core.
type PairState int

const (
	PairUnseen PairState = iota
	PairOneSided
	PairMatched
)

func (s PairState) String() string {
	switch s {
	case PairUnseen:
		return "unseen"
	case PairOneSided:
		return "one_sided"
	case PairMatched:
		return "matched"
	default:
		return "unknown"
	}
}

// Decision is what the caller must do after recording an interaction.
type Decision struct {
	Matched            bool
	EnsureConversation bool
}

// NeedsReciprocity reports whether deciding on kind requires a ledger lookup.
func NeedsReciprocity(kind enums.InteractionKind) bool {
	return kind == enums.InteractionKindLike
}

// Decide maps a freshly recorded interaction and the reciprocity lookup onto an outcome.
// Superlikes always open a conversation; dislikes never do.
func Decide(kind enums.InteractionKind, reciprocal bool) Decision {
	switch kind {
	case enums.InteractionKindLike:
		return Decision{
			Matched:            reciprocal,
			EnsureConversation: reciprocal,
		}
	case enums.InteractionKindSuperLike:
		return Decision{
			Matched:            true,
			EnsureConversation: true,
		}
	default:
		return Decision{}
	}
}

// StateOf classifies a pair from the like-type edges in both directions and whether
// a conversation exists.
func StateOf(aLikesB, bLikesA, hasConversation bool) PairState {
	switch {
	case hasConversation:
		return PairMatched
	case aLikesB && bLikesA:
		return PairMatched
	case aLikesB || bLikesA:
		return PairOneSided
	default:
		return PairUnseen
	}
}
