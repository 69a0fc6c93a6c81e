package enums

type InteractionKind string

const (
	InteractionKindLike      InteractionKind = "like"
	InteractionKindDislike   InteractionKind = "dislike"
	InteractionKindSuperLike InteractionKind = "superlike"
)

// IsLikeType reports whether the kind counts as positive interest for reciprocity checks.
func (k InteractionKind) IsLikeType() bool {
	return k == InteractionKindLike || k == InteractionKindSuperLike
}

func (k InteractionKind) Valid() bool {
	switch k {
	case InteractionKindLike, InteractionKindDislike, InteractionKindSuperLike:
		return true
	default:
		return false
	}
}

// LikeTypeKinds is the set used by reciprocity and "liked me" lookups.
func LikeTypeKinds() []string {
	return []string{string(InteractionKindLike), string(InteractionKindSuperLike)}
}
