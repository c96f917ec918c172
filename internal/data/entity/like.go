package entity

// LikeKind identifies which ledger a like row belongs to.
type LikeKind string

const (
	LikeKindReview  LikeKind = "review"
	LikeKindComment LikeKind = "comment"
)

func (k LikeKind) Valid() bool {
	return k == LikeKindReview || k == LikeKindComment
}

// LikeState is the outcome of a toggle.
type LikeState struct {
	LikeCount int64
	Liked     bool
	// Changed is false when a racing request had already produced this state.
	Changed bool
	OwnerID int64
}
