package entity

// Counter names a denormalized counter column. The set is closed; callers never
// pass table or column names.
type Counter int

const (
	CounterReviewLikes Counter = iota + 1
	CounterReviewComments
	CounterCommentLikes
)

func (c Counter) String() string {
	switch c {
	case CounterReviewLikes:
		return "reviews.like_count"
	case CounterReviewComments:
		return "reviews.comment_count"
	case CounterCommentLikes:
		return "review_comments.like_count"
	default:
		return "unknown"
	}
}

// CounterDrift reports a row whose stored counter disagrees with its ledger rows.
type CounterDrift struct {
	Counter  Counter
	ID       int64
	Stored   int64
	Computed int64
}
