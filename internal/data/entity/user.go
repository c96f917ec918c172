package entity

// User is the profile collaborator. The ledger only reads display fields and
// writes the gamification counters.
type User struct {
	ID            int64   `db:"id"`
	Username      string  `db:"username"`
	ProfileImage  *string `db:"profile_image"`
	Points        int64   `db:"points"`
	LikesReceived int64   `db:"likes_received"`
}
