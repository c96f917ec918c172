package entity

type Comment struct {
	BaseNoDelete
	UserID    int64  `db:"user_id"`
	ReviewID  int64  `db:"review_id"`
	Comment   string `db:"comment"`
	LikeCount int64  `db:"like_count"`

	// Author display fields, filled by joined reads
	Username     string  `db:"username"`
	ProfileImage *string `db:"profile_image"`
}
