package entity

type Review struct {
	BaseSimple
	UserID       int64    `db:"user_id"`
	MenuItemID   int64    `db:"menu_item_id"`
	Rating       int      `db:"rating"` // 1-5
	Comment      string   `db:"comment"`
	Photos       []string `db:"photos"`
	LikeCount    int64    `db:"like_count"`
	CommentCount int64    `db:"comment_count"`

	// Author display fields, filled by joined reads
	Username     string  `db:"username"`
	ProfileImage *string `db:"profile_image"`
}
