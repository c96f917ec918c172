package response

import (
	"time"

	"menurate/internal/data/entity"
)

type ReviewResponse struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	Username      string    `json:"username"`
	ProfileImage  *string   `json:"profile_image"`
	MenuItemID    int64     `json:"menu_item_id"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	Photos        []string  `json:"photos"`
	LikeCount     int64     `json:"like_count"`
	CommentCount  int64     `json:"comment_count"`
	LikedByViewer bool      `json:"liked_by_viewer"`
	CreatedAt     time.Time `json:"created_at"`
}

// Helper converter
func ReviewToResponse(review *entity.Review, likedByViewer bool) ReviewResponse {
	photos := review.Photos
	if photos == nil {
		photos = []string{}
	}

	return ReviewResponse{
		ID:            review.ID,
		UserID:        review.UserID,
		Username:      review.Username,
		ProfileImage:  review.ProfileImage,
		MenuItemID:    review.MenuItemID,
		Rating:        review.Rating,
		Comment:       review.Comment,
		Photos:        photos,
		LikeCount:     review.LikeCount,
		CommentCount:  review.CommentCount,
		LikedByViewer: likedByViewer,
		CreatedAt:     review.CreatedAt,
	}
}
