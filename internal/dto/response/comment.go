package response

import (
	"time"

	"menurate/internal/data/entity"
)

type CommentResponse struct {
	ID            int64     `json:"id"`
	ReviewID      int64     `json:"review_id"`
	UserID        int64     `json:"user_id"`
	Username      string    `json:"username"`
	ProfileImage  *string   `json:"profile_image"`
	Comment       string    `json:"comment"`
	LikeCount     int64     `json:"like_count"`
	LikedByViewer bool      `json:"liked_by_viewer"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateCommentResponse carries the parent review's comment_count after the insert.
type CreateCommentResponse struct {
	Comment      CommentResponse `json:"comment"`
	CommentCount int64           `json:"comment_count"`
}

func CommentToResponse(comment *entity.Comment, likedByViewer bool) CommentResponse {
	return CommentResponse{
		ID:            comment.ID,
		ReviewID:      comment.ReviewID,
		UserID:        comment.UserID,
		Username:      comment.Username,
		ProfileImage:  comment.ProfileImage,
		Comment:       comment.Comment,
		LikeCount:     comment.LikeCount,
		LikedByViewer: likedByViewer,
		CreatedAt:     comment.CreatedAt,
		UpdatedAt:     comment.UpdatedAt,
	}
}
