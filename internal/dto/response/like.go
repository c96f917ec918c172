package response

type LikeResponse struct {
	LikeCount int64 `json:"like_count"`
	Liked     bool  `json:"liked"`
}
