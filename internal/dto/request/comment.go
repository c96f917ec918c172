package request

import "strings"

// Comment length is counted after surrounding whitespace is trimmed.
type CreateCommentRequest struct {
	Comment string `json:"comment" validate:"notblank,max=500"`
}

// Normalize trims the text. Call it before validating.
func (r *CreateCommentRequest) Normalize() {
	r.Comment = strings.TrimSpace(r.Comment)
}

type UpdateCommentRequest struct {
	Comment string `json:"comment" validate:"notblank,max=500"`
}

func (r *UpdateCommentRequest) Normalize() {
	r.Comment = strings.TrimSpace(r.Comment)
}
