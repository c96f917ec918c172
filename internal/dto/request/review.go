package request

type CreateReviewRequest struct {
	MenuItemID int64    `json:"menu_item_id" validate:"required,gt=0"`
	Rating     int      `json:"rating" validate:"required,min=1,max=5"`
	Comment    string   `json:"comment" validate:"max=2000"`
	Photos     []string `json:"photos" validate:"max=10,dive,url"`
}
