package repository

import (
	"context"
	"errors"
	"fmt"

	"menurate/internal/data/entity"
	"menurate/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id int64) (*entity.Review, error)
	FindByMenuItemID(ctx context.Context, menuItemID int64, limit, offset int) ([]*entity.Review, error)
	CountByMenuItemID(ctx context.Context, menuItemID int64) (int64, error)

	// DeleteOwned removes the review only when it belongs to userID, in one statement.
	DeleteOwned(ctx context.Context, id, userID int64) (bool, error)
}

type reviewRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewReviewRepository(db database.Querier, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

const reviewColumns = `
	r.id, r.user_id, r.menu_item_id, r.rating, r.comment, r.photos,
	r.like_count, r.comment_count, r.created_at, u.username, u.profile_image
`

func scanReview(row pgx.Row) (*entity.Review, error) {
	var review entity.Review
	err := row.Scan(
		&review.ID,
		&review.UserID,
		&review.MenuItemID,
		&review.Rating,
		&review.Comment,
		&review.Photos,
		&review.LikeCount,
		&review.CommentCount,
		&review.CreatedAt,
		&review.Username,
		&review.ProfileImage,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (user_id, menu_item_id, rating, comment, photos)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, like_count, comment_count, created_at
	`

	photos := review.Photos
	if photos == nil {
		photos = []string{}
	}

	err := r.db.QueryRow(ctx, query,
		review.UserID,
		review.MenuItemID,
		review.Rating,
		review.Comment,
		photos,
	).Scan(&review.ID, &review.LikeCount, &review.CommentCount, &review.CreatedAt)

	if err != nil {
		err = classify(err)
		r.log.Warn("Failed to create review",
			zap.Error(err),
			zap.Int64("user_id", review.UserID),
			zap.Int64("menu_item_id", review.MenuItemID),
		)
		return fmt.Errorf("create review for menu item %d by user %d: %w",
			review.MenuItemID, review.UserID, err)
	}

	review.Photos = photos
	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id int64) (*entity.Review, error) {
	query := `SELECT ` + reviewColumns + `
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.id = $1
	`

	review, err := scanReview(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID",
			zap.Error(err),
			zap.Int64("review_id", id),
		)
		return nil, fmt.Errorf("find review by ID %d: %w", id, err)
	}

	return review, nil
}

func (r *reviewRepository) FindByMenuItemID(ctx context.Context, menuItemID int64, limit, offset int) ([]*entity.Review, error) {
	query := `SELECT ` + reviewColumns + `
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.menu_item_id = $1
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, menuItemID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reviews by menu item ID",
			zap.Error(err),
			zap.Int64("menu_item_id", menuItemID),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find reviews by menu item ID %d: %w", menuItemID, err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	return reviews, nil
}

func (r *reviewRepository) CountByMenuItemID(ctx context.Context, menuItemID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM reviews WHERE menu_item_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, menuItemID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count reviews by menu item ID",
			zap.Error(err),
			zap.Int64("menu_item_id", menuItemID),
		)
		return 0, fmt.Errorf("count reviews by menu item ID %d: %w", menuItemID, err)
	}

	return count, nil
}

func (r *reviewRepository) DeleteOwned(ctx context.Context, id, userID int64) (bool, error) {
	query := `DELETE FROM reviews WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.Int64("review_id", id),
			zap.Int64("user_id", userID),
		)
		return false, fmt.Errorf("delete review %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return false, nil
	}

	r.log.Info("Review deleted", zap.Int64("review_id", id), zap.Int64("user_id", userID))
	return true, nil
}
