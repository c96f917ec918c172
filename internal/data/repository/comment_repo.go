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

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	FindByID(ctx context.Context, id int64) (*entity.Comment, error)
	FindByReviewID(ctx context.Context, reviewID int64) ([]*entity.Comment, error)

	// UpdateOwned and DeleteOwned match on both id and author in one statement.
	UpdateOwned(ctx context.Context, id, userID int64, text string) (*entity.Comment, error)
	// DeleteOwned returns the parent review of the removed comment.
	DeleteOwned(ctx context.Context, id, userID int64) (int64, error)
}

type commentRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewCommentRepository(db database.Querier, log *zap.Logger) CommentRepository {
	return &commentRepository{
		db:  db,
		log: log.With(zap.String("repository", "comment")),
	}
}

const commentColumns = `
	c.id, c.user_id, c.review_id, c.comment, c.like_count, c.created_at, c.updated_at,
	u.username, u.profile_image
`

func scanComment(row pgx.Row) (*entity.Comment, error) {
	var comment entity.Comment
	err := row.Scan(
		&comment.ID,
		&comment.UserID,
		&comment.ReviewID,
		&comment.Comment,
		&comment.LikeCount,
		&comment.CreatedAt,
		&comment.UpdatedAt,
		&comment.Username,
		&comment.ProfileImage,
	)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	query := `
		INSERT INTO review_comments (user_id, review_id, comment)
		VALUES ($1, $2, $3)
		RETURNING id, like_count, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		comment.UserID,
		comment.ReviewID,
		comment.Comment,
	).Scan(&comment.ID, &comment.LikeCount, &comment.CreatedAt, &comment.UpdatedAt)

	if err != nil {
		err = classify(err)
		r.log.Warn("Failed to create comment",
			zap.Error(err),
			zap.Int64("user_id", comment.UserID),
			zap.Int64("review_id", comment.ReviewID),
		)
		return fmt.Errorf("create comment on review %d by user %d: %w", comment.ReviewID, comment.UserID, err)
	}

	return nil
}

func (r *commentRepository) FindByID(ctx context.Context, id int64) (*entity.Comment, error) {
	query := `SELECT ` + commentColumns + `
		FROM review_comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.id = $1
	`

	comment, err := scanComment(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find comment by ID", zap.Error(err), zap.Int64("comment_id", id))
		return nil, fmt.Errorf("find comment by ID %d: %w", id, err)
	}

	return comment, nil
}

func (r *commentRepository) FindByReviewID(ctx context.Context, reviewID int64) ([]*entity.Comment, error) {
	query := `SELECT ` + commentColumns + `
		FROM review_comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.review_id = $1
		ORDER BY c.created_at ASC, c.id ASC
	`

	rows, err := r.db.Query(ctx, query, reviewID)
	if err != nil {
		r.log.Error("Failed to find comments by review ID",
			zap.Error(err),
			zap.Int64("review_id", reviewID),
		)
		return nil, fmt.Errorf("find comments by review ID %d: %w", reviewID, err)
	}
	defer rows.Close()

	comments := make([]*entity.Comment, 0)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			r.log.Error("Failed to scan comment row", zap.Error(err))
			return nil, fmt.Errorf("scan comment row: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comment rows: %w", err)
	}

	return comments, nil
}

func (r *commentRepository) UpdateOwned(ctx context.Context, id, userID int64, text string) (*entity.Comment, error) {
	query := `
		WITH c AS (
			UPDATE review_comments
			SET comment = $3, updated_at = NOW()
			WHERE id = $1 AND user_id = $2
			RETURNING *
		)
		SELECT ` + commentColumns + `
		FROM c
		JOIN users u ON u.id = c.user_id
	`

	comment, err := scanComment(r.db.QueryRow(ctx, query, id, userID, text))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to update comment",
			zap.Error(err),
			zap.Int64("comment_id", id),
			zap.Int64("user_id", userID),
		)
		return nil, fmt.Errorf("update comment %d: %w", id, err)
	}

	return comment, nil
}

func (r *commentRepository) DeleteOwned(ctx context.Context, id, userID int64) (int64, error) {
	query := `DELETE FROM review_comments WHERE id = $1 AND user_id = $2 RETURNING review_id`

	var reviewID int64
	if err := r.db.QueryRow(ctx, query, id, userID).Scan(&reviewID); err != nil {
		err = classify(err)
		if !errors.Is(err, ErrNotFound) {
			r.log.Error("Failed to delete comment",
				zap.Error(err),
				zap.Int64("comment_id", id),
				zap.Int64("user_id", userID),
			)
		}
		return 0, fmt.Errorf("delete comment %d: %w", id, err)
	}

	return reviewID, nil
}
