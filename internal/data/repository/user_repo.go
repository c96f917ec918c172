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

// UserRepository covers the profile collaborator as seen from the ledger:
// display lookups and the gamification counters.
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	Credit(ctx context.Context, userID, amount int64) error
	AdjustLikesReceived(ctx context.Context, userID, delta int64) error
}

type userRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewUserRepository(db database.Querier, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

func (ur *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	query := `
		SELECT id, username, profile_image, points, likes_received
		FROM users
		WHERE id = $1
	`

	var user entity.User
	err := ur.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.ProfileImage,
		&user.Points,
		&user.LikesReceived,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by ID", zap.Error(err), zap.Int64("user_id", id))
		return nil, fmt.Errorf("find user by ID %d: %w", id, err)
	}

	return &user, nil
}

// Credit adds gamification points to a user.
func (ur *userRepository) Credit(ctx context.Context, userID, amount int64) error {
	query := `UPDATE users SET points = GREATEST(0, points + $2) WHERE id = $1`

	result, err := ur.db.Exec(ctx, query, userID, amount)
	if err != nil {
		ur.log.Error("Failed to credit user",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int64("amount", amount),
		)
		return fmt.Errorf("credit user %d: %w", userID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("credit user %d: %w", userID, ErrNotFound)
	}

	return nil
}

func (ur *userRepository) AdjustLikesReceived(ctx context.Context, userID, delta int64) error {
	query := `UPDATE users SET likes_received = GREATEST(0, likes_received + $2) WHERE id = $1`

	result, err := ur.db.Exec(ctx, query, userID, delta)
	if err != nil {
		ur.log.Error("Failed to adjust likes received",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int64("delta", delta),
		)
		return fmt.Errorf("adjust likes received for user %d: %w", userID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("adjust likes received for user %d: %w", userID, ErrNotFound)
	}

	return nil
}
