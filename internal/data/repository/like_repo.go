package repository

import (
	"context"
	"fmt"

	"menurate/internal/data/entity"
	"menurate/pkg/database"

	"go.uber.org/zap"
)

type LikeRepository interface {
	Exists(ctx context.Context, kind entity.LikeKind, userID, targetID int64) (bool, error)
	// Insert reports false when the row already existed.
	Insert(ctx context.Context, kind entity.LikeKind, userID, targetID int64) (bool, error)
	// Delete reports false when there was no row to remove.
	Delete(ctx context.Context, kind entity.LikeKind, userID, targetID int64) (bool, error)

	// LikedTargets returns the subset of targetIDs the user has liked, in one query.
	LikedTargets(ctx context.Context, kind entity.LikeKind, userID int64, targetIDs []int64) (map[int64]bool, error)
}

type likeTable struct {
	table  string
	column string
}

var likeTables = map[entity.LikeKind]likeTable{
	entity.LikeKindReview:  {table: "review_likes", column: "review_id"},
	entity.LikeKindComment: {table: "comment_likes", column: "comment_id"},
}

type likeRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewLikeRepository(db database.Querier, log *zap.Logger) LikeRepository {
	return &likeRepository{
		db:  db,
		log: log.With(zap.String("repository", "like")),
	}
}

func tableFor(kind entity.LikeKind) (likeTable, error) {
	t, ok := likeTables[kind]
	if !ok {
		return likeTable{}, fmt.Errorf("unknown like kind %q", kind)
	}
	return t, nil
}

func (r *likeRepository) Exists(ctx context.Context, kind entity.LikeKind, userID, targetID int64) (bool, error) {
	t, err := tableFor(kind)
	if err != nil {
		return false, err
	}

	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE user_id = $1 AND %s = $2)`, t.table, t.column)

	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, targetID).Scan(&exists); err != nil {
		r.log.Error("Failed to check like",
			zap.Error(err),
			zap.String("kind", string(kind)),
			zap.Int64("user_id", userID),
			zap.Int64("target_id", targetID),
		)
		return false, fmt.Errorf("check %s like %d by user %d: %w", kind, targetID, userID, err)
	}

	return exists, nil
}

func (r *likeRepository) Insert(ctx context.Context, kind entity.LikeKind, userID, targetID int64) (bool, error) {
	t, err := tableFor(kind)
	if err != nil {
		return false, err
	}

	query := fmt.Sprintf(`
		INSERT INTO %[1]s (user_id, %[2]s)
		VALUES ($1, $2)
		ON CONFLICT (user_id, %[2]s) DO NOTHING
	`, t.table, t.column)

	result, err := r.db.Exec(ctx, query, userID, targetID)
	if err != nil {
		err = classify(err)
		r.log.Warn("Failed to insert like",
			zap.Error(err),
			zap.String("kind", string(kind)),
			zap.Int64("user_id", userID),
			zap.Int64("target_id", targetID),
		)
		return false, fmt.Errorf("insert %s like %d by user %d: %w", kind, targetID, userID, err)
	}

	return result.RowsAffected() == 1, nil
}

func (r *likeRepository) Delete(ctx context.Context, kind entity.LikeKind, userID, targetID int64) (bool, error) {
	t, err := tableFor(kind)
	if err != nil {
		return false, err
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1 AND %s = $2`, t.table, t.column)

	result, err := r.db.Exec(ctx, query, userID, targetID)
	if err != nil {
		r.log.Error("Failed to delete like",
			zap.Error(err),
			zap.String("kind", string(kind)),
			zap.Int64("user_id", userID),
			zap.Int64("target_id", targetID),
		)
		return false, fmt.Errorf("delete %s like %d by user %d: %w", kind, targetID, userID, err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *likeRepository) LikedTargets(ctx context.Context, kind entity.LikeKind, userID int64, targetIDs []int64) (map[int64]bool, error) {
	liked := make(map[int64]bool, len(targetIDs))
	if len(targetIDs) == 0 {
		return liked, nil
	}

	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %[2]s FROM %[1]s WHERE user_id = $1 AND %[2]s = ANY($2)`, t.table, t.column)

	rows, err := r.db.Query(ctx, query, userID, targetIDs)
	if err != nil {
		r.log.Error("Failed to load liked targets",
			zap.Error(err),
			zap.String("kind", string(kind)),
			zap.Int64("user_id", userID),
			zap.Int("targets", len(targetIDs)),
		)
		return nil, fmt.Errorf("load %s likes for user %d: %w", kind, userID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan liked target: %w", err)
		}
		liked[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate liked targets: %w", err)
	}

	return liked, nil
}
