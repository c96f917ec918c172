package repository

import (
	"context"
	"fmt"

	"menurate/internal/data/entity"
	"menurate/pkg/database"

	"go.uber.org/zap"
)

// CounterRepository is the only writer of the denormalized counters. Apply must
// run on the same transaction as the ledger-row change that justifies it.
type CounterRepository interface {
	// Apply adds delta with a floor of zero and returns the new value and the
	// owner of the counted row.
	Apply(ctx context.Context, counter entity.Counter, id, delta int64) (value, ownerID int64, err error)
	Get(ctx context.Context, counter entity.Counter, id int64) (value, ownerID int64, err error)

	// FindDrift recomputes every counter from the ledger. Offline use only.
	FindDrift(ctx context.Context) ([]entity.CounterDrift, error)
}

type counterColumn struct {
	table     string
	column    string
	ledger    string
	ledgerRef string
}

var counterColumns = map[entity.Counter]counterColumn{
	entity.CounterReviewLikes:    {table: "reviews", column: "like_count", ledger: "review_likes", ledgerRef: "review_id"},
	entity.CounterReviewComments: {table: "reviews", column: "comment_count", ledger: "review_comments", ledgerRef: "review_id"},
	entity.CounterCommentLikes:   {table: "review_comments", column: "like_count", ledger: "comment_likes", ledgerRef: "comment_id"},
}

type counterRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewCounterRepository(db database.Querier, log *zap.Logger) CounterRepository {
	return &counterRepository{
		db:  db,
		log: log.With(zap.String("repository", "counter")),
	}
}

func columnFor(counter entity.Counter) (counterColumn, error) {
	c, ok := counterColumns[counter]
	if !ok {
		return counterColumn{}, fmt.Errorf("unknown counter %d", counter)
	}
	return c, nil
}

func (r *counterRepository) Apply(ctx context.Context, counter entity.Counter, id, delta int64) (int64, int64, error) {
	c, err := columnFor(counter)
	if err != nil {
		return 0, 0, err
	}

	query := fmt.Sprintf(`
		UPDATE %[1]s
		SET %[2]s = GREATEST(0, %[2]s + $2)
		WHERE id = $1
		RETURNING %[2]s, user_id
	`, c.table, c.column)

	var value, ownerID int64
	if err := r.db.QueryRow(ctx, query, id, delta).Scan(&value, &ownerID); err != nil {
		err = classify(err)
		r.log.Error("Failed to apply counter delta",
			zap.Error(err),
			zap.Stringer("counter", counter),
			zap.Int64("id", id),
			zap.Int64("delta", delta),
		)
		return 0, 0, fmt.Errorf("apply %+d to %s of %d: %w", delta, counter, id, err)
	}

	r.log.Debug("Counter updated",
		zap.Stringer("counter", counter),
		zap.Int64("id", id),
		zap.Int64("delta", delta),
		zap.Int64("value", value),
	)

	return value, ownerID, nil
}

func (r *counterRepository) Get(ctx context.Context, counter entity.Counter, id int64) (int64, int64, error) {
	c, err := columnFor(counter)
	if err != nil {
		return 0, 0, err
	}

	query := fmt.Sprintf(`SELECT %s, user_id FROM %s WHERE id = $1`, c.column, c.table)

	var value, ownerID int64
	if err := r.db.QueryRow(ctx, query, id).Scan(&value, &ownerID); err != nil {
		err = classify(err)
		return 0, 0, fmt.Errorf("read %s of %d: %w", counter, id, err)
	}

	return value, ownerID, nil
}

func (r *counterRepository) FindDrift(ctx context.Context) ([]entity.CounterDrift, error) {
	var drifts []entity.CounterDrift

	for _, counter := range []entity.Counter{
		entity.CounterReviewLikes,
		entity.CounterReviewComments,
		entity.CounterCommentLikes,
	} {
		c := counterColumns[counter]
		query := fmt.Sprintf(`
			SELECT t.id, t.%[2]s, COUNT(l.%[4]s)
			FROM %[1]s t
			LEFT JOIN %[3]s l ON l.%[4]s = t.id
			GROUP BY t.id, t.%[2]s
			HAVING t.%[2]s <> COUNT(l.%[4]s)
			ORDER BY t.id
		`, c.table, c.column, c.ledger, c.ledgerRef)

		rows, err := r.db.Query(ctx, query)
		if err != nil {
			r.log.Error("Failed to scan counter drift", zap.Error(err), zap.Stringer("counter", counter))
			return nil, fmt.Errorf("find drift for %s: %w", counter, err)
		}

		for rows.Next() {
			d := entity.CounterDrift{Counter: counter}
			if err := rows.Scan(&d.ID, &d.Stored, &d.Computed); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scan drift row: %w", err)
			}
			drifts = append(drifts, d)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("iterate drift for %s: %w", counter, err)
		}
	}

	return drifts, nil
}
