package repository

import (
	"context"
	"errors"
	"fmt"

	"menurate/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Transactor runs fn inside one store transaction. fn receives a Repository
// bound to that transaction; returning an error rolls everything back.
type Transactor interface {
	WithTx(ctx context.Context, fn func(tx *Repository) error) error
}

type Repository struct {
	Tx Transactor

	User    UserRepository
	Review  ReviewRepository
	Comment CommentRepository
	Like    LikeRepository
	Counter CounterRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	repo := newRepository(db, log)
	repo.Tx = &pgxTransactor{db: db, log: log.With(zap.String("repository", "tx"))}
	return repo
}

func newRepository(q database.Querier, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(q, log),
		Review:  NewReviewRepository(q, log),
		Comment: NewCommentRepository(q, log),
		Like:    NewLikeRepository(q, log),
		Counter: NewCounterRepository(q, log),
	}
}

type pgxTransactor struct {
	db  database.PgxIface
	log *zap.Logger
}

func (t *pgxTransactor) WithTx(ctx context.Context, fn func(tx *Repository) error) error {
	tx, err := t.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	// Rollback after Commit is a no-op returning ErrTxClosed. It must still run
	// when ctx is already canceled so the connection goes back to the pool.
	defer func() {
		if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			t.log.Warn("Rollback failed", zap.Error(err))
		}
	}()

	txRepo := newRepository(tx, t.log)
	txRepo.Tx = joinedTx{repo: txRepo}

	if err := fn(txRepo); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// joinedTx runs nested WithTx calls on the already open transaction.
type joinedTx struct {
	repo *Repository
}

func (j joinedTx) WithTx(ctx context.Context, fn func(tx *Repository) error) error {
	return fn(j.repo)
}
