package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	fk := func(constraint string) error {
		return fmt.Errorf("exec: %w", &pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: constraint})
	}

	testCases := []struct {
		name string
		err  error
		want error
		not  error
	}{
		{"no rows", pgx.ErrNoRows, ErrNotFound, nil},
		{"unique", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "review_likes_user_review_key"}, ErrDuplicate, nil},
		{"missing review", fk("review_likes_review_id_fkey"), ErrReferenceMissing, ErrUserMissing},
		{"missing menu item", fk("reviews_menu_item_id_fkey"), ErrReferenceMissing, ErrUserMissing},
		{"missing liker", fk("review_likes_user_fkey"), ErrUserMissing, ErrReferenceMissing},
		{"missing commenter", fk("review_comments_user_fkey"), ErrUserMissing, ErrReferenceMissing},
		{"missing author on an older schema", fk("reviews_user_id_fkey"), ErrUserMissing, ErrReferenceMissing},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := classify(tc.err)

			assert.ErrorIs(t, got, tc.want)
			if tc.not != nil {
				assert.NotErrorIs(t, got, tc.not)
			}
			// the driver error stays reachable
			assert.True(t, errors.Is(got, tc.err) || errors.Is(got, pgx.ErrNoRows))
		})
	}

	t.Run("other errors pass through", func(t *testing.T) {
		boom := errors.New("conn reset")
		assert.Same(t, boom, classify(boom))
		assert.NoError(t, classify(nil))
	})
}
