// Package testutil starts a disposable Postgres with the ledger schema applied.
package testutil

import (
	"context"
	"testing"
	"time"

	"menurate/internal/data/migration"
	"menurate/pkg/database"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const postgresImage = "postgres:16-alpine"

// NewPostgres starts a container, applies the schema and returns a pool.
// It skips under -short and when no container provider is reachable.
func NewPostgres(t *testing.T) database.PgxIface {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	ctr, err := postgres.Run(ctx, postgresImage,
		postgres.WithDatabase("menurate"),
		postgres.WithUsername("menurate"),
		postgres.WithPassword("menurate"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	connStr, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	openCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db, err := database.Open(openCtx, connStr, 20)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, migration.Apply(ctx, db))

	return db
}

// Reset empties every ledger table and restarts the id sequences.
func Reset(t *testing.T, db database.Querier) {
	t.Helper()
	_, err := db.Exec(context.Background(), `
		TRUNCATE comment_likes, review_likes, review_comments, reviews, menu_items, users
		RESTART IDENTITY CASCADE
	`)
	require.NoError(t, err)
}

// SeedUser inserts a profile row and returns its id.
func SeedUser(t *testing.T, db database.Querier, username string) int64 {
	t.Helper()
	var id int64
	err := db.QueryRow(context.Background(),
		`INSERT INTO users (username) VALUES ($1) RETURNING id`, username,
	).Scan(&id)
	require.NoError(t, err, "seed user %s", username)
	return id
}

// SeedMenuItem inserts a catalog row and returns its id.
func SeedMenuItem(t *testing.T, db database.Querier, name string) int64 {
	t.Helper()
	var id int64
	err := db.QueryRow(context.Background(),
		`INSERT INTO menu_items (name) VALUES ($1) RETURNING id`, name,
	).Scan(&id)
	require.NoError(t, err, "seed menu item %s", name)
	return id
}

// SeedReview inserts a review row directly, bypassing the services.
func SeedReview(t *testing.T, db database.Querier, userID, menuItemID int64, rating int) int64 {
	t.Helper()
	var id int64
	err := db.QueryRow(context.Background(),
		`INSERT INTO reviews (user_id, menu_item_id, rating) VALUES ($1, $2, $3) RETURNING id`,
		userID, menuItemID, rating,
	).Scan(&id)
	require.NoError(t, err, "seed review by %d on %d", userID, menuItemID)
	return id
}
