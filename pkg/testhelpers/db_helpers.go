package testhelpers

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"pitchboard/pkg/db"
)

var uniqueCounter int64

func nextSuffix() int64 {
	return atomic.AddInt64(&uniqueCounter, 1)
}

// SetupTestPool connects to DATABASE_URL_FOR_TEST and applies the schema, or skips the test.
func SetupTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL_FOR_TEST")
	if dsn == "" {
		t.Skip("DATABASE_URL_FOR_TEST not set; skipping repository tests")
	}

	ctx := context.Background()
	cfg, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, pool.Ping(ctx))
	require.NoError(t, db.ApplySchema(ctx, pool, ""))

	t.Cleanup(pool.Close)
	return pool
}

// CleanContent empties the mirrored content and feedback tables.
func CleanContent(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(), "TRUNCATE TABLE startups, authors, feedback RESTART IDENTITY CASCADE")
	require.NoError(t, err)
}

// CreateTestAuthor inserts an author whose username is the lowercased name and returns its ID.
func CreateTestAuthor(t *testing.T, pool *pgxpool.Pool, name string) string {
	t.Helper()

	id := fmt.Sprintf("author-%d", nextSuffix())
	_, err := pool.Exec(context.Background(),
		"INSERT INTO authors (id, name, username, image, bio) VALUES ($1, $2, $3, $4, $5)",
		id, name, strings.ToLower(name), "https://example.com/"+id+".png", name+" builds things")
	require.NoError(t, err)
	return id
}

// CreateTestStartup inserts a startup for the given author and returns its ID.
// Each call gets a later created_at than the previous one.
func CreateTestStartup(t *testing.T, pool *pgxpool.Pool, authorID, title string) string {
	t.Helper()

	suffix := nextSuffix()
	id := fmt.Sprintf("startup-%d", suffix)
	_, err := pool.Exec(context.Background(),
		`INSERT INTO startups (id, title, slug, created_at, description, category, image, pitch, views, author_id)
		 VALUES ($1, $2, $3, NOW() + make_interval(secs => $4), $5, 'tech', '', $6, 0, $7)`,
		id, title, strings.ToLower(title), float64(suffix), "about "+title, "pitch for "+title, authorID)
	require.NoError(t, err)
	return id
}
