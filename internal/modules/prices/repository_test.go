package prices

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/rcastro/fundwise/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

const testSchema = `
CREATE TABLE price_reference (
    fund_code     TEXT PRIMARY KEY,
    current_price REAL NOT NULL DEFAULT 0,
    ceiling_price REAL,
    updated_at    INTEGER
);
`

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(testSchema)
	require.NoError(t, err)
	return db
}

func ptr(v float64) *float64 { return &v }

func TestRepository_UpsertAndGet(t *testing.T) {
	repo := NewRepository(setupTestDB(t), zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, domain.PriceInfo{
		FundCode: "HGLG11", CurrentPrice: 155.30, CeilingPrice: ptr(170),
	}))

	info, err := repo.Get(ctx, "HGLG11")
	require.NoError(t, err)
	assert.Equal(t, 155.30, info.CurrentPrice)
	require.NotNil(t, info.CeilingPrice)
	assert.Equal(t, 170.0, *info.CeilingPrice)
}

func TestRepository_NilCeilingRoundTrips(t *testing.T) {
	repo := NewRepository(setupTestDB(t), zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, domain.PriceInfo{FundCode: "MXRF11", CurrentPrice: 10.12}))

	info, err := repo.Get(ctx, "MXRF11")
	require.NoError(t, err)
	assert.Nil(t, info.CeilingPrice, "absent ceiling stays absent")
}

func TestRepository_GetMissingReturnsNoRows(t *testing.T) {
	repo := NewRepository(setupTestDB(t), zerolog.Nop())

	_, err := repo.Get(context.Background(), "GHOST11")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestResolver_ResolveKnownAndUnknown(t *testing.T) {
	repo := NewRepository(setupTestDB(t), zerolog.Nop())
	resolver := NewResolver(repo, zerolog.Nop())

	require.NoError(t, repo.Upsert(context.Background(), domain.PriceInfo{
		FundCode: "HGLG11", CurrentPrice: 155.30, CeilingPrice: ptr(170),
	}))

	info, ok := resolver.Resolve("HGLG11")
	require.True(t, ok)
	assert.Equal(t, 155.30, info.CurrentPrice)

	_, ok = resolver.Resolve("GHOST11")
	assert.False(t, ok, "missing funds resolve to false, never to an error")
}
