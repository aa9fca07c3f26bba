package portfolio

import (
	"context"
	"database/sql"
	"testing"

	"github.com/rcastro/fundwise/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

const testSchema = `
CREATE TABLE positions (
    portfolio_id  TEXT NOT NULL,
    fund_code     TEXT NOT NULL,
    name          TEXT NOT NULL DEFAULT '',
    current_value REAL NOT NULL DEFAULT 0,
    updated_at    INTEGER,
    PRIMARY KEY (portfolio_id, fund_code)
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

func TestPositionRepository_UpsertAndGet(t *testing.T) {
	repo := NewPositionRepository(setupTestDB(t), zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, "p1", domain.Position{
		FundCode: "HGLG11", Name: "CSHG Logística", CurrentValue: 3000,
	}))
	require.NoError(t, repo.Upsert(ctx, "p1", domain.Position{
		FundCode: "XPML11", Name: "XP Malls", CurrentValue: 7000,
	}))
	require.NoError(t, repo.Upsert(ctx, "p2", domain.Position{
		FundCode: "KNRI11", Name: "Kinea Renda", CurrentValue: 500,
	}))

	positions, err := repo.GetByPortfolio(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, positions, 2, "positions are scoped per portfolio")
	assert.Equal(t, "HGLG11", positions[0].FundCode)
	assert.Equal(t, 3000.0, positions[0].CurrentValue)
}

func TestPositionRepository_UpsertReplaces(t *testing.T) {
	repo := NewPositionRepository(setupTestDB(t), zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, "p1", domain.Position{FundCode: "HGLG11", CurrentValue: 1000}))
	require.NoError(t, repo.Upsert(ctx, "p1", domain.Position{FundCode: "HGLG11", CurrentValue: 1500}))

	positions, err := repo.GetByPortfolio(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, positions, 1)
	assert.Equal(t, 1500.0, positions[0].CurrentValue)
}

func TestPositionRepository_Delete(t *testing.T) {
	repo := NewPositionRepository(setupTestDB(t), zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, "p1", domain.Position{FundCode: "HGLG11", CurrentValue: 1000}))
	require.NoError(t, repo.Delete(ctx, "p1", "HGLG11"))

	positions, err := repo.GetByPortfolio(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, positions)
}
