package database

// schema is the single source of truth for the fundwise database layout.
// Positions and target allocations are keyed per portfolio; the price
// reference is global (one ceiling price per fund).
const schema = `
CREATE TABLE IF NOT EXISTS positions (
    portfolio_id  TEXT NOT NULL,
    fund_code     TEXT NOT NULL,
    name          TEXT NOT NULL DEFAULT '',
    current_value REAL NOT NULL DEFAULT 0,
    updated_at    INTEGER,
    PRIMARY KEY (portfolio_id, fund_code)
);

CREATE TABLE IF NOT EXISTS target_allocations (
    portfolio_id TEXT NOT NULL,
    fund_code    TEXT NOT NULL,
    sector_tag   TEXT NOT NULL DEFAULT '',
    ideal_pct    REAL NOT NULL DEFAULT 0,
    updated_at   INTEGER,
    PRIMARY KEY (portfolio_id, fund_code)
);

CREATE TABLE IF NOT EXISTS price_reference (
    fund_code     TEXT PRIMARY KEY,
    current_price REAL NOT NULL DEFAULT 0,
    ceiling_price REAL,
    updated_at    INTEGER
);

CREATE INDEX IF NOT EXISTS idx_positions_portfolio ON positions(portfolio_id);
CREATE INDEX IF NOT EXISTS idx_targets_portfolio ON target_allocations(portfolio_id);
`
