package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS summaries (
    month       INTEGER NOT NULL,
    year        INTEGER NOT NULL,
    income      TEXT NOT NULL,
    expense     TEXT NOT NULL,
    balance     TEXT NOT NULL,
    fetched_at  TEXT NOT NULL,
    PRIMARY KEY (month, year)
);

CREATE TABLE IF NOT EXISTS available_years (
    year        INTEGER PRIMARY KEY
);

CREATE INDEX IF NOT EXISTS idx_summaries_year ON summaries(year);
`
