package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
//
// Balances and amounts are stored as INTEGER (smallest accounting unit).
// Timestamps are unix milliseconds. Investment rows are keyed by
// (club_id, payer_id): the payer identity is the map key in the domain model,
// so at most one outstanding obligation exists per payer and scheduling a new
// one overwrites it.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS clubs (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    club_type TEXT NOT NULL,
    rules TEXT NOT NULL,
    description TEXT NOT NULL,
    active INTEGER NOT NULL,
    founded_at INTEGER NOT NULL,
    balance INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS club_tokens (
    id TEXT PRIMARY KEY,
    club_id TEXT NOT NULL UNIQUE,
    FOREIGN KEY (club_id) REFERENCES clubs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS members (
    id TEXT PRIMARY KEY,
    club_id TEXT NOT NULL,
    name TEXT NOT NULL,
    gender TEXT NOT NULL,
    contact TEXT NOT NULL,
    shares INTEGER NOT NULL,
    paid INTEGER NOT NULL DEFAULT 0,
    joined_at INTEGER NOT NULL,
    FOREIGN KEY (club_id) REFERENCES clubs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS investments (
    club_id TEXT NOT NULL,
    payer_id TEXT NOT NULL,
    member_id TEXT NOT NULL,
    amount_payable INTEGER NOT NULL,
    due_at INTEGER NOT NULL,
    status TEXT NOT NULL,
    PRIMARY KEY (club_id, payer_id),
    FOREIGN KEY (club_id) REFERENCES clubs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_members_club_id ON members(club_id);
CREATE INDEX IF NOT EXISTS idx_investments_club_id ON investments(club_id);
CREATE INDEX IF NOT EXISTS idx_club_tokens_club_id ON club_tokens(club_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
