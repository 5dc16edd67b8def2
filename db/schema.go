// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dialect string) error {
	ddl, err := Schema(dialect)
	if err != nil {
		return err
	}

	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Schema renders the DDL for the given dialect.
func Schema(dialect string) (string, error) {
	var r *strings.Replacer
	switch dialect {
	case DialectPostgres:
		r = strings.NewReplacer(
			"{{serial}}", "BIGSERIAL PRIMARY KEY",
			"{{timestamp}}", "TIMESTAMPTZ",
			"{{bigint}}", "BIGINT",
		)
	case DialectSQLite:
		r = strings.NewReplacer(
			"{{serial}}", "INTEGER PRIMARY KEY AUTOINCREMENT",
			"{{timestamp}}", "TIMESTAMP",
			"{{bigint}}", "INTEGER",
		)
	default:
		return "", fmt.Errorf("unsupported database type %q", dialect)
	}
	return r.Replace(schema), nil
}

// Foreign keys deliberately omit ON DELETE CASCADE: election deletion
// removes votes and candidates explicitly inside one transaction.
const schema = `
-- Users
CREATE TABLE IF NOT EXISTS users (
    id {{serial}},
    college_id TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    full_name TEXT NOT NULL,
    role TEXT NOT NULL CHECK (role IN ('admin', 'student')),
    created_at {{timestamp}} NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_users_role ON users(role);

-- Elections
CREATE TABLE IF NOT EXISTS elections (
    id {{serial}},
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    start_date {{timestamp}} NOT NULL,
    end_date {{timestamp}} NOT NULL,
    status TEXT NOT NULL DEFAULT 'upcoming' CHECK (status IN ('upcoming', 'ongoing', 'completed')),
    status_forced_at {{timestamp}},
    created_by {{bigint}} REFERENCES users(id),
    created_at {{timestamp}} NOT NULL DEFAULT CURRENT_TIMESTAMP,
    CHECK (end_date > start_date)
);

CREATE INDEX IF NOT EXISTS idx_elections_status ON elections(status);

-- Candidates
CREATE TABLE IF NOT EXISTS candidates (
    id {{serial}},
    user_id {{bigint}} NOT NULL REFERENCES users(id),
    election_id {{bigint}} NOT NULL REFERENCES elections(id),
    position TEXT NOT NULL,
    manifesto TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'approved', 'rejected')),
    created_at {{timestamp}} NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (user_id, election_id)
);

CREATE INDEX IF NOT EXISTS idx_candidates_election_id ON candidates(election_id);

-- Votes
CREATE TABLE IF NOT EXISTS votes (
    id {{serial}},
    election_id {{bigint}} NOT NULL REFERENCES elections(id),
    voter_id {{bigint}} NOT NULL REFERENCES users(id),
    candidate_id {{bigint}} NOT NULL REFERENCES candidates(id),
    created_at {{timestamp}} NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (election_id, voter_id)
);

CREATE INDEX IF NOT EXISTS idx_votes_candidate_id ON votes(candidate_id);
`
