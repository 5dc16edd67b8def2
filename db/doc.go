// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles connections, schema creation, and driver error mapping.

# Connections

Open verifies the connection before returning it:

	conn, err := db.Open(db.DialectPostgres, "postgres://...")
	conn, err := db.Open(db.DialectSQLite, "file:vote.db?_pragma=foreign_keys(1)")

# Schema Creation

CreateSchema initializes all required tables for a dialect:

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - users: accounts with argon2 password hashes and a fixed role
  - elections: time bounds plus the cached status
  - candidates: one application per (user, election)
  - votes: one ballot per (election, voter)

# Constraints

	UNIQUE (user_id, election_id)   on candidates
	UNIQUE (election_id, voter_id)  on votes
	CHECK  (end_date > start_date)  on elections

IsUniqueViolation recognizes violations from lib/pq (SQLSTATE 23505) and
modernc.org/sqlite (SQLITE_CONSTRAINT_UNIQUE) so callers can translate them
into domain conflicts.

# Transactions

	err := db.WithTx(ctx, conn, func(tx *sql.Tx) error {
		...
	})
*/
package db
