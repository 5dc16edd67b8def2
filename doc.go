// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the college voting API server.

Students register, run for positions in elections and cast one vote per
election. Admins create elections, review candidates, override election
status and read live tallies. Students see results once an election is
over.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL="file:vote.db?_pragma=foreign_keys(1)" SESSION_SECRET=... ADMIN_PASSWORD=... go run .

Or against PostgreSQL with flags:

	go run . -t postgres -d "postgres://..." -session-secret ... -reconcile "0 * * * *"

Variables may also be placed in a .env file (see -env).

# Configuration

Required settings:

  - DATABASE_URL (-d): connection string
  - SESSION_SECRET (-session-secret): HMAC key for session tokens

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - SESSION_TTL (-session-ttl): session lifetime (default: 12h)
  - ADMIN_COLLEGE_ID, ADMIN_PASSWORD: admin account seeded at startup
  - RECONCILE_SCHEDULE (-reconcile): cron expression for the status pass

# Architecture

  - election: status resolver, candidacy gate, ballot ledger, lifecycle, results, accounts
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, sessions, JSON helpers
  - models: Domain and request/response types
  - auth: Password hashing and session tokens
  - db: Connection, schema creation, constraint errors
  - cliparse: Configuration parsing

Election status is reconciled on every read that depends on it, once at
startup, and on the optional cron schedule. See package documentation for
each component.
*/
package main
