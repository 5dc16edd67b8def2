// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: connection string (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - SessionSecret: HMAC key for session tokens (required)
  - SessionTTL: session lifetime (default: 12h)
  - AdminCollegeID, AdminPassword: seeded admin account (seeded only when a password is set)
  - ReconcileSchedule: cron expression for scheduled status reconciliation (optional)

# CLI Flags and Environment Variables

	-p               PORT
	-d               DATABASE_URL
	-t               DATABASE_TYPE
	-session-secret  SESSION_SECRET
	-session-ttl     SESSION_TTL
	-admin-id        ADMIN_COLLEGE_ID
	-admin-password  ADMIN_PASSWORD
	-reconcile       RECONCILE_SCHEDULE

CLI flags take precedence over environment variables. The -env flag names
a dotenv file (default .env) loaded before the environment is read; a
missing file is ignored and variables already set are never overridden.
*/
package cliparse
