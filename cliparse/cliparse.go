package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/aptible/supercronic/cronexpr"
	"github.com/joho/godotenv"
)

type Config struct {
	Port              int
	DatabaseURL       string
	DatabaseType      string
	SessionSecret     string
	SessionTTL        time.Duration
	AdminCollegeID    string
	AdminPassword     string
	ReconcileSchedule string
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var envFile string

	fs := flag.NewFlagSet("college-vote", flag.ContinueOnError)

	fs.StringVar(&envFile, "env", ".env", "Dotenv file to load (ignored if missing)")

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SessionSecret, "session-secret", "", "Session signing secret (prefer env)")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", 0, "Session lifetime")
	fs.StringVar(&cfg.AdminCollegeID, "admin-id", "", "College ID of the seeded admin account")
	fs.StringVar(&cfg.AdminPassword, "admin-password", "", "Password of the seeded admin account (prefer env)")

	fs.StringVar(&cfg.ReconcileSchedule, "reconcile", "", "Cron schedule for election status reconciliation")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Existing environment always wins over the dotenv file
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
			}
		}
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("invalid database type %q (want sqlite or postgres)", cfg.DatabaseType)
	}

	// Secrets - MUST be provided
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	}
	if cfg.SessionSecret == "" {
		return Config{}, errors.New("SESSION_SECRET required")
	}

	if cfg.SessionTTL == 0 {
		if ttlStr := os.Getenv("SESSION_TTL"); ttlStr != "" {
			ttl, err := time.ParseDuration(ttlStr)
			if err != nil {
				return Config{}, errors.New("invalid SESSION_TTL env variable")
			}
			cfg.SessionTTL = ttl
		} else {
			cfg.SessionTTL = 12 * time.Hour
		}
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, errors.New("session TTL must be positive")
	}

	if cfg.AdminCollegeID == "" {
		cfg.AdminCollegeID = os.Getenv("ADMIN_COLLEGE_ID")
		if cfg.AdminCollegeID == "" {
			cfg.AdminCollegeID = "admin"
		}
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	}

	if cfg.ReconcileSchedule == "" {
		cfg.ReconcileSchedule = os.Getenv("RECONCILE_SCHEDULE")
	}
	if cfg.ReconcileSchedule != "" {
		if _, err := cronexpr.Parse(cfg.ReconcileSchedule); err != nil {
			return Config{}, fmt.Errorf("invalid reconcile schedule: %w", err)
		}
	}

	return cfg, nil
}
