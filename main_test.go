package main

import (
	"testing"

	"github.com/danielhkuo/college-vote/cliparse"
)

// The flag line shown in the package documentation
func TestDocumentedFlags(t *testing.T) {
	args := []string{
		"-env", "",
		"-t", "postgres",
		"-d", "postgres://localhost/vote",
		"-session-secret", "s3cret",
		"-reconcile", "0 * * * *",
	}

	cfg, err := cliparse.ParseFlags(args)
	if err != nil {
		t.Fatalf("ParseFlags(%v) failed: %v", args, err)
	}
	if cfg.ReconcileSchedule != "0 * * * *" || cfg.DatabaseType != "postgres" {
		t.Errorf("Unexpected config %+v", cfg)
	}
}
