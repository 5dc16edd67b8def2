// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/college-vote/models"
	"github.com/danielhkuo/college-vote/testutil"
)

// base is the fixed "now" most tests start from
var base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func newTestService(t *testing.T) (*Service, *sql.DB, *testClock) {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	t.Cleanup(func() { conn.Close() })

	// Every database starts with the admin account so created_by resolves
	if id := testutil.CreateTestUser(t, conn, "admin", "Admin", models.RoleAdmin); id != admin.ID {
		t.Fatalf("Expected admin fixture id %d, got %d", admin.ID, id)
	}

	clock := &testClock{now: base}
	return NewService(conn, WithClock(clock.Now)), conn, clock
}

var admin = models.Actor{ID: 1, Role: models.RoleAdmin, DisplayName: "Admin"}

func student(id int64) models.Actor {
	return models.Actor{ID: id, Role: models.RoleStudent}
}

func storedStatus(t *testing.T, conn *sql.DB, id int64) string {
	t.Helper()
	var status string
	if err := conn.QueryRow(`SELECT status FROM elections WHERE id = $1`, id).Scan(&status); err != nil {
		t.Fatalf("Failed to read status: %v", err)
	}
	return status
}
