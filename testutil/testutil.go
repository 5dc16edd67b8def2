// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/college-vote/auth"
	"github.com/danielhkuo/college-vote/cliparse"
	"github.com/danielhkuo/college-vote/db"
	"github.com/danielhkuo/college-vote/models"
)

// TestPassword is the password of every fixture user
const TestPassword = "test-password"

var (
	hashOnce     sync.Once
	testPassHash string
)

// SetupTestDB creates a fresh in-memory SQLite database with the full schema.
// Every call gets its own database.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)&_time_format=sqlite", uuid.NewString())
	conn, err := db.Open(db.DialectSQLite, dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn, db.DialectSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		DatabaseURL:    "file::memory:",
		DatabaseType:   db.DialectSQLite,
		SessionSecret:  "test-session-secret",
		SessionTTL:     time.Hour,
		AdminCollegeID: "admin",
	}
}

// CreateTestUser inserts a user with TestPassword and returns its ID
func CreateTestUser(t *testing.T, conn *sql.DB, collegeID, fullName, role string) int64 {
	t.Helper()

	hashOnce.Do(func() {
		h, err := auth.HashPassword(TestPassword)
		if err != nil {
			t.Fatalf("Failed to hash test password: %v", err)
		}
		testPassHash = h
	})

	var id int64
	err := conn.QueryRow(`
		INSERT INTO users (college_id, password_hash, full_name, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, collegeID, testPassHash, fullName, role, time.Now().UTC()).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return id
}

// CreateTestElection inserts an election with an explicit stored status
func CreateTestElection(t *testing.T, conn *sql.DB, title, status string, start, end time.Time) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO elections (title, description, start_date, end_date, status, created_at)
		VALUES ($1, 'A test election', $2, $3, $4, $5)
		RETURNING id
	`, title, start.UTC(), end.UTC(), status, time.Now().UTC()).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test election: %v", err)
	}

	return id
}

// AddTestCandidate inserts a candidate with the given status
func AddTestCandidate(t *testing.T, conn *sql.DB, userID, electionID int64, position, status string) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO candidates (user_id, election_id, position, manifesto, status, created_at)
		VALUES ($1, $2, $3, '', $4, $5)
		RETURNING id
	`, userID, electionID, position, status, time.Now().UTC()).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}

	return id
}

// CastTestVote inserts a vote row directly, bypassing all checks
func CastTestVote(t *testing.T, conn *sql.DB, electionID, voterID, candidateID int64) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO votes (election_id, voter_id, candidate_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, electionID, voterID, candidateID, time.Now().UTC()).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}

	return id
}

// CountRows runs a COUNT(*) query and returns the result
func CountRows(t *testing.T, conn *sql.DB, query string, args ...any) int {
	t.Helper()

	var n int
	if err := conn.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	return n
}

// SessionHeaders returns an Authorization header for actor
func SessionHeaders(t *testing.T, cfg cliparse.Config, actor models.Actor) map[string]string {
	t.Helper()

	token, err := auth.IssueSessionToken(actor, []byte(cfg.SessionSecret), cfg.SessionTTL)
	if err != nil {
		t.Fatalf("Failed to issue session token: %v", err)
	}
	return map[string]string{"Authorization": "Bearer " + token}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
