// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/danielhkuo/college-vote/auth"
	"github.com/danielhkuo/college-vote/db"
	"github.com/danielhkuo/college-vote/models"
)

// Register creates a student account.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (int64, error) {
	collegeID := strings.TrimSpace(req.CollegeID)
	fullName := strings.TrimSpace(req.FullName)
	if collegeID == "" || fullName == "" || req.Password == "" || req.ConfirmPassword == "" {
		return 0, ErrMissingFields
	}
	if req.Password != req.ConfirmPassword {
		return 0, ErrPasswordMismatch
	}

	id, err := s.createUser(ctx, collegeID, req.Password, fullName, models.RoleStudent)
	if err != nil {
		return 0, err
	}

	slog.Info("student registered", "user_id", id, "college_id", collegeID)
	return id, nil
}

// EnsureAdmin creates the admin account if collegeID is not registered yet.
// It never changes the role or password of an existing account.
func (s *Service) EnsureAdmin(ctx context.Context, collegeID, password, fullName string) (bool, error) {
	if strings.TrimSpace(collegeID) == "" || password == "" {
		return false, ErrMissingFields
	}

	_, err := s.createUser(ctx, collegeID, password, fullName, models.RoleAdmin)
	if errors.Is(err, ErrDuplicateCollegeID) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	slog.Info("admin account created", "college_id", collegeID)
	return true, nil
}

func (s *Service) createUser(ctx context.Context, collegeID, password, fullName, role string) (int64, error) {
	hash, err := auth.HashPassword(password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return 0, ErrPasswordTooLong
	}
	if err != nil {
		return 0, err
	}

	var id int64
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO users (college_id, password_hash, full_name, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, collegeID, hash, fullName, role, s.Now()).Scan(&id)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return 0, ErrDuplicateCollegeID
		}
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}
	return id, nil
}

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// Authenticate verifies credentials and returns the actor for a session.
func (s *Service) Authenticate(ctx context.Context, collegeID, password string) (models.Actor, error) {
	if strings.TrimSpace(collegeID) == "" || password == "" {
		return models.Actor{}, ErrMissingFields
	}

	var u models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, password_hash, full_name, role
		FROM users
		WHERE college_id = $1
	`, strings.TrimSpace(collegeID)).Scan(&u.ID, &u.PasswordHash, &u.FullName, &u.Role)
	if err == sql.ErrNoRows {
		// Unknown IDs still pay for one hash
		dummyHashOnce.Do(func() { dummyHash, _ = auth.HashPassword("unused") })
		auth.VerifyPassword(password, dummyHash)
		return models.Actor{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.Actor{}, fmt.Errorf("failed to query user: %w", err)
	}

	ok, err := auth.VerifyPassword(password, u.PasswordHash)
	if err != nil {
		return models.Actor{}, fmt.Errorf("failed to verify password for user %d: %w", u.ID, err)
	}
	if !ok {
		return models.Actor{}, ErrInvalidCredentials
	}

	return models.Actor{ID: u.ID, Role: u.Role, DisplayName: u.FullName}, nil
}

// ListStudents returns student accounts, newest first.
func (s *Service) ListStudents(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, college_id, full_name, role, created_at
		FROM users
		WHERE role = $1
		ORDER BY created_at DESC, id DESC
	`, models.RoleStudent)
	if err != nil {
		return nil, fmt.Errorf("failed to query students: %w", err)
	}
	defer rows.Close()

	students := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.CollegeID, &u.FullName, &u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		u.CreatedAt = u.CreatedAt.UTC()
		students = append(students, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate students: %w", err)
	}
	return students, nil
}
