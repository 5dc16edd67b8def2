// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"time"

	"github.com/danielhkuo/college-vote/models"
)

// ResolveStatus computes the canonical status of an election at now.
// Both bounds are inclusive for ongoing.
func ResolveStatus(start, end, now time.Time) string {
	switch {
	case now.Before(start):
		return models.StatusUpcoming
	case now.After(end):
		return models.StatusCompleted
	default:
		return models.StatusOngoing
	}
}

// ValidStatus reports whether s is one of the three election statuses.
func ValidStatus(s string) bool {
	return rank(s) >= 0
}

func rank(status string) int {
	switch status {
	case models.StatusUpcoming:
		return 0
	case models.StatusOngoing:
		return 1
	case models.StatusCompleted:
		return 2
	default:
		return -1
	}
}

// promotion returns the status the automatic pass should store for e, if
// any. It only moves forward, and it leaves an admin override alone until
// time crosses a boundary after the override was made.
func promotion(e models.Election, now time.Time) (string, bool) {
	derived := ResolveStatus(e.StartDate, e.EndDate, now)
	if rank(derived) <= rank(e.Status) {
		return "", false
	}
	if e.StatusForcedAt != nil && ResolveStatus(e.StartDate, e.EndDate, *e.StatusForcedAt) == derived {
		return "", false
	}
	return derived, true
}

// CanViewResults reports whether results of e may be shown to students.
func CanViewResults(e models.Election, now time.Time) bool {
	return now.After(e.EndDate) || e.Status == models.StatusCompleted
}
