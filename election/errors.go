// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import "errors"

// Kind classifies a failure for the caller.
type Kind int

const (
	// KindStoreFailure is any error that is not a domain error, usually a
	// database failure. Its detail must not reach clients.
	KindStoreFailure Kind = iota
	KindNotFound
	KindConflict
	KindInvalidInput
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvalidInput:
		return "invalid_input"
	case KindForbidden:
		return "forbidden"
	default:
		return "store_failure"
	}
}

// Error is a domain failure with a stable machine-readable code.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

var (
	ErrElectionNotFound  = newError(KindNotFound, "election_not_found", "election not found")
	ErrCandidateNotFound = newError(KindNotFound, "candidate_not_found", "candidate not found")

	ErrDuplicateCandidacy = newError(KindConflict, "duplicate_candidacy", "already registered as a candidate for this election")
	ErrAlreadyVoted       = newError(KindConflict, "already_voted", "already voted in this election")
	ErrCandidateHasVotes  = newError(KindConflict, "candidate_has_votes", "candidate has recorded votes")
	ErrDuplicateCollegeID = newError(KindConflict, "duplicate_college_id", "college ID already registered")

	ErrMissingTitle     = newError(KindInvalidInput, "missing_title", "title is required")
	ErrInvalidRange     = newError(KindInvalidInput, "invalid_range", "end date must be after start date")
	ErrInvalidStatus    = newError(KindInvalidInput, "invalid_status", "status must be upcoming, ongoing, or completed")
	ErrInvalidDecision  = newError(KindInvalidInput, "invalid_decision", "decision must be approved or rejected")
	ErrMissingPosition  = newError(KindInvalidInput, "missing_position", "position is required")
	ErrInvalidCandidate = newError(KindInvalidInput, "invalid_candidate", "candidate is not an approved candidate of this election")
	ErrInvalidFilter    = newError(KindInvalidInput, "invalid_filter", "status filter must be pending, approved, or rejected")
	ErrMissingFields    = newError(KindInvalidInput, "missing_fields", "all fields are required")
	ErrPasswordMismatch = newError(KindInvalidInput, "password_mismatch", "passwords do not match")
	ErrPasswordTooLong  = newError(KindInvalidInput, "password_too_long", "password is too long")

	ErrForbidden                   = newError(KindForbidden, "forbidden", "not permitted for this role")
	ErrInvalidCredentials          = newError(KindForbidden, "invalid_credentials", "invalid college ID or password")
	ErrElectionNotOpen             = newError(KindForbidden, "election_not_open", "election is not open for voting")
	ErrElectionNotOpenForCandidacy = newError(KindForbidden, "election_not_open_for_candidacy", "election is not accepting candidates")
	ErrNoApprovedCandidates        = newError(KindForbidden, "no_candidates", "election has no approved candidates")
)

// KindOf returns the Kind of the first domain error in err's chain, or
// KindStoreFailure when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStoreFailure
}

// CodeOf returns the code of the first domain error in err's chain.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return KindStoreFailure.String()
}
