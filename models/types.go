package models

import "time"

// Role constants
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// Election status constants
const (
	StatusUpcoming  = "upcoming"
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
)

// Candidate status constants
const (
	CandidatePending  = "pending"
	CandidateApproved = "approved"
	CandidateRejected = "rejected"
)

// Actor is the authenticated identity making a request.
// It is decoded from the session token and passed explicitly to services.
type Actor struct {
	ID          int64  `json:"id"`
	Role        string `json:"role"`
	DisplayName string `json:"display_name"`
}

func (a Actor) IsAdmin() bool   { return a.Role == RoleAdmin }
func (a Actor) IsStudent() bool { return a.Role == RoleStudent }

// Request types

type RegisterRequest struct {
	CollegeID       string `json:"college_id"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FullName        string `json:"full_name"`
}

type LoginRequest struct {
	CollegeID string `json:"college_id"`
	Password  string `json:"password"`
}

type CreateElectionRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type CandidacyRequest struct {
	Position  string `json:"position"`
	Manifesto string `json:"manifesto"`
}

type CastVoteRequest struct {
	CandidateID int64 `json:"candidate_id"`
}

// Response types

type RegisterResponse struct {
	UserID  int64  `json:"user_id"`
	Message string `json:"message"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Actor Actor  `json:"user"`
}

type CreatedResponse struct {
	ID int64 `json:"id"`
}

type CastVoteResponse struct {
	VoteID  int64  `json:"vote_id"`
	Message string `json:"message"`
}

type BallotResponse struct {
	Election   Election        `json:"election"`
	Candidates []CandidateView `json:"candidates"`
}

type StudentResultsResponse struct {
	Election       Election  `json:"election"`
	CanViewResults bool      `json:"can_view_results"`
	CurrentTime    time.Time `json:"current_time"`
	EndTime        time.Time `json:"end_time"`
	Results        *Results  `json:"results,omitempty"`
}

type DashboardResponse struct {
	Counts    DashboardCounts `json:"counts"`
	Elections []Election      `json:"elections"`
}

// Domain types

type User struct {
	ID           int64     `json:"id"`
	CollegeID    string    `json:"college_id"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewElection holds the admin-supplied fields of an election.
type NewElection struct {
	Title       string
	Description string
	StartDate   time.Time
	EndDate     time.Time
}

type Election struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	StartDate      time.Time  `json:"start_date"`
	EndDate        time.Time  `json:"end_date"`
	Status         string     `json:"status"`
	StatusForcedAt *time.Time `json:"status_forced_at,omitempty"`
	CreatedBy      *int64     `json:"created_by,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type Candidate struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	ElectionID int64     `json:"election_id"`
	Position   string    `json:"position"`
	Manifesto  string    `json:"manifesto"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// CandidateView is a candidate joined with its owner and election.
type CandidateView struct {
	Candidate
	FullName      string `json:"full_name"`
	CollegeID     string `json:"college_id"`
	ElectionTitle string `json:"election_title"`
}

type Vote struct {
	ID          int64     `json:"id"`
	ElectionID  int64     `json:"election_id"`
	VoterID     int64     `json:"voter_id"`
	CandidateID int64     `json:"candidate_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// StudentElection is an election annotated for one student.
type StudentElection struct {
	Election
	IsCandidate    bool `json:"is_candidate"`
	HasVoted       bool `json:"has_voted"`
	CandidateCount int  `json:"candidate_count"`
}

// Results Types

type Tally struct {
	CandidateID int64  `json:"candidate_id"`
	FullName    string `json:"full_name"`
	Position    string `json:"position"`
	Votes       int    `json:"votes"`
}

type Results struct {
	ElectionID int64   `json:"election_id"`
	Tallies    []Tally `json:"tallies"`
	TotalVotes int     `json:"total_votes"`
}

type DashboardCounts struct {
	StudentCount   int `json:"student_count"`
	ElectionCount  int `json:"election_count"`
	CandidateCount int `json:"candidate_count"`
	VoteCount      int `json:"vote_count"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}
