package application

import (
	"strings"
	"time"

	"ats/internal/common"
)

type Status string

const (
	StatusApplied     Status = "APPLIED"
	StatusShortlisted Status = "SHORTLISTED"
	StatusRejected    Status = "REJECTED"
	StatusHired       Status = "HIRED"
)

func ParseStatus(value string) (Status, error) {
	normalized := Status(strings.ToUpper(strings.TrimSpace(value)))
	switch normalized {
	case StatusApplied, StatusShortlisted, StatusRejected, StatusHired:
		return normalized, nil
	default:
		return "", common.NewValidationError("invalid status", map[string]string{"status": "status must be APPLIED, SHORTLISTED, REJECTED, or HIRED"})
	}
}

// Application links one candidate to one job. At most one application exists
// per (candidate, job) pair; AppliedAt is set once and never changes.
type Application struct {
	ID          common.UUID `json:"id"`
	JobID       common.UUID `json:"job_id"`
	CandidateID common.UUID `json:"candidate_id"`
	Status      Status      `json:"status"`
	AppliedAt   time.Time   `json:"applied_at"`
}
