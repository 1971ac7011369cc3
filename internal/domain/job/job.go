package job

import (
	"strings"
	"time"

	"ats/internal/common"
)

type Status string

const (
	StatusOpen   Status = "OPEN"
	StatusClosed Status = "CLOSED"
)

func ParseStatus(value string) (Status, error) {
	normalized := Status(strings.ToUpper(strings.TrimSpace(value)))
	if normalized != StatusOpen && normalized != StatusClosed {
		return "", common.NewValidationError("invalid status", map[string]string{"status": "status must be OPEN or CLOSED"})
	}
	return normalized, nil
}

// Job is a posting owned by the recruiter that created it. RecruiterID never
// changes after creation; it is the ownership edge every authorization check
// on jobs and applications traces back to.
type Job struct {
	ID          common.UUID `json:"id"`
	RecruiterID common.UUID `json:"recruiter_id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Location    string      `json:"location"`
	Status      Status      `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}
