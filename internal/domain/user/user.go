package user

import (
	"strings"
	"time"

	"ats/internal/common"
)

type Role string

const (
	RoleCandidate Role = "candidate"
	RoleRecruiter Role = "recruiter"
	RoleAdmin     Role = "admin"
)

// ParseRole accepts the roles a user may register with. Admin accounts are
// provisioned out of band and never created through registration.
func ParseRole(value string) (Role, error) {
	normalized := Role(strings.ToLower(strings.TrimSpace(value)))
	if normalized != RoleCandidate && normalized != RoleRecruiter {
		return "", common.NewValidationError("invalid role", map[string]string{"role": "role must be candidate or recruiter"})
	}
	return normalized, nil
}

type User struct {
	ID           common.UUID `json:"id"`
	Email        string      `json:"email"`
	Name         string      `json:"name"`
	Role         Role        `json:"role"`
	PasswordHash string      `json:"-"`
	CreatedAt    time.Time   `json:"created_at"`
}
