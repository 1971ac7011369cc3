package app

import (
	"context"
	"strings"

	"ats/internal/common"
	"ats/internal/domain/user"
)

type UserService struct {
	users user.Repository
}

func NewUserService(users user.Repository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Profile(ctx context.Context, userID common.UUID) (*user.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateName is the only profile mutation; email and role are immutable.
func (s *UserService) UpdateName(ctx context.Context, userID common.UUID, name string) (*user.User, error) {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < 2 || len(trimmed) > 100 {
		return nil, common.NewValidationError("invalid name", map[string]string{"name": "name must be between 2 and 100 characters"})
	}
	return s.users.UpdateName(ctx, userID, trimmed)
}
