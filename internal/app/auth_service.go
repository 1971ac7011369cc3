package app

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"ats/internal/common"
	"ats/internal/domain/user"
	"ats/internal/security"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AuthService handles registration and credential checks. Every login is
// gated by the LoginGuard before the password is even looked at, so a locked
// identity cannot probe credentials during the lockout window.
type AuthService struct {
	users     user.Repository
	guard     *security.LoginGuard
	jwt       *security.JWTProvider
	logger    Logger
	accessTTL time.Duration
}

func NewAuthService(users user.Repository, guard *security.LoginGuard, jwtProvider *security.JWTProvider, logger Logger, accessTTL time.Duration) *AuthService {
	return &AuthService{users: users, guard: guard, jwt: jwtProvider, logger: logger, accessTTL: accessTTL}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*user.User, error) {
	fields := map[string]string{}
	name := strings.TrimSpace(input.Name)
	if len(name) < 2 || len(name) > 100 {
		fields["name"] = "name must be between 2 and 100 characters"
	}
	email := normalizeEmail(input.Email)
	if !emailPattern.MatchString(email) {
		fields["email"] = "invalid email address"
	}
	if len(input.Password) < 8 {
		fields["password"] = "password must be at least 8 characters"
	}
	role, err := user.ParseRole(input.Role)
	if err != nil {
		fields["role"] = "role must be candidate or recruiter"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid registration", fields)
	}
	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	account, err := s.users.Create(ctx, user.User{
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}
	s.logInfo(fmt.Sprintf("user registered user_id=%s role=%s", account.ID, account.Role))
	return account, nil
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *user.User
}

// Login verifies credentials for the identity. Unknown email and wrong
// password take the same path: both count a guard failure and return the same
// unauthorized message, so callers cannot distinguish which part was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	identity := normalizeEmail(email)
	if err := s.guard.CheckNotLocked(identity); err != nil {
		s.logInfo(fmt.Sprintf("login refused, account locked email=%s", identity))
		return nil, err
	}
	account, err := s.users.GetByEmail(ctx, identity)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			s.guard.RecordFailure(identity)
			return nil, common.NewError(common.CodeUnauthorized, "invalid credentials", nil)
		}
		return nil, err
	}
	if !security.CheckPassword(account.PasswordHash, password) {
		s.guard.RecordFailure(identity)
		s.logInfo(fmt.Sprintf("login failed user_id=%s", account.ID))
		return nil, common.NewError(common.CodeUnauthorized, "invalid credentials", nil)
	}
	s.guard.RecordSuccess(identity)
	token, expiresAt, err := s.jwt.Generate(account.ID, account.Email, string(account.Role), s.accessTTL)
	if err != nil {
		return nil, err
	}
	s.logInfo(fmt.Sprintf("user logged in user_id=%s", account.ID))
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: account}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) logInfo(msg string) {
	if s.logger == nil {
		return
	}
	s.logger.Info(msg)
}
