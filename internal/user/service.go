// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/gigbook/internal/auth"
	"github.com/carterperez-dev/gigbook/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) Create(
	ctx context.Context,
	email, passwordHash, role string,
) (*auth.UserInfo, error) {
	if !ValidRole(role) {
		return nil, fmt.Errorf(
			"create user: invalid role %q: %w",
			role,
			core.ErrInvalidInput,
		)
	}

	user := &User{
		ID:           uuid.New().String(),
		Email:        normalizeEmail(email),
		PasswordHash: passwordHash,
		Role:         role,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "user created", "user_id", user.ID, "role", user.Role)
	return toUserInfo(user), nil
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	userID, passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListUsers(
	ctx context.Context,
	params ListUsersParams,
) ([]User, error) {
	return s.repo.List(ctx, params)
}

// UpdateEmail changes the address of targetID. Only the account owner may
// do this; role is never writable.
func (s *Service) UpdateEmail(
	ctx context.Context,
	callerID, targetID, email string,
) (*User, error) {
	if callerID == "" {
		return nil, fmt.Errorf("update user: %w", core.ErrUnauthorized)
	}
	if callerID != targetID {
		return nil, fmt.Errorf("update user: %w", core.ErrForbidden)
	}

	return s.repo.UpdateEmail(ctx, targetID, normalizeEmail(email))
}

func (s *Service) DeleteUser(
	ctx context.Context,
	callerID, targetID string,
) error {
	if callerID == "" {
		return fmt.Errorf("delete user: %w", core.ErrUnauthorized)
	}
	if callerID != targetID {
		return fmt.Errorf("delete user: %w", core.ErrForbidden)
	}

	if err := s.repo.Delete(ctx, targetID); err != nil {
		return err
	}

	slog.InfoContext(ctx, "user deleted", "user_id", targetID)
	return nil
}

func (s *Service) GetMe(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("get me: %w", core.ErrUnauthorized)
	}

	return s.repo.GetByID(ctx, userID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

var _ auth.UserProvider = (*Service)(nil)
