// AngelaMos | 2026
// service.go

package artist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/carterperez-dev/gigbook/internal/core"
)

var ErrProfileExists = errors.New("artist profile already exists")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create adds the caller's profile. A user owns at most one; the unique
// index on user_id covers the race between the check and the insert.
func (s *Service) Create(
	ctx context.Context,
	userID string,
	req CreateProfileRequest,
) (*Profile, error) {
	exists, err := s.repo.ExistsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrProfileExists
	}

	profile := &Profile{
		ID:           uuid.New().String(),
		UserID:       userID,
		StageName:    req.StageName,
		Bio:          req.Bio,
		Genres:       pq.StringArray(nonNil(req.Genres)),
		Availability: pq.StringArray(nonNil(req.Availability)),
	}

	if err := s.repo.Create(ctx, profile); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrProfileExists
		}
		return nil, err
	}

	slog.InfoContext(ctx, "artist profile created",
		"profile_id", profile.ID,
		"user_id", userID,
	)
	return profile, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Profile, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByUserID(ctx context.Context, userID string) (*Profile, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *Service) List(ctx context.Context) ([]Profile, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(
	ctx context.Context,
	callerID, id string,
	req UpdateProfileRequest,
) (*Profile, error) {
	profile, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !profile.OwnedBy(callerID) {
		return nil, fmt.Errorf("artist profile %s: %w", id, core.ErrForbidden)
	}

	if req.StageName != nil {
		profile.StageName = *req.StageName
	}
	if req.Bio != nil {
		profile.Bio = req.Bio
	}
	if req.Genres != nil {
		profile.Genres = pq.StringArray(req.Genres)
	}
	if req.Availability != nil {
		profile.Availability = pq.StringArray(req.Availability)
	}

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}
