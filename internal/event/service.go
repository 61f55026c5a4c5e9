// AngelaMos | 2026
// service.go

package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/gigbook/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(
	ctx context.Context,
	organizerID string,
	req CreateEventRequest,
) (*Event, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	event := &Event{
		ID:          uuid.New().String(),
		OrganizerID: organizerID,
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Date:        date,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "event created",
		"event_id", event.ID,
		"organizer_id", organizerID,
	)
	return event, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Event, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetOwned(
	ctx context.Context,
	id, organizerID string,
) (*Event, error) {
	return s.repo.GetOwned(ctx, id, organizerID)
}

func (s *Service) List(ctx context.Context) ([]Event, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(
	ctx context.Context,
	callerID, id string,
	req UpdateEventRequest,
) (*Event, error) {
	event, err := s.authorize(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		event.Name = *req.Name
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		event.Date = date
	}

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

func (s *Service) Delete(ctx context.Context, callerID, id string) error {
	if _, err := s.authorize(ctx, callerID, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id, callerID); err != nil {
		return err
	}

	slog.InfoContext(ctx, "event deleted", "event_id", id, "organizer_id", callerID)
	return nil
}

// authorize separates a missing event (404) from one owned by another
// organizer (403).
func (s *Service) authorize(
	ctx context.Context,
	callerID, id string,
) (*Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !event.OwnedBy(callerID) {
		return nil, fmt.Errorf("event %s: %w", id, core.ErrForbidden)
	}

	return event, nil
}

func parseDate(value string) (time.Time, error) {
	date, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", value, core.ErrInvalidInput)
	}
	return date, nil
}
