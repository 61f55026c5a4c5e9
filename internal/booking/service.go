// AngelaMos | 2026
// service.go

package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/gigbook/internal/core"
	"github.com/carterperez-dev/gigbook/internal/event"
	"github.com/carterperez-dev/gigbook/internal/user"
)

var (
	ErrEventNotOwned     = errors.New("event not found or the caller does not own it")
	ErrArtistNotFound    = errors.New("artist not found")
	ErrInvalidReference  = errors.New("invalid artist or event ID")
	ErrBookingExists     = errors.New("booking already exists")
	ErrNotAssigned       = errors.New("booking not found or not assigned to you")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrPendingTarget     = errors.New("status must be confirmed or canceled")
	ErrNegativePrice     = errors.New("price must not be negative")
	ErrInvalidPrice      = errors.New("price must be below 10000000000 with at most 2 decimal places")
)

// maxPrice is the first value a NUMERIC(12,2) column cannot hold.
var maxPrice = decimal.New(1, 10)

type EventLookup interface {
	GetOwned(ctx context.Context, id, organizerID string) (*event.Event, error)
}

type UserLookup interface {
	GetUser(ctx context.Context, id string) (*user.User, error)
}

type CreateParams struct {
	EventID  string
	ArtistID string
	Message  *string
	Price    *decimal.Decimal
}

type Service struct {
	repo   Repository
	events EventLookup
	users  UserLookup
}

func NewService(repo Repository, events EventLookup, users UserLookup) *Service {
	return &Service{
		repo:   repo,
		events: events,
		users:  users,
	}
}

// Create records a pending booking of artist for an event the organizer
// owns.
func (s *Service) Create(
	ctx context.Context,
	organizerID string,
	params CreateParams,
) (*Booking, error) {
	ctx, span := core.StartSpan(ctx, "booking.Create",
		attribute.String("event.id", params.EventID),
		attribute.String("artist.id", params.ArtistID),
	)
	defer span.End()

	if err := checkPrice(params.Price); err != nil {
		return nil, err
	}

	if _, err := s.events.GetOwned(ctx, params.EventID, organizerID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrEventNotOwned
		}
		core.SetSpanError(ctx, err)
		return nil, fmt.Errorf("lookup event: %w", err)
	}

	artist, err := s.users.GetUser(ctx, params.ArtistID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrArtistNotFound
		}
		core.SetSpanError(ctx, err)
		return nil, fmt.Errorf("lookup artist: %w", err)
	}
	if !artist.IsArtist() {
		return nil, ErrArtistNotFound
	}

	booking := &Booking{
		ID:       uuid.New().String(),
		EventID:  params.EventID,
		ArtistID: params.ArtistID,
		Status:   StatusPending,
		Message:  params.Message,
	}
	if params.Price != nil {
		booking.Price = decimal.NewNullDecimal(*params.Price)
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		switch {
		case errors.Is(err, core.ErrForeignKey):
			return nil, ErrInvalidReference
		case errors.Is(err, core.ErrDuplicateKey):
			return nil, ErrBookingExists
		}
		core.SetSpanError(ctx, err)
		return nil, err
	}

	core.AddSpanEvent(ctx, "booking.created", attribute.String("booking.id", booking.ID))
	slog.InfoContext(ctx, "booking created",
		"booking_id", booking.ID,
		"event_id", booking.EventID,
		"artist_id", booking.ArtistID,
		"organizer_id", organizerID,
	)
	return booking, nil
}

// List returns the caller's bookings, newest first. Roles other than artist
// and organizer see nothing.
func (s *Service) List(
	ctx context.Context,
	callerID, callerRole string,
) ([]Booking, error) {
	scope, ok := scopeFor(callerID, callerRole)
	if !ok {
		return []Booking{}, nil
	}

	return s.repo.List(ctx, scope)
}

// Get returns the joined booking. Non-participants are told it does not
// exist.
func (s *Service) Get(ctx context.Context, id, callerID string) (*Detail, error) {
	detail, err := s.repo.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	if !detail.Involves(callerID) {
		return nil, fmt.Errorf("get booking %s: %w", id, core.ErrNotFound)
	}

	return detail, nil
}

func (s *Service) UpdateStatus(
	ctx context.Context,
	id, artistID string,
	next Status,
	message *string,
) (*Booking, error) {
	ctx, span := core.StartSpan(ctx, "booking.UpdateStatus",
		attribute.String("booking.id", id),
		attribute.String("booking.status", string(next)),
	)
	defer span.End()

	if next != StatusConfirmed && next != StatusCanceled {
		return nil, ErrPendingTarget
	}

	var previous Status
	updated, err := s.repo.UpdateStatus(ctx, id, artistID, func(current *Booking) error {
		if !current.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, current.Status, next)
		}
		previous = current.Status
		current.Status = next
		if message != nil {
			current.Message = message
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			return nil, ErrNotAssigned
		case errors.Is(err, ErrInvalidTransition):
			return nil, err
		}
		core.SetSpanError(ctx, err)
		return nil, err
	}

	core.AddSpanEvent(ctx, "booking.status_changed",
		attribute.String("from", string(previous)),
		attribute.String("to", string(updated.Status)),
	)
	slog.InfoContext(ctx, "booking status changed",
		"booking_id", id,
		"artist_id", artistID,
		"from", previous,
		"to", updated.Status,
	)
	return updated, nil
}

// Cancel deletes the booking when the caller is its artist or the organizer
// of its event, returning what was removed.
func (s *Service) Cancel(
	ctx context.Context,
	id, callerID, callerRole string,
) (*Booking, error) {
	ctx, span := core.StartSpan(ctx, "booking.Cancel",
		attribute.String("booking.id", id),
	)
	defer span.End()

	scope, ok := scopeFor(callerID, callerRole)
	if !ok {
		return nil, fmt.Errorf("cancel booking: %w", core.ErrForbidden)
	}

	deleted, err := s.repo.Delete(ctx, id, scope)
	if err != nil {
		if !errors.Is(err, core.ErrNotFound) {
			core.SetSpanError(ctx, err)
		}
		return nil, err
	}

	core.AddSpanEvent(ctx, "booking.canceled")
	slog.InfoContext(ctx, "booking canceled",
		"booking_id", id,
		"caller_id", callerID,
		"caller_role", callerRole,
	)
	return deleted, nil
}

func scopeFor(callerID, callerRole string) (Scope, bool) {
	if callerID == "" {
		return Scope{}, false
	}

	switch callerRole {
	case user.RoleArtist:
		return Scope{ArtistID: callerID}, true
	case user.RoleOrganizer:
		return Scope{OrganizerID: callerID}, true
	}
	return Scope{}, false
}

func checkPrice(price *decimal.Decimal) error {
	switch {
	case price == nil:
		return nil
	case price.IsNegative():
		return ErrNegativePrice
	case price.GreaterThanOrEqual(maxPrice), !price.Equal(price.Truncate(2)):
		return ErrInvalidPrice
	}
	return nil
}
