// AngelaMos | 2026
// entity.go

package booking

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCanceled  Status = "canceled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCanceled:
		return true
	}
	return false
}

// CanTransitionTo reports whether an artist may move a booking from s to
// next. canceled is terminal and nothing returns to pending.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCanceled
	case StatusConfirmed:
		return next == StatusCanceled
	}
	return false
}

type Booking struct {
	ID        string              `db:"id"`
	EventID   string              `db:"event_id"`
	ArtistID  string              `db:"artist_id"`
	Status    Status              `db:"status"`
	Message   *string             `db:"message"`
	Price     decimal.NullDecimal `db:"price"`
	CreatedAt time.Time           `db:"created_at"`
	UpdatedAt time.Time           `db:"updated_at"`
}

type Party struct {
	ID    string
	Email string
	Role  string
}

type EventSummary struct {
	ID          string
	Name        string
	Description string
	Location    string
	Date        time.Time
	Organizer   Party
}

// Detail is a booking joined with the identities of everyone involved.
type Detail struct {
	Booking
	Artist Party
	Event  EventSummary
}

func (d *Detail) Involves(userID string) bool {
	return userID != "" &&
		(d.Artist.ID == userID || d.Event.Organizer.ID == userID)
}

// Scope restricts a query to the bookings one caller may see. Exactly one
// of ArtistID or OrganizerID is set.
type Scope struct {
	ArtistID    string
	OrganizerID string
}
