// AngelaMos | 2026
// dto.go

package booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/gigbook/internal/event"
)

type CreateBookingRequest struct {
	EventID  string           `json:"event_id"          validate:"required,uuid"`
	ArtistID string           `json:"artist_id"         validate:"required,uuid"`
	Message  *string          `json:"message,omitempty" validate:"omitempty,max=2000"`
	Price    *decimal.Decimal `json:"price,omitempty"`
}

type UpdateStatusRequest struct {
	Status  string  `json:"status"            validate:"required,oneof=pending confirmed canceled"`
	Message *string `json:"message,omitempty" validate:"omitempty,max=2000"`
}

type BookingResponse struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	ArtistID  string    `json:"artist_id"`
	Status    Status    `json:"status"`
	Message   *string   `json:"message"`
	Price     *string   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PartyResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type EventSummaryResponse struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Location    string        `json:"location"`
	Date        string        `json:"date"`
	Organizer   PartyResponse `json:"organizer"`
}

type DetailResponse struct {
	BookingResponse
	Artist PartyResponse        `json:"artist"`
	Event  EventSummaryResponse `json:"event"`
}

func ToBookingResponse(b *Booking) BookingResponse {
	resp := BookingResponse{
		ID:        b.ID,
		EventID:   b.EventID,
		ArtistID:  b.ArtistID,
		Status:    b.Status,
		Message:   b.Message,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	if b.Price.Valid {
		price := b.Price.Decimal.StringFixed(2)
		resp.Price = &price
	}
	return resp
}

func ToBookingResponseList(bookings []Booking) []BookingResponse {
	responses := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, ToBookingResponse(&bookings[i]))
	}
	return responses
}

func toParty(p Party) PartyResponse {
	return PartyResponse{ID: p.ID, Email: p.Email, Role: p.Role}
}

func ToDetailResponse(d *Detail) DetailResponse {
	return DetailResponse{
		BookingResponse: ToBookingResponse(&d.Booking),
		Artist:          toParty(d.Artist),
		Event: EventSummaryResponse{
			ID:          d.Event.ID,
			Name:        d.Event.Name,
			Description: d.Event.Description,
			Location:    d.Event.Location,
			Date:        d.Event.Date.Format(event.DateLayout),
			Organizer:   toParty(d.Event.Organizer),
		},
	}
}
