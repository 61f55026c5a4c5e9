// AngelaMos | 2026
// dto.go

package event

import (
	"time"
)

type CreateEventRequest struct {
	Name        string `json:"name"        validate:"required,min=2,max=200"`
	Description string `json:"description" validate:"max=5000"`
	Location    string `json:"location"    validate:"max=255"`
	Date        string `json:"date"        validate:"required,datetime=2006-01-02"`
}

type UpdateEventRequest struct {
	Name        *string `json:"name,omitempty"        validate:"omitempty,min=2,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	Location    *string `json:"location,omitempty"    validate:"omitempty,max=255"`
	Date        *string `json:"date,omitempty"        validate:"omitempty,datetime=2006-01-02"`
}

type EventResponse struct {
	ID          string    `json:"id"`
	OrganizerID string    `json:"organizer_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToEventResponse(e *Event) EventResponse {
	return EventResponse{
		ID:          e.ID,
		OrganizerID: e.OrganizerID,
		Name:        e.Name,
		Description: e.Description,
		Location:    e.Location,
		Date:        e.Date.Format(DateLayout),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func ToEventResponseList(events []Event) []EventResponse {
	responses := make([]EventResponse, 0, len(events))
	for i := range events {
		responses = append(responses, ToEventResponse(&events[i]))
	}
	return responses
}
