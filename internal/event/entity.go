// AngelaMos | 2026
// entity.go

package event

import (
	"time"
)

const DateLayout = "2006-01-02"

type Event struct {
	ID          string    `db:"id"`
	OrganizerID string    `db:"organizer_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Location    string    `db:"location"`
	Date        time.Time `db:"date"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (e *Event) OwnedBy(organizerID string) bool {
	return e.OrganizerID == organizerID
}
