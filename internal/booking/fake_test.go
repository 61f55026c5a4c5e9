// AngelaMos | 2026
// fake_test.go

package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/gigbook/internal/core"
	"github.com/carterperez-dev/gigbook/internal/event"
	"github.com/carterperez-dev/gigbook/internal/user"
)

// world is an in-memory stand-in for the users, events and bookings tables.
// It enforces the same keys and filters the SQL does.
type world struct {
	mu       sync.Mutex
	users    map[string]*user.User
	events   map[string]*event.Event
	bookings map[string]*Booking
	clock    time.Time
}

func newWorld() *world {
	return &world{
		users:    make(map[string]*user.User),
		events:   make(map[string]*event.Event),
		bookings: make(map[string]*Booking),
		clock:    time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (w *world) tick() time.Time {
	w.clock = w.clock.Add(time.Second)
	return w.clock
}

func (w *world) addUser(role string) *user.User {
	w.mu.Lock()
	defer w.mu.Unlock()
	u := &user.User{
		ID:    uuid.New().String(),
		Email: role + "-" + uuid.New().String()[:8] + "@example.com",
		Role:  role,
	}
	w.users[u.ID] = u
	return u
}

func (w *world) addEvent(organizerID, name string) *event.Event {
	w.mu.Lock()
	defer w.mu.Unlock()
	e := &event.Event{
		ID:          uuid.New().String(),
		OrganizerID: organizerID,
		Name:        name,
		Date:        time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC),
	}
	w.events[e.ID] = e
	return e
}

func (w *world) GetOwned(_ context.Context, id, organizerID string) (*event.Event, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	e, ok := w.events[id]
	if !ok || e.OrganizerID != organizerID {
		return nil, core.StoreError("get owned event", core.ErrNotFound)
	}
	cp := *e
	return &cp, nil
}

func (w *world) GetUser(_ context.Context, id string) (*user.User, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	u, ok := w.users[id]
	if !ok {
		return nil, core.StoreError("get user", core.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (w *world) Create(_ context.Context, b *Booking) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.events[b.EventID]; !ok {
		return core.StoreError("create booking", core.ErrForeignKey)
	}
	if _, ok := w.users[b.ArtistID]; !ok {
		return core.StoreError("create booking", core.ErrForeignKey)
	}
	for _, existing := range w.bookings {
		if existing.EventID == b.EventID && existing.ArtistID == b.ArtistID {
			return core.StoreError("create booking", core.ErrDuplicateKey)
		}
	}
	now := w.tick()
	b.CreatedAt, b.UpdatedAt = now, now
	cp := *b
	w.bookings[b.ID] = &cp
	return nil
}

func (w *world) inScope(b *Booking, scope Scope) bool {
	switch {
	case scope.ArtistID != "":
		return b.ArtistID == scope.ArtistID
	case scope.OrganizerID != "":
		e, ok := w.events[b.EventID]
		return ok && e.OrganizerID == scope.OrganizerID
	}
	return false
}

func (w *world) List(_ context.Context, scope Scope) ([]Booking, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := []Booking{}
	for _, b := range w.bookings {
		if w.inScope(b, scope) {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (w *world) GetDetail(_ context.Context, id string) (*Detail, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	b, ok := w.bookings[id]
	if !ok {
		return nil, core.StoreError("get booking", core.ErrNotFound)
	}
	a := w.users[b.ArtistID]
	e := w.events[b.EventID]
	o := w.users[e.OrganizerID]
	return &Detail{
		Booking: *b,
		Artist:  Party{ID: a.ID, Email: a.Email, Role: a.Role},
		Event: EventSummary{
			ID:        e.ID,
			Name:      e.Name,
			Date:      e.Date,
			Organizer: Party{ID: o.ID, Email: o.Email, Role: o.Role},
		},
	}, nil
}

func (w *world) UpdateStatus(
	_ context.Context,
	id, artistID string,
	mutate func(current *Booking) error,
) (*Booking, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	b, ok := w.bookings[id]
	if !ok || b.ArtistID != artistID {
		return nil, core.StoreError("lock booking", core.ErrNotFound)
	}
	working := *b
	if err := mutate(&working); err != nil {
		return nil, err
	}
	working.UpdatedAt = w.tick()
	*b = working
	cp := working
	return &cp, nil
}

func (w *world) Delete(_ context.Context, id string, scope Scope) (*Booking, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	b, ok := w.bookings[id]
	if !ok || !w.inScope(b, scope) {
		return nil, core.StoreError("delete booking", core.ErrNotFound)
	}
	delete(w.bookings, id)
	return b, nil
}

func (w *world) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.bookings)
}

func (w *world) status(id string) Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.bookings[id].Status
}

var (
	_ Repository  = (*world)(nil)
	_ EventLookup = (*world)(nil)
	_ UserLookup  = (*world)(nil)
)
