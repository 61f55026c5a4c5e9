// AngelaMos | 2026
// service_test.go

package booking

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/gigbook/internal/core"
	"github.com/carterperez-dev/gigbook/internal/user"
)

type fixture struct {
	w        *world
	svc      *Service
	org1     *user.User
	org2     *user.User
	artist1  *user.User
	artist2  *user.User
	eventID  string
	event2ID string
}

func newFixture() *fixture {
	w := newWorld()
	f := &fixture{
		w:       w,
		svc:     NewService(w, w, w),
		org1:    w.addUser(user.RoleOrganizer),
		org2:    w.addUser(user.RoleOrganizer),
		artist1: w.addUser(user.RoleArtist),
		artist2: w.addUser(user.RoleArtist),
	}
	f.eventID = w.addEvent(f.org1.ID, "Summer Fest").ID
	f.event2ID = w.addEvent(f.org2.ID, "Winter Fest").ID
	return f
}

func (f *fixture) book(t *testing.T, organizerID, eventID, artistID string) *Booking {
	t.Helper()
	b, err := f.svc.Create(context.Background(), organizerID, CreateParams{
		EventID:  eventID,
		ArtistID: artistID,
	})
	require.NoError(t, err)
	return b
}

func msg(s string) *string { return &s }

func TestCreateIsAlwaysPending(t *testing.T) {
	f := newFixture()
	price := decimal.RequireFromString("250.00")

	b, err := f.svc.Create(context.Background(), f.org1.ID, CreateParams{
		EventID:  f.eventID,
		ArtistID: f.artist1.ID,
		Message:  msg("Headline slot"),
		Price:    &price,
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, b.Status)
	assert.Equal(t, f.eventID, b.EventID)
	assert.Equal(t, f.artist1.ID, b.ArtistID)
	require.True(t, b.Price.Valid)
	assert.True(t, price.Equal(b.Price.Decimal))
	assert.Equal(t, "Headline slot", *b.Message)
	assert.Equal(t, 1, f.w.count())
}

func TestCreateRequiresOwnedEvent(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), f.org2.ID, CreateParams{
		EventID:  f.eventID,
		ArtistID: f.artist1.ID,
	})
	assert.ErrorIs(t, err, ErrEventNotOwned)

	_, err = f.svc.Create(context.Background(), f.org1.ID, CreateParams{
		EventID:  uuid.New().String(),
		ArtistID: f.artist1.ID,
	})
	assert.ErrorIs(t, err, ErrEventNotOwned)
	assert.Zero(t, f.w.count())
}

func TestCreateRequiresArtist(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), f.org1.ID, CreateParams{
		EventID:  f.eventID,
		ArtistID: uuid.New().String(),
	})
	assert.ErrorIs(t, err, ErrArtistNotFound)

	_, err = f.svc.Create(context.Background(), f.org1.ID, CreateParams{
		EventID:  f.eventID,
		ArtistID: f.org2.ID,
	})
	assert.ErrorIs(t, err, ErrArtistNotFound)
	assert.Zero(t, f.w.count())
}

func TestCreateRejectsNegativePriceAndDuplicates(t *testing.T) {
	f := newFixture()
	negative := decimal.NewFromInt(-1)

	_, err := f.svc.Create(context.Background(), f.org1.ID, CreateParams{
		EventID:  f.eventID,
		ArtistID: f.artist1.ID,
		Price:    &negative,
	})
	assert.ErrorIs(t, err, ErrNegativePrice)

	f.book(t, f.org1.ID, f.eventID, f.artist1.ID)
	_, err = f.svc.Create(context.Background(), f.org1.ID, CreateParams{
		EventID:  f.eventID,
		ArtistID: f.artist1.ID,
	})
	assert.ErrorIs(t, err, ErrBookingExists)
	assert.Equal(t, 1, f.w.count())
}

func TestCreateMapsForeignKeyViolation(t *testing.T) {
	f := newFixture()
	ghost := f.w.addUser(user.RoleArtist)
	delete(f.w.users, ghost.ID)
	users := &staticUsers{u: ghost}
	svc := NewService(f.w, f.w, users)

	_, err := svc.Create(context.Background(), f.org1.ID, CreateParams{
		EventID:  f.eventID,
		ArtistID: ghost.ID,
	})
	assert.ErrorIs(t, err, ErrInvalidReference)
}

// staticUsers resolves one user regardless of the store, standing in for an
// account deleted between lookup and insert.
type staticUsers struct{ u *user.User }

func (s *staticUsers) GetUser(context.Context, string) (*user.User, error) {
	cp := *s.u
	return &cp, nil
}

func TestUpdateStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		path    []Status
		wantErr error
	}{
		{"confirm", []Status{StatusConfirmed}, nil},
		{"cancel pending", []Status{StatusCanceled}, nil},
		{"cancel confirmed", []Status{StatusConfirmed, StatusCanceled}, nil},
		{"confirm twice", []Status{StatusConfirmed, StatusConfirmed}, ErrInvalidTransition},
		{"revive canceled", []Status{StatusCanceled, StatusConfirmed}, ErrInvalidTransition},
		{"back to pending", []Status{StatusPending}, ErrPendingTarget},
		{"confirmed to pending", []Status{StatusConfirmed, StatusPending}, ErrPendingTarget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			b := f.book(t, f.org1.ID, f.eventID, f.artist1.ID)

			var err error
			var before Status
			for _, next := range tt.path {
				before = f.w.status(b.ID)
				_, err = f.svc.UpdateStatus(context.Background(), b.ID, f.artist1.ID, next, nil)
				if err != nil {
					break
				}
			}

			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, tt.path[len(tt.path)-1], f.w.status(b.ID))
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, f.w.status(b.ID), "failed update must not change status")
		})
	}
}

func TestUpdateStatusOnlyByAssignedArtist(t *testing.T) {
	f := newFixture()
	b := f.book(t, f.org1.ID, f.eventID, f.artist1.ID)

	_, err := f.svc.UpdateStatus(context.Background(), b.ID, f.artist2.ID, StatusConfirmed, nil)
	assert.ErrorIs(t, err, ErrNotAssigned)
	assert.Equal(t, StatusPending, f.w.status(b.ID))

	_, err = f.svc.UpdateStatus(context.Background(), uuid.New().String(), f.artist1.ID, StatusConfirmed, nil)
	assert.ErrorIs(t, err, ErrNotAssigned)
}

func TestUpdateStatusReplacesMessage(t *testing.T) {
	f := newFixture()
	b, err := f.svc.Create(context.Background(), f.org1.ID, CreateParams{
		EventID:  f.eventID,
		ArtistID: f.artist1.ID,
		Message:  msg("Can you play two sets?"),
	})
	require.NoError(t, err)

	updated, err := f.svc.UpdateStatus(context.Background(), b.ID, f.artist1.ID, StatusConfirmed, nil)
	require.NoError(t, err)
	assert.Equal(t, "Can you play two sets?", *updated.Message)

	updated, err = f.svc.UpdateStatus(context.Background(), b.ID, f.artist1.ID, StatusCanceled, msg("Double booked, sorry"))
	require.NoError(t, err)
	assert.Equal(t, StatusCanceled, updated.Status)
	assert.Equal(t, "Double booked, sorry", *updated.Message)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
}

func TestCancelDeletesForEitherParticipant(t *testing.T) {
	f := newFixture()
	byArtist := f.book(t, f.org1.ID, f.eventID, f.artist1.ID)
	byOrganizer := f.book(t, f.org1.ID, f.eventID, f.artist2.ID)

	_, err := f.svc.Cancel(context.Background(), byArtist.ID, f.artist2.ID, user.RoleArtist)
	assert.ErrorIs(t, err, core.ErrNotFound)
	_, err = f.svc.Cancel(context.Background(), byArtist.ID, f.org2.ID, user.RoleOrganizer)
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Equal(t, 2, f.w.count())

	deleted, err := f.svc.Cancel(context.Background(), byArtist.ID, f.artist1.ID, user.RoleArtist)
	require.NoError(t, err)
	assert.Equal(t, byArtist.ID, deleted.ID)

	deleted, err = f.svc.Cancel(context.Background(), byOrganizer.ID, f.org1.ID, user.RoleOrganizer)
	require.NoError(t, err)
	assert.Equal(t, byOrganizer.ID, deleted.ID)
	assert.Zero(t, f.w.count())

	_, err = f.svc.Cancel(context.Background(), byArtist.ID, f.artist1.ID, user.RoleArtist)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestCancelRejectsOtherRoles(t *testing.T) {
	f := newFixture()
	b := f.book(t, f.org1.ID, f.eventID, f.artist1.ID)

	_, err := f.svc.Cancel(context.Background(), b.ID, f.org1.ID, "admin")
	assert.ErrorIs(t, err, core.ErrForbidden)

	_, err = f.svc.Cancel(context.Background(), b.ID, "", user.RoleOrganizer)
	assert.ErrorIs(t, err, core.ErrForbidden)
	assert.Equal(t, 1, f.w.count())
}

func TestListIsScopedToCaller(t *testing.T) {
	f := newFixture()
	first := f.book(t, f.org1.ID, f.eventID, f.artist1.ID)
	second := f.book(t, f.org1.ID, f.eventID, f.artist2.ID)
	other := f.book(t, f.org2.ID, f.event2ID, f.artist1.ID)

	ids := func(bs []Booking) []string {
		out := make([]string, 0, len(bs))
		for _, b := range bs {
			out = append(out, b.ID)
		}
		return out
	}

	got, err := f.svc.List(context.Background(), f.org1.ID, user.RoleOrganizer)
	require.NoError(t, err)
	assert.Equal(t, []string{second.ID, first.ID}, ids(got), "newest first")

	got, err = f.svc.List(context.Background(), f.artist1.ID, user.RoleArtist)
	require.NoError(t, err)
	assert.Equal(t, []string{other.ID, first.ID}, ids(got))

	got, err = f.svc.List(context.Background(), f.artist1.ID, "admin")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetIsLimitedToParticipants(t *testing.T) {
	f := newFixture()
	b := f.book(t, f.org1.ID, f.eventID, f.artist1.ID)

	detail, err := f.svc.Get(context.Background(), b.ID, f.org1.ID)
	require.NoError(t, err)
	assert.Equal(t, f.artist1.Email, detail.Artist.Email)
	assert.Equal(t, f.org1.Email, detail.Event.Organizer.Email)
	assert.Equal(t, "Summer Fest", detail.Event.Name)

	_, err = f.svc.Get(context.Background(), b.ID, f.artist1.ID)
	require.NoError(t, err)

	_, err = f.svc.Get(context.Background(), b.ID, f.artist2.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = f.svc.Get(context.Background(), uuid.New().String(), f.org1.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestBookingLifecycle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	b := f.book(t, f.org1.ID, f.eventID, f.artist1.ID)
	assert.Equal(t, StatusPending, b.Status)

	_, err := f.svc.UpdateStatus(ctx, b.ID, f.artist2.ID, StatusConfirmed, nil)
	assert.ErrorIs(t, err, ErrNotAssigned)

	confirmed, err := f.svc.UpdateStatus(ctx, b.ID, f.artist1.ID, StatusConfirmed, msg("See you there"))
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, confirmed.Status)

	listed, err := f.svc.List(ctx, f.org1.ID, user.RoleOrganizer)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, StatusConfirmed, listed[0].Status)

	_, err = f.svc.Cancel(ctx, b.ID, f.artist1.ID, user.RoleArtist)
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, b.ID, f.artist1.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	listed, err = f.svc.List(ctx, f.org1.ID, user.RoleOrganizer)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestCreatePriceBounds(t *testing.T) {
	tests := []struct {
		price   string
		wantErr error
	}{
		{"0", nil},
		{"9999999999.99", nil},
		{"150.500", nil},
		{"10000000000", ErrInvalidPrice},
		{"123456789012345.678", ErrInvalidPrice},
		{"10.005", ErrInvalidPrice},
		{"-0.01", ErrNegativePrice},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			f := newFixture()
			price := decimal.RequireFromString(tt.price)

			_, err := f.svc.Create(context.Background(), f.org1.ID, CreateParams{
				EventID:  f.eventID,
				ArtistID: f.artist1.ID,
				Price:    &price,
			})
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, 1, f.w.count())
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, f.w.count(), "rejected before the store")
		})
	}
}
