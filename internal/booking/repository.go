// AngelaMos | 2026
// repository.go

package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/gigbook/internal/core"
)

type Repository interface {
	Create(ctx context.Context, booking *Booking) error
	List(ctx context.Context, scope Scope) ([]Booking, error)
	GetDetail(ctx context.Context, id string) (*Detail, error)
	UpdateStatus(
		ctx context.Context,
		id, artistID string,
		mutate func(current *Booking) error,
	) (*Booking, error)
	Delete(ctx context.Context, id string, scope Scope) (*Booking, error)
}

var bookingColumns = []string{
	"id", "event_id", "artist_id", "status", "message", "price",
	"created_at", "updated_at",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, booking *Booking) error {
	query, args, err := psql.Insert("bookings").
		Columns("id", "event_id", "artist_id", "status", "message", "price").
		Values(
			booking.ID,
			booking.EventID,
			booking.ArtistID,
			booking.Status,
			booking.Message,
			booking.Price,
		).
		Suffix("RETURNING " + strings.Join(bookingColumns, ", ")).
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query: %w", err)
	}

	// The stored row replaces the input, so price comes back as the column
	// rounded it.
	if err := r.db.GetContext(ctx, booking, query, args...); err != nil {
		return core.StoreError("create booking", err)
	}

	return nil
}

func (r *repository) List(ctx context.Context, scope Scope) ([]Booking, error) {
	pred, err := scope.predicate()
	if err != nil {
		return nil, err
	}

	query, args, err := psql.Select(bookingColumns...).
		From("bookings").
		Where(pred).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query: %w", err)
	}

	bookings := []Booking{}
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, core.StoreError("list bookings", err)
	}

	return bookings, nil
}

type detailRow struct {
	Booking
	ArtistEmail      string    `db:"artist_email"`
	ArtistRole       string    `db:"artist_role"`
	EventName        string    `db:"event_name"`
	EventDescription string    `db:"event_description"`
	EventLocation    string    `db:"event_location"`
	EventDate        time.Time `db:"event_date"`
	OrganizerID      string    `db:"organizer_id"`
	OrganizerEmail   string    `db:"organizer_email"`
	OrganizerRole    string    `db:"organizer_role"`
}

func (r *repository) GetDetail(ctx context.Context, id string) (*Detail, error) {
	query := `
		SELECT b.id, b.event_id, b.artist_id, b.status, b.message, b.price,
		       b.created_at, b.updated_at,
		       a.email AS artist_email, a.role AS artist_role,
		       e.name AS event_name, e.description AS event_description,
		       e.location AS event_location, e.date AS event_date,
		       e.organizer_id, o.email AS organizer_email, o.role AS organizer_role
		FROM bookings b
		JOIN users a ON a.id = b.artist_id
		JOIN events e ON e.id = b.event_id
		JOIN users o ON o.id = e.organizer_id
		WHERE b.id = $1`

	var row detailRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, core.StoreError("get booking", err)
	}

	return &Detail{
		Booking: row.Booking,
		Artist: Party{
			ID:    row.ArtistID,
			Email: row.ArtistEmail,
			Role:  row.ArtistRole,
		},
		Event: EventSummary{
			ID:          row.EventID,
			Name:        row.EventName,
			Description: row.EventDescription,
			Location:    row.EventLocation,
			Date:        row.EventDate,
			Organizer: Party{
				ID:    row.OrganizerID,
				Email: row.OrganizerEmail,
				Role:  row.OrganizerRole,
			},
		},
	}, nil
}

// UpdateStatus locks the booking row matching both id and artistID, lets
// mutate inspect and change it, then writes status and message back in the
// same transaction. A row assigned to another artist reads as not found.
func (r *repository) UpdateStatus(
	ctx context.Context,
	id, artistID string,
	mutate func(current *Booking) error,
) (*Booking, error) {
	lockQuery, lockArgs, err := psql.Select(bookingColumns...).
		From("bookings").
		Where(sq.Eq{"id": id, "artist_id": artistID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build lock booking query: %w", err)
	}

	var updated Booking
	err = core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var current Booking
		if err := tx.GetContext(ctx, &current, lockQuery, lockArgs...); err != nil {
			return core.StoreError("lock booking", err)
		}

		if err := mutate(&current); err != nil {
			return err
		}

		query, args, err := psql.Update("bookings").
			Set("status", current.Status).
			Set("message", current.Message).
			Set("updated_at", sq.Expr("NOW()")).
			Where(sq.Eq{"id": current.ID}).
			Suffix("RETURNING " + strings.Join(bookingColumns, ", ")).
			ToSql()
		if err != nil {
			return fmt.Errorf("build update booking query: %w", err)
		}

		if err := tx.GetContext(ctx, &updated, query, args...); err != nil {
			return core.StoreError("update booking status", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *repository) Delete(
	ctx context.Context,
	id string,
	scope Scope,
) (*Booking, error) {
	pred, err := scope.predicate()
	if err != nil {
		return nil, err
	}

	query, args, err := psql.Delete("bookings").
		Where(sq.Eq{"id": id}).
		Where(pred).
		Suffix("RETURNING " + strings.Join(bookingColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build delete booking query: %w", err)
	}

	var deleted Booking
	if err := r.db.GetContext(ctx, &deleted, query, args...); err != nil {
		return nil, core.StoreError("delete booking", err)
	}

	return &deleted, nil
}

func (s Scope) predicate() (sq.Sqlizer, error) {
	switch {
	case s.ArtistID != "":
		return sq.Eq{"artist_id": s.ArtistID}, nil
	case s.OrganizerID != "":
		return sq.Expr(
			"event_id IN (SELECT id FROM events WHERE organizer_id = ?)",
			s.OrganizerID,
		), nil
	}
	return nil, fmt.Errorf("booking scope: %w", core.ErrForbidden)
}

