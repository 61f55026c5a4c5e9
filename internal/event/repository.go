// AngelaMos | 2026
// repository.go

package event

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/gigbook/internal/core"
)

type Repository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetOwned(ctx context.Context, id, organizerID string) (*Event, error)
	List(ctx context.Context) ([]Event, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id, organizerID string) error
}

const eventColumns = `id, organizer_id, name, description, location, date,
		       created_at, updated_at`

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, event *Event) error {
	query := `
		INSERT INTO events (id, organizer_id, name, description, location, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		event.ID,
		event.OrganizerID,
		event.Name,
		event.Description,
		event.Location,
		event.Date,
	).Scan(&event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		return core.StoreError("create event", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	var event Event
	if err := r.db.GetContext(ctx, &event, query, id); err != nil {
		return nil, core.StoreError("get event", err)
	}

	return &event, nil
}

// GetOwned matches on id and organizer in one statement, so a missing event
// and someone else's event are indistinguishable to the caller.
func (r *repository) GetOwned(
	ctx context.Context,
	id, organizerID string,
) (*Event, error) {
	query := `SELECT ` + eventColumns + `
		FROM events
		WHERE id = $1 AND organizer_id = $2`

	var event Event
	if err := r.db.GetContext(ctx, &event, query, id, organizerID); err != nil {
		return nil, core.StoreError("get owned event", err)
	}

	return &event, nil
}

func (r *repository) List(ctx context.Context) ([]Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY date ASC, created_at ASC`

	events := []Event{}
	if err := r.db.SelectContext(ctx, &events, query); err != nil {
		return nil, core.StoreError("list events", err)
	}

	return events, nil
}

func (r *repository) Update(ctx context.Context, event *Event) error {
	query := `
		UPDATE events
		SET name = $3, description = $4, location = $5, date = $6,
		    updated_at = NOW()
		WHERE id = $1 AND organizer_id = $2
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &event.UpdatedAt, query,
		event.ID,
		event.OrganizerID,
		event.Name,
		event.Description,
		event.Location,
		event.Date,
	)
	if err != nil {
		return core.StoreError("update event", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id, organizerID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM events WHERE id = $1 AND organizer_id = $2`,
		id, organizerID,
	)
	if err != nil {
		return core.StoreError("delete event", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete event: %w", core.ErrNotFound)
	}

	return nil
}
