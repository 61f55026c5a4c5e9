// AngelaMos | 2026
// repository.go

package artist

import (
	"context"

	"github.com/carterperez-dev/gigbook/internal/core"
)

type Repository interface {
	Create(ctx context.Context, profile *Profile) error
	GetByID(ctx context.Context, id string) (*Profile, error)
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	ExistsByUserID(ctx context.Context, userID string) (bool, error)
	List(ctx context.Context) ([]Profile, error)
	Update(ctx context.Context, profile *Profile) error
}

const profileColumns = `id, user_id, stage_name, bio, genres, availability,
		       created_at, updated_at`

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, profile *Profile) error {
	query := `
		INSERT INTO artist_profiles (id, user_id, stage_name, bio, genres, availability)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		profile.ID,
		profile.UserID,
		profile.StageName,
		profile.Bio,
		profile.Genres,
		profile.Availability,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return core.StoreError("create artist profile", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM artist_profiles WHERE id = $1`

	var profile Profile
	if err := r.db.GetContext(ctx, &profile, query, id); err != nil {
		return nil, core.StoreError("get artist profile", err)
	}

	return &profile, nil
}

func (r *repository) GetByUserID(
	ctx context.Context,
	userID string,
) (*Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM artist_profiles WHERE user_id = $1`

	var profile Profile
	if err := r.db.GetContext(ctx, &profile, query, userID); err != nil {
		return nil, core.StoreError("get artist profile by user", err)
	}

	return &profile, nil
}

func (r *repository) ExistsByUserID(
	ctx context.Context,
	userID string,
) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM artist_profiles WHERE user_id = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID); err != nil {
		return false, core.StoreError("check artist profile exists", err)
	}

	return exists, nil
}

func (r *repository) List(ctx context.Context) ([]Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM artist_profiles ORDER BY created_at DESC`

	profiles := []Profile{}
	if err := r.db.SelectContext(ctx, &profiles, query); err != nil {
		return nil, core.StoreError("list artist profiles", err)
	}

	return profiles, nil
}

func (r *repository) Update(ctx context.Context, profile *Profile) error {
	query := `
		UPDATE artist_profiles
		SET stage_name = $3, bio = $4, genres = $5, availability = $6,
		    updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &profile.UpdatedAt, query,
		profile.ID,
		profile.UserID,
		profile.StageName,
		profile.Bio,
		profile.Genres,
		profile.Availability,
	)
	if err != nil {
		return core.StoreError("update artist profile", err)
	}

	return nil
}
