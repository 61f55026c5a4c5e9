// AngelaMos | 2026
// entity.go

package artist

import (
	"time"

	"github.com/lib/pq"
)

type Profile struct {
	ID           string         `db:"id"`
	UserID       string         `db:"user_id"`
	StageName    string         `db:"stage_name"`
	Bio          *string        `db:"bio"`
	Genres       pq.StringArray `db:"genres"`
	Availability pq.StringArray `db:"availability"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (p *Profile) OwnedBy(userID string) bool {
	return p.UserID == userID
}
