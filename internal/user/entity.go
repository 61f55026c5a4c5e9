// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

type User struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (u *User) IsArtist() bool {
	return u.Role == RoleArtist
}

func (u *User) IsOrganizer() bool {
	return u.Role == RoleOrganizer
}

const (
	RoleArtist    = "artist"
	RoleOrganizer = "organizer"
)

func ValidRole(role string) bool {
	return role == RoleArtist || role == RoleOrganizer
}
