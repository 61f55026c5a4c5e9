// AngelaMos | 2026
// dto.go

package artist

import (
	"time"
)

type CreateProfileRequest struct {
	StageName    string   `json:"stage_name"   validate:"required,min=2,max=100"`
	Bio          *string  `json:"bio,omitempty" validate:"omitempty,max=5000"`
	Genres       []string `json:"genres"       validate:"required,max=20,dive,min=1,max=50"`
	Availability []string `json:"availability" validate:"required,max=100,dive,min=1,max=50"`
}

type UpdateProfileRequest struct {
	StageName    *string  `json:"stage_name,omitempty"   validate:"omitempty,min=2,max=100"`
	Bio          *string  `json:"bio,omitempty"          validate:"omitempty,max=5000"`
	Genres       []string `json:"genres,omitempty"       validate:"omitempty,max=20,dive,min=1,max=50"`
	Availability []string `json:"availability,omitempty" validate:"omitempty,max=100,dive,min=1,max=50"`
}

type ProfileResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	StageName    string    `json:"stage_name"`
	Bio          *string   `json:"bio"`
	Genres       []string  `json:"genres"`
	Availability []string  `json:"availability"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ToProfileResponse(p *Profile) ProfileResponse {
	return ProfileResponse{
		ID:           p.ID,
		UserID:       p.UserID,
		StageName:    p.StageName,
		Bio:          p.Bio,
		Genres:       nonNil(p.Genres),
		Availability: nonNil(p.Availability),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func ToProfileResponseList(profiles []Profile) []ProfileResponse {
	responses := make([]ProfileResponse, 0, len(profiles))
	for i := range profiles {
		responses = append(responses, ToProfileResponse(&profiles[i]))
	}
	return responses
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
