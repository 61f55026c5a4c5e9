// AngelaMos | 2026
// handler.go

package artist

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/gigbook/internal/core"
	"github.com/carterperez-dev/gigbook/internal/middleware"
	"github.com/carterperez-dev/gigbook/internal/user"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/artists", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/user/{userID}", h.GetByUser)
		r.Get("/{profileID}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Use(middleware.RequireRole(user.RoleArtist))

			r.Post("/", h.Create)
			r.Put("/{profileID}", h.Update)
		})
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	profile, err := h.service.Create(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		writeError(w, err)
		return
	}

	core.Created(w, ToProfileResponse(profile))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.service.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.List(w, ToProfileResponseList(profiles), len(profiles))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.Get(r.Context(), chi.URLParam(r, "profileID"))
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToProfileResponse(profile))
}

func (h *Handler) GetByUser(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.GetByUserID(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToProfileResponse(profile))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	profile, err := h.service.Update(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "profileID"),
		req,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToProfileResponse(profile))
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrProfileExists):
		core.Conflict(w, "Artist profile already exists")
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "you are not authorized to update this profile")
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "artist profile")
	default:
		core.InternalServerError(w, err)
	}
}
