// AngelaMos | 2026
// handler.go

package booking

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
	r.Route("/bookings", func(r chi.Router) {
		r.Use(authenticator)

		r.With(middleware.RequireRole(user.RoleOrganizer)).Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{bookingID}", h.Get)
		r.With(middleware.RequireRole(user.RoleArtist)).
			Put("/{bookingID}/status", h.UpdateStatus)
		r.Delete("/{bookingID}", h.Cancel)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	booking, err := h.service.Create(
		r.Context(),
		middleware.GetUserID(r.Context()),
		CreateParams{
			EventID:  req.EventID,
			ArtistID: req.ArtistID,
			Message:  req.Message,
			Price:    req.Price,
		},
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.Created(w, ToBookingResponse(booking))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.List(
		r.Context(),
		middleware.GetUserID(r.Context()),
		middleware.GetUserRole(r.Context()),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.List(w, ToBookingResponseList(bookings), len(bookings))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.bookingID(w, r)
	if !ok {
		return
	}

	detail, err := h.service.Get(r.Context(), id, middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToDetailResponse(detail))
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.bookingID(w, r)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	booking, err := h.service.UpdateStatus(
		r.Context(),
		id,
		middleware.GetUserID(r.Context()),
		Status(req.Status),
		req.Message,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToBookingResponse(booking))
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := h.bookingID(w, r)
	if !ok {
		return
	}

	booking, err := h.service.Cancel(
		r.Context(),
		id,
		middleware.GetUserID(r.Context()),
		middleware.GetUserRole(r.Context()),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToBookingResponse(booking))
}

func (h *Handler) bookingID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "bookingID")
	if err := h.validator.Var(id, "required,uuid"); err != nil {
		core.BadRequest(w, "invalid booking ID")
		return "", false
	}
	return id, true
}

// writeError is the single place booking failures become HTTP responses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNegativePrice):
		core.BadRequest(w, ErrNegativePrice.Error())
	case errors.Is(err, ErrInvalidPrice), errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, ErrInvalidPrice.Error())
	case errors.Is(err, ErrPendingTarget):
		core.BadRequest(w, ErrPendingTarget.Error())
	case errors.Is(err, ErrInvalidReference):
		core.BadRequest(w, ErrInvalidReference.Error())
	case errors.Is(err, ErrEventNotOwned):
		core.Forbidden(w, ErrEventNotOwned.Error())
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "only artists and organizers can cancel bookings")
	case errors.Is(err, ErrArtistNotFound):
		core.NotFound(w, "artist")
	case errors.Is(err, ErrNotAssigned):
		core.JSONError(w, core.NewAppError(
			err,
			ErrNotAssigned.Error(),
			http.StatusNotFound,
			"NOT_FOUND",
		))
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "booking")
	case errors.Is(err, ErrBookingExists):
		core.Conflict(w, ErrBookingExists.Error())
	case errors.Is(err, ErrInvalidTransition):
		core.Conflict(w, ErrInvalidTransition.Error())
	default:
		core.InternalServerError(w, err)
	}
}
