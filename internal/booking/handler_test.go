// AngelaMos | 2026
// handler_test.go

package booking

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/gigbook/internal/core"
	"github.com/carterperez-dev/gigbook/internal/middleware"
	"github.com/carterperez-dev/gigbook/internal/user"
)

func routerAs(svc *Service, u *user.User) http.Handler {
	authenticate := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := middleware.WithClaims(r.Context(), &middleware.AccessTokenClaims{
				UserID: u.ID,
				Email:  u.Email,
				Role:   u.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}

	r := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(r, authenticate)
	return r
}

func call(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) *core.ErrorBody {
	t.Helper()
	var resp core.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	return resp.Error
}

func createBody(eventID, artistID string) string {
	return `{"event_id":"` + eventID + `","artist_id":"` + artistID + `","price":"150.5"}`
}

func TestCreateBookingHandler(t *testing.T) {
	f := newFixture()
	org1 := routerAs(f.svc, f.org1)

	rec := call(org1, http.MethodPost, "/bookings/", createBody(f.eventID, f.artist1.ID))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Data BookingResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, StatusPending, created.Data.Status)
	require.NotNil(t, created.Data.Price)
	assert.Equal(t, "150.50", *created.Data.Price)

	rec = call(org1, http.MethodPost, "/bookings/", createBody(f.eventID, f.artist1.ID))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateBookingHandlerErrors(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name    string
		as      *user.User
		body    string
		status  int
		message string
	}{
		{
			name:    "foreign event",
			as:      f.org2,
			body:    createBody(f.eventID, f.artist1.ID),
			status:  http.StatusForbidden,
			message: "event not found or the caller does not own it",
		},
		{
			name:    "artist cannot create",
			as:      f.artist1,
			body:    createBody(f.eventID, f.artist1.ID),
			status:  http.StatusForbidden,
			message: "insufficient permissions",
		},
		{
			name:    "unknown artist",
			as:      f.org1,
			body:    createBody(f.eventID, uuid.New().String()),
			status:  http.StatusNotFound,
			message: "artist not found",
		},
		{
			name:   "malformed ids",
			as:     f.org1,
			body:   `{"event_id":"evt1","artist_id":"artist1"}`,
			status: http.StatusBadRequest,
		},
		{
			name:    "negative price",
			as:      f.org1,
			body:    `{"event_id":"` + f.eventID + `","artist_id":"` + f.artist1.ID + `","price":"-5"}`,
			status:  http.StatusBadRequest,
			message: "price must not be negative",
		},
		{
			name:    "price too large",
			as:      f.org1,
			body:    `{"event_id":"` + f.eventID + `","artist_id":"` + f.artist1.ID + `","price":"123456789012345.678"}`,
			status:  http.StatusBadRequest,
			message: ErrInvalidPrice.Error(),
		},
		{
			name:    "sub-cent price",
			as:      f.org1,
			body:    `{"event_id":"` + f.eventID + `","artist_id":"` + f.artist1.ID + `","price":"10.005"}`,
			status:  http.StatusBadRequest,
			message: ErrInvalidPrice.Error(),
		},
		{
			name:   "broken json",
			as:     f.org1,
			body:   `{"event_id":`,
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(routerAs(f.svc, tt.as), http.MethodPost, "/bookings/", tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.message != "" {
				assert.Equal(t, tt.message, errorBody(t, rec).Message)
			}
		})
	}

	assert.Zero(t, f.w.count())
}

func TestUpdateStatusHandler(t *testing.T) {
	f := newFixture()
	b := f.book(t, f.org1.ID, f.eventID, f.artist1.ID)
	path := "/bookings/" + b.ID + "/status"

	rec := call(routerAs(f.svc, f.org1), http.MethodPut, path, `{"status":"confirmed"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = call(routerAs(f.svc, f.artist2), http.MethodPut, path, `{"status":"confirmed"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "booking not found or not assigned to you", errorBody(t, rec).Message)

	artist := routerAs(f.svc, f.artist1)

	rec = call(artist, http.MethodPut, path, `{"status":"archived"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(artist, http.MethodPut, path, `{"status":"pending"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(artist, http.MethodPut, "/bookings/not-a-uuid/status", `{"status":"confirmed"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid booking ID", errorBody(t, rec).Message)

	rec = call(artist, http.MethodPut, path, `{"status":"canceled","message":"Injured"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated struct {
		Data BookingResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, StatusCanceled, updated.Data.Status)
	assert.Equal(t, "Injured", *updated.Data.Message)

	rec = call(artist, http.MethodPut, path, `{"status":"confirmed"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, StatusCanceled, f.w.status(b.ID))
}

func TestGetAndListHandlers(t *testing.T) {
	f := newFixture()
	b := f.book(t, f.org1.ID, f.eventID, f.artist1.ID)

	rec := call(routerAs(f.svc, f.artist1), http.MethodGet, "/bookings/"+b.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var detail struct {
		Data DetailResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, b.ID, detail.Data.ID)
	assert.Equal(t, f.artist1.Email, detail.Data.Artist.Email)
	assert.Equal(t, f.org1.ID, detail.Data.Event.Organizer.ID)
	assert.Equal(t, "2026-07-04", detail.Data.Event.Date)
	assert.Nil(t, detail.Data.Price)

	rec = call(routerAs(f.svc, f.artist2), http.MethodGet, "/bookings/"+b.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = call(routerAs(f.svc, f.org2), http.MethodGet, "/bookings/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Data []BookingResponse `json:"data"`
		Meta core.Meta         `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Empty(t, list.Data)
	assert.Equal(t, 0, list.Meta.Count)

	rec = call(routerAs(f.svc, f.org1), http.MethodGet, "/bookings/", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list.Data, 1)
}

func TestCancelHandler(t *testing.T) {
	f := newFixture()
	b := f.book(t, f.org1.ID, f.eventID, f.artist1.ID)
	path := "/bookings/" + b.ID

	rec := call(routerAs(f.svc, f.org2), http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	stranger := &user.User{ID: uuid.New().String(), Role: "admin"}
	rec = call(routerAs(f.svc, stranger), http.MethodDelete, path, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = call(routerAs(f.svc, f.org1), http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var deleted struct {
		Data BookingResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &deleted))
	assert.Equal(t, b.ID, deleted.Data.ID)

	rec = call(routerAs(f.svc, f.org1), http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "booking not found", errorBody(t, rec).Message)
}
