package users

import (
	"net/http"
	"time"

	"github.com/chris/apartment-rentals/pkg/api"
	"github.com/chris/apartment-rentals/pkg/booking"
	"github.com/chris/apartment-rentals/pkg/handlers/respond"
	"github.com/chris/apartment-rentals/pkg/identity"
	"github.com/chris/apartment-rentals/pkg/mapping"
	"github.com/chris/apartment-rentals/pkg/storage"
	"github.com/google/uuid"
)

// UsersHandler serves the admin user back office.
type UsersHandler struct {
	Store storage.UserStore
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(store storage.UserStore) *UsersHandler {
	return &UsersHandler{Store: store}
}

// ListUsers lists every user.
func (h *UsersHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	domainUsers, err := h.Store.ListUsers(r.Context())
	if err != nil {
		respond.Error(w, r, booking.StoreError(err, "user"))
		return
	}

	apiUsers := make([]*api.User, len(domainUsers))
	for i, u := range domainUsers {
		apiUsers[i] = mapping.ToApiUser(&u)
	}
	respond.JSON(w, http.StatusOK, apiUsers)
}

// GetUser returns one user.
func (h *UsersHandler) GetUser(w http.ResponseWriter, r *http.Request, userId string) {
	if !requireAdmin(w, r) {
		return
	}
	u, err := h.Store.GetUser(r.Context(), userId)
	if err != nil {
		respond.Error(w, r, booking.StoreError(err, "user"))
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiUser(u))
}

// CreateUser registers a user. The id is generated unless supplied.
func (h *UsersHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	var body api.NewUser
	if !respond.Decode(w, r, &body) {
		return
	}

	u := mapping.ToDomainNewUser(&body)
	if err := booking.Check(u); err != nil {
		respond.Error(w, r, err)
		return
	}
	if u.Id == "" {
		u.Id = uuid.NewString()
	}
	u.CreatedAt = time.Now().UTC()

	created, err := h.Store.CreateUser(r.Context(), u)
	if err != nil {
		respond.Error(w, r, booking.StoreError(err, "user"))
		return
	}
	respond.JSON(w, http.StatusCreated, mapping.ToApiUser(created))
}

// DeleteUser removes a user.
func (h *UsersHandler) DeleteUser(w http.ResponseWriter, r *http.Request, userId string) {
	if !requireAdmin(w, r) {
		return
	}
	if err := h.Store.DeleteUser(r.Context(), userId); err != nil {
		respond.Error(w, r, booking.StoreError(err, "user"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	caller := identity.FromContext(r.Context())
	switch {
	case !caller.IsAuthenticated():
		respond.Error(w, r, booking.Unauthenticated())
		return false
	case !caller.IsAdmin():
		respond.Error(w, r, booking.Forbidden("admin access required"))
		return false
	}
	return true
}
