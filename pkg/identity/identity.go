package identity

import (
	"context"

	"github.com/chris/apartment-rentals/pkg/models"
)

// Identity is the verified caller of a request.
type Identity struct {
	UserID string
	Role   models.Role
}

// IsAdmin reports whether the caller has the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

// IsAuthenticated reports whether a user id was resolved for the caller.
func (i Identity) IsAuthenticated() bool {
	return i.UserID != ""
}

// CanActFor reports whether the caller may act on resources owned by userID.
func (i Identity) CanActFor(userID string) bool {
	if i.IsAdmin() {
		return true
	}
	return i.IsAuthenticated() && i.UserID == userID
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying id.
func NewContext(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the caller identity stored in ctx, or an anonymous one.
func FromContext(ctx context.Context) Identity {
	id, _ := ctx.Value(contextKey{}).(Identity)
	return id
}
