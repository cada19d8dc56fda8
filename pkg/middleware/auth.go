package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/chris/apartment-rentals/pkg/booking"
	"github.com/chris/apartment-rentals/pkg/handlers/respond"
	"github.com/chris/apartment-rentals/pkg/identity"
)

// TokenQueryParam carries the token on WebSocket upgrades, where browsers
// cannot set headers.
const TokenQueryParam = "access_token"

// Authenticate resolves the caller from a bearer token. Requests without a
// token continue anonymously and the handlers decide what anonymous callers
// may do. A token that fails verification is rejected with 401.
func Authenticate(verifier *identity.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := identity.ExtractBearer(r.Header.Get("Authorization"))
			if token == "" && isUpgrade(r) {
				token = r.URL.Query().Get(TokenQueryParam)
			}
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			id, err := verifier.Verify(token)
			if err != nil {
				slog.WarnContext(r.Context(), "token rejected", "path", r.URL.Path, "error", err)
				respond.Error(w, r, booking.Unauthenticated())
				return
			}
			noteCaller(r.Context(), id.UserID)
			next.ServeHTTP(w, r.WithContext(identity.NewContext(r.Context(), id)))
		})
	}
}

func isUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}
