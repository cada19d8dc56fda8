package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chris/apartment-rentals/pkg/api"
	"github.com/chris/apartment-rentals/pkg/booking"
	"github.com/chris/apartment-rentals/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantKind string
	}{
		{"Invalid Input", booking.InvalidInput("bad"), http.StatusBadRequest, "invalid_input"},
		{"Forbidden", booking.Forbidden("no"), http.StatusForbidden, "forbidden"},
		{"Not Found", booking.StoreError(storage.ErrNotFound, "listing"), http.StatusNotFound, "not_found"},
		{"Duplicate Payment", booking.StoreError(storage.ErrDuplicatePayment, "payment"), http.StatusConflict, "duplicate_payment"},
		{"Unavailable", booking.StoreError(storage.ErrListingUnavailable, "listing"), http.StatusConflict, "unavailable"},
		{"Foreign Error", errors.New("dynamodb exploded"), http.StatusInternalServerError, "internal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)

			Error(rr, req, tt.err)

			assert.Equal(t, tt.wantCode, rr.Code)
			var body api.Error
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tt.wantKind, body.Kind)
			assert.NotContains(t, body.Message, "exploded")
		})
	}
}

func TestDecode(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))

	var v map[string]any
	assert.False(t, Decode(rr, req, &v))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
