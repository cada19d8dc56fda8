package users

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chris/apartment-rentals/pkg/api"
	"github.com/chris/apartment-rentals/pkg/identity"
	"github.com/chris/apartment-rentals/pkg/models"
	"github.com/chris/apartment-rentals/pkg/storage"
	storage_mocks "github.com/chris/apartment-rentals/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var admin = identity.Identity{UserID: "admin-1", Role: models.RoleAdmin}

func asAdmin(req *http.Request) *http.Request {
	return req.WithContext(identity.NewContext(req.Context(), admin))
}

func TestListUsers(t *testing.T) {
	t.Run("Admin", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := NewUsersHandler(mockStorage)

		mockStorage.On("ListUsers", mock.Anything).Return([]models.User{
			{Id: "user-1", FullName: "Awa Ngono", Email: "awa@example.cm", Role: models.RoleRenter},
			{Id: "owner-1", FullName: "Paul Biya", Email: "paul@example.cm", Role: models.RoleOwner},
		}, nil)

		rr := httptest.NewRecorder()
		handler.ListUsers(rr, asAdmin(httptest.NewRequest(http.MethodGet, "/users", nil)))

		assert.Equal(t, http.StatusOK, rr.Code)
		var out []api.User
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
		require.Len(t, out, 2)
		assert.Equal(t, api.Owner, out[1].Role)
	})

	t.Run("Renter Is Forbidden", func(t *testing.T) {
		handler := NewUsersHandler(new(storage_mocks.ApiStore))
		renter := identity.Identity{UserID: "user-1", Role: models.RoleRenter}

		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		rr := httptest.NewRecorder()
		handler.ListUsers(rr, req.WithContext(identity.NewContext(req.Context(), renter)))

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("Anonymous", func(t *testing.T) {
		handler := NewUsersHandler(new(storage_mocks.ApiStore))

		rr := httptest.NewRecorder()
		handler.ListUsers(rr, httptest.NewRequest(http.MethodGet, "/users", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestCreateUser(t *testing.T) {
	t.Run("Defaults To Renter", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := NewUsersHandler(mockStorage)

		mockStorage.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.Id != "" && u.Role == models.RoleRenter && !u.CreatedAt.IsZero()
		})).Return(func(ctx context.Context, u *models.User) (*models.User, error) {
			return u, nil
		}).Once()

		body, _ := json.Marshal(api.NewUser{FullName: "Awa Ngono", UserName: "awa", Email: "awa@example.cm"})
		rr := httptest.NewRecorder()
		handler.CreateUser(rr, asAdmin(httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))))

		assert.Equal(t, http.StatusCreated, rr.Code)
		var out api.User
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
		assert.Equal(t, api.Renter, out.Role)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Invalid Email", func(t *testing.T) {
		handler := NewUsersHandler(new(storage_mocks.ApiStore))

		body, _ := json.Marshal(api.NewUser{FullName: "Awa Ngono", UserName: "awa", Email: "awa.example.cm"})
		rr := httptest.NewRecorder()
		handler.CreateUser(rr, asAdmin(httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestGetUser_NotFound(t *testing.T) {
	mockStorage := new(storage_mocks.ApiStore)
	handler := NewUsersHandler(mockStorage)

	mockStorage.On("GetUser", mock.Anything, "ghost").Return(nil, storage.ErrNotFound)

	rr := httptest.NewRecorder()
	handler.GetUser(rr, asAdmin(httptest.NewRequest(http.MethodGet, "/users/ghost", nil)), "ghost")

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeleteUser(t *testing.T) {
	mockStorage := new(storage_mocks.ApiStore)
	handler := NewUsersHandler(mockStorage)

	mockStorage.On("DeleteUser", mock.Anything, "user-1").Return(nil).Once()

	rr := httptest.NewRecorder()
	handler.DeleteUser(rr, asAdmin(httptest.NewRequest(http.MethodDelete, "/users/user-1", nil)), "user-1")

	assert.Equal(t, http.StatusNoContent, rr.Code)
	mockStorage.AssertExpectations(t)
}
