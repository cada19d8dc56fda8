package storage

import (
	"context"

	"github.com/chris/apartment-rentals/pkg/models"
)

// UserStore defines the interface for managing users.
type UserStore interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	DeleteUser(ctx context.Context, userID string) error
	ListUsers(ctx context.Context) ([]models.User, error)
}
