package repository

import (
	"context"

	"github.com/radityaqb/go-user-accounts/internal/domain/entity"
)

// UserRepository is the storage port for user records. Lookups report a
// missing record as (nil, nil); a non-nil error always means a storage
// fault, never not-found. Write operations return whether a row was
// affected so callers can distinguish a vanished record from a fault.
type UserRepository interface {
	List(ctx context.Context) ([]*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Create(ctx context.Context, u *entity.User) error
	Update(ctx context.Context, id, name, email string) (bool, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}
