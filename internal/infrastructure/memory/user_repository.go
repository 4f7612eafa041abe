package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/radityaqb/go-user-accounts/internal/domain/entity"
	"github.com/radityaqb/go-user-accounts/internal/domain/repository"
)

// UserRepository is an in-memory implementation of the storage port.
// It backs the test suites and lets commands run without a database.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*entity.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*entity.User)}
}

func clone(u *entity.User) *entity.User {
	cp := *u
	return &cp
}

func (r *UserRepository) List(ctx context.Context) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, clone(u))
	}
	return out, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := r.users[id]; ok {
		return clone(u), nil
	}
	return nil, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return clone(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	u.ID = uuid.NewString()
	u.CreatedAt = now
	u.UpdatedAt = now
	r.users[u.ID] = clone(u)
	return nil
}

func (r *UserRepository) Update(ctx context.Context, id, name, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return false, nil
	}
	u.Name = name
	u.Email = email
	u.UpdatedAt = time.Now()
	return true, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return false, nil
	}
	u.Password = passwordHash
	u.UpdatedAt = time.Now()
	return true, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
