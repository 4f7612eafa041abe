package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/radityaqb/go-user-accounts/internal/domain/entity"
	"github.com/radityaqb/go-user-accounts/internal/domain/repository"
	"github.com/radityaqb/go-user-accounts/internal/infrastructure/memory"
	"github.com/radityaqb/go-user-accounts/pkg/helpers"
)

func newTestService(t *testing.T) (*Service, *memory.UserRepository) {
	t.Helper()
	repo := memory.NewUserRepository()
	return NewService(repo, nil, nil, nil, ""), repo
}

func mustCreate(t *testing.T, svc *Service, name, email, password string) *entity.User {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, svc.CreateUser(ctx, name, email, password))
	u, err := svc.Repo.GetByEmail(ctx, email)
	require.NoError(t, err)
	require.NotNil(t, u)
	return u
}

func TestCreateUser_StoresHashNotPlaintext(t *testing.T) {
	svc, _ := newTestService(t)

	u := mustCreate(t, svc, "Alice", "alice@example.com", "sekrit1")

	require.NotEmpty(t, u.Password)
	require.NotEqual(t, "sekrit1", u.Password)
	require.True(t, helpers.CompareHashAndPassword(u.Password, "sekrit1"))
}

func TestCreateUser_EmailTaken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	mustCreate(t, svc, "Alice", "alice@example.com", "sekrit1")

	// Same email always fails, regardless of the other fields.
	err := svc.CreateUser(ctx, "Someone Else", "alice@example.com", "different")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestListUsers_StripsPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	mustCreate(t, svc, "Alice", "alice@example.com", "sekrit1")
	mustCreate(t, svc, "Bob", "bob@example.com", "sekrit2")

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		require.NotEmpty(t, u.ID)
		require.NotEmpty(t, u.Name)
		require.NotEmpty(t, u.Email)
	}
}

func TestGetUser(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created := mustCreate(t, svc, "Alice", "alice@example.com", "sekrit1")

	got, err := svc.GetUser(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, "Alice", got.Name)
	require.Equal(t, "alice@example.com", got.Email)

	_, err = svc.GetUser(ctx, "no-such-id")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateUser(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	alice := mustCreate(t, svc, "Alice", "alice@example.com", "sekrit1")
	mustCreate(t, svc, "Bob", "bob@example.com", "sekrit2")

	// Keeping your own email is not a conflict.
	require.NoError(t, svc.UpdateUser(ctx, alice.ID, "Alicia", "alice@example.com"))
	got, err := svc.GetUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, "Alicia", got.Name)

	// Another user's email is.
	err = svc.UpdateUser(ctx, alice.ID, "Alicia", "bob@example.com")
	require.ErrorIs(t, err, ErrEmailTaken)

	err = svc.UpdateUser(ctx, "no-such-id", "Nobody", "nobody@example.com")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteUser(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	alice := mustCreate(t, svc, "Alice", "alice@example.com", "sekrit1")

	require.NoError(t, svc.DeleteUser(ctx, alice.ID))

	_, err := svc.GetUser(ctx, alice.ID)
	require.ErrorIs(t, err, ErrUserNotFound)

	// Deleting again reports not-found, it never panics or faults.
	err = svc.DeleteUser(ctx, alice.ID)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestChangePassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	alice := mustCreate(t, svc, "Alice", "alice@example.com", "oldpass")

	require.NoError(t, svc.ChangePassword(ctx, alice.ID, "newpass"))

	require.True(t, svc.IsValidPassword(ctx, alice.ID, "newpass"))
	require.False(t, svc.IsValidPassword(ctx, alice.ID, "oldpass"))

	err := svc.ChangePassword(ctx, "no-such-id", "whatever")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestIsValidPassword_FailsClosed(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	alice := mustCreate(t, svc, "Alice", "alice@example.com", "sekrit1")

	require.True(t, svc.IsValidPassword(ctx, alice.ID, "sekrit1"))
	require.False(t, svc.IsValidPassword(ctx, alice.ID, "wrong"))
	require.False(t, svc.IsValidPassword(ctx, "no-such-id", "sekrit1"))
}

func TestIsEmailTaken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	taken, err := svc.IsEmailTaken(ctx, "alice@example.com")
	require.NoError(t, err)
	require.False(t, taken)

	mustCreate(t, svc, "Alice", "alice@example.com", "sekrit1")

	taken, err = svc.IsEmailTaken(ctx, "alice@example.com")
	require.NoError(t, err)
	require.True(t, taken)
}

// faultRepo fails every operation with a storage-level error.
type faultRepo struct {
	repository.UserRepository
	err error
}

func (f *faultRepo) List(ctx context.Context) ([]*entity.User, error) { return nil, f.err }
func (f *faultRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return nil, f.err
}
func (f *faultRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, f.err
}
func (f *faultRepo) Create(ctx context.Context, u *entity.User) error { return f.err }

func TestStorageFaults(t *testing.T) {
	boom := errors.New("connection refused")
	svc := NewService(&faultRepo{err: boom}, nil, nil, nil, "")
	ctx := context.Background()

	// List bubbles the raw fault so the handler can answer 5xx.
	_, err := svc.ListUsers(ctx)
	require.ErrorIs(t, err, boom)

	// Mutations convert faults into the business-level failure.
	err = svc.CreateUser(ctx, "Alice", "alice@example.com", "sekrit1")
	require.ErrorIs(t, err, ErrOperationFailed)
	err = svc.UpdateUser(ctx, "some-id", "Alice", "alice@example.com")
	require.ErrorIs(t, err, ErrOperationFailed)
	err = svc.DeleteUser(ctx, "some-id")
	require.ErrorIs(t, err, ErrOperationFailed)
	err = svc.ChangePassword(ctx, "some-id", "newpass")
	require.ErrorIs(t, err, ErrOperationFailed)

	// Password checks fail closed on faults.
	require.False(t, svc.IsValidPassword(ctx, "some-id", "sekrit1"))
}
