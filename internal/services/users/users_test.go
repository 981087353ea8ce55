package users

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yamdb/proj/internal/domain/filters"
	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/storage"
)

type fakeStorage struct {
	users  map[string]*models.User
	nextID int64
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{users: make(map[string]*models.User)}
}

func (s *fakeStorage) List(_ context.Context, search string, f filters.Filters) ([]models.User, int, error) {
	out := []models.User{}
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, len(out), nil
}

func (s *fakeStorage) GetByUsername(_ context.Context, username string) (*models.User, error) {
	u, ok := s.users[username]
	if !ok {
		return nil, storage.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *fakeStorage) Insert(_ context.Context, user *models.User) (*models.User, error) {
	if _, ok := s.users[user.Username]; ok {
		return nil, storage.ErrConflict
	}
	s.nextID++
	stored := *user
	stored.ID = s.nextID
	s.users[stored.Username] = &stored
	return &stored, nil
}

func (s *fakeStorage) Update(_ context.Context, user *models.User) (*models.User, error) {
	for name, u := range s.users {
		if u.ID == user.ID {
			delete(s.users, name)
			stored := *user
			s.users[stored.Username] = &stored
			return &stored, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *fakeStorage) Delete(_ context.Context, username string) error {
	if _, ok := s.users[username]; !ok {
		return storage.ErrNotFound
	}
	delete(s.users, username)
	return nil
}

func ptr[T any](v T) *T { return &v }

func TestUpdateMeKeepsRole(t *testing.T) {
	st := newFakeStorage()
	svc := New(slog.Default(), st)
	ctx := context.Background()

	user, err := svc.Create(ctx, CreateParams{Username: "alice", Email: "a@x.com"})
	require.NoError(t, err)
	require.Equal(t, models.RoleUser, user.Role)

	updated, err := svc.UpdateMe(ctx, user, UpdateParams{
		Bio:  ptr("hi there"),
		Role: ptr(models.RoleAdmin),
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, updated.Role, "self-update must not escalate role")
	assert.Equal(t, "hi there", updated.Bio)
}

func TestUpdatePartial(t *testing.T) {
	st := newFakeStorage()
	svc := New(slog.Default(), st)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateParams{Username: "bob", Email: "b@x.com", Bio: "old"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "bob", UpdateParams{Role: ptr(models.RoleModerator)})
	require.NoError(t, err)
	assert.Equal(t, models.RoleModerator, updated.Role)
	assert.Equal(t, "old", updated.Bio, "unset fields keep stored values")
}

func TestCreateConflict(t *testing.T) {
	st := newFakeStorage()
	svc := New(slog.Default(), st)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateParams{Username: "alice", Email: "a@x.com"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateParams{Username: "alice", Email: "other@x.com"})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestGetNotFound(t *testing.T) {
	svc := New(slog.Default(), newFakeStorage())
	_, err := svc.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDelete(t *testing.T) {
	st := newFakeStorage()
	svc := New(slog.Default(), st)
	ctx := context.Background()
	_, err := svc.Create(ctx, CreateParams{Username: "alice", Email: "a@x.com"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, "alice"))
	assert.ErrorIs(t, svc.Delete(ctx, "alice"), ErrUserNotFound)
}
