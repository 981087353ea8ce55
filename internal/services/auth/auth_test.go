package auth

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/storage"
)

type fakeUsersStorage struct {
	users  []*models.User
	nextID int64
}

func (s *fakeUsersStorage) GetByID(_ context.Context, id int64) (*models.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *fakeUsersStorage) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *fakeUsersStorage) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *fakeUsersStorage) Insert(_ context.Context, user *models.User) (*models.User, error) {
	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, storage.ErrConflict
		}
	}
	s.nextID++
	stored := *user
	stored.ID = s.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	s.users = append(s.users, &stored)
	return &stored, nil
}

type fakeMailer struct {
	sent []string // recipients
}

func (m *fakeMailer) Send(recipient, _ string, _ any) error {
	m.sent = append(m.sent, recipient)
	return nil
}

// syncExecutor runs tasks inline so tests can observe dispatch immediately.
type syncExecutor struct{}

func (syncExecutor) Add(task func()) { task() }

func newTestService(t *testing.T) (*AuthService, *fakeUsersStorage, *fakeMailer) {
	t.Helper()
	st := &fakeUsersStorage{}
	mailer := &fakeMailer{}
	svc := New(slog.Default(), st, mailer, syncExecutor{}, "test-secret", time.Hour)
	return svc, st, mailer
}

func TestSignupCreatesPendingUser(t *testing.T) {
	svc, st, mailer := newTestService(t)
	user, err := svc.Signup(context.Background(), "alice", "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Len(t, st.users, 1)
	assert.Equal(t, []string{"a@x.com"}, mailer.sent)
}

func TestSignupIsIdempotentForMatchingPair(t *testing.T) {
	svc, st, mailer := newTestService(t)
	_, err := svc.Signup(context.Background(), "alice", "a@x.com")
	require.NoError(t, err)
	_, err = svc.Signup(context.Background(), "alice", "a@x.com")
	require.NoError(t, err)
	assert.Len(t, st.users, 1, "re-signup must not create a second account")
	assert.Len(t, mailer.sent, 2, "each signup issues a fresh code")
}

func TestSignupRejectsIdentityCollisions(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	_, err := svc.Signup(ctx, "alice", "a@x.com")
	require.NoError(t, err)
	_, err = svc.Signup(ctx, "bob", "b@x.com")
	require.NoError(t, err)

	t.Run("username taken with different email", func(t *testing.T) {
		_, err := svc.Signup(ctx, "alice", "other@x.com")
		var identityErr *IdentityError
		require.ErrorAs(t, err, &identityErr)
		assert.Contains(t, identityErr.Fields, "username")
		assert.NotContains(t, identityErr.Fields, "email")
	})
	t.Run("email taken with different username", func(t *testing.T) {
		_, err := svc.Signup(ctx, "carol", "a@x.com")
		var identityErr *IdentityError
		require.ErrorAs(t, err, &identityErr)
		assert.Contains(t, identityErr.Fields, "email")
		assert.NotContains(t, identityErr.Fields, "username")
	})
	t.Run("both mismatch yields two field errors", func(t *testing.T) {
		_, err := svc.Signup(ctx, "alice", "b@x.com")
		var identityErr *IdentityError
		require.ErrorAs(t, err, &identityErr)
		assert.Len(t, identityErr.Fields, 2)
	})
}

func TestIssueToken(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	user, err := svc.Signup(ctx, "alice", "a@x.com")
	require.NoError(t, err)
	code := svc.codes.Make(user)

	token, err := svc.IssueToken(ctx, "alice", code)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	loaded, err := svc.UserFromToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, loaded.ID)
}

func TestIssueTokenUnknownUser(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.IssueToken(context.Background(), "ghost", "whatever")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestIssueTokenBadCode(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	_, err := svc.Signup(ctx, "alice", "a@x.com")
	require.NoError(t, err)
	_, err = svc.IssueToken(ctx, "alice", "not-a-code")
	assert.ErrorIs(t, err, ErrInvalidConfirmationCode)
}

func TestConfirmationCodeStaleAfterProfileSave(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()
	user, err := svc.Signup(ctx, "alice", "a@x.com")
	require.NoError(t, err)
	code := svc.codes.Make(user)

	// any state-changing save invalidates previously issued codes
	st.users[0].Role = models.RoleModerator
	st.users[0].UpdatedAt = time.Now().Add(time.Second)

	_, err = svc.IssueToken(ctx, "alice", code)
	assert.ErrorIs(t, err, ErrInvalidConfirmationCode)
}

func TestUserFromTokenRejectsGarbage(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.UserFromToken(context.Background(), "garbage.token.value")
	assert.Error(t, err)
}
