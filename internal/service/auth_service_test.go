package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"netgro/internal/models"
	"netgro/internal/notifications"
	"netgro/internal/repository"
	"netgro/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	repository.UserRepository
	getByEmailFn func(context.Context, string) (*models.User, error)
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	user, err := env.auth.Register(ctx, RegisterInput{
		Name:     "  Asha ",
		Email:    "  Asha@X.com ",
		Password: "pw123",
		Headline: " Student ",
	})
	require.NoError(t, err)

	assert.Regexp(t, `^u_[0-9a-f-]{36}$`, user.ID)
	assert.Equal(t, "Asha", user.Name)
	assert.Equal(t, "asha@x.com", user.Email)
	assert.Equal(t, "Student", user.Headline)
	assert.Empty(t, user.PassHash)
	assert.Equal(t, []string{}, user.Skills)

	stored, err := env.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	want, _ := security.SHA256Hasher{}.Hash(ctx, "pw123")
	assert.Equal(t, want, stored.PassHash)

	assert.True(t, env.auth.IsAuthenticated(ctx))
	assert.Equal(t, user.ID, env.auth.CurrentUser(ctx).ID)
	assert.Equal(t, `"`+user.ID+`"`, env.raw(t, repository.SessionKey))
	assert.Equal(t, []string{"session.changed:register"}, env.eventTypes())
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.register(t, "Asha", "asha@x.com", "pw123")
	before := env.raw(t, repository.UsersKey)

	_, err := env.auth.Register(ctx, RegisterInput{Name: "Other", Email: "ASHA@x.com ", Password: "other"})
	assert.ErrorIs(t, err, models.ErrDuplicateEmail)
	assert.Equal(t, "Email already registered.", err.Error())
	assert.Equal(t, 1, env.users.Count(ctx))
	assert.Equal(t, before, env.raw(t, repository.UsersKey))
}

func TestAuthService_RegisterValidation(t *testing.T) {
	tests := []struct {
		name string
		in   RegisterInput
	}{
		{"Invalid email", RegisterInput{Email: "not-an-email", Password: "pw"}},
		{"Empty email", RegisterInput{Email: "  ", Password: "pw"}},
		{"Empty password", RegisterInput{Email: "a@x.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			_, err := env.auth.Register(context.Background(), tt.in)
			assert.ErrorIs(t, err, models.ErrValidation)
			assert.Zero(t, env.users.Count(context.Background()))
			assert.Empty(t, env.events)
		})
	}
}

func TestAuthService_RegisterPropagatesRepositoryErrors(t *testing.T) {
	boom := errors.New("boom")
	stub := &userRepoStub{getByEmailFn: func(context.Context, string) (*models.User, error) { return nil, boom }}
	svc := NewAuthService(stub, nil, security.SHA256Hasher{}, nil)

	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@x.com", Password: "pw"})
	assert.ErrorIs(t, err, boom)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	id := env.register(t, "Asha", "asha@x.com", "pw123")
	require.NoError(t, env.auth.Logout(ctx))
	assert.False(t, env.auth.IsAuthenticated(ctx))

	user, err := env.auth.Login(ctx, LoginInput{Email: " ASHA@x.com", Password: "pw123"})
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	current, ok := env.sessions.Current(ctx)
	assert.True(t, ok)
	assert.Equal(t, id, current)
}

func TestAuthService_LoginFailuresLeaveSession(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	ashaID := env.register(t, "Asha", "asha@x.com", "pw123")
	env.register(t, "Ravi", "ravi@x.com", "pw456")

	_, err := env.auth.Login(ctx, LoginInput{Email: "asha@x.com", Password: "wrong"})
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	assert.Equal(t, "Incorrect password.", err.Error())

	_, err = env.auth.Login(ctx, LoginInput{Email: "nobody@x.com", Password: "pw123"})
	assert.ErrorIs(t, err, models.ErrUserNotFound)

	current, _ := env.sessions.Current(ctx)
	assert.NotEqual(t, ashaID, current)
	assert.Equal(t, "ravi@x.com", env.auth.CurrentUser(ctx).Email)
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.register(t, "Asha", "asha@x.com", "pw123")

	require.NoError(t, env.auth.Logout(ctx))
	assert.False(t, env.auth.IsAuthenticated(ctx))
	assert.Nil(t, env.auth.CurrentUser(ctx))
	assert.Equal(t, "null", env.raw(t, repository.SessionKey))
	assert.Equal(t, []string{"session.changed:register", "session.changed:logout"}, env.eventTypes())
}

func TestAuthService_StaleSessionIsNotAuthenticated(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	require.NoError(t, env.sessions.Set(ctx, "u_gone"))

	assert.False(t, env.auth.IsAuthenticated(ctx))
	_, ok := env.auth.CurrentUserID(ctx)
	assert.False(t, ok)
}

func TestAuthService_RegisterWriteFailure(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.backend.failWrites = true

	_, err := env.auth.Register(ctx, RegisterInput{Email: "a@x.com", Password: "pw"})
	assert.ErrorIs(t, err, models.ErrStorageWriteFailure)
	assert.Zero(t, env.users.Count(ctx))
	assert.False(t, env.auth.IsAuthenticated(ctx))
}

func TestAuthService_EnsureDemoUser(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	created, err := env.auth.EnsureDemoUser(ctx)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = env.auth.EnsureDemoUser(ctx)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 1, env.users.Count(ctx))
	assert.False(t, env.auth.IsAuthenticated(ctx))

	demo, err := env.auth.Login(ctx, LoginInput{Email: DemoUserEmail, Password: DemoUserPassword})
	require.NoError(t, err)
	assert.Equal(t, DemoUserID, demo.ID)
	assert.Equal(t, []string{"JavaScript", "HTML", "CSS"}, demo.Skills)
	require.Len(t, demo.Education, 1)
	assert.Equal(t, "Example University", demo.Education[0].School)
}

func TestAuthService_BcryptHasher(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewAuthService(env.users, env.sessions, security.BcryptHasher{Cost: bcrypt.MinCost}, notifications.NewNotifier(nil))

	_, err := svc.Register(ctx, RegisterInput{Email: "b@x.com", Password: "secret"})
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx))

	_, err = svc.Login(ctx, LoginInput{Email: "b@x.com", Password: "secret"})
	require.NoError(t, err)
	_, err = svc.Login(ctx, LoginInput{Email: "b@x.com", Password: "nope"})
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestAuthService_BcryptRejectsLongPassword(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewAuthService(env.users, env.sessions, security.BcryptHasher{Cost: bcrypt.MinCost}, notifications.NewNotifier(nil))

	_, err := svc.Register(ctx, RegisterInput{Email: "long@x.com", Password: strings.Repeat("a", 100)})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Equal(t, models.CodeValidation, models.CodeOf(err))
	assert.False(t, svc.IsAuthenticated(ctx))

	_, err = svc.Register(ctx, RegisterInput{Email: "edge@x.com", Password: strings.Repeat("a", security.MaxBcryptPasswordBytes)})
	assert.NoError(t, err)
}
