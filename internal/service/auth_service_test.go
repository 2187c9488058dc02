package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"pokemedquest/internal/models"
	"pokemedquest/internal/security"
	"pokemedquest/internal/validation"
)

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name           string
		username       string
		password       string
		role           string
		setupStore     func(*fakeUserStore)
		expectedError  error
		wantValidation bool
		wantRole       models.Role
	}{
		{
			name:     "child account",
			username: "alice",
			password: "secret",
			role:     "child",
			wantRole: models.RoleChild,
		},
		{
			name:     "admin account",
			username: "dr.smith",
			password: "secret",
			role:     "ADMIN",
			wantRole: models.RoleAdmin,
		},
		{
			name:           "invalid username",
			username:       "al",
			password:       "secret",
			role:           "child",
			wantValidation: true,
		},
		{
			name:           "short password",
			username:       "alice",
			password:       "abc",
			role:           "child",
			wantValidation: true,
		},
		{
			name:           "password longer than bcrypt accepts",
			username:       "alice",
			password:       strings.Repeat("p", 73),
			role:           "child",
			wantValidation: true,
		},
		{
			name:           "unknown role",
			username:       "alice",
			password:       "secret",
			role:           "parent",
			wantValidation: true,
		},
		{
			name:     "username taken",
			username: "alice",
			password: "secret",
			role:     "child",
			setupStore: func(f *fakeUserStore) {
				f.users["alice"] = &models.User{ID: 1, Username: "alice", Role: models.RoleChild}
			},
			expectedError: ErrUsernameTaken,
		},
		{
			name:     "store failure",
			username: "alice",
			password: "secret",
			role:     "child",
			setupStore: func(f *fakeUserStore) {
				f.getErr = errors.New("disk I/O error")
			},
			expectedError: ErrStoreFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeUserStore()
			if tt.setupStore != nil {
				tt.setupStore(store)
			}
			svc := NewAuthService(store, zap.NewNop())

			user, err := svc.Register(tt.username, tt.password, tt.role)

			switch {
			case tt.wantValidation:
				var vErr validation.ValidationError
				assert.True(t, errors.As(err, &vErr), "expected ValidationError, got %v", err)
				assert.Nil(t, user)
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.username, user.Username)
				assert.Equal(t, tt.wantRole, user.Role)
				assert.NotEqual(t, tt.password, user.PasswordHash)
				assert.True(t, security.CheckPassword(user.PasswordHash, tt.password))
			}
		})
	}
}

func TestAuthService_RegisterIsCaseSensitive(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), zap.NewNop())

	_, err := svc.Register("alice", "secret", "child")
	require.NoError(t, err)

	_, err = svc.Register("Alice", "secret", "child")
	assert.NoError(t, err)

	_, err = svc.Register("alice", "other", "child")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuthService_RegisterDuplicateKeyFromStore(t *testing.T) {
	store := newFakeUserStore()
	// a concurrent insert wins between the lookup and the insert
	store.users["alice"] = &models.User{ID: 9, Username: "alice"}

	svc := NewAuthService(&racingUserStore{fakeUserStore: store}, zap.NewNop())
	_, err := svc.Register("alice", "secret", "child")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

// racingUserStore hides existing users from lookups so only the insert sees them
type racingUserStore struct {
	*fakeUserStore
}

func (r *racingUserStore) GetUserByUsername(string) (*models.User, error) {
	return nil, nil
}

func TestAuthService_Login(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	store := newFakeUserStore()
	svc := NewAuthService(store, zap.New(core))

	_, err := svc.Register("alice", "secret", "child")
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		user, err := svc.Login("alice", "secret")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("unknown user and wrong password look the same", func(t *testing.T) {
		logs.TakeAll()

		_, unknownErr := svc.Login("bob", "secret")
		_, wrongErr := svc.Login("alice", "wrong")

		assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
		assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
		assert.Equal(t, unknownErr.Error(), wrongErr.Error())

		assert.Equal(t, 1, logs.FilterMessage("login failed: unknown username").Len())
		assert.Equal(t, 1, logs.FilterMessage("login failed: wrong password").Len())
	})

	t.Run("store failure", func(t *testing.T) {
		store.getErr = errors.New("database is locked")
		defer func() { store.getErr = nil }()

		_, err := svc.Login("alice", "secret")
		assert.ErrorIs(t, err, ErrStoreFailure)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_DeleteAccountAs(t *testing.T) {
	admin := &models.User{ID: 1, Username: "root", Role: models.RoleAdmin}
	child := &models.User{ID: 2, Username: "alice", Role: models.RoleChild}

	tests := []struct {
		name          string
		actor         *models.User
		target        string
		want          bool
		expectedError error
	}{
		{name: "admin deletes child", actor: admin, target: "alice", want: true},
		{name: "missing user", actor: admin, target: "nobody", want: false},
		{name: "child may not delete", actor: child, target: "root", expectedError: ErrForbidden},
		{name: "admin may not delete self", actor: admin, target: "root", expectedError: ErrCannotDeleteSelf},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeUserStore()
			store.users["root"] = admin
			store.users["alice"] = child
			svc := NewAuthService(store, zap.NewNop())

			deleted, err := svc.DeleteAccountAs(tt.actor, tt.target)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Len(t, store.users, 2)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, deleted)
		})
	}
}

func TestAuthService_Lookups(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, zap.NewNop())

	created, err := svc.Register("alice", "secret", "child")
	require.NoError(t, err)
	_, err = svc.Register("root", "secret", "admin")
	require.NoError(t, err)

	user, err := svc.GetUser(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = svc.GetUser(99)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.GetUserByUsername("bob")
	assert.ErrorIs(t, err, ErrUserNotFound)

	users, err := svc.ListUsers()
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
