package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-file-keeper/internal/config"
	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/internal/store"
	"github.com/MKhiriev/go-file-keeper/internal/utils"
	"github.com/MKhiriev/go-file-keeper/models"
)

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createUserFn         func(ctx context.Context, user models.User) (models.User, error)
	findUserByUsernameFn func(ctx context.Context, username string) (models.User, error)
	findUserByIDFn       func(ctx context.Context, userID int64) (models.User, error)
	updateActiveTokenFn  func(ctx context.Context, userID int64, token string) error
	updatePasswordFn     func(ctx context.Context, userID int64, passwordHash string) error
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	if m.findUserByUsernameFn != nil {
		return m.findUserByUsernameFn(ctx, username)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	if m.findUserByIDFn != nil {
		return m.findUserByIDFn(ctx, userID)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) UpdateActiveToken(ctx context.Context, userID int64, token string) error {
	if m.updateActiveTokenFn != nil {
		return m.updateActiveTokenFn(ctx, userID, token)
	}
	return nil
}

func (m *mockUserRepository) UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error {
	if m.updatePasswordFn != nil {
		return m.updatePasswordFn(ctx, userID, passwordHash)
	}
	return nil
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

var testAppConfig = config.App{
	TokenSignKey:  "test-sign-key",
	TokenIssuer:   "go-file-keeper-test",
	TokenDuration: 30 * time.Minute,
	BcryptCost:    bcrypt.MinCost,
}

func newTestAuthService(repo *mockUserRepository) AuthService {
	return NewAuthService(repo, testAppConfig, logger.Nop())
}

func hashPassword(t *testing.T, password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

var errRepository = errors.New("repository error")

// ─────────────────────────────────────────────
// Register
// ─────────────────────────────────────────────

func TestAuthService_Register_Success(t *testing.T) {
	var storedToken string
	repo := &mockUserRepository{
		createUserFn: func(_ context.Context, user models.User) (models.User, error) {
			assert.Equal(t, "alice", user.Username)
			assert.NotEqual(t, "secret", user.PasswordHash, "password must be stored hashed")
			user.UserID = 1
			return user, nil
		},
		updateActiveTokenFn: func(_ context.Context, userID int64, token string) error {
			assert.Equal(t, int64(1), userID)
			storedToken = token
			return nil
		},
	}
	svc := newTestAuthService(repo)

	token, err := svc.Register(context.Background(), "alice", "secret")

	require.NoError(t, err)
	assert.NotEmpty(t, token.SignedString)
	assert.Equal(t, token.SignedString, storedToken, "issued token must be persisted as the active token")
}

func TestAuthService_Register_EmptyCredentials(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	_, err := svc.Register(context.Background(), "", "secret")
	require.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.Register(context.Background(), "alice", "")
	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_Register_UsernameTaken(t *testing.T) {
	repo := &mockUserRepository{
		createUserFn: func(_ context.Context, _ models.User) (models.User, error) {
			return models.User{}, store.ErrUsernameTaken
		},
	}
	svc := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), "alice", "secret")

	require.ErrorIs(t, err, store.ErrUsernameTaken)
}

// ─────────────────────────────────────────────
// Login
// ─────────────────────────────────────────────

func TestAuthService_Login_Success(t *testing.T) {
	hash := hashPassword(t, "secret")
	var storedToken string
	repo := &mockUserRepository{
		findUserByUsernameFn: func(_ context.Context, username string) (models.User, error) {
			assert.Equal(t, "alice", username)
			return models.User{UserID: 1, Username: "alice", PasswordHash: hash}, nil
		},
		updateActiveTokenFn: func(_ context.Context, _ int64, token string) error {
			storedToken = token
			return nil
		},
	}
	svc := newTestAuthService(repo)

	token, err := svc.Login(context.Background(), "alice", "secret")

	require.NoError(t, err)
	assert.Equal(t, int64(1), token.UserID)
	assert.Equal(t, token.SignedString, storedToken)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	repo := &mockUserRepository{
		findUserByUsernameFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{}, store.ErrNoUserWasFound
		},
	}
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), "ghost", "secret")

	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	hash := hashPassword(t, "secret")
	repo := &mockUserRepository{
		findUserByUsernameFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{UserID: 1, PasswordHash: hash}, nil
		},
	}
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), "alice", "wrong")

	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_SupersedesPreviousToken(t *testing.T) {
	hash := hashPassword(t, "secret")
	stored := models.User{UserID: 1, Username: "alice", PasswordHash: hash}
	repo := &mockUserRepository{
		findUserByUsernameFn: func(_ context.Context, _ string) (models.User, error) {
			return stored, nil
		},
		findUserByIDFn: func(_ context.Context, _ int64) (models.User, error) {
			return stored, nil
		},
		updateActiveTokenFn: func(_ context.Context, _ int64, token string) error {
			stored.ActiveToken = token
			return nil
		},
	}
	svc := newTestAuthService(repo)
	ctx := context.Background()

	first, err := svc.Login(ctx, "alice", "secret")
	require.NoError(t, err)

	second, err := svc.Login(ctx, "alice", "secret")
	require.NoError(t, err)

	// the second login replaced the stored token, so the first one no
	// longer authenticates even though it has not expired
	_, err = svc.Authenticate(ctx, second.SignedString)
	require.NoError(t, err)

	if first.SignedString != second.SignedString {
		_, err = svc.Authenticate(ctx, first.SignedString)
		require.ErrorIs(t, err, ErrTokenInvalid)
	}
}

// ─────────────────────────────────────────────
// Logout
// ─────────────────────────────────────────────

func TestAuthService_Logout_ClearsActiveToken(t *testing.T) {
	var cleared bool
	repo := &mockUserRepository{
		updateActiveTokenFn: func(_ context.Context, userID int64, token string) error {
			assert.Equal(t, int64(1), userID)
			assert.Empty(t, token)
			cleared = true
			return nil
		},
	}
	svc := newTestAuthService(repo)

	require.NoError(t, svc.Logout(context.Background(), 1))
	assert.True(t, cleared)
}

func TestAuthService_Logout_Idempotent(t *testing.T) {
	stored := models.User{UserID: 1, ActiveToken: "some-token"}
	repo := &mockUserRepository{
		updateActiveTokenFn: func(_ context.Context, _ int64, token string) error {
			stored.ActiveToken = token
			return nil
		},
	}
	svc := newTestAuthService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Logout(ctx, 1))
	require.NoError(t, svc.Logout(ctx, 1))
	assert.Empty(t, stored.ActiveToken)
}

// ─────────────────────────────────────────────
// Authenticate
// ─────────────────────────────────────────────

func TestAuthService_Authenticate_Success(t *testing.T) {
	stored := models.User{UserID: 1, Username: "alice", PasswordHash: hashPassword(t, "secret")}
	repo := &mockUserRepository{
		findUserByUsernameFn: func(_ context.Context, _ string) (models.User, error) {
			return stored, nil
		},
		findUserByIDFn: func(_ context.Context, userID int64) (models.User, error) {
			assert.Equal(t, int64(1), userID)
			return stored, nil
		},
		updateActiveTokenFn: func(_ context.Context, _ int64, token string) error {
			stored.ActiveToken = token
			return nil
		},
	}
	svc := newTestAuthService(repo)
	ctx := context.Background()

	token, err := svc.Login(ctx, "alice", "secret")
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, token.SignedString)

	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestAuthService_Authenticate_MalformedToken(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	_, err := svc.Authenticate(context.Background(), "not-a-jwt")

	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestAuthService_Authenticate_ExpiredToken(t *testing.T) {
	expired, err := utils.GenerateJWTToken(testAppConfig.TokenIssuer, 1, -time.Minute, testAppConfig.TokenSignKey)
	require.NoError(t, err)

	// the token is stored as the active one, so expiry is the only
	// reason authentication can fail
	stored := models.User{UserID: 1, Username: "alice", ActiveToken: expired.SignedString}
	repo := &mockUserRepository{
		findUserByIDFn: func(_ context.Context, _ int64) (models.User, error) {
			return stored, nil
		},
	}
	svc := newTestAuthService(repo)

	_, err = svc.Authenticate(context.Background(), expired.SignedString)

	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestAuthService_Authenticate_LoggedOutToken(t *testing.T) {
	stored := models.User{UserID: 1, Username: "alice", PasswordHash: hashPassword(t, "secret")}
	repo := &mockUserRepository{
		findUserByUsernameFn: func(_ context.Context, _ string) (models.User, error) {
			return stored, nil
		},
		findUserByIDFn: func(_ context.Context, _ int64) (models.User, error) {
			return stored, nil
		},
		updateActiveTokenFn: func(_ context.Context, _ int64, token string) error {
			stored.ActiveToken = token
			return nil
		},
	}
	svc := newTestAuthService(repo)
	ctx := context.Background()

	token, err := svc.Login(ctx, "alice", "secret")
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, 1))

	_, err = svc.Authenticate(ctx, token.SignedString)

	require.ErrorIs(t, err, ErrTokenInvalid)
}

// ─────────────────────────────────────────────
// ChangePassword
// ─────────────────────────────────────────────

func TestAuthService_ChangePassword_Success(t *testing.T) {
	var newHash string
	repo := &mockUserRepository{
		updatePasswordFn: func(_ context.Context, userID int64, passwordHash string) error {
			assert.Equal(t, int64(1), userID)
			newHash = passwordHash
			return nil
		},
	}
	svc := newTestAuthService(repo)

	require.NoError(t, svc.ChangePassword(context.Background(), 1, "fresh-secret"))

	require.NotEmpty(t, newHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(newHash), []byte("fresh-secret")))
}

func TestAuthService_ChangePassword_EmptyPassword(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	err := svc.ChangePassword(context.Background(), 1, "")

	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_ChangePassword_RepositoryError(t *testing.T) {
	repo := &mockUserRepository{
		updatePasswordFn: func(_ context.Context, _ int64, _ string) error {
			return errRepository
		},
	}
	svc := newTestAuthService(repo)

	err := svc.ChangePassword(context.Background(), 1, "fresh-secret")

	require.ErrorIs(t, err, errRepository)
}
