package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-file-keeper/internal/config"
	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/internal/store"
	"github.com/MKhiriev/go-file-keeper/internal/utils"
	"github.com/MKhiriev/go-file-keeper/models"
)

// authService is the concrete implementation of AuthService.
// It handles registration, credential verification with bcrypt, and the
// JWT token lifecycle, using a UserRepository for persistence.
//
// The single-session contract lives here: every issued token is persisted
// as the user's active token in the same flow, and Authenticate accepts a
// token only while it still equals that stored value. Issuing a new token
// therefore revokes the previous session as a deliberate effect, not as
// an accident of shared state.
type authService struct {
	// userRepository is the data-access layer used to create, look up,
	// and mutate users.
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	// Injected from configuration at construction; rotating the key
	// invalidates all outstanding sessions.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// bcryptCost is the bcrypt work factor for password hashing.
	bcryptCost int

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	return &authService{
		userRepository: userRepository,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		bcryptCost:     cost,
		logger:         logger,
	}
}

// Register creates a new user account and returns its first session token.
//
// It validates that both username and password are non-empty, hashes the
// password with bcrypt, and delegates persistence to the UserRepository.
// Username uniqueness is enforced by the storage layer's constraint, so a
// duplicate registration surfaces as store.ErrUsernameTaken even under
// concurrent attempts.
//
// Returns:
//   - ErrInvalidDataProvided if username or password is empty.
//   - store.ErrUsernameTaken (wrapped) if the name is already registered.
func (a *authService) Register(ctx context.Context, username, password string) (models.Token, error) {
	log := logger.FromContext(ctx)

	if username == "" || password == "" {
		log.Error().Str("username", username).Msg("invalid registration data provided")
		return models.Token{}, ErrInvalidDataProvided
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.Token{}, fmt.Errorf("password hashing failed: %w", err)
	}

	registered, err := a.userRepository.CreateUser(ctx, models.User{
		Username:     username,
		PasswordHash: string(hash),
	})
	if err != nil {
		log.Err(err).Str("username", username).Msg("user creation ended with error")
		return models.Token{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return a.issueToken(ctx, registered.UserID)
}

// Login authenticates an existing user and returns a fresh session token.
//
// The new token unconditionally overwrites the stored active token: the
// last login wins, and any previously issued token stops authenticating
// even though it may remain cryptographically valid until expiry.
//
// Unknown usernames and wrong passwords both return ErrInvalidCredentials.
func (a *authService) Login(ctx context.Context, username, password string) (models.Token, error) {
	log := logger.FromContext(ctx)

	if username == "" || password == "" {
		log.Error().Str("username", username).Msg("invalid login data provided")
		return models.Token{}, ErrInvalidDataProvided
	}

	found, err := a.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.Token{}, ErrInvalidCredentials
		}
		log.Err(err).Str("username", username).Msg("user search by username failed")
		return models.Token{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(password)); err != nil {
		log.Warn().Str("username", username).Msg("wrong password")
		return models.Token{}, ErrInvalidCredentials
	}

	return a.issueToken(ctx, found.UserID)
}

// Logout clears the user's active token. A second logout finds the token
// already empty and clears it again to the same effect, so the operation
// is idempotent.
func (a *authService) Logout(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	if err := a.userRepository.UpdateActiveToken(ctx, userID, ""); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("clearing active token failed")
		return fmt.Errorf("clearing active token failed: %w", err)
	}

	return nil
}

// Authenticate resolves a bearer token string to its user.
//
// Two checks must pass:
//  1. cryptographic validation (signature, issuer, expiry);
//  2. equality with the user's stored active token.
//
// The second check is what revokes superseded and logged-out sessions: a
// token that still verifies but no longer matches the stored value fails
// exactly like a forged one. Every failure mode returns ErrTokenInvalid.
func (a *authService) Authenticate(ctx context.Context, tokenString string) (models.User, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.User{}, ErrTokenInvalid
	}

	user, err := a.userRepository.FindUserByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, ErrTokenInvalid
		}
		log.Err(err).Int64("user_id", token.UserID).Msg("user lookup during authentication failed")
		return models.User{}, fmt.Errorf("user lookup during authentication failed: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(user.ActiveToken), []byte(tokenString)) != 1 {
		log.Warn().Int64("user_id", user.UserID).Msg("valid token no longer matches active token")
		return models.User{}, ErrTokenInvalid
	}

	return user, nil
}

// ChangePassword rehashes and stores a new password for the user.
func (a *authService) ChangePassword(ctx context.Context, userID int64, newPassword string) error {
	log := logger.FromContext(ctx)

	if newPassword == "" {
		return ErrInvalidDataProvided
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), a.bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return fmt.Errorf("password hashing failed: %w", err)
	}

	if err := a.userRepository.UpdatePasswordHash(ctx, userID, string(hash)); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("password update failed")
		return fmt.Errorf("password update failed: %w", err)
	}

	return nil
}

// issueToken signs a fresh JWT for the user and persists it as the new
// active token in the same flow, superseding any prior session.
func (a *authService) issueToken(ctx context.Context, userID int64) (models.Token, error) {
	log := logger.FromContext(ctx)

	token, err := utils.GenerateJWTToken(a.tokenIssuer, userID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	if err := a.userRepository.UpdateActiveToken(ctx, userID, token.SignedString); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("persisting active token failed")
		return models.Token{}, fmt.Errorf("persisting active token failed: %w", err)
	}

	return token, nil
}
