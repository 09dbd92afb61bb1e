package models

import "time"

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is exposed via JSON only in the /api/user/me response.
	UserID int64 `json:"id"`

	// Username is the unique user login identifier.
	// Typically used during authentication.
	Username string `json:"username"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This value MUST never contain plaintext and is excluded from JSON.
	PasswordHash string `json:"-"`

	// ActiveToken is the single currently valid session token for the
	// user, or the empty string when the user is logged out. A bearer
	// token authenticates only if it verifies cryptographically AND
	// equals this value; re-login overwrites it, logout clears it.
	ActiveToken string `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	// Used for auditing and lifecycle management.
	CreatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
