package model

import "time"

// TokenStorage indicates how the session token is kept on disk
type TokenStorage string

const (
	// TokenStorageEncrypted seals the token with the per-install key
	TokenStorageEncrypted TokenStorage = "encrypted"

	// TokenStoragePlain stores the token as-is
	TokenStoragePlain TokenStorage = "plain"
)

// Valid reports whether s is a known storage mode.
func (s TokenStorage) Valid() bool {
	return s == TokenStorageEncrypted || s == TokenStoragePlain
}

// User is the account returned by the API.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"user"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// Session is the locally cached login.
type Session struct {
	// User is the authenticated account
	User User `json:"user"`

	// APIURL is the server the token was issued by
	APIURL string `json:"api_url"`

	// TokenStorage indicates whether Token or SealedToken is populated
	TokenStorage TokenStorage `json:"token_storage"`

	// Token is the bearer token in plain storage mode
	Token string `json:"token,omitempty"`

	// SealedToken is the encrypted token in encrypted storage mode
	SealedToken []byte `json:"sealed_token,omitempty"`

	// ExpiresAt is read from the token when it is a JWT
	ExpiresAt time.Time `json:"expires_at,omitzero"`

	// CreatedAt is when the login happened
	CreatedAt time.Time `json:"created_at"`
}
