package domain

import "time"

// MaxSessionAge is the hard ceiling on a session record's lifetime,
// independent of the bearer token's own expiry.
const MaxSessionAge = 12 * time.Hour

// Storage keys for a session record. KeySessionKey and KeySessionCreated are
// deliberately distinct from the token: logout destroys them so that cached
// page state cannot re-enter an authenticated area, and a fresh login
// regenerates them.
const (
	KeyToken          = "auth_token"
	KeyUsername       = "username"
	KeyRole           = "user_role"
	KeyClientID       = "client_id"
	KeyBusinessName   = "business_name"
	KeyEmail          = "email"
	KeySessionKey     = "session_key"
	KeySessionCreated = "session_created"
)

// SessionFields enumerates every key a session record may hold. Logout must
// clear all of them atomically.
var SessionFields = []string{
	KeyToken,
	KeyUsername,
	KeyRole,
	KeyClientID,
	KeyBusinessName,
	KeyEmail,
	KeySessionKey,
	KeySessionCreated,
}

// Invalidation reasons reported by the session guard.
const (
	ReasonMissing = "missing"
	ReasonInvalid = "invalid"
	ReasonExpired = "expired"
)
