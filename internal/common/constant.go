// Package common contains shared constants and sentinel errors.
package common

import "time"

// Local storage keys. The two schemes never read each other's slot.
const (
	SessionKey = "telegram_auth"
	TokenKey   = "access_token"
)

// SessionTTL is how long a stored SessionRecord stays valid.
const SessionTTL = 86400 * time.Second

// RequestIDHeaderName is attached to every outbound API request.
const RequestIDHeaderName = "X-Request-ID"
