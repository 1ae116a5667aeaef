package services

import (
	"errors"
	"fmt"
	"strings"
)

// Scheme selects which backend API the client authenticates against.
type Scheme string

const (
	// SchemeWidget is the legacy API: POST /api/auth, then
	// GET /api/dialogs?user_id=<id> with the locally stored identity.
	SchemeWidget Scheme = "widget"
	// SchemeBearer is the v1 API: the assertion is exchanged for an access
	// token that authorizes every later request.
	SchemeBearer Scheme = "bearer"
)

// ErrSchemeUnsupported is returned for operations the selected scheme has
// no endpoint for.
var ErrSchemeUnsupported = errors.New("operation not supported by auth scheme")

// ParseScheme accepts the config spelling of a scheme, case-insensitively.
func ParseScheme(s string) (Scheme, error) {
	switch Scheme(strings.ToLower(strings.TrimSpace(s))) {
	case SchemeWidget:
		return SchemeWidget, nil
	case SchemeBearer:
		return SchemeBearer, nil
	default:
		return "", fmt.Errorf("unknown auth scheme %q (want %q or %q)", s, SchemeWidget, SchemeBearer)
	}
}
