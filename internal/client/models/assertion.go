// Package models defines the data exchanged with the backend and stored
// locally: identity assertions, session records, dialogs and messages.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Assertion is the identity payload the Telegram host hands to the client.
// It is only a claim until the backend verifies it.
type Assertion struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
	PhotoURL  string `json:"photo_url,omitempty"`
	AuthDate  int64  `json:"auth_date,omitempty"`
	Hash      string `json:"hash,omitempty"`
}

// HasIdentity reports whether the assertion carries a user identifier.
func (a Assertion) HasIdentity() bool {
	return a.ID != 0
}

// DisplayName prefers the full name, then the username, then the id.
func (a Assertion) DisplayName() string {
	name := strings.TrimSpace(a.FirstName + " " + a.LastName)
	switch {
	case name != "":
		return name
	case a.Username != "":
		return "@" + a.Username
	default:
		return strconv.FormatInt(a.ID, 10)
	}
}

// UnmarshalJSON accepts the id either as a number or as a numeric string.
// A missing or non-numeric id leaves ID at zero.
func (a *Assertion) UnmarshalJSON(b []byte) error {
	type plain Assertion
	var wire struct {
		plain
		ID       json.RawMessage `json:"id"`
		AuthDate json.RawMessage `json:"auth_date"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}
	*a = Assertion(wire.plain)
	a.ID = parseInt(wire.ID)
	a.AuthDate = parseInt(wire.AuthDate)
	return nil
}

func parseInt(raw json.RawMessage) int64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return 0
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
		raw = []byte(s)
	}
	n, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// AssertionFromQuery reads the parameters the Telegram login widget appends
// to its data-auth-url redirect.
func AssertionFromQuery(q url.Values) (Assertion, error) {
	a := Assertion{
		FirstName: q.Get("first_name"),
		LastName:  q.Get("last_name"),
		Username:  q.Get("username"),
		PhotoURL:  q.Get("photo_url"),
		Hash:      q.Get("hash"),
	}

	if v := q.Get("id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Assertion{}, fmt.Errorf("invalid id %q: %w", v, err)
		}
		a.ID = id
	}
	if v := q.Get("auth_date"); v != "" {
		d, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Assertion{}, fmt.Errorf("invalid auth_date %q: %w", v, err)
		}
		a.AuthDate = d
	}
	return a, nil
}

// DataCheckString builds the string Telegram signs: every non-empty field
// except hash as key=value, sorted by key and joined with '\n'.
func (a Assertion) DataCheckString() string {
	fields := map[string]string{
		"first_name": a.FirstName,
		"last_name":  a.LastName,
		"username":   a.Username,
		"photo_url":  a.PhotoURL,
	}
	if a.ID != 0 {
		fields["id"] = strconv.FormatInt(a.ID, 10)
	}
	if a.AuthDate != 0 {
		fields["auth_date"] = strconv.FormatInt(a.AuthDate, 10)
	}

	keys := make([]string, 0, len(fields))
	for k, v := range fields {
		if v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+"="+fields[k])
	}
	return strings.Join(lines, "\n")
}
