package models

import (
	"encoding/json"
	"time"
)

// SessionRecord is the locally persisted proof of a prior authentication.
// It is stored flat: the identity fields with auth_date replaced by the
// local issue time.
type SessionRecord struct {
	Identity Assertion
	IssuedAt time.Time
}

func (r SessionRecord) MarshalJSON() ([]byte, error) {
	a := r.Identity
	a.AuthDate = r.IssuedAt.Unix()
	return json.Marshal(a)
}

func (r *SessionRecord) UnmarshalJSON(b []byte) error {
	var a Assertion
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	r.Identity = a
	r.IssuedAt = time.Unix(a.AuthDate, 0)
	return nil
}
