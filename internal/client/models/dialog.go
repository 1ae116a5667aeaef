package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// Dialog is a conversation summary as returned by the backend.
// Empty LastMessage and AvatarURL mean "absent"; so does a nil
// LastMessageTime.
type Dialog struct {
	ID              string
	Name            string
	Type            string
	LastMessage     string
	UnreadCount     int
	AvatarURL       string
	LastMessageTime *time.Time
}

type dialogJSON struct {
	ID              string `json:"id,omitempty"`
	Name            string `json:"name"`
	Type            string `json:"type,omitempty"`
	LastMessage     string `json:"last_message,omitempty"`
	LastMessageDate string `json:"last_message_date,omitempty"`
	UnreadCount     int    `json:"unread_count"`
	PhotoURL        string `json:"photo_url,omitempty"`
}

func (d Dialog) MarshalJSON() ([]byte, error) {
	out := dialogJSON{
		ID:          d.ID,
		Name:        d.Name,
		Type:        d.Type,
		LastMessage: d.LastMessage,
		UnreadCount: d.UnreadCount,
		PhotoURL:    d.AvatarURL,
	}
	if d.LastMessageTime != nil {
		out.LastMessageDate = d.LastMessageTime.Format(time.RFC3339)
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts both dialog shapes the backends produce:
//
//	{"name": "Ann", "last_message": "hi", "last_message_date": "...", "photo": "..."}
//	{"name": "Ann", "last_message": {"text": "hi", "date": "..."}, "photo_url": "..."}
//
// Unparseable timestamps are dropped rather than failing the whole list.
func (d *Dialog) UnmarshalJSON(b []byte) error {
	var wire struct {
		ID              json.RawMessage `json:"id"`
		Name            string          `json:"name"`
		Title           string          `json:"title"`
		Type            string          `json:"type"`
		LastMessage     json.RawMessage `json:"last_message"`
		LastMessageDate json.RawMessage `json:"last_message_date"`
		LastMessageTime json.RawMessage `json:"last_message_time"`
		UnreadCount     int             `json:"unread_count"`
		Photo           string          `json:"photo"`
		PhotoURL        string          `json:"photo_url"`
		AvatarURL       string          `json:"avatar_url"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}

	*d = Dialog{
		ID:          rawID(wire.ID),
		Name:        firstNonEmpty(wire.Name, wire.Title),
		Type:        wire.Type,
		UnreadCount: max(wire.UnreadCount, 0),
		AvatarURL:   firstNonEmpty(wire.AvatarURL, wire.PhotoURL, wire.Photo),
	}

	var nestedDate json.RawMessage
	if lm := bytes.TrimSpace(wire.LastMessage); len(lm) > 0 && lm[0] == '{' {
		var nested struct {
			Text string          `json:"text"`
			Date json.RawMessage `json:"date"`
		}
		if err := json.Unmarshal(lm, &nested); err != nil {
			return err
		}
		d.LastMessage = nested.Text
		nestedDate = nested.Date
	} else if len(lm) > 0 && string(lm) != "null" {
		if err := json.Unmarshal(lm, &d.LastMessage); err != nil {
			return err
		}
	}

	for _, raw := range []json.RawMessage{wire.LastMessageTime, wire.LastMessageDate, nestedDate} {
		if t, ok := ParseTimestamp(raw); ok {
			d.LastMessageTime = &t
			break
		}
	}
	return nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTimestamp reads an RFC 3339 / ISO 8601 string or unix seconds.
// Timestamps without a zone are taken as local time.
func ParseTimestamp(raw json.RawMessage) (time.Time, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return time.Time{}, false
	}

	if raw[0] != '"' {
		sec, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil || sec <= 0 {
			return time.Time{}, false
		}
		return time.Unix(sec, 0), true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func rawID(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	if raw[0] == '"' {
		var s string
		_ = json.Unmarshal(raw, &s)
		return s
	}
	return string(raw)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
