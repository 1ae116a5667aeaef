package view

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/tgdialogs/internal/client/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

func at(t time.Time) *time.Time { return &t }

func TestRender_Empty(t *testing.T) {
	assert.Equal(t, View{Empty: true}, Render(nil, now))
	assert.Equal(t, View{Empty: true}, Render([]models.Dialog{}, now))
}

func TestRender_Entries(t *testing.T) {
	dialogs := []models.Dialog{
		{ID: "1", Name: "Ann", LastMessage: "hi", UnreadCount: 3},
		{ID: "2", Name: "bob", UnreadCount: 0, AvatarURL: "https://t.me/i/bob.jpg", LastMessageTime: at(now.Add(-time.Hour))},
		{ID: "3", Name: "", LastMessage: "x", LastMessageTime: at(now.AddDate(0, 0, -1))},
	}

	want := View{Entries: []Entry{
		{ID: "1", Name: "Ann", Label: "A", Message: "hi", Badge: "3"},
		{ID: "2", Name: "bob", Label: "B", Avatar: "https://t.me/i/bob.jpg", Message: NoMessages, Time: "13:30"},
		{ID: "3", Name: "", Label: "?", Message: "x", Time: "Yesterday"},
	}}

	got := Render(dialogs, now)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Render mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_BadgeOnlyWhenUnread(t *testing.T) {
	for unread, want := range map[int]string{0: "", 1: "1", 42: "42"} {
		v := Render([]models.Dialog{{Name: "n", UnreadCount: unread}}, now)
		require.Len(t, v.Entries, 1)
		assert.Equal(t, want, v.Entries[0].Badge, "unread=%d", unread)
	}
}

func TestRender_Deterministic(t *testing.T) {
	dialogs := []models.Dialog{{ID: "1", Name: "Ann", LastMessage: "hi", UnreadCount: 3, LastMessageTime: at(now)}}
	assert.Equal(t, Render(dialogs, now), Render(dialogs, now))
}

func TestLabel(t *testing.T) {
	tests := map[string]string{
		"Ann":    "A",
		"ann":    "A",
		"  zoe":  "Z",
		"ёжик":   "Ё",
		"":       "?",
		"   ":    "?",
		"42chat": "4",
	}
	for in, want := range tests {
		assert.Equal(t, want, Label(in), "Label(%q)", in)
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		name string
		in   *time.Time
		want string
	}{
		{"absent", nil, ""},
		{"same day morning", at(time.Date(2025, 3, 10, 0, 5, 0, 0, time.UTC)), "00:05"},
		{"same day now", at(now), "14:30"},
		{"yesterday late", at(time.Date(2025, 3, 9, 23, 59, 0, 0, time.UTC)), "Yesterday"},
		{"yesterday early", at(time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)), "Yesterday"},
		{"two days ago", at(time.Date(2025, 3, 8, 23, 59, 0, 0, time.UTC)), "08.03.2025"},
		{"last year", at(time.Date(2024, 12, 31, 10, 0, 0, 0, time.UTC)), "31.12.2024"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTime(tt.in, now))
		})
	}
}

func TestFormatTime_UsesNowLocation(t *testing.T) {
	tz := time.FixedZone("UTC+3", 3*60*60)
	localNow := time.Date(2025, 3, 10, 1, 0, 0, 0, tz)

	// 23:30 UTC on the 9th is 02:30 on the 10th in UTC+3.
	msg := time.Date(2025, 3, 9, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "02:30", FormatTime(&msg, localNow.Add(2*time.Hour)))

	// 20:00 UTC on the 9th is 23:00 on the 9th in UTC+3.
	msg = time.Date(2025, 3, 9, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "Yesterday", FormatTime(&msg, localNow))
}

func TestFormatTime_MonthBoundary(t *testing.T) {
	first := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	lastOfFeb := time.Date(2025, 2, 28, 18, 0, 0, 0, time.UTC)
	assert.Equal(t, "Yesterday", FormatTime(&lastOfFeb, first))
}
