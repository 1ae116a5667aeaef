package dialogs

import (
	"time"

	"github.com/dmitrijs2005/tgdialogs/internal/client/models"
)

type seedMessage struct {
	ago  time.Duration
	text string
	out  bool
}

type seedDialog struct {
	id     string
	name   string
	kind   string
	avatar string
	unread int
	msgs   []seedMessage
}

var demo = []seedDialog{
	{id: "1001", name: "Ann", kind: "user", unread: 3, msgs: []seedMessage{
		{ago: 26 * time.Hour, text: "Are we still on for Friday?", out: true},
		{ago: 25 * time.Hour, text: "Yes!"},
		{ago: 20 * time.Minute, text: "running late"},
		{ago: 15 * time.Minute, text: "order for me please"},
		{ago: 10 * time.Minute, text: "hi"},
	}},
	{id: "-2002", name: "Go Developers", kind: "group", avatar: "https://t.me/i/userpic/320/golang.jpg", unread: 12, msgs: []seedMessage{
		{ago: 30 * time.Hour, text: "Go 1.24 is out"},
		{ago: 27 * time.Hour, text: "generic type aliases finally"},
	}},
	{id: "-1003003", name: "Release Notes", kind: "channel", msgs: []seedMessage{
		{ago: 9 * 24 * time.Hour, text: "v0.1.0 published"},
	}},
	{id: "1004", name: "Saved Messages", kind: "user"},
}

// seed builds a fresh demo mailbox with message times relative to now.
func seed(now time.Time) []*dialog {
	now = now.UTC().Truncate(time.Second)

	out := make([]*dialog, 0, len(demo))
	for _, sd := range demo {
		d := &dialog{summary: models.Dialog{
			ID:          sd.id,
			Name:        sd.name,
			Type:        sd.kind,
			UnreadCount: sd.unread,
			AvatarURL:   sd.avatar,
		}}
		for i, m := range sd.msgs {
			at := now.Add(-m.ago)
			d.messages = append(d.messages, models.Message{ID: int64(i + 1), Text: m.text, Date: at, Out: m.out})
		}
		if n := len(d.messages); n > 0 {
			last := d.messages[n-1]
			d.summary.LastMessage = last.Text
			d.summary.LastMessageTime = &last.Date
		}
		out = append(out, d)
	}
	return out
}
