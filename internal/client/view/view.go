// Package view turns dialog summaries into display entries and prints them.
//
// Render is pure: the same dialogs and the same "now" always give the same
// View, which keeps the formatting rules testable without a terminal.
package view

import (
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/tgdialogs/internal/client/models"
)

// NoMessages is shown in place of an absent last message.
const NoMessages = "No messages"

// Entry is one rendered dialog row.
type Entry struct {
	ID      string
	Name    string
	Label   string // avatar placeholder, used when Avatar is empty
	Avatar  string
	Message string
	Time    string
	Badge   string // empty when there is nothing unread
}

// View is a full frame of the dialog list.
type View struct {
	Empty   bool
	Entries []Entry
}

// Render maps dialogs to entries, preserving their order.
func Render(dialogs []models.Dialog, now time.Time) View {
	if len(dialogs) == 0 {
		return View{Empty: true}
	}

	entries := make([]Entry, 0, len(dialogs))
	for _, d := range dialogs {
		entries = append(entries, renderEntry(d, now))
	}
	return View{Entries: entries}
}

func renderEntry(d models.Dialog, now time.Time) Entry {
	e := Entry{
		ID:      d.ID,
		Name:    d.Name,
		Label:   Label(d.Name),
		Avatar:  d.AvatarURL,
		Message: d.LastMessage,
		Time:    FormatTime(d.LastMessageTime, now),
	}
	if e.Message == "" {
		e.Message = NoMessages
	}
	if d.UnreadCount > 0 {
		e.Badge = strconv.Itoa(d.UnreadCount)
	}
	return e
}

// Label is the upper-cased first character of name, or "?" for an empty one.
func Label(name string) string {
	name = strings.TrimSpace(name)
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return "?"
	}
	return string(unicode.ToUpper(r))
}

// FormatTime buckets t relative to now, in now's location: "HH:MM" for the
// same calendar day, "Yesterday" for the previous one, "DD.MM.YYYY" for
// anything else. A nil t gives "".
func FormatTime(t *time.Time, now time.Time) string {
	if t == nil {
		return ""
	}
	local := t.In(now.Location())

	if sameDay(local, now) {
		return local.Format("15:04")
	}
	if sameDay(local, now.AddDate(0, 0, -1)) {
		return "Yesterday"
	}
	return local.Format("02.01.2006")
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
