// Package dialogs keeps the development server's per-user dialogs and
// messages in memory. Every user gets the same demo mailbox on first
// access; nothing survives a restart.
package dialogs

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/tgdialogs/internal/client/models"
	"github.com/dmitrijs2005/tgdialogs/internal/clock"
	"github.com/dmitrijs2005/tgdialogs/internal/common"
)

var ErrDialogNotFound = errors.New("dialog not found")

// Store is what the HTTP handlers need from dialog storage.
type Store interface {
	Dialogs(ctx context.Context, userID int64) ([]models.Dialog, error)
	Messages(ctx context.Context, userID int64, dialogID string, limit int, offsetID int64) ([]models.Message, error)
	Send(ctx context.Context, userID int64, dialogID string, text string, replyTo *int64) (models.Message, error)
}

type dialog struct {
	summary  models.Dialog
	messages []models.Message // oldest first
}

type MemoryStore struct {
	mu      sync.Mutex
	clock   clock.Clock
	mailbox map[int64][]*dialog
}

func NewMemoryStore(clk clock.Clock) *MemoryStore {
	return &MemoryStore{clock: clk, mailbox: make(map[int64][]*dialog)}
}

// Dialogs lists userID's dialogs, most recent activity first.
func (s *MemoryStore) Dialogs(ctx context.Context, userID int64) ([]models.Dialog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	box := s.boxLocked(userID)
	out := make([]models.Dialog, 0, len(box))
	for _, d := range box {
		out = append(out, d.summary)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return lastTime(out[i]).After(lastTime(out[j]))
	})
	return out, nil
}

// Messages returns up to limit messages with an id below offsetID (all
// messages when offsetID is 0), the newest page in chronological order.
func (s *MemoryStore) Messages(ctx context.Context, userID int64, dialogID string, limit int, offsetID int64) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.findLocked(userID, dialogID)
	if d == nil {
		return nil, ErrDialogNotFound
	}

	end := len(d.messages)
	if offsetID > 0 {
		end = sort.Search(len(d.messages), func(i int) bool { return d.messages[i].ID >= offsetID })
	}
	start := max(end-limit, 0)

	out := make([]models.Message, end-start)
	copy(out, d.messages[start:end])
	return out, nil
}

// Send appends an outgoing message and marks the dialog read.
func (s *MemoryStore) Send(ctx context.Context, userID int64, dialogID string, text string, replyTo *int64) (models.Message, error) {
	if strings.TrimSpace(text) == "" {
		return models.Message{}, common.ErrEmptyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.findLocked(userID, dialogID)
	if d == nil {
		return models.Message{}, ErrDialogNotFound
	}

	var nextID int64 = 1
	if n := len(d.messages); n > 0 {
		nextID = d.messages[n-1].ID + 1
	}

	now := s.clock.Now().UTC().Truncate(time.Second)
	from := userID
	msg := models.Message{ID: nextID, Text: text, Date: now, Out: true, ReplyToMsgID: replyTo, FromID: &from}
	d.messages = append(d.messages, msg)

	d.summary.LastMessage = text
	d.summary.LastMessageTime = &now
	d.summary.UnreadCount = 0

	return msg, nil
}

func (s *MemoryStore) boxLocked(userID int64) []*dialog {
	box, ok := s.mailbox[userID]
	if !ok {
		box = seed(s.clock.Now())
		s.mailbox[userID] = box
	}
	return box
}

func (s *MemoryStore) findLocked(userID int64, dialogID string) *dialog {
	for _, d := range s.boxLocked(userID) {
		if d.summary.ID == dialogID {
			return d
		}
	}
	return nil
}

func lastTime(d models.Dialog) time.Time {
	if d.LastMessageTime == nil {
		return time.Time{}
	}
	return *d.LastMessageTime
}
