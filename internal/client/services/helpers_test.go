package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/tgdialogs/internal/client/models"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func insertMeta(t *testing.T, db *sql.DB, k string, v []byte) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO metadata(key,value) VALUES(?,?)`, k, v)
	require.NoError(t, err)
}

// getMeta returns nil for a missing key.
func getMeta(t *testing.T, db *sql.DB, k string) []byte {
	t.Helper()
	var v []byte
	err := db.QueryRow(`SELECT value FROM metadata WHERE key=?`, k).Scan(&v)
	if err == sql.ErrNoRows {
		return nil
	}
	require.NoError(t, err)
	return v
}

func countMeta(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM metadata`).Scan(&n))
	return n
}

// ---- fake client ----

// fakeClient implements client.Client and records every call.
type fakeClient struct {
	CloseErr error
	PingErr  error

	VerifyErr error

	UserDialogsRet []models.Dialog
	UserDialogsErr error

	ExchangeRet string
	ExchangeErr error

	DialogsRet []models.Dialog
	DialogsErr error

	MessagesRet []models.Message
	MessagesErr error

	SendRet models.Message
	SendErr error

	Calls int

	LastAssertion models.Assertion
	LastUserID    int64
	LastToken     string
	LastDialogID  string
	LastLimit     int
	LastOffsetID  int
	LastSend      models.SendMessageRequest
}

func (f *fakeClient) Close() error { return f.CloseErr }

func (f *fakeClient) Ping(ctx context.Context) error { return f.PingErr }

func (f *fakeClient) VerifyIdentity(ctx context.Context, a models.Assertion) error {
	f.Calls++
	f.LastAssertion = a
	return f.VerifyErr
}

func (f *fakeClient) UserDialogs(ctx context.Context, userID int64) ([]models.Dialog, error) {
	f.Calls++
	f.LastUserID = userID
	return f.UserDialogsRet, f.UserDialogsErr
}

func (f *fakeClient) ExchangeIdentity(ctx context.Context, a models.Assertion) (string, error) {
	f.Calls++
	f.LastAssertion = a
	return f.ExchangeRet, f.ExchangeErr
}

func (f *fakeClient) Dialogs(ctx context.Context, token string) ([]models.Dialog, error) {
	f.Calls++
	f.LastToken = token
	return f.DialogsRet, f.DialogsErr
}

func (f *fakeClient) Messages(ctx context.Context, token string, dialogID string, limit, offsetID int) ([]models.Message, error) {
	f.Calls++
	f.LastToken = token
	f.LastDialogID = dialogID
	f.LastLimit = limit
	f.LastOffsetID = offsetID
	return f.MessagesRet, f.MessagesErr
}

func (f *fakeClient) SendMessage(ctx context.Context, token string, dialogID string, req models.SendMessageRequest) (models.Message, error) {
	f.Calls++
	f.LastToken = token
	f.LastDialogID = dialogID
	f.LastSend = req
	return f.SendRet, f.SendErr
}
