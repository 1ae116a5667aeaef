package models

import "time"

// Message is one message of a dialog.
type Message struct {
	ID           int64     `json:"id"`
	Text         string    `json:"text"`
	Date         time.Time `json:"date"`
	Out          bool      `json:"out"`
	ReplyToMsgID *int64    `json:"reply_to_msg_id,omitempty"`
	FromID       *int64    `json:"from_id,omitempty"`
}

// SendMessageRequest is the body of POST /api/v1/dialogs/{id}/messages.
type SendMessageRequest struct {
	Text    string `json:"text"`
	ReplyTo *int64 `json:"reply_to,omitempty"`
}
