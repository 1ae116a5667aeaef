package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/dmitrijs2005/tgdialogs/internal/client/models"
	"github.com/dmitrijs2005/tgdialogs/internal/clock"
)

var (
	ErrInvalidHash = errors.New("invalid hash")
	ErrAuthExpired = errors.New("auth_date is too old")
)

// TelegramVerifier checks login widget assertions: the hash must be the
// HMAC-SHA256 of the data-check string keyed with SHA-256(bot token), and
// auth_date must be younger than maxAge.
//
// A verifier without a bot token accepts everything, which is what local
// development without a registered bot needs.
type TelegramVerifier struct {
	botToken string
	maxAge   time.Duration
	clock    clock.Clock
}

func NewTelegramVerifier(botToken string, maxAge time.Duration, clk clock.Clock) *TelegramVerifier {
	return &TelegramVerifier{botToken: botToken, maxAge: maxAge, clock: clk}
}

// Enabled reports whether signatures are checked at all.
func (v *TelegramVerifier) Enabled() bool {
	return v.botToken != ""
}

func (v *TelegramVerifier) Verify(a models.Assertion) error {
	if !v.Enabled() {
		return nil
	}

	got, err := hex.DecodeString(a.Hash)
	if err != nil || !hmac.Equal(got, sign(v.botToken, a)) {
		return ErrInvalidHash
	}

	if v.maxAge > 0 {
		issued := time.Unix(a.AuthDate, 0)
		if v.clock.Now().Sub(issued) > v.maxAge {
			return ErrAuthExpired
		}
	}
	return nil
}

// Sign returns the hex hash Telegram would attach to a for botToken.
func Sign(botToken string, a models.Assertion) string {
	return hex.EncodeToString(sign(botToken, a))
}

func sign(botToken string, a models.Assertion) []byte {
	secret := sha256.Sum256([]byte(botToken))
	mac := hmac.New(sha256.New, secret[:])
	mac.Write([]byte(a.DataCheckString()))
	return mac.Sum(nil)
}
