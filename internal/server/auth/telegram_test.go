package auth

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/tgdialogs/internal/client/models"
	"github.com/dmitrijs2005/tgdialogs/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const botToken = "123456:ABC-DEF"

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func signed(a models.Assertion) models.Assertion {
	a.Hash = Sign(botToken, a)
	return a
}

func TestTelegramVerifier_Valid(t *testing.T) {
	v := NewTelegramVerifier(botToken, 24*time.Hour, clock.NewFake(now))
	require.True(t, v.Enabled())

	a := signed(models.Assertion{ID: 42, FirstName: "Ann", Username: "ann", AuthDate: now.Add(-time.Hour).Unix()})
	assert.NoError(t, v.Verify(a))
}

func TestTelegramVerifier_TamperedField(t *testing.T) {
	v := NewTelegramVerifier(botToken, 24*time.Hour, clock.NewFake(now))

	a := signed(models.Assertion{ID: 42, FirstName: "Ann", AuthDate: now.Unix()})
	a.ID = 43
	assert.ErrorIs(t, v.Verify(a), ErrInvalidHash)
}

func TestTelegramVerifier_WrongBot(t *testing.T) {
	v := NewTelegramVerifier("other:token", 24*time.Hour, clock.NewFake(now))
	a := signed(models.Assertion{ID: 42, AuthDate: now.Unix()})
	assert.ErrorIs(t, v.Verify(a), ErrInvalidHash)
}

func TestTelegramVerifier_BadHashEncoding(t *testing.T) {
	v := NewTelegramVerifier(botToken, 0, clock.NewFake(now))
	assert.ErrorIs(t, v.Verify(models.Assertion{ID: 1, Hash: "zz"}), ErrInvalidHash)
	assert.ErrorIs(t, v.Verify(models.Assertion{ID: 1}), ErrInvalidHash)
}

func TestTelegramVerifier_Stale(t *testing.T) {
	v := NewTelegramVerifier(botToken, 24*time.Hour, clock.NewFake(now))

	a := signed(models.Assertion{ID: 42, AuthDate: now.Add(-25 * time.Hour).Unix()})
	assert.ErrorIs(t, v.Verify(a), ErrAuthExpired)

	noLimit := NewTelegramVerifier(botToken, 0, clock.NewFake(now))
	assert.NoError(t, noLimit.Verify(a))
}

func TestTelegramVerifier_DisabledAcceptsAll(t *testing.T) {
	v := NewTelegramVerifier("", time.Hour, clock.NewFake(now))
	assert.False(t, v.Enabled())
	assert.NoError(t, v.Verify(models.Assertion{ID: 42, Hash: "whatever"}))
}

func TestSign_DependsOnFieldValuesOnly(t *testing.T) {
	a := models.Assertion{ID: 1, FirstName: "A", AuthDate: 1700000000}
	b := models.Assertion{AuthDate: 1700000000, FirstName: "A", ID: 1}
	assert.Equal(t, Sign(botToken, a), Sign(botToken, b))
	assert.Len(t, Sign(botToken, a), 64)
	assert.NotEqual(t, Sign(botToken, a), Sign("x", a))
}
