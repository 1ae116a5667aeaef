package common

import (
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
)

func TestMakeRandHexString_LengthAndHex(t *testing.T) {
	const n = 16
	s, err := MakeRandHexString(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s) != n*2 {
		t.Fatalf("expected hex length %d, got %d", n*2, len(s))
	}
	if _, err := hex.DecodeString(s); err != nil {
		t.Fatalf("string is not valid hex: %v", err)
	}
}

func TestMakeRandHexString_ZeroSize(t *testing.T) {
	s, err := MakeRandHexString(0)
	if err != nil {
		t.Fatalf("unexpected error for size=0: %v", err)
	}
	if s != "" {
		t.Fatalf("expected empty string for size=0, got %q", s)
	}
}

func TestMakeRandHexString_Differs(t *testing.T) {
	a, _ := MakeRandHexString(32)
	b, _ := MakeRandHexString(32)
	if a == b {
		t.Logf("warning: two MakeRandHexString(32) results are identical; extremely unlikely")
	}
}

func TestNeedsAuth(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{ErrSessionMissing, true},
		{ErrSessionExpired, true},
		{ErrMalformedSession, true},
		{fmt.Errorf("dialogs: %w", ErrUnauthorized), true},
		{ErrFetchFailed, false},
		{ErrVerificationFailed, false},
		{errors.New("other"), false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := NeedsAuth(tt.err); got != tt.want {
			t.Fatalf("NeedsAuth(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
