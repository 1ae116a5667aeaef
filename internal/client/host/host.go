// Package host delivers identity assertions from the Telegram side to the
// auth flow. A Host is handed the callback explicitly; it never reaches the
// flow through package state.
package host

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/tgdialogs/internal/client/models"
)

// AuthCallback receives one assertion. Its error is reported back to the
// sender where the host can do so and returned from Listen.
type AuthCallback func(ctx context.Context, a models.Assertion) error

// Host waits for an identity assertion and passes it to cb.
type Host interface {
	Listen(ctx context.Context, cb AuthCallback) error
}

// ErrNoAssertion is returned when the input ends before an assertion.
var ErrNoAssertion = errors.New("no identity assertion received")

// ReaderHost reads a single JSON assertion, e.g. from a file saved from the
// login widget's onauth payload.
type ReaderHost struct {
	r io.Reader
}

func NewReaderHost(r io.Reader) *ReaderHost {
	return &ReaderHost{r: r}
}

func (h *ReaderHost) Listen(ctx context.Context, cb AuthCallback) error {
	var a models.Assertion
	if err := json.NewDecoder(h.r).Decode(&a); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrNoAssertion
		}
		return fmt.Errorf("decode assertion: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return cb(ctx, a)
}
