// Package mock provides an in-memory Mailer for tests and local runs.
package mock

import (
	"context"
	"sync"

	"github.com/genkan-app/genkan/internal/mailer"
)

// Recorder records every message instead of delivering it. FailWith
// makes Send return that error, which exercises rollback paths.
type Recorder struct {
	mu       sync.Mutex
	Sent     []mailer.Message
	FailWith error
}

var _ mailer.Mailer = (*Recorder)(nil)

func (r *Recorder) Send(_ context.Context, msg mailer.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailWith != nil {
		return r.FailWith
	}

	r.Sent = append(r.Sent, msg)
	return nil
}

// Last returns the most recent message, if any.
func (r *Recorder) Last() (mailer.Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.Sent) == 0 {
		return mailer.Message{}, false
	}
	return r.Sent[len(r.Sent)-1], true
}
