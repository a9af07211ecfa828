// Package notify is the notification side channel between the auth core
// and the presentation layer. The core decides what to surface and when;
// implementations decide how.
package notify

import (
	"sync"

	"github.com/rs/zerolog"
)

// Notifier surfaces user-facing messages.
type Notifier interface {
	Success(msg string)
	Info(msg string)
	Warning(msg string)
	Error(msg string)
}

// Console writes notifications through the structured logger.
type Console struct {
	Log zerolog.Logger
}

func (c Console) Success(msg string) { c.Log.Info().Str("notice", "success").Msg(msg) }
func (c Console) Info(msg string)    { c.Log.Info().Str("notice", "info").Msg(msg) }
func (c Console) Warning(msg string) { c.Log.Warn().Str("notice", "warning").Msg(msg) }
func (c Console) Error(msg string)   { c.Log.Error().Str("notice", "error").Msg(msg) }

// Entry is one recorded notification.
type Entry struct {
	Level   string
	Message string
}

// Recorder captures notifications for assertions in tests.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

func (r *Recorder) Success(msg string) { r.record("success", msg) }
func (r *Recorder) Info(msg string)    { r.record("info", msg) }
func (r *Recorder) Warning(msg string) { r.record("warning", msg) }
func (r *Recorder) Error(msg string)   { r.record("error", msg) }

func (r *Recorder) record(level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Message: msg})
}

// Entries returns a copy of everything recorded so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}
