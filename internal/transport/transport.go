// Package transport assembles the interceptor chain wrapped around every
// outgoing HTTP request: bearer attachment, error translation and in-flight
// tracking, in that order on the request path. The chain performs side
// effects (notifications, forced logout) but never swallows a response or
// error, so callers always see the original outcome.
package transport

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/docustore/admin-console/internal/auth/session"
	"github.com/docustore/admin-console/internal/core/domain"
	"github.com/docustore/admin-console/internal/metrics"
	"github.com/docustore/admin-console/internal/notify"
)

// apiPrefix selects the requests the in-flight tracker counts.
const apiPrefix = "/api/"

// TokenSource supplies the current bearer token.
type TokenSource interface {
	Token() (string, bool)
}

// SessionDiscarder force-clears local session state without navigating.
// Satisfied by session.Manager.
type SessionDiscarder interface {
	Discard()
}

// Options carries the collaborators the chain needs.
type Options struct {
	Tokens   TokenSource
	Session  SessionDiscarder
	Notifier notify.Notifier
	Pending  *PendingCounter
	Redirect func(path string)
	Log      zerolog.Logger

	// Base is the innermost transport; http.DefaultTransport when nil.
	Base http.RoundTripper
}

// NewClient returns an *http.Client whose transport is the full chain.
func NewClient(timeout time.Duration, opts Options) *http.Client {
	return &http.Client{Timeout: timeout, Transport: NewTransport(opts)}
}

// NewTransport composes the chain. Request order: bearer attacher, error
// translator, tracker. The tracker sits innermost so its decrement runs on
// every completion path, before the translator's side effects.
func NewTransport(opts Options) http.RoundTripper {
	base := opts.Base
	if base == nil {
		base = http.DefaultTransport
	}
	var rt http.RoundTripper = &tracker{next: base, pending: opts.Pending}
	rt = &errorTranslator{
		next:     rt,
		session:  opts.Session,
		notifier: opts.Notifier,
		redirect: opts.Redirect,
		log:      opts.Log,
	}
	return &bearer{next: rt, tokens: opts.Tokens}
}

// bearer attaches the Authorization header to a clone of the request when a
// credential exists. The original request is never mutated.
type bearer struct {
	next   http.RoundTripper
	tokens TokenSource
}

func (b *bearer) RoundTrip(req *http.Request) (*http.Response, error) {
	tok, ok := b.tokens.Token()
	if !ok {
		return b.next.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+tok)
	return b.next.RoundTrip(clone)
}

// errorTranslator observes every response and turns error statuses into
// notifications. On 401 it additionally discards the session and redirects
// to the login entry point. The response itself continues to the caller
// unchanged so page-level code can reset its own state.
type errorTranslator struct {
	next     http.RoundTripper
	session  SessionDiscarder
	notifier notify.Notifier
	redirect func(path string)
	log      zerolog.Logger
}

func (t *errorTranslator) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		// No response at all: the browser equivalent of status 0.
		t.notifier.Error("the server is not responding, try again later")
		return nil, err
	}

	switch {
	case resp.StatusCode < 400:
	case resp.StatusCode == http.StatusUnauthorized:
		metrics.AuthFailuresTotal.Inc()
		t.log.Warn().Str("path", req.URL.Path).Msg("request rejected, ending session")
		t.session.Discard()
		if t.redirect != nil {
			t.redirect(session.LoginPath)
		}
		t.notifier.Warning("your session has expired, please sign in again")
	case resp.StatusCode == http.StatusForbidden:
		t.notifier.Error("you do not have permission to perform this action")
	case resp.StatusCode == http.StatusNotFound:
		t.notifier.Error("the requested resource was not found")
	case resp.StatusCode >= 500:
		t.notifier.Error("the server reported an error, try again later")
	default:
		t.notifier.Error(serverMessage(resp))
	}

	return resp, nil
}

// serverMessage peeks the error envelope of a 4xx response and restores the
// body so the caller can still read it.
func serverMessage(resp *http.Response) string {
	const fallback = "the request could not be completed"
	if resp.Body == nil {
		return fallback
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return fallback
	}
	var envelope struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &envelope) == nil && envelope.Error != "" {
		return envelope.Error
	}
	return fallback
}

// tracker counts requests under the API prefix. The decrement is deferred
// so increments and decrements stay matched on every completion path.
type tracker struct {
	next    http.RoundTripper
	pending *PendingCounter
}

func (t *tracker) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.pending == nil || !strings.HasPrefix(req.URL.Path, apiPrefix) {
		return t.next.RoundTrip(req)
	}
	t.pending.Show()
	defer t.pending.Hide()

	resp, err := t.next.RoundTrip(req)
	code := "error"
	if resp != nil {
		code = strconv.Itoa(resp.StatusCode)
	}
	metrics.RequestsTotal.WithLabelValues(req.Method, code).Inc()
	return resp, err
}

// StatusError maps a non-2xx response onto the domain sentinels.
func StatusError(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case resp.StatusCode == http.StatusForbidden:
		return domain.ErrForbidden
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case resp.StatusCode >= 500:
		return domain.ErrServer
	default:
		return domain.ErrRequestFailed
	}
}
