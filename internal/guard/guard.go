// Package guard contains the predicates the router consults before a route
// activates. Every guard resolves to a definitive decision: allow, or deny
// with a redirect target. Guards swallow failures into a deny; they have
// no caller to report to beyond the router.
package guard

import (
	"context"
	"net/url"

	"github.com/docustore/admin-console/internal/auth/session"
	"github.com/docustore/admin-console/internal/notify"
)

// HomePath is where denied-but-authenticated navigations land.
const HomePath = "/"

// Target describes the navigation being evaluated. Path is the originally
// requested path (query included); Params holds values captured from the
// route pattern.
type Target struct {
	Path   string
	Params map[string]string
}

// Decision is a guard's verdict. A deny always names a redirect target.
type Decision struct {
	Allow      bool
	RedirectTo string
}

// Guard is a predicate evaluated immediately before a navigation commits.
type Guard func(ctx context.Context, target Target) Decision

func allow() Decision {
	return Decision{Allow: true}
}

func deny(redirectTo string) Decision {
	return Decision{RedirectTo: redirectTo}
}

// Session is the read-only slice of the auth state guards need.
type Session interface {
	IsAuthenticated() bool
	HasRole(role string) bool
}

// Authenticated allows only signed-in users. Denials redirect to the login
// entry point carrying the requested path so login can return there.
func Authenticated(sess Session, n notify.Notifier) Guard {
	return func(_ context.Context, t Target) Decision {
		if sess.IsAuthenticated() {
			return allow()
		}
		n.Warning("you must sign in to access this page")
		return deny(loginRedirect(t.Path))
	}
}

// GuestOnly keeps signed-in users out of the login and reset pages.
func GuestOnly(sess Session) Guard {
	return func(_ context.Context, _ Target) Decision {
		if sess.IsAuthenticated() {
			return deny(HomePath)
		}
		return allow()
	}
}

// Role requires authentication plus the given role. The role is compared
// after the claim decoder stripped the authority prefix.
func Role(sess Session, n notify.Notifier, role string) Guard {
	return func(_ context.Context, t Target) Decision {
		if !sess.IsAuthenticated() {
			n.Warning("you must sign in to access this page")
			return deny(loginRedirect(t.Path))
		}
		if sess.HasRole(role) {
			return allow()
		}
		n.Error("you do not have permission to access this page")
		return deny(HomePath)
	}
}

// ResourceAccess probes the server with a single fetch of the target
// resource and treats any failure as denial. The server is the source of
// truth for per-resource permissions; the client does not re-derive them.
func ResourceAccess(fetch func(ctx context.Context, id string) error, n notify.Notifier, param string) Guard {
	return func(ctx context.Context, t Target) Decision {
		id := t.Params[param]
		if id == "" {
			n.Error("you cannot access this resource")
			return deny(HomePath)
		}
		if err := fetch(ctx, id); err != nil {
			n.Error("you cannot access this resource")
			return deny(HomePath)
		}
		return allow()
	}
}

func loginRedirect(returnURL string) string {
	return session.LoginPath + "?returnUrl=" + url.QueryEscape(returnURL)
}
