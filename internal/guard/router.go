package guard

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// Router is the client-side route table. Navigate evaluates a route's
// guards in declaration order, short-circuits on the first deny, and always
// returns a definitive outcome: activated or redirected, never
// indeterminate.
type Router struct {
	routes []route
	log    zerolog.Logger
}

type route struct {
	pattern  string
	segments []string
	guards   []Guard
}

// Outcome is the result of a navigation. Path holds the activated path, or
// the redirect target when the navigation was denied.
type Outcome struct {
	Activated bool
	Path      string
}

// NewRouter returns an empty route table.
func NewRouter(log zerolog.Logger) *Router {
	return &Router{log: log}
}

// Handle registers a route pattern. Segments starting with ':' capture
// path parameters, e.g. "/documents/:id".
func (r *Router) Handle(pattern string, guards ...Guard) {
	r.routes = append(r.routes, route{
		pattern:  pattern,
		segments: splitPath(pattern),
		guards:   guards,
	})
}

// Navigate runs the guard chain for the route matching path. Unknown paths
// redirect to the application home.
func (r *Router) Navigate(ctx context.Context, path string) Outcome {
	rawPath := path
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}

	rt, params, ok := r.match(path)
	if !ok {
		r.log.Debug().Str("path", rawPath).Msg("no route, redirecting home")
		return Outcome{Path: HomePath}
	}

	target := Target{Path: rawPath, Params: params}
	for _, g := range rt.guards {
		d := g(ctx, target)
		if !d.Allow {
			to := d.RedirectTo
			if to == "" {
				to = HomePath
			}
			r.log.Debug().Str("path", rawPath).Str("redirect", to).Msg("navigation denied")
			return Outcome{Path: to}
		}
	}
	return Outcome{Activated: true, Path: rawPath}
}

func (r *Router) match(path string) (route, map[string]string, bool) {
	segs := splitPath(path)
	for _, rt := range r.routes {
		if len(rt.segments) != len(segs) {
			continue
		}
		params := map[string]string{}
		matched := true
		for i, pat := range rt.segments {
			if strings.HasPrefix(pat, ":") {
				params[pat[1:]] = segs[i]
				continue
			}
			if pat != segs[i] {
				matched = false
				break
			}
		}
		if matched {
			return rt, params, true
		}
	}
	return route{}, nil, false
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
