package guard

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allowGuard(calls *[]string, name string) Guard {
	return func(_ context.Context, _ Target) Decision {
		*calls = append(*calls, name)
		return Decision{Allow: true}
	}
}

func denyGuard(calls *[]string, name, redirect string) Guard {
	return func(_ context.Context, _ Target) Decision {
		*calls = append(*calls, name)
		return Decision{RedirectTo: redirect}
	}
}

func TestNavigate_Activates(t *testing.T) {
	var calls []string
	r := NewRouter(zerolog.Nop())
	r.Handle("/documents", allowGuard(&calls, "a"), allowGuard(&calls, "b"))

	out := r.Navigate(context.Background(), "/documents")

	assert.True(t, out.Activated)
	assert.Equal(t, "/documents", out.Path)
	assert.Equal(t, []string{"a", "b"}, calls)
}

func TestNavigate_ShortCircuitsOnFirstDeny(t *testing.T) {
	var calls []string
	r := NewRouter(zerolog.Nop())
	r.Handle("/users", denyGuard(&calls, "first", "/login"), allowGuard(&calls, "second"))

	out := r.Navigate(context.Background(), "/users")

	assert.False(t, out.Activated)
	assert.Equal(t, "/login", out.Path)
	assert.Equal(t, []string{"first"}, calls, "later guards must not run")
}

func TestNavigate_CapturesParams(t *testing.T) {
	var got Target
	r := NewRouter(zerolog.Nop())
	r.Handle("/documents/:id", func(_ context.Context, target Target) Decision {
		got = target
		return Decision{Allow: true}
	})

	out := r.Navigate(context.Background(), "/documents/42")

	require.True(t, out.Activated)
	assert.Equal(t, "42", got.Params["id"])
}

func TestNavigate_QueryPreservedInTarget(t *testing.T) {
	var got Target
	r := NewRouter(zerolog.Nop())
	r.Handle("/login", func(_ context.Context, target Target) Decision {
		got = target
		return Decision{Allow: true}
	})

	out := r.Navigate(context.Background(), "/login?returnUrl=%2Fdocuments")

	require.True(t, out.Activated)
	assert.Equal(t, "/login?returnUrl=%2Fdocuments", got.Path)
}

func TestNavigate_UnknownPathRedirectsHome(t *testing.T) {
	r := NewRouter(zerolog.Nop())
	r.Handle("/documents")

	out := r.Navigate(context.Background(), "/nope")

	assert.False(t, out.Activated)
	assert.Equal(t, HomePath, out.Path)
}

func TestNavigate_EmptyDenyRedirectFallsBackHome(t *testing.T) {
	r := NewRouter(zerolog.Nop())
	r.Handle("/x", func(_ context.Context, _ Target) Decision { return Decision{} })

	out := r.Navigate(context.Background(), "/x")

	assert.False(t, out.Activated)
	assert.Equal(t, HomePath, out.Path)
}
