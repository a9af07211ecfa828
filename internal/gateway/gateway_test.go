package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docustore/admin-console/internal/auth/session"
	"github.com/docustore/admin-console/internal/auth/tokenstore"
	"github.com/docustore/admin-console/internal/core/domain"
)

func signedToken(t *testing.T, sub string, roles ...string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   sub,
		"roles": roles,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func newClient(t *testing.T, baseURL string) (*Client, *session.Manager) {
	t.Helper()
	sess := session.NewManager(tokenstore.New(t.TempDir()), zerolog.Nop())
	c := New(baseURL, &http.Client{Timeout: 5 * time.Second}, sess, zerolog.Nop())
	return c, sess
}

func TestLogin_EstablishesSession(t *testing.T) {
	token := signedToken(t, "alice", "ROLE_SYS_ADMIN")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var req struct{ Username, Password string }
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "alice", req.Username)
		require.Equal(t, "s3cret", req.Password)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": token,
			"user":  domain.User{ID: 1, Username: "alice", Email: "alice@example.com"},
		})
	}))
	defer srv.Close()

	c, sess := newClient(t, srv.URL)
	cred, err := c.Login(context.Background(), "alice", "s3cret")
	require.NoError(t, err)

	assert.Equal(t, token, cred.Token)
	assert.True(t, sess.IsAuthenticated())
	assert.True(t, sess.HasRole(domain.RoleSysAdmin))

	user, ok := sess.User()
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.False(t, sess.AuthInProgress())
}

func TestLogin_RejectedSurfacesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
	}))
	defer srv.Close()

	c, sess := newClient(t, srv.URL)
	_, err := c.Login(context.Background(), "alice", "wrong")

	assert.ErrorIs(t, err, domain.ErrAuthRejected)
	assert.Contains(t, err.Error(), "invalid credentials")
	assert.False(t, sess.IsAuthenticated())
}

func TestLogin_ValidatesBeforeSending(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be sent for an empty form")
	}))
	defer srv.Close()

	c, _ := newClient(t, srv.URL)
	_, err := c.Login(context.Background(), "", "")
	assert.ErrorIs(t, err, domain.ErrAuthRejected)
}

func TestResources_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, domain.ErrUnauthorized},
		{"forbidden", http.StatusForbidden, domain.ErrForbidden},
		{"not found", http.StatusNotFound, domain.ErrNotFound},
		{"server error", http.StatusInternalServerError, domain.ErrServer},
		{"teapot", http.StatusTeapot, domain.ErrRequestFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			c, _ := newClient(t, srv.URL)
			_, err := c.GetDocument(context.Background(), 1)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestListDocuments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/documents", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]domain.Document{
			{ID: 1, Name: "MSA", Version: 3},
			{ID: 2, Name: "Invoice", Version: 1},
		})
	}))
	defer srv.Close()

	c, _ := newClient(t, srv.URL)
	docs, err := c.ListDocuments(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "MSA", docs[0].Name)
}

func TestListACL_PassesResourceFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/acl", r.URL.Path)
		require.Equal(t, "3", r.URL.Query().Get("resource_id"))
		_ = json.NewEncoder(w).Encode([]domain.ACLEntry{{ID: 1, ResourceID: 3, UserID: 2, CanRead: true}})
	}))
	defer srv.Close()

	c, _ := newClient(t, srv.URL)
	entries, err := c.ListACL(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].CanRead)
}
