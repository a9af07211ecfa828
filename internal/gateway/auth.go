// Package gateway is the REST client for the document service. It is the
// only component that exchanges credentials for a session; everything else
// reads the session state it establishes.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/docustore/admin-console/internal/auth/session"
	"github.com/docustore/admin-console/internal/core/domain"
)

// Client performs authenticated calls through the interceptor chain.
type Client struct {
	base     string
	http     *http.Client
	session  *session.Manager
	validate *validator.Validate
	log      zerolog.Logger
}

// New builds a client against the given API base URL. httpClient is
// expected to carry the transport chain.
func New(base string, httpClient *http.Client, sess *session.Manager, log zerolog.Logger) *Client {
	return &Client{
		base:     strings.TrimRight(base, "/"),
		http:     httpClient,
		session:  sess,
		validate: validator.New(),
		log:      log,
	}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user,omitempty"`
}

// Login exchanges credentials for a session. On success the session is
// established before the credential is returned. Failures are not retried:
// a rejected login is user-correctable, not transient.
func (c *Client) Login(ctx context.Context, username, password string) (domain.Credential, error) {
	req := loginRequest{Username: username, Password: password}
	if err := c.validate.Struct(req); err != nil {
		return domain.Credential{}, fmt.Errorf("%w: username and password are required", domain.ErrAuthRejected)
	}

	c.session.SetAuthInProgress(true)
	defer c.session.SetAuthInProgress(false)

	body, err := json.Marshal(req)
	if err != nil {
		return domain.Credential{}, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return domain.Credential{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return domain.Credential{}, fmt.Errorf("login: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Credential{}, fmt.Errorf("%w: %s", domain.ErrAuthRejected, errorMessage(resp))
	}

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return domain.Credential{}, fmt.Errorf("login: decode response: %w", err)
	}

	cred := domain.Credential{Token: lr.Token, User: lr.User}
	if err := c.session.Establish(cred); err != nil {
		return domain.Credential{}, err
	}
	c.log.Info().Str("username", username).Msg("session established")
	return cred, nil
}

// Logout tears the session down, navigating back to the login entry point.
func (c *Client) Logout() {
	c.session.Teardown()
}

// errorMessage extracts the server's error envelope, falling back to the
// HTTP status text.
func errorMessage(resp *http.Response) string {
	var envelope struct {
		Error string `json:"error"`
	}
	if json.NewDecoder(resp.Body).Decode(&envelope) == nil && envelope.Error != "" {
		return envelope.Error
	}
	return strings.ToLower(http.StatusText(resp.StatusCode))
}
