package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/docustore/admin-console/internal/core/domain"
	"github.com/docustore/admin-console/internal/transport"
)

// ListDocuments returns every document visible to the current user.
func (c *Client) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	var out []domain.Document
	return out, c.get(ctx, "/api/documents", &out)
}

// GetDocument fetches a single document. The resource-access guard uses
// this call as its permission probe: any failure means "not permitted".
func (c *Client) GetDocument(ctx context.Context, id int64) (domain.Document, error) {
	var out domain.Document
	return out, c.get(ctx, fmt.Sprintf("/api/documents/%d", id), &out)
}

// DeleteDocument removes a document.
func (c *Client) DeleteDocument(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/documents/%d", id), nil)
}

// ListUsers returns the account directory. Server-side this is restricted
// to system administrators.
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	return out, c.get(ctx, "/api/users", &out)
}

// GetUser fetches a single account.
func (c *Client) GetUser(ctx context.Context, id int64) (domain.User, error) {
	var out domain.User
	return out, c.get(ctx, fmt.Sprintf("/api/users/%d", id), &out)
}

// ListCompanies returns all companies.
func (c *Client) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	var out []domain.Company
	return out, c.get(ctx, "/api/companies", &out)
}

// ListResourceTypes returns the document type catalogue.
func (c *Client) ListResourceTypes(ctx context.Context) ([]domain.ResourceType, error) {
	var out []domain.ResourceType
	return out, c.get(ctx, "/api/resource-types", &out)
}

// ListACL returns the access-control entries for one resource.
func (c *Client) ListACL(ctx context.Context, resourceID int64) ([]domain.ACLEntry, error) {
	var out []domain.ACLEntry
	path := "/api/acl?" + url.Values{"resource_id": {fmt.Sprint(resourceID)}}.Encode()
	return out, c.get(ctx, path, &out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, out)
}

func (c *Client) do(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrServer, err)
	}
	defer resp.Body.Close()

	if err := transport.StatusError(resp); err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
