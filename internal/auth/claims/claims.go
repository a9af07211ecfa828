// Package claims decodes the payload of a bearer token without verifying
// its signature. The server re-validates every request, so the client only
// needs the embedded identity for display purposes, never for real
// authorization decisions.
package claims

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/docustore/admin-console/internal/core/domain"
)

// rolePrefix is the authority prefix the server attaches to every role
// claim. It is stripped exactly once before roles are surfaced.
const rolePrefix = "ROLE_"

// ClaimSet is the decoded token payload. Roles preserve the order the
// token listed them in.
type ClaimSet struct {
	Subject   string
	Roles     []string
	ExpiresAt time.Time
}

// Decode splits the token, base64-decodes the payload segment and extracts
// the subject, role and expiry claims. It returns an error wrapping
// domain.ErrMalformedToken when the token lacks the expected structure;
// callers treat that as "no valid session".
func Decode(token string) (ClaimSet, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return ClaimSet{}, fmt.Errorf("%w: %v", domain.ErrMalformedToken, err)
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return ClaimSet{}, fmt.Errorf("%w: unexpected claims type", domain.ErrMalformedToken)
	}

	cs := ClaimSet{}
	cs.Subject, _ = mc.GetSubject()
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		cs.ExpiresAt = exp.Time
	}

	if raw, ok := mc["roles"].([]any); ok {
		for _, r := range raw {
			s, ok := r.(string)
			if !ok {
				continue
			}
			cs.Roles = append(cs.Roles, strings.TrimPrefix(s, rolePrefix))
		}
	}

	return cs, nil
}
