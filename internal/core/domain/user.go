package domain

import (
	"slices"
	"time"
)

// Role names as the client compares them, after the claim decoder has
// stripped the ROLE_ authority prefix the server attaches.
const (
	RoleSysAdmin     = "SYS_ADMIN"
	RoleCompanyAdmin = "COMPANY_ADMIN"
	RoleUser         = "USER"
)

// User models an account in the document service. The same shape serves as
// the session user: when derived from token claims alone, only Username and
// Roles are trustworthy; the remaining fields hold placeholders until a
// real profile accompanies the credential.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Roles     []string  `json:"roles"`
	CompanyID int64     `json:"company_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasRole reports whether the user carries the given role (exact match,
// prefix already stripped).
func (u User) HasRole(role string) bool {
	return slices.Contains(u.Roles, role)
}
