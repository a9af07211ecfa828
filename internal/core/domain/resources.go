package domain

import "time"

// Document is a managed document record as the API returns it. File content
// and version history stay server-side; the client only lists metadata.
type Document struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	FileName    string    `json:"file_name,omitempty"`
	Version     int64     `json:"version"`
	CompanyID   int64     `json:"company_id"`
	TypeID      int64     `json:"type_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Company groups users and documents under one tenant.
type Company struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ResourceType classifies documents (contract, invoice, report, ...).
type ResourceType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ACLEntry grants a user access to a single resource. The server is the
// authority on these; the client only displays them.
type ACLEntry struct {
	ID         int64 `json:"id"`
	ResourceID int64 `json:"resource_id"`
	UserID     int64 `json:"user_id"`
	CanRead    bool  `json:"can_read"`
	CanWrite   bool  `json:"can_write"`
}
