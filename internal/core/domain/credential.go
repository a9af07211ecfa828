package domain

// Credential is the bearer token representing an authenticated session,
// plus the optional user snapshot the login endpoint returned alongside it.
// At most one credential is live per client; its presence is the sole
// authentication signal.
type Credential struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}
