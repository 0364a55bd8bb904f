package ports

import "context"

// SessionIdentity is the server-held proof that a specific account
// authenticated in the current interaction. Authorization decisions use it
// exclusively; a client-supplied id is never trusted.
type SessionIdentity struct {
	AccountID string `json:"account_id"`
	Username  string `json:"username"`
	IsAdmin   bool   `json:"is_admin"`
}

// SessionStore establishes and revokes session identities. Tokens are opaque
// to callers; once Destroy returns, the token no longer resolves.
type SessionStore interface {
	Create(ctx context.Context, identity SessionIdentity) (token string, err error)
	Resolve(ctx context.Context, token string) (SessionIdentity, error)
	Destroy(ctx context.Context, token string) error
}
