package ports

import "context"

// Identity is the resolved caller of a request: the session payload carried
// from login to every subsequent operation. It is passed explicitly into
// service calls rather than read from ambient state.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// SessionManager is the session/auth gate. Sessions live server-side under an
// opaque id; the returned token is the sealed cookie value handed to clients.
type SessionManager interface {
	// Issue persists a new session for the identity and returns the sealed token.
	Issue(ctx context.Context, identity Identity) (string, error)
	// Resolve validates a sealed token and loads the identity it refers to.
	// Returns domain.ErrSessionNotFound for tampered, unknown, or expired tokens.
	Resolve(ctx context.Context, token string) (*Identity, error)
	// Revoke deletes the session a sealed token refers to.
	Revoke(ctx context.Context, token string) error
}
