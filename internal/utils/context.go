package utils

import "context"

type contextKey string

const identityKey contextKey = "identity"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Identity is the authenticated caller resolved by the auth middleware.
type Identity struct {
	UserID string
	Name   string
	Email  string
	Role   string
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// SetIdentity stores the caller on ctx (called by middleware).
func SetIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// GetIdentity retrieves the caller safely.
func GetIdentity(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok && id.UserID != ""
}

// GetUserIDFromContext returns only the caller's id.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := GetIdentity(ctx)
	return id.UserID, ok
}
