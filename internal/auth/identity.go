package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUnauthenticated means the caller could not be identified.
var ErrUnauthenticated = errors.New("unauthenticated")

// Identity is the resolved caller: who they are and which role they act in.
type Identity struct {
	UserID string `json:"id"`
	Role   string `json:"role"`
}

// Resolver turns a bearer token into an Identity. Implementations return an
// error matching ErrUnauthenticated when the token is rejected.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*Identity, error)
}

func unauthenticated(reason error) error {
	return fmt.Errorf("%w: %v", ErrUnauthenticated, reason)
}

type tokenKey struct{}

// WithToken stores the raw bearer token so outgoing calls can forward it.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the bearer token stored by WithToken.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey{}).(string)
	return token, ok && token != ""
}

// BearerHeader formats a token for the Authorization header.
func BearerHeader(token string) string {
	return "Bearer " + strings.TrimPrefix(token, "Bearer ")
}
