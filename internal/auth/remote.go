package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// RemoteResolver asks the auth service who owns a token.
type RemoteResolver struct {
	baseURL string
	client  *http.Client
}

// NewRemoteResolver creates a resolver for the auth service at baseURL.
// client may be nil.
func NewRemoteResolver(baseURL string, client *http.Client) *RemoteResolver {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &RemoteResolver{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// Resolve calls GET /api/users/me on behalf of the token holder.
func (r *RemoteResolver) Resolve(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, unauthenticated(ErrInvalidToken)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/api/users/me", nil)
	if err != nil {
		return nil, fmt.Errorf("build identity request: %w", err)
	}
	req.Header.Set("Authorization", BearerHeader(token))
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call auth service: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, unauthenticated(fmt.Errorf("auth service returned %d", resp.StatusCode))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("auth service returned %d", resp.StatusCode)
	}

	var id Identity
	if err := json.NewDecoder(resp.Body).Decode(&id); err != nil {
		return nil, fmt.Errorf("decode identity: %w", err)
	}
	if id.UserID == "" {
		return nil, unauthenticated(ErrInvalidToken)
	}
	return &id, nil
}
