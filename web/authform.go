package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"sellmate/role"
)

// AuthMode distinguishes the two faces of the auth form.
type AuthMode string

const (
	ModeLogin  AuthMode = "login"
	ModeSignup AuthMode = "signup"
)

// AuthRequest is the input the auth-form collaborator receives. Field-level
// validation happens inside the collaborator; the gateway only consumes the
// outcome.
type AuthRequest struct {
	Mode     AuthMode  `json:"mode"`
	Role     role.Role `json:"role"`
	Email    string    `json:"email"`
	Password string    `json:"password"`
}

// AuthResult is the collaborator's verdict. Reason is user-displayable and
// only meaningful when OK is false.
type AuthResult struct {
	OK     bool      `json:"ok"`
	Role   role.Role `json:"role"`
	Reason string    `json:"reason"`
}

// Authenticator is the auth-form collaborator boundary. A failed submission
// leaves the session untouched; the gateway takes no action beyond
// displaying the reason.
type Authenticator interface {
	Authenticate(ctx context.Context, req AuthRequest) (AuthResult, error)
}

// BackendAuthenticator submits credentials to the external auth backend.
// Credential storage and verification live entirely on that side.
type BackendAuthenticator struct {
	url    string
	client *http.Client
}

// NewBackendAuthenticator targets the backend's verification endpoint.
func NewBackendAuthenticator(url string) *BackendAuthenticator {
	return &BackendAuthenticator{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Authenticate posts the request as JSON and decodes the outcome.
func (b *BackendAuthenticator) Authenticate(ctx context.Context, req AuthRequest) (AuthResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return AuthResult{}, fmt.Errorf("web: marshal auth request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.url, bytes.NewReader(body))
	if err != nil {
		return AuthResult{}, fmt.Errorf("web: build auth request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(httpReq)
	if err != nil {
		return AuthResult{}, fmt.Errorf("web: auth backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return AuthResult{}, fmt.Errorf("web: auth backend returned %d", resp.StatusCode)
	}

	var result AuthResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return AuthResult{}, fmt.Errorf("web: decode auth result: %w", err)
	}
	return result, nil
}

// PresumingAuthenticator accepts any non-empty credentials and presumes the
// submitted role authenticated. It backs local development when no auth
// backend is configured; nothing is stored or verified.
type PresumingAuthenticator struct{}

func (PresumingAuthenticator) Authenticate(_ context.Context, req AuthRequest) (AuthResult, error) {
	if req.Email == "" || req.Password == "" {
		return AuthResult{Reason: "Email and password are required"}, nil
	}
	return AuthResult{OK: true, Role: req.Role}, nil
}
