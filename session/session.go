// Package session holds the tab-scoped record of the currently authenticated
// role. The session travels as a signed JWT in a cookie without Max-Age, so
// it dies with the browser tab and is never persisted server side.
//
// Single-writer contract: only the auth-form completion handler may call
// Issue and only the logout handler may clear the cookie. Every other
// component reads the session through FromContext.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"sellmate/role"
)

var (
	// ErrTokenInvalid signals a session token that failed signature, expiry
	// or claim validation.
	ErrTokenInvalid = errors.New("session: invalid token")
	// ErrRoleInvalid signals a token whose role claim is outside the closed
	// role set. Tokens like this are treated as no session at all.
	ErrRoleInvalid = errors.New("session: role not in valid set")
)

// CookieName is the session cookie. No Max-Age is set so the cookie is
// scoped to the browser tab session.
const CookieName = "sellmate_session"

// Session is the authenticated state carried by a valid session token.
type Session struct {
	ID            string
	Role          role.Role
	Authenticated bool
	IssuedAt      time.Time
	ExpiresAt     time.Time
}

// Claims extends the registered JWT claims with the session role.
type Claims struct {
	jwt.RegisteredClaims
	Role      role.Role `json:"role"`
	SessionID string    `json:"sid"`
}

// Manager issues and parses session tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager builds a Manager signing with secret. Tokens expire after ttl;
// a non-positive ttl falls back to twelve hours, long enough to outlive any
// realistic tab session.
func NewManager(secret string, ttl time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, fmt.Errorf("session: empty signing secret")
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Manager{secret: []byte(secret), ttl: ttl}, nil
}

// Issue mints a session for r. It refuses roles outside the closed set so a
// session role is valid by construction.
func (m *Manager) Issue(r role.Role) (string, Session, error) {
	if !r.Valid() {
		return "", Session{}, ErrRoleInvalid
	}

	now := time.Now()
	sess := Session{
		ID:            uuid.NewString(),
		Role:          r,
		Authenticated: true,
		IssuedAt:      now,
		ExpiresAt:     now.Add(m.ttl),
	}

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sess.ID,
			IssuedAt:  jwt.NewNumericDate(sess.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
			ID:        uuid.NewString(),
		},
		Role:      r,
		SessionID: sess.ID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", Session{}, fmt.Errorf("session: sign token: %w", err)
	}
	return signed, sess, nil
}

// Parse validates a session token and reconstructs the Session. Any failure
// maps to ErrTokenInvalid or ErrRoleInvalid; callers treat both as an
// anonymous visitor, never as a user-visible error.
func (m *Manager) Parse(tokenString string) (Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(_ *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Session{}, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Session{}, ErrTokenInvalid
	}
	if claims.SessionID == "" {
		return Session{}, fmt.Errorf("%w: missing session id", ErrTokenInvalid)
	}
	if !claims.Role.Valid() {
		return Session{}, ErrRoleInvalid
	}

	sess := Session{
		ID:            claims.SessionID,
		Role:          claims.Role,
		Authenticated: true,
	}
	if claims.IssuedAt != nil {
		sess.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	return sess, nil
}

type contextKey struct{}

// NewContext returns a context carrying sess.
func NewContext(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, contextKey{}, sess)
}

// FromContext returns the session attached to ctx, if any. Absence means an
// anonymous visitor.
func FromContext(ctx context.Context) (Session, bool) {
	sess, ok := ctx.Value(contextKey{}).(Session)
	return sess, ok
}
