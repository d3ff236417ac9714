// Package session holds the process-wide authentication state: the access
// token and the user it belongs to.
//
// The two are always replaced and cleared together; a reader never sees a
// token without a user or the other way around.
package session

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/wealthwise/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrIncomplete is returned when a session is missing its token or user.
var ErrIncomplete = errors.New("session must carry both a token and a user")

// Session is a value snapshot of the authentication state. The zero value
// is the empty, unauthenticated session.
type Session struct {
	Token     string      `msgpack:"token"`
	TokenType string      `msgpack:"token_type"`
	User      models.User `msgpack:"user"`
}

func (s Session) Authenticated() bool { return s.Token != "" }

// FromAuth builds a session from a login, signup or fallback response.
func FromAuth(r models.AuthResponse) Session {
	return Session{Token: r.AccessToken, TokenType: r.TokenType, User: r.User}
}

func (s Session) valid() bool {
	return s.Token != "" && s.User.ID != ""
}

// Store is safe for concurrent use. Reads return copies.
type Store struct {
	mu  sync.RWMutex
	cur Session
	now func() time.Time
}

func NewStore() *Store {
	return &Store{now: time.Now}
}

func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Replace swaps in a new session atomically.
func (s *Store) Replace(next Session) error {
	if !next.valid() {
		return ErrIncomplete
	}
	s.mu.Lock()
	s.cur = next
	s.mu.Unlock()
	return nil
}

func (s *Store) Clear() {
	s.mu.Lock()
	s.cur = Session{}
	s.mu.Unlock()
}

// Token returns the current token if it is live, otherwise "".
func (s *Store) Token() string {
	tok := s.Current().Token
	if tok == "" || !Live(tok, s.now()) {
		return ""
	}
	return tok
}

// Live reports whether tok may still be presented. Opaque tokens are
// always live. A JWT is live until its exp claim; a token that looks like
// a JWT but cannot be decoded is not.
func Live(tok string, now time.Time) bool {
	if strings.Count(tok, ".") != 2 {
		return true
	}
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tok, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return true
	}
	return now.Before(claims.ExpiresAt.Time)
}
