// Package auth guards the admin surface. It keeps sessions in memory, checks
// the configured admin credentials on sign-in and notifies subscribers on any
// session change so views can redirect as soon as a session disappears.
package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any sign-in failure. It deliberately
// never distinguishes a wrong email from a wrong password.
var ErrInvalidCredentials = errors.New("incorrect email or password")

type Session struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Config struct {
	AdminEmail        string
	AdminPasswordHash string
	SessionTTL        time.Duration
}

type Service struct {
	cfg Config
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
	subs     map[int]func(*Session)
	nextSub  int
}

func NewService(cfg Config) *Service {
	return &Service{
		cfg:      cfg,
		now:      time.Now,
		sessions: make(map[string]*Session),
		subs:     make(map[int]func(*Session)),
	}
}

// SignIn checks the credentials and opens a session. Subscribers are notified
// with the new session.
func (s *Service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	if email != s.cfg.AdminEmail {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	session := &Session{
		Token:     uuid.NewString(),
		Email:     email,
		ExpiresAt: s.now().Add(s.cfg.SessionTTL),
	}

	s.mu.Lock()
	s.sessions[session.Token] = session
	subs := s.snapshotSubs()
	s.mu.Unlock()

	notify(subs, session)
	return session, nil
}

// SignOut invalidates the session and notifies subscribers with a nil
// session, which triggers the redirect to the login screen.
func (s *Service) SignOut(token string) {
	s.mu.Lock()
	_, existed := s.sessions[token]
	delete(s.sessions, token)
	subs := s.snapshotSubs()
	s.mu.Unlock()

	if existed {
		notify(subs, nil)
	}
}

// Session resolves the current session for a token. Expired sessions are
// dropped and reported as absent.
func (s *Service) Session(token string) (*Session, bool) {
	s.mu.Lock()
	session, ok := s.sessions[token]
	if ok && s.now().After(session.ExpiresAt) {
		delete(s.sessions, token)
		subs := s.snapshotSubs()
		s.mu.Unlock()
		notify(subs, nil)
		return nil, false
	}
	s.mu.Unlock()
	return session, ok
}

// Subscribe registers a session-change callback and returns its unsubscribe
// handle. Callers must unsubscribe when the owning view goes away.
func (s *Service) Subscribe(fn func(*Session)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Service) snapshotSubs() []func(*Session) {
	out := make([]func(*Session), 0, len(s.subs))
	for _, fn := range s.subs {
		out = append(out, fn)
	}
	return out
}

func notify(subs []func(*Session), session *Session) {
	for _, fn := range subs {
		fn(session)
	}
}
