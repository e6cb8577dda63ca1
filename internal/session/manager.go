package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"ticketflowapp/ticketflow/internal/directory"
	"ticketflowapp/ticketflow/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoSession          = errors.New("no active session")
)

const sessionKey = "ticketapp_session"

// SessionUser is the projection stored alongside the token. It never
// carries the password.
type SessionUser struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type Session struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}

// CredentialSource is the slice of the user directory login needs.
type CredentialSource interface {
	FindByCredentials(email, password string) (directory.User, error)
}

type Manager struct {
	store   storage.Store
	users   CredentialSource
	nowFunc func() time.Time
	mu      sync.Mutex
}

func NewManager(store storage.Store, users CredentialSource) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if users == nil {
		return nil, fmt.Errorf("credential source is required")
	}
	return &Manager{store: store, users: users, nowFunc: time.Now}, nil
}

// Login checks the credentials against the directory and, on a match,
// overwrites the session slot with a fresh token and the user projection.
// On a mismatch nothing is written: an existing session stays untouched.
func (m *Manager) Login(email, password string) (SessionUser, error) {
	u, err := m.users.FindByCredentials(email, password)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			return SessionUser{}, ErrInvalidCredentials
		}
		return SessionUser{}, fmt.Errorf("check credentials: %w", err)
	}

	sess := Session{
		Token: m.newToken(),
		User:  SessionUser{Email: u.Email, Name: u.Name},
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Set(sessionKey, sess); err != nil {
		return SessionUser{}, fmt.Errorf("persist session: %w", err)
	}
	return sess.User, nil
}

// Current returns the logged-in user, or ErrNoSession. Tokens never expire
// in this store, so presence is the whole check.
func (m *Manager) Current() (SessionUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var sess Session
	ok, err := m.store.Get(sessionKey, &sess)
	if err != nil {
		return SessionUser{}, fmt.Errorf("load session: %w", err)
	}
	if !ok || sess.Token == "" {
		return SessionUser{}, ErrNoSession
	}
	return sess.User, nil
}

// Logout removes the session slot unconditionally. Logging out twice is
// fine.
func (m *Manager) Logout() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Remove(sessionKey); err != nil {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// Tokens combine the login instant with a random component so rapid logins
// never collide.
func (m *Manager) newToken() string {
	return fmt.Sprintf("token_%d_%s", m.nowFunc().UnixMilli(), uuid.NewString())
}
