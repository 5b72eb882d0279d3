package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"navident-console/internal/domain/entity"
)

var ErrNotLoggedIn = errors.New("not logged in")

// Session is what login persists and logout clears. It mirrors the signin
// response so the console can show who is logged in without another call.
type Session struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
	UserID       string `json:"userId"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Role         string `json:"role"`
}

// Store keeps the session in a single JSON file. It is injected wherever the
// session is needed so tests and concurrent consoles never share state.
type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Save(sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0o600)
}

// Load returns the stored session, or ErrNotLoggedIn when none exists.
func (s *Store) Load() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotLoggedIn
		}
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	if sess.Token == "" {
		return nil, ErrNotLoggedIn
	}

	return &sess, nil
}

// Token returns the bearer token, or "" when not logged in.
func (s *Store) Token() string {
	sess, err := s.Load()
	if err != nil {
		return ""
	}
	return sess.Token
}

// Clear removes the stored session. Called by logout and by the HTTP client
// on any 401 response.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Valid reports whether a session exists and its token has not expired. The
// token is not signature-checked here; the backend is the authority and a
// stale token just earns a 401.
func (s *Store) Valid() bool {
	sess, err := s.Load()
	if err != nil {
		return false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(sess.Token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		// Tokens without an expiry claim are treated as live.
		return true
	}
	return exp.After(time.Now())
}

// Role returns the stored role, used only to filter the command menu. Real
// authorization lives in the backend.
func (s *Store) Role() string {
	sess, err := s.Load()
	if err != nil {
		return ""
	}
	return sess.Role
}

// IsAdministrator reports whether the user-management menu entry is shown.
func (s *Store) IsAdministrator() bool {
	return s.Role() == entity.RoleAdministrator
}
