package store

import (
	"fmt"
	"sync"

	"github.com/zanvidmar/lostfound/internal/auth"
	"github.com/zanvidmar/lostfound/internal/model"
)

// Users is the credential store: a username-keyed map persisted as a single
// JSON object and rewritten in full on every registration.
type Users struct {
	fs *FS
	mu sync.Mutex
}

// NewUsers returns a credential store backed by fs.
func NewUsers(fs *FS) *Users {
	return &Users{fs: fs}
}

// Register adds a new account. It fails with model.ErrAlreadyExists when the
// username is taken, regardless of password or contact content. There is no
// password-strength policy.
func (s *Users) Register(username, password, contactInfo string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := users[username]; ok {
		return fmt.Errorf("registering %q: %w", username, model.ErrAlreadyExists)
	}

	hash, salt, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	users[username] = model.User{
		PasswordHash: hash,
		Salt:         salt,
		ContactInfo:  contactInfo,
	}
	return s.save(users)
}

// Authenticate reports whether username exists and password matches its
// stored hash. It never mutates state.
func (s *Users) Authenticate(username, password string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return false, err
	}
	u, ok := users[username]
	if !ok {
		return false, nil
	}
	return auth.VerifyPassword(password, u.PasswordHash, u.Salt), nil
}

// Contact returns the stored contact details for username, or
// model.NoContactInfo when the username is unknown.
func (s *Users) Contact(username string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return "", err
	}
	u, ok := users[username]
	if !ok {
		return model.NoContactInfo, nil
	}
	return u.ContactInfo, nil
}

func (s *Users) load() (map[string]model.User, error) {
	users := make(map[string]model.User)
	if err := s.fs.readJSON(s.fs.UsersPath(), &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Users) save(users map[string]model.User) error {
	return s.fs.writeJSON(s.fs.UsersPath(), users)
}
