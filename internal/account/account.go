// ABOUTME: Account service for registering users and checking logins.
// ABOUTME: Hashes passwords on register and verifies them in constant time on login.
package account

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/harperreed/fitness/internal/auth"
	"github.com/harperreed/fitness/internal/models"
	"github.com/harperreed/fitness/internal/storage"
)

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Service registers and authenticates users against a UserStore.
type Service struct {
	users  storage.UserStore
	hasher *auth.Hasher

	dummyOnce sync.Once
	dummyHash string
	dummyErr  error
}

// NewService creates an account service. A nil hasher selects the
// production parameters.
func NewService(users storage.UserStore, hasher *auth.Hasher) *Service {
	if hasher == nil {
		hasher = auth.DefaultHasher()
	}
	return &Service{users: users, hasher: hasher}
}

// Register stores a new user with a freshly salted hash of password.
// Name, email and password are stored as given; empty values are accepted.
func (s *Service) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := models.NewUser(name, email, hash)
	if err := s.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Authenticate returns the user registered under email when password
// matches. Unknown emails and wrong passwords both yield
// ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("get user: %w", err)
		}
		// Spend the same hashing work as a real check.
		s.verifyDummy(password)
		return nil, ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(u.PasswordHash, password)
	if err != nil {
		// A stored hash we cannot parse never matches.
		return nil, ErrInvalidCredentials
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) verifyDummy(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, s.dummyErr = s.hasher.Hash("dummy password")
	})
	if s.dummyErr != nil {
		return
	}
	_, _ = s.hasher.Verify(s.dummyHash, password)
}
