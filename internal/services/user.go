package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/govjobs/apiserver/internal/auth"
	"github.com/govjobs/apiserver/internal/store"
	"github.com/govjobs/apiserver/types"
	"golang.org/x/crypto/bcrypt"
)

const (
	// initialSearchCredits is granted at registration and again at each
	// 30-day reset.
	initialSearchCredits = 3

	// creditResetWindow is how long a credit grant lasts before login
	// replenishes it.
	creditResetWindow = 30 * 24 * time.Hour

	// maxPasswordBytes is bcrypt's input limit; longer passwords make
	// GenerateFromPassword fail, so they are rejected as client errors.
	maxPasswordBytes = 72
)

// ErrInvalidInput is returned when a request field is missing or malformed.
var ErrInvalidInput = errors.New("invalid input")

// ErrInvalidCredentials is returned for both an unknown email and a wrong
// password, so login failures do not reveal which one occurred.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	ResetCredits(ctx context.Context, id int, credits int, resetAt time.Time) error
}

// UserService encapsulates registration, login, and the credit-reset rule.
type UserService struct {
	repo       UserRepository
	issuer     *auth.TokenIssuer
	bcryptCost int
}

// NewUserService constructs a UserService. The production bcrypt cost is 12;
// tests pass a lower cost.
func NewUserService(repo UserRepository, issuer *auth.TokenIssuer, bcryptCost int) *UserService {
	return &UserService{
		repo:       repo,
		issuer:     issuer,
		bcryptCost: bcryptCost,
	}
}

// Register validates and normalizes the email, hashes the password, and
// creates the user with an initial credit grant.
func (s *UserService) Register(ctx context.Context, email, password string) (types.User, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return types.User{}, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}
	if len(password) > maxPasswordBytes {
		return types.User{}, fmt.Errorf("%w: password must be at most %d bytes", ErrInvalidInput, maxPasswordBytes)
	}

	emailNorm := NormalizeEmail(email)
	if !validEmail(emailNorm) {
		return types.User{}, fmt.Errorf("%w: invalid email format", ErrInvalidInput)
	}

	// Pre-check for a friendly conflict; the unique index on users.email
	// is the final arbiter when two registrations race.
	if _, err := s.repo.GetByEmail(ctx, emailNorm); err == nil {
		return types.User{}, store.ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return types.User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return types.User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, types.User{
		Email:         emailNorm,
		PasswordHash:  string(hashed),
		SearchCredits: initialSearchCredits,
		LastReset:     time.Now(),
	})
	if err != nil {
		return types.User{}, err
	}
	return user, nil
}

// Login verifies credentials, applies the credit-reset rule, and returns a
// signed session token. It deliberately returns only the token: the reset is
// a storage side effect and profile data is served by GetByID.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return "", fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	emailNorm := NormalizeEmail(email)

	user, err := s.repo.GetByEmail(ctx, emailNorm)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	if creditsDue(now, user.LastReset) {
		if err := s.repo.ResetCredits(ctx, user.ID, initialSearchCredits, now); err != nil {
			return "", err
		}
	}

	token, err := s.issuer.Issue(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// GetByID returns the user with the given id.
func (s *UserService) GetByID(ctx context.Context, id int) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
// The normalized form is the uniqueness key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// creditsDue reports whether a full reset window has elapsed since the last
// credit grant.
func creditsDue(now, lastReset time.Time) bool {
	return now.Sub(lastReset) >= creditResetWindow
}

// validEmail accepts a bare RFC 5322 address, rejecting display names and
// anything net/mail cannot parse.
func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
