// internal/account/account.go
//
// Registration, authentication and password resets on top of the
// hosted accounts table. Two hashing schemes coexist: the legacy
// salted SHA-256 digest the earlier clients wrote, and bcrypt for
// installs that opt in. Verification detects the scheme per hash, so
// mixed tables keep working during a migration.

package account

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/palabrita/wordle-server/internal/store"
)

var (
	ErrDuplicateUsername  = errors.New("account: username taken")
	ErrInvalidCredentials = errors.New("account: invalid username or password")
	ErrNotFound           = errors.New("account: not found")
)

// HashScheme selects how new password hashes are produced.
type HashScheme string

const (
	// HashLegacy is the salted SHA-256 digest scheme of the original
	// desktop clients. Kept as the default so their rows verify.
	HashLegacy HashScheme = "legacy"
	// HashBcrypt produces bcrypt hashes at the default cost.
	HashBcrypt HashScheme = "bcrypt"
)

// legacySalt is appended to passwords before digesting, matching the
// scheme already present in the hosted accounts table.
const legacySalt = "wordle_salt"

// defaultAccountTypeID is the non-admin account type new signups get.
const defaultAccountTypeID = 1

// Store is the slice of the persistence layer the service needs.
type Store interface {
	AccountByUsername(ctx context.Context, username string) (store.Account, error)
	AccountByID(ctx context.Context, id int64) (store.Account, error)
	CreateAccount(ctx context.Context, username, passwordHash, email string, accountTypeID int64) (store.Account, error)
	UpdatePasswordHash(ctx context.Context, username, passwordHash string) error
	AccountTypeByID(ctx context.Context, id int64) (store.AccountType, error)
}

// Service implements account operations.
type Service struct {
	store  Store
	scheme HashScheme
}

// NewService builds a Service. An unknown scheme falls back to legacy.
func NewService(st Store, scheme HashScheme) *Service {
	if scheme != HashBcrypt {
		scheme = HashLegacy
	}
	return &Service{store: st, scheme: scheme}
}

func validateSignup(u, p string) error {
	if len(u) < 3 || len(u) > 24 {
		return errors.New("username must be 3–24 chars")
	}
	for _, r := range u {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return errors.New("username: letters, numbers, underscore only")
		}
	}
	if len(p) < 8 || len(p) > 100 {
		return errors.New("password must be 8–100 chars")
	}
	return nil
}

// Register creates a new non-admin account. The explicit existence
// check keeps the duplicate error distinguishable from driver errors.
func (s *Service) Register(ctx context.Context, username, password, email string) (store.Account, error) {
	username = strings.TrimSpace(username)
	if err := validateSignup(username, password); err != nil {
		return store.Account{}, err
	}

	_, err := s.store.AccountByUsername(ctx, username)
	if err == nil {
		return store.Account{}, ErrDuplicateUsername
	}
	if !errors.Is(err, store.ErrNotFound) {
		return store.Account{}, fmt.Errorf("account: lookup %q: %w", username, err)
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return store.Account{}, err
	}
	return s.store.CreateAccount(ctx, username, hash, strings.TrimSpace(email), defaultAccountTypeID)
}

// Authenticate verifies credentials and reports whether the account is
// an administrator. Both a missing user and a wrong password yield
// ErrInvalidCredentials so the response never leaks which one failed.
func (s *Service) Authenticate(ctx context.Context, username, password string) (store.Account, bool, error) {
	username = strings.TrimSpace(username)
	acc, err := s.store.AccountByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return store.Account{}, false, ErrInvalidCredentials
	}
	if err != nil {
		return store.Account{}, false, fmt.Errorf("account: lookup %q: %w", username, err)
	}
	if !verifyPassword(acc.PasswordHash, password) {
		return store.Account{}, false, ErrInvalidCredentials
	}

	admin := false
	if t, err := s.store.AccountTypeByID(ctx, acc.AccountTypeID); err == nil {
		admin = t.IsAdmin
	}
	return acc, admin, nil
}

// ResetPassword replaces the stored hash for an existing username and
// returns the account it belongs to.
func (s *Service) ResetPassword(ctx context.Context, username, newPassword string) (store.Account, error) {
	username = strings.TrimSpace(username)
	if len(newPassword) < 8 || len(newPassword) > 100 {
		return store.Account{}, errors.New("password must be 8–100 chars")
	}
	acc, err := s.store.AccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Account{}, ErrNotFound
		}
		return store.Account{}, fmt.Errorf("account: lookup %q: %w", username, err)
	}
	hash, err := s.hashPassword(newPassword)
	if err != nil {
		return store.Account{}, err
	}
	if err := s.store.UpdatePasswordHash(ctx, username, hash); err != nil {
		return store.Account{}, err
	}
	acc.PasswordHash = hash
	return acc, nil
}

// Get loads an account by id.
func (s *Service) Get(ctx context.Context, id int64) (store.Account, error) {
	acc, err := s.store.AccountByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return store.Account{}, ErrNotFound
	}
	return acc, err
}

// IsAdmin reports whether the account's type carries the admin flag.
func (s *Service) IsAdmin(ctx context.Context, id int64) (bool, error) {
	acc, err := s.store.AccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}
	t, err := s.store.AccountTypeByID(ctx, acc.AccountTypeID)
	if err != nil {
		return false, nil
	}
	return t.IsAdmin, nil
}

func (s *Service) hashPassword(pw string) (string, error) {
	if s.scheme == HashBcrypt {
		b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
		return string(b), err
	}
	return legacyHash(pw), nil
}

// legacyHash is hex(sha256(password + salt)).
func legacyHash(pw string) string {
	sum := sha256.Sum256([]byte(pw + legacySalt))
	return hex.EncodeToString(sum[:])
}

// verifyPassword checks pw against hash, picking the scheme from the
// hash shape: bcrypt hashes start with "$2".
func verifyPassword(hash, pw string) bool {
	if strings.HasPrefix(hash, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
	}
	want := legacyHash(pw)
	return subtle.ConstantTimeCompare([]byte(hash), []byte(want)) == 1
}
