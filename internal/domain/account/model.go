package account

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Max length constants for user-editable fields.
const (
	MaxUsernameLength = 50
)

// Role constants
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ValidRoles contains all valid role values.
var ValidRoles = []string{RoleAdmin, RoleUser}

// Domain errors
var (
	ErrEmptyUsername      = errors.New("username cannot be empty")
	ErrInvalidRole        = errors.New("role must be 'admin' or 'user'")
	ErrEmptyPassword      = errors.New("password cannot be empty")
	ErrInvalidCredentials = errors.New("username atau password salah")
	ErrForbidden          = errors.New("akses ditolak")
)

// Account holds state for a login account. The account table is fixed: one
// central admin plus one unit-scoped user per school/AUM, seeded at startup.
type Account struct {
	ID           string
	Username     string
	Name         string
	PasswordHash string
	Role         string
	Unit         string // empty for admin: no unit restriction
	CreatedAt    time.Time
}

// User is the session-facing view of an account. It is what a successful
// login yields; it is never persisted on its own.
type User struct {
	Username string
	Name     string
	Role     string
	Unit     string
}

// Validate checks if the Account has valid data.
// PRE: Account struct is populated
// POST: Returns nil if valid, error otherwise
func (a *Account) Validate() error {
	if strings.TrimSpace(a.Username) == "" {
		return ErrEmptyUsername
	}
	if len(a.Username) > MaxUsernameLength {
		return errors.New("username cannot exceed 50 characters")
	}
	if !isValidRole(a.Role) {
		return ErrInvalidRole
	}
	if a.Role == RoleUser && strings.TrimSpace(a.Unit) == "" {
		return errors.New("unit-scoped accounts must have a unit")
	}
	return nil
}

// SetPassword hashes and stores a password using bcrypt.
// PRE: plaintext is non-empty
// POST: PasswordHash is set to bcrypt hash
func (a *Account) SetPassword(plaintext string) error {
	if plaintext == "" {
		return ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
// PRE: PasswordHash is set
// INVARIANT: Account fields are not mutated
func (a *Account) CheckPassword(plaintext string) error {
	if a.PasswordHash == "" {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(plaintext)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// IsAdmin returns true for the central admin account.
// INVARIANT: Account fields are not mutated
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// User returns the session view of this account.
func (a *Account) User() User {
	return User{
		Username: a.Username,
		Name:     a.Name,
		Role:     a.Role,
		Unit:     a.Unit,
	}
}

// IsAdmin returns true for the central admin user.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsUnitScoped reports whether this user's reads and writes are restricted
// to a single unit.
func (u User) IsUnitScoped() bool {
	return u.Role != RoleAdmin && u.Unit != ""
}

// CanAccessUnit reports whether the user may read or write data belonging to
// the given unit.
func (u User) CanAccessUnit(unit string) bool {
	if !u.IsUnitScoped() {
		return true
	}
	return u.Unit == unit
}

func isValidRole(role string) bool {
	for _, r := range ValidRoles {
		if role == r {
			return true
		}
	}
	return false
}
