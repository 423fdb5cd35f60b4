package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Validation errors for User fields.
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrPasswordTooShort    = errors.New("password must be at least 12 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// Password length bounds. The upper bound is bcrypt's input limit; the
// lower bound favors length over character-class rules.
const (
	minPasswordLength = 12
	maxPasswordLength = 72
)

// User is a registered account: the parent or teacher who owns the
// learner profile and signs in on the child's behalf.
type User struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`

	// Password holds the plaintext only between registration and hashing
	// in the user store; it never crosses the JSON boundary.
	Password       string `json:"-"`
	HashedPassword string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser builds a User with a fresh ID and UTC timestamps, carrying the
// plaintext password for the store to hash. The user is validated before
// it is returned.
func NewUser(email, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Email:     email,
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// Validate checks field constraints. A user loaded from storage carries
// only the hash; a user mid-registration carries only the plaintext.
// One of the two must be present.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}
	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !validEmailAddress(u.Email) {
		return ErrInvalidEmail
	}

	if u.Password == "" {
		if u.HashedPassword == "" {
			return ErrEmptyPassword
		}
		return nil
	}
	if len(u.Password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if len(u.Password) > maxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

// validEmailAddress applies a deliberately loose shape check: a local
// part, an @, and a domain with an interior dot. The request layer runs
// the stricter format validation; this is the domain's backstop.
func validEmailAddress(email string) bool {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || domain == "" {
		return false
	}
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
