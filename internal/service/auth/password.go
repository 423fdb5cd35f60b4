package auth

import "golang.org/x/crypto/bcrypt"

// PasswordVerifier checks a login attempt against a stored hash. Hashing
// itself happens in the user store at registration time; verification is all
// the login path needs.
type PasswordVerifier interface {
	// Compare returns nil when password matches hashedPassword and a
	// non-nil error otherwise (bcrypt.ErrMismatchedHashAndPassword on a
	// plain mismatch).
	Compare(hashedPassword, password string) error
}

// BcryptVerifier is the production PasswordVerifier.
type BcryptVerifier struct{}

var _ PasswordVerifier = (*BcryptVerifier)(nil)

func NewBcryptVerifier() *BcryptVerifier {
	return &BcryptVerifier{}
}

func (v *BcryptVerifier) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
