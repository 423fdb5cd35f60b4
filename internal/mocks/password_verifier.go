package mocks

import (
	"errors"

	"github.com/repaso-app/repaso-api/internal/service/auth"
)

// MockPasswordVerifier implements auth.PasswordVerifier for testing.
// The login handler treats any Compare error as invalid credentials, so
// tests usually only need to flip ShouldSucceed.
type MockPasswordVerifier struct {
	// CompareFn overrides Compare entirely when set
	CompareFn func(hashedPassword, password string) error

	// ShouldSucceed controls the default Compare result
	ShouldSucceed bool
}

var _ auth.PasswordVerifier = (*MockPasswordVerifier)(nil)

// Compare implements the auth.PasswordVerifier interface
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if m.ShouldSucceed {
		return nil
	}
	return errors.New("password mismatch")
}
