package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("parent@example.com", "unaclavemuylarga")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("Expected a generated ID")
	}
	if user.Email != "parent@example.com" {
		t.Errorf("Expected email to be kept, got %s", user.Email)
	}
	if user.Password != "unaclavemuylarga" {
		t.Error("Expected plaintext password to be carried for hashing")
	}
	if user.HashedPassword != "" {
		t.Errorf("Expected no hash before the store hashes, got %s", user.HashedPassword)
	}
	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Error("Expected timestamps to be set")
	}
	if user.CreatedAt.Location() != user.CreatedAt.UTC().Location() {
		t.Error("Expected timestamps in UTC")
	}
}

func TestNewUserRejectsBadInput(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"empty email", "", "unaclavemuylarga", ErrEmptyEmail},
		{"malformed email", "invalidemail", "unaclavemuylarga", ErrInvalidEmail},
		{"empty password", "parent@example.com", "", ErrEmptyPassword},
		{"short password", "parent@example.com", "short", ErrPasswordTooShort},
		{"long password", "parent@example.com", strings.Repeat("x", 73), ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewUser(tt.email, tt.password); err != tt.wantErr {
				t.Errorf("Expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestUserValidate(t *testing.T) {
	stored := User{
		ID:             uuid.New(),
		Email:          "parent@example.com",
		HashedPassword: "$2a$10$fakefakefakefakefakefake",
	}

	// A user loaded from storage has a hash and no plaintext.
	if err := stored.Validate(); err != nil {
		t.Errorf("Expected stored user to validate, got %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(u *User)
		wantErr error
	}{
		{"nil ID", func(u *User) { u.ID = uuid.Nil }, ErrEmptyUserID},
		{"empty email", func(u *User) { u.Email = "" }, ErrEmptyEmail},
		{"malformed email", func(u *User) { u.Email = "invalidemail" }, ErrInvalidEmail},
		{
			"no password at all",
			func(u *User) { u.HashedPassword = "" },
			ErrEmptyPassword,
		},
		{
			"plaintext past bcrypt limit",
			func(u *User) { u.Password = strings.Repeat("x", 73) },
			ErrPasswordTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := stored
			tt.mutate(&u)
			if err := u.Validate(); err != tt.wantErr {
				t.Errorf("Expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidEmailAddress(t *testing.T) {
	valid := []string{
		"user@example.com",
		"user.name@example.com",
		"user+tag@example.com",
		"user@sub.example.com",
	}
	invalid := []string{
		"",
		"userexample.com",
		"user@",
		"@example.com",
		"user@.com",
		"user@example",
		"user@example.",
	}

	for _, email := range valid {
		if !validEmailAddress(email) {
			t.Errorf("Expected %q to be accepted", email)
		}
	}
	for _, email := range invalid {
		if validEmailAddress(email) {
			t.Errorf("Expected %q to be rejected", email)
		}
	}
}
