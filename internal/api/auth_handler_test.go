package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repaso-app/repaso-api/internal/config"
	"github.com/repaso-app/repaso-api/internal/domain"
	"github.com/repaso-app/repaso-api/internal/mocks"
	"github.com/repaso-app/repaso-api/internal/service/auth"
	"github.com/repaso-app/repaso-api/internal/store"
	storemocks "github.com/repaso-app/repaso-api/internal/store/mocks"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 1440,
	}
}

func TestRegister(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		payload      map[string]interface{}
		createUser   func(ctx context.Context, user *domain.User) error
		expectBegin  bool
		expectCommit bool
		wantStatus   int
	}{
		{
			name: "valid registration",
			payload: map[string]interface{}{
				"email":    "parent@example.com",
				"password": "correct-horse-battery",
				"name":     "Sofía",
			},
			expectBegin:  true,
			expectCommit: true,
			wantStatus:   http.StatusCreated,
		},
		{
			name: "duplicate email",
			payload: map[string]interface{}{
				"email":    "taken@example.com",
				"password": "correct-horse-battery",
				"name":     "Mateo",
			},
			createUser: func(ctx context.Context, user *domain.User) error {
				return store.ErrEmailExists
			},
			expectBegin: true,
			wantStatus:  http.StatusConflict,
		},
		{
			name: "password too short",
			payload: map[string]interface{}{
				"email":    "parent@example.com",
				"password": "short",
				"name":     "Sofía",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "missing name",
			payload: map[string]interface{}{
				"email":    "parent@example.com",
				"password": "correct-horse-battery",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "invalid email",
			payload: map[string]interface{}{
				"email":    "not-an-email",
				"password": "correct-horse-battery",
				"name":     "Sofía",
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db, dbMock, err := sqlmock.New()
			require.NoError(t, err)
			defer func() { _ = db.Close() }()

			if tt.expectBegin {
				dbMock.ExpectBegin()
				if tt.expectCommit {
					dbMock.ExpectCommit()
				} else {
					dbMock.ExpectRollback()
				}
			}

			var createdProfile *domain.Profile
			userStore := &storemocks.UserStore{CreateFunc: tt.createUser}
			profileStore := &storemocks.ProfileStore{
				CreateFunc: func(ctx context.Context, profile *domain.Profile) error {
					createdProfile = profile
					return nil
				},
			}
			jwtService := &mocks.MockJWTService{
				Token:        "access-token",
				RefreshToken: "refresh-token",
			}

			handler := NewAuthHandler(
				db,
				userStore,
				profileStore,
				jwtService,
				&mocks.MockPasswordVerifier{ShouldSucceed: true},
				testAuthConfig(),
				testLogger(),
			)

			payloadBytes, err := json.Marshal(tt.payload)
			require.NoError(t, err)

			req := httptest.NewRequest("POST", "/auth/register", bytes.NewBuffer(payloadBytes))
			req.Header.Set("Content-Type", "application/json")
			recorder := httptest.NewRecorder()

			handler.Register(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.NoError(t, dbMock.ExpectationsWereMet())

			if tt.wantStatus == http.StatusCreated {
				var resp AuthResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
				assert.NotEqual(t, uuid.Nil, resp.UserID)
				assert.Equal(t, "access-token", resp.AccessToken)
				assert.Equal(t, "refresh-token", resp.RefreshToken)
				assert.NotEmpty(t, resp.ExpiresAt)

				// The profile is created alongside the user, starting at level 1.
				require.NotNil(t, createdProfile)
				assert.Equal(t, resp.UserID, createdProfile.ID)
				assert.Equal(t, "Sofía", createdProfile.Name)
				assert.Equal(t, domain.MinLevel, createdProfile.CurrentLevel)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	hashedPassword := "$2a$10$stored-bcrypt-hash"

	tests := []struct {
		name          string
		payload       map[string]interface{}
		getByEmail    func(ctx context.Context, email string) (*domain.User, error)
		passwordMatch bool
		wantStatus    int
		wantMessage   string
	}{
		{
			name: "valid credentials",
			payload: map[string]interface{}{
				"email":    "parent@example.com",
				"password": "correct-horse-battery",
			},
			getByEmail: func(ctx context.Context, email string) (*domain.User, error) {
				return &domain.User{ID: userID, Email: email, HashedPassword: hashedPassword}, nil
			},
			passwordMatch: true,
			wantStatus:    http.StatusOK,
		},
		{
			name: "unknown email",
			payload: map[string]interface{}{
				"email":    "nobody@example.com",
				"password": "correct-horse-battery",
			},
			getByEmail: func(ctx context.Context, email string) (*domain.User, error) {
				return nil, store.ErrUserNotFound
			},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid email or password",
		},
		{
			name: "wrong password",
			payload: map[string]interface{}{
				"email":    "parent@example.com",
				"password": "wrong-password",
			},
			getByEmail: func(ctx context.Context, email string) (*domain.User, error) {
				return &domain.User{ID: userID, Email: email, HashedPassword: hashedPassword}, nil
			},
			passwordMatch: false,
			wantStatus:    http.StatusUnauthorized,
			wantMessage:   "Invalid email or password",
		},
		{
			name: "missing password",
			payload: map[string]interface{}{
				"email": "parent@example.com",
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			userStore := &storemocks.UserStore{GetByEmailFunc: tt.getByEmail}
			jwtService := &mocks.MockJWTService{
				Token:        "access-token",
				RefreshToken: "refresh-token",
			}

			handler := NewAuthHandler(
				nil,
				userStore,
				&storemocks.ProfileStore{},
				jwtService,
				&mocks.MockPasswordVerifier{ShouldSucceed: tt.passwordMatch},
				testAuthConfig(),
				testLogger(),
			)

			payloadBytes, err := json.Marshal(tt.payload)
			require.NoError(t, err)

			req := httptest.NewRequest("POST", "/auth/login", bytes.NewBuffer(payloadBytes))
			req.Header.Set("Content-Type", "application/json")
			recorder := httptest.NewRecorder()

			handler.Login(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusOK {
				var resp AuthResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
				assert.Equal(t, userID, resp.UserID)
				assert.Equal(t, "access-token", resp.AccessToken)
				assert.Equal(t, "refresh-token", resp.RefreshToken)
			}

			if tt.wantMessage != "" {
				var errResp map[string]interface{}
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&errResp))
				assert.Equal(t, tt.wantMessage, errResp["error"])
			}
		})
	}
}

// TestLoginIndistinguishableFailures verifies that an unknown email and a
// wrong password produce byte-identical error responses, so the endpoint
// cannot be used to probe which emails are registered.
func TestLoginIndistinguishableFailures(t *testing.T) {
	t.Parallel()

	login := func(getByEmail func(ctx context.Context, email string) (*domain.User, error), match bool) *httptest.ResponseRecorder {
		handler := NewAuthHandler(
			nil,
			&storemocks.UserStore{GetByEmailFunc: getByEmail},
			&storemocks.ProfileStore{},
			&mocks.MockJWTService{Token: "t", RefreshToken: "r"},
			&mocks.MockPasswordVerifier{ShouldSucceed: match},
			testAuthConfig(),
			testLogger(),
		)

		body := bytes.NewBufferString(`{"email":"probe@example.com","password":"some-password"}`)
		req := httptest.NewRequest("POST", "/auth/login", body)
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()
		handler.Login(recorder, req)
		return recorder
	}

	unknownEmail := login(func(ctx context.Context, email string) (*domain.User, error) {
		return nil, store.ErrUserNotFound
	}, true)
	wrongPassword := login(func(ctx context.Context, email string) (*domain.User, error) {
		return &domain.User{ID: uuid.New(), Email: email, HashedPassword: "$2a$10$hash"}, nil
	}, false)

	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, unknownEmail.Body.String(), wrongPassword.Body.String())
}

func TestRefreshToken(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	testRefreshToken := "test-refresh-token"
	newAccessToken := "new-access-token"
	newRefreshToken := "new-refresh-token"

	tests := []struct {
		name          string
		payload       map[string]interface{}
		setupMock     func() *mocks.MockJWTService
		wantStatus    int
		wantNewTokens bool
	}{
		{
			name: "valid refresh token",
			payload: map[string]interface{}{
				"refresh_token": testRefreshToken,
			},
			setupMock: func() *mocks.MockJWTService {
				return &mocks.MockJWTService{
					ValidateRefreshTokenFn: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
						if tokenString == testRefreshToken {
							return &auth.Claims{
								UserID:    userID,
								TokenType: "refresh",
							}, nil
						}
						return nil, auth.ErrInvalidRefreshToken
					},
					Token:        newAccessToken,
					RefreshToken: newRefreshToken,
				}
			},
			wantStatus:    http.StatusOK,
			wantNewTokens: true,
		},
		{
			name:    "missing refresh token",
			payload: map[string]interface{}{
				// Empty payload, missing refresh_token
			},
			setupMock: func() *mocks.MockJWTService {
				return &mocks.MockJWTService{}
			},
			wantStatus:    http.StatusBadRequest,
			wantNewTokens: false,
		},
		{
			name: "invalid refresh token",
			payload: map[string]interface{}{
				"refresh_token": "invalid-token",
			},
			setupMock: func() *mocks.MockJWTService {
				return &mocks.MockJWTService{
					ValidateRefreshTokenFn: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
						return nil, auth.ErrInvalidRefreshToken
					},
				}
			},
			wantStatus:    http.StatusUnauthorized,
			wantNewTokens: false,
		},
		{
			name: "expired refresh token",
			payload: map[string]interface{}{
				"refresh_token": "expired-token",
			},
			setupMock: func() *mocks.MockJWTService {
				return &mocks.MockJWTService{
					ValidateRefreshTokenFn: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
						return nil, auth.ErrExpiredRefreshToken
					},
				}
			},
			wantStatus:    http.StatusUnauthorized,
			wantNewTokens: false,
		},
		{
			name: "wrong token type",
			payload: map[string]interface{}{
				"refresh_token": "access-token-not-refresh",
			},
			setupMock: func() *mocks.MockJWTService {
				return &mocks.MockJWTService{
					ValidateRefreshTokenFn: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
						return nil, auth.ErrWrongTokenType
					},
				}
			},
			wantStatus:    http.StatusUnauthorized,
			wantNewTokens: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := NewAuthHandler(
				nil,
				&storemocks.UserStore{},
				&storemocks.ProfileStore{},
				tt.setupMock(),
				&mocks.MockPasswordVerifier{ShouldSucceed: true},
				testAuthConfig(),
				testLogger(),
			)

			payloadBytes, err := json.Marshal(tt.payload)
			require.NoError(t, err)

			req := httptest.NewRequest("POST", "/auth/refresh", bytes.NewBuffer(payloadBytes))
			req.Header.Set("Content-Type", "application/json")
			recorder := httptest.NewRecorder()

			handler.RefreshToken(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantNewTokens {
				var resp RefreshTokenResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
				assert.Equal(t, newAccessToken, resp.AccessToken)
				assert.Equal(t, newRefreshToken, resp.RefreshToken)
				assert.NotEmpty(t, resp.ExpiresAt, "ExpiresAt should be populated")
			}
		})
	}
}
