// Package mocks holds hand-written test doubles for the service-layer
// interfaces, shared by the api and cmd/server test suites instead of each
// one defining its own inline copies. Store-level mocks live separately in
// internal/store/mocks.
//
// The doubles follow one pattern: canned result fields for the common case,
// plus an optional per-method function hook for tests that need behavior:
//
//	svc := &mocks.MockJWTService{Token: "mocked-token"}
//
//	svc := &mocks.MockJWTService{
//	    ValidateTokenFn: func(ctx context.Context, token string) (*auth.Claims, error) {
//	        return nil, auth.ErrExpiredToken
//	    },
//	}
//
// New mocks go in a file named after the interface they double.
package mocks
