// Package config handles configuration loading and validation from
// environment variables and optional config files. It gives the rest of the
// application type-safe access to server, database, auth, and scheduling
// settings while keeping configuration details out of business logic.
package config
