// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package. It handles query
// execution, error mapping, and data conversion between domain entities and
// database records. The goose migration files that create and seed the schema
// live in the migrations subdirectory.
package postgres
