// Package postgres provides PostgreSQL implementations of the store
// interfaces, using the pgx driver through database/sql. Schema management
// is handled by the embedded goose migrations in this package.
package postgres
