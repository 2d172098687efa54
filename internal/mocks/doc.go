// Package mocks provides hand-written in-memory implementations of the
// store interfaces for use in tests. They honor the same sentinel-error
// contracts as the PostgreSQL implementations but keep everything in maps
// guarded by a mutex, so service and engine tests run without a database.
package mocks
