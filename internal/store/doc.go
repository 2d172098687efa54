// Package store defines the persistence interfaces the service layer
// depends on, together with shared sentinel errors and the transaction
// helper. Concrete implementations live in platform/postgres; tests use the
// in-memory versions from internal/mocks.
package store
