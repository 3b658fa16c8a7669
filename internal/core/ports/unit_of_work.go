package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary around order
// persistence. Repositories obtained from a unit of work run inside its
// transaction once Begin has been called; without Begin they execute
// immediately, which is what the assembler relies on for its explicit
// compensating rollback.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current
	// transaction, or to the plain connection when none is active.
	OrderRepository() OrderRepository
}
