// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, persistence, and
// either transactional or compensating rollback.
package commands

import (
	"context"

	"github.com/solody/commerce-order-api/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository. Before Begin
	// is called the repository writes directly, which the assembler relies on
	// for its explicit compensating rollback.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW manages persistence for order operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}
)
