package ports

import (
	"context"

	"github.com/solody/commerce-order-api/internal/core/domain/model/kernel"
	"github.com/solody/commerce-order-api/internal/core/domain/model/profile"
)

// ProfileRepository defines the read contract for customer profiles.
type ProfileRepository interface {
	// Get retrieves a profile by its unique identifier.
	// Returns an ObjectNotFoundError when no such profile exists.
	Get(ctx context.Context, id kernel.UUID) (*profile.Profile, error)

	// GetDefaultActiveForOwner retrieves the owner's default active customer
	// profile. Returns an ObjectNotFoundError when the owner has none.
	GetDefaultActiveForOwner(ctx context.Context, ownerID kernel.UUID) (*profile.Profile, error)
}
