package kernel

import (
	"fmt"

	"github.com/solody/commerce-order-api/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed indicates that a UUID was not initialized through
// one of the constructor functions. It is returned when validating a
// zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError(
	"UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID is the identifier value object used for orders, line items, stores,
// customers, and profiles. It wraps github.com/google/uuid to keep the
// external type out of domain signatures and to make the zero value
// detectable: a zero UUID fails Validate and must never identify an entity.
//
// UUID is immutable and safe for concurrent use.
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random (version 4) UUID.
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses a UUID from its string representation. It is used
// when reconstructing entities from persistence or parsing identifiers from
// API payloads.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes creates a UUID from a 16-byte slice, as stored in the
// database. The resulting UUID must not be the nil UUID.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// String returns the canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" form.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID for persistence adapters.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether two UUIDs represent the same value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the zero (nil) UUID.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
