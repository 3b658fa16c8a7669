// Package profile models customer billing profiles. Profiles are owned by an
// external host system; the core only reads them and attaches them to orders
// by id, so the model carries no mutation behavior beyond construction.
package profile

import (
	"github.com/solody/commerce-order-api/internal/core/domain/model/kernel"
	"github.com/solody/commerce-order-api/internal/pkg/errs"
	"github.com/solody/commerce-order-api/internal/pkg/guard"
)

// ErrProfileIsNotConstructed is returned when a Profile was not created via NewProfile.
var ErrProfileIsNotConstructed = errs.NewValueIsRequiredError(
	"Profile must be created via NewProfile")

// Address is the postal address carried by a billing profile.
type Address struct {
	CountryCode  string
	Locality     string
	AddressLine1 string
	PostalCode   string
}

// Profile is a read-only view of a customer's billing profile. At most one
// profile per owner carries the default flag; only active profiles are used
// for the default-profile fallback.
type Profile struct {
	id        kernel.UUID
	ownerID   kernel.UUID
	givenName string
	address   Address
	isDefault bool
	active    bool

	guard guard.ConstructorGuard
}

// NewProfile reconstructs a billing profile as read from the host's storage.
func NewProfile(
	id kernel.UUID,
	ownerID kernel.UUID,
	givenName string,
	address Address,
	isDefault bool,
	active bool,
) (*Profile, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := ownerID.Validate(); err != nil {
		return nil, err
	}

	return &Profile{
		id:        id,
		ownerID:   ownerID,
		givenName: givenName,
		address:   address,
		isDefault: isDefault,
		active:    active,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Profile was created through NewProfile.
func (p *Profile) Validate() error {
	if p == nil {
		return ErrProfileIsNotConstructed
	}
	return p.guard.Validate(ErrProfileIsNotConstructed)
}

// ID returns the profile identifier.
func (p *Profile) ID() kernel.UUID {
	return p.id
}

// OwnerID returns the identifier of the customer owning this profile.
func (p *Profile) OwnerID() kernel.UUID {
	return p.ownerID
}

// GivenName returns the recipient name on the profile.
func (p *Profile) GivenName() string {
	return p.givenName
}

// Address returns the postal address.
func (p *Profile) Address() Address {
	return p.address
}

// IsDefault reports whether this is the owner's flagged default profile.
func (p *Profile) IsDefault() bool {
	return p.isDefault
}

// IsActive reports whether the profile is enabled.
func (p *Profile) IsActive() bool {
	return p.active
}
