// Package profilerepo provides read-only access to customer profiles. The
// core never writes profiles; they are owned by the host system and only
// attached to orders by id.
package profilerepo

import (
	"context"
	"errors"

	"github.com/solody/commerce-order-api/internal/core/domain/model/kernel"
	"github.com/solody/commerce-order-api/internal/core/domain/model/profile"
	"github.com/solody/commerce-order-api/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileDTO represents the database structure of a customer profile.
type ProfileDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID      uuid.UUID `gorm:"type:uuid;index"`
	GivenName    string
	CountryCode  string `gorm:"type:char(2)"`
	Locality     string
	AddressLine1 string
	PostalCode   string
	IsDefault    bool
	Active       bool
}

// TableName specifies the database table name for profiles.
func (ProfileDTO) TableName() string {
	return "profiles"
}

// GormProfileRepository implements ProfileRepository using GORM.
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a new GORM profile repository.
func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// Get retrieves a profile by ID.
func (r *GormProfileRepository) Get(ctx context.Context, id kernel.UUID) (*profile.Profile, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProfileDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("profile", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetDefaultActiveForOwner retrieves the owner's default active profile.
func (r *GormProfileRepository) GetDefaultActiveForOwner(
	ctx context.Context, ownerID kernel.UUID) (*profile.Profile, error) {
	if err := ownerID.Validate(); err != nil {
		return nil, err
	}

	var dto ProfileDTO
	err := r.db.WithContext(ctx).
		First(&dto, "owner_id = ? AND is_default AND active", ownerID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("default profile", ownerID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func toDomain(dto ProfileDTO) (*profile.Profile, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	return profile.NewProfile(id, ownerID, dto.GivenName, profile.Address{
		CountryCode:  dto.CountryCode,
		Locality:     dto.Locality,
		AddressLine1: dto.AddressLine1,
		PostalCode:   dto.PostalCode,
	}, dto.IsDefault, dto.Active)
}
