package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProviderRepository provides access to persisted providers
type ProviderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Provider, error)
	FindByAnbieternr(ctx context.Context, anbieternr string) (*Provider, error)
}

// ContactPersonRepository provides access to persisted contact persons.
// Field predicates address attributes of the dynamic field map, scoped to
// one provider.
type ContactPersonRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ContactPerson, error)
	FindOneByFields(ctx context.Context, providerID uuid.UUID, fields map[string]string) (*ContactPerson, error)
	CountByFields(ctx context.Context, providerID uuid.UUID, fields map[string]string) (int64, error)
	Save(ctx context.Context, person *ContactPerson) error
}

// RealEstateRepository provides access to persisted listings keyed by a
// configurable unique field.
type RealEstateRepository interface {
	FindOneByField(ctx context.Context, field, value string) (*RealEstate, error)
	CountByField(ctx context.Context, field, value string) (int64, error)
	Save(ctx context.Context, estate *RealEstate) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AssetRepository provides access to stored media assets keyed by logical path
type AssetRepository interface {
	FindByPath(ctx context.Context, path string) (*Asset, error)
	Save(ctx context.Context, asset *Asset) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByPathPrefix(ctx context.Context, prefix string) error
}
