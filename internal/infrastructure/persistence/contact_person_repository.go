package persistence

import (
	"context"
	"errors"

	"github.com/estatecms/backend/internal/domain/catalog"
	"github.com/estatecms/backend/internal/domain/shared"
	"github.com/estatecms/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormContactPersonRepository implements ContactPersonRepository using GORM.
// Field predicates address keys of the JSON field map with the ->> operator.
type GormContactPersonRepository struct {
	db *gorm.DB
}

var _ catalog.ContactPersonRepository = (*GormContactPersonRepository)(nil)

// NewGormContactPersonRepository creates a new GormContactPersonRepository
func NewGormContactPersonRepository(db *gorm.DB) *GormContactPersonRepository {
	return &GormContactPersonRepository{db: db}
}

// FindByID finds a contact person by its ID
func (r *GormContactPersonRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ContactPerson, error) {
	var model models.ContactPersonModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindOneByFields finds the contact person of a provider whose field map
// matches all given key/value pairs.
func (r *GormContactPersonRepository) FindOneByFields(ctx context.Context, providerID uuid.UUID, fields map[string]string) (*catalog.ContactPerson, error) {
	var model models.ContactPersonModel
	query := r.db.WithContext(ctx).Where("provider_id = ?", providerID)
	for key, value := range fields {
		query = query.Where("fields ->> ? = ?", key, value)
	}
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// CountByFields counts contact persons of a provider matching all given
// key/value pairs.
func (r *GormContactPersonRepository) CountByFields(ctx context.Context, providerID uuid.UUID, fields map[string]string) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ContactPersonModel{}).
		Where("provider_id = ?", providerID)
	for key, value := range fields {
		query = query.Where("fields ->> ? = ?", key, value)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a contact person
func (r *GormContactPersonRepository) Save(ctx context.Context, person *catalog.ContactPerson) error {
	model := models.ContactPersonModelFromDomain(person)
	return r.db.WithContext(ctx).Save(model).Error
}
