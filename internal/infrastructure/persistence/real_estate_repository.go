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

// GormRealEstateRepository implements RealEstateRepository using GORM. The
// unique field is an operator choice, so lookups address the JSON field map
// instead of a fixed column.
type GormRealEstateRepository struct {
	db *gorm.DB
}

var _ catalog.RealEstateRepository = (*GormRealEstateRepository)(nil)

// NewGormRealEstateRepository creates a new GormRealEstateRepository
func NewGormRealEstateRepository(db *gorm.DB) *GormRealEstateRepository {
	return &GormRealEstateRepository{db: db}
}

// FindOneByField finds a listing whose field map holds the given value under
// the given attribute name.
func (r *GormRealEstateRepository) FindOneByField(ctx context.Context, field, value string) (*catalog.RealEstate, error) {
	var model models.RealEstateModel
	if err := r.db.WithContext(ctx).
		Where("fields ->> ? = ?", field, value).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// CountByField counts listings matching the given field value
func (r *GormRealEstateRepository) CountByField(ctx context.Context, field, value string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.RealEstateModel{}).
		Where("fields ->> ? = ?", field, value).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a listing
func (r *GormRealEstateRepository) Save(ctx context.Context, estate *catalog.RealEstate) error {
	model := models.RealEstateModelFromDomain(estate)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a listing
func (r *GormRealEstateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.RealEstateModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
