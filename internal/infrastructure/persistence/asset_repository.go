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

// GormAssetRepository implements AssetRepository using GORM
type GormAssetRepository struct {
	db *gorm.DB
}

var _ catalog.AssetRepository = (*GormAssetRepository)(nil)

// NewGormAssetRepository creates a new GormAssetRepository
func NewGormAssetRepository(db *gorm.DB) *GormAssetRepository {
	return &GormAssetRepository{db: db}
}

// FindByPath finds an asset by its logical path
func (r *GormAssetRepository) FindByPath(ctx context.Context, path string) (*catalog.Asset, error) {
	var model models.AssetModel
	if err := r.db.WithContext(ctx).
		Where("path = ?", path).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates an asset
func (r *GormAssetRepository) Save(ctx context.Context, asset *catalog.Asset) error {
	model := models.AssetModelFromDomain(asset)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes an asset
func (r *GormAssetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AssetModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByPathPrefix removes all assets whose path starts with the prefix.
// Used when a listing's media folder is dropped.
func (r *GormAssetRepository) DeleteByPathPrefix(ctx context.Context, prefix string) error {
	return r.db.WithContext(ctx).
		Delete(&models.AssetModel{}, "path LIKE ?", prefix+"%").Error
}
