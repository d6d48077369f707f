package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/estatecms/backend/internal/domain/feed"
	"github.com/estatecms/backend/internal/domain/shared"
	"github.com/estatecms/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInterfaceRepository implements InterfaceRepository using GORM. Mapping
// selectors are parsed and validated while loading so a run never sees a
// malformed rule.
type GormInterfaceRepository struct {
	db *gorm.DB
}

var _ feed.InterfaceRepository = (*GormInterfaceRepository)(nil)

// NewGormInterfaceRepository creates a new GormInterfaceRepository
func NewGormInterfaceRepository(db *gorm.DB) *GormInterfaceRepository {
	return &GormInterfaceRepository{db: db}
}

// FindByID finds an interface by its ID
func (r *GormInterfaceRepository) FindByID(ctx context.Context, id uuid.UUID) (*feed.Interface, error) {
	var model models.InterfaceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// MappingsByInterface loads the mapping rules of an interface in configured
// order, parses their selectors and validates them, and returns them in
// save-image-first application order.
func (r *GormInterfaceRepository) MappingsByInterface(ctx context.Context, id uuid.UUID) ([]feed.MappingRule, error) {
	var mappingModels []models.InterfaceMappingModel
	if err := r.db.WithContext(ctx).
		Where("interface_id = ?", id).
		Order("sorting ASC").
		Find(&mappingModels).Error; err != nil {
		return nil, err
	}

	rules := make([]feed.MappingRule, 0, len(mappingModels))
	for _, model := range mappingModels {
		rule, err := model.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("mapping %s: %w", model.ID, err)
		}
		if err := rule.Validate(); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return feed.SortRules(rules), nil
}

// StampLastSync records the completion time of a successful run
func (r *GormInterfaceRepository) StampLastSync(ctx context.Context, id uuid.UUID, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.InterfaceModel{}).
		Where("id = ?", id).
		Update("last_sync", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
