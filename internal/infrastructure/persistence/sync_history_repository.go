package persistence

import (
	"context"

	"github.com/estatecms/backend/internal/domain/feed"
	"github.com/estatecms/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSyncHistoryRepository implements SyncHistoryRepository using GORM
type GormSyncHistoryRepository struct {
	db *gorm.DB
}

var _ feed.SyncHistoryRepository = (*GormSyncHistoryRepository)(nil)

// NewGormSyncHistoryRepository creates a new GormSyncHistoryRepository
func NewGormSyncHistoryRepository(db *gorm.DB) *GormSyncHistoryRepository {
	return &GormSyncHistoryRepository{db: db}
}

// Append adds an entry to the sync log
func (r *GormSyncHistoryRepository) Append(ctx context.Context, entry *feed.SyncHistoryEntry) error {
	model := models.SyncHistoryModelFromDomain(entry)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindBySources returns the most recent entry per source file. Sources that
// never ran are absent from the result map.
func (r *GormSyncHistoryRepository) FindBySources(ctx context.Context, interfaceID uuid.UUID, sources []string) (map[string]*feed.SyncHistoryEntry, error) {
	if len(sources) == 0 {
		return map[string]*feed.SyncHistoryEntry{}, nil
	}

	var historyModels []models.SyncHistoryModel
	if err := r.db.WithContext(ctx).
		Where("interface_id = ? AND source IN ?", interfaceID, sources).
		Order("tstamp ASC").
		Find(&historyModels).Error; err != nil {
		return nil, err
	}

	// Ascending order means later entries overwrite earlier ones, leaving the
	// newest entry per source.
	entries := make(map[string]*feed.SyncHistoryEntry, len(sources))
	for _, model := range historyModels {
		entries[model.Source] = model.ToDomain()
	}
	return entries, nil
}

// FindByInterface returns the newest entries of an interface, most recent first
func (r *GormSyncHistoryRepository) FindByInterface(ctx context.Context, interfaceID uuid.UUID, limit int) ([]*feed.SyncHistoryEntry, error) {
	var historyModels []models.SyncHistoryModel
	query := r.db.WithContext(ctx).
		Where("interface_id = ?", interfaceID).
		Order("tstamp DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&historyModels).Error; err != nil {
		return nil, err
	}

	entries := make([]*feed.SyncHistoryEntry, len(historyModels))
	for i, model := range historyModels {
		entries[i] = model.ToDomain()
	}
	return entries, nil
}
