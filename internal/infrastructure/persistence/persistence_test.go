package persistence

import (
	"testing"

	"github.com/estatecms/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database with the full schema. The
// JSON ->> predicates used by the repositories work the same way there as on
// postgres jsonb columns.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.ProviderModel{},
		&models.ContactPersonModel{},
		&models.RealEstateModel{},
		&models.AssetModel{},
		&models.InterfaceModel{},
		&models.InterfaceMappingModel{},
		&models.SyncHistoryModel{},
	))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}
