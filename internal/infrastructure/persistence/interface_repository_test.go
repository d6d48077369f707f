package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/estatecms/backend/internal/domain/feed"
	"github.com/estatecms/backend/internal/domain/shared"
	"github.com/estatecms/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedInterface(t *testing.T, db *gorm.DB) *models.InterfaceModel {
	t.Helper()
	model := &models.InterfaceModel{
		ID:                       uuid.New(),
		Name:                     "makler-sued",
		ProviderID:               uuid.New(),
		Anbieternr:               "AAA",
		UniqueField:              "objektnrExtern",
		UniqueProviderField:      "anbieternr",
		ThirdPartyPolicy:         "import",
		ContactPersonActions:     models.StringList{"create", "update"},
		ContactPersonUniqueField: "email",
		SkipFields:               models.StringList{"objekttitel"},
		ImportFolder:             "/import",
		FilesFolder:              "/files",
	}
	require.NoError(t, db.Create(model).Error)
	return model
}

func mappingModel(interfaceID uuid.UUID, group, field, attribute string, sorting int) *models.InterfaceMappingModel {
	return &models.InterfaceMappingModel{
		ID:           uuid.New(),
		InterfaceID:  interfaceID,
		OiFieldGroup: group,
		OiField:      field,
		Type:         "real_estate",
		Attribute:    attribute,
		Sorting:      sorting,
	}
}

func TestInterfaceRepositoryFindByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormInterfaceRepository(db)
	ctx := context.Background()

	seeded := seedInterface(t, db)

	iface, err := repo.FindByID(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "makler-sued", iface.Name)
	assert.Equal(t, "objektnrExtern", iface.UniqueField)
	assert.Equal(t, feed.ThirdPartyPolicy("import"), iface.ThirdPartyPolicy)
	assert.Equal(t, []string{"create", "update"}, iface.ContactPersonActions)
	assert.Equal(t, []string{"objekttitel"}, iface.SkipFields)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestInterfaceRepositoryMappings(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormInterfaceRepository(db)
	ctx := context.Background()

	seeded := seedInterface(t, db)

	plz := mappingModel(seeded.ID, "geo", "plz", "plz", 1)
	image := mappingModel(seeded.ID, "anhang", "daten/pfad", "titleImageSRC", 2)
	image.SaveImage = true
	objektnr := mappingModel(seeded.ID, "verwaltung_techn", "objektnr_extern", "objektnrExtern", 3)
	require.NoError(t, db.Create(plz).Error)
	require.NoError(t, db.Create(image).Error)
	require.NoError(t, db.Create(objektnr).Error)

	rules, err := repo.MappingsByInterface(ctx, seeded.ID)
	require.NoError(t, err)
	require.Len(t, rules, 3)

	// Media rules come first; the configured order holds within each part.
	assert.Equal(t, "titleImageSRC", rules[0].Attribute)
	assert.Equal(t, "plz", rules[1].Attribute)
	assert.Equal(t, "objektnrExtern", rules[2].Attribute)

	assert.Equal(t, feed.SelectElementText, rules[1].Field.Kind)
	assert.Equal(t, "daten/pfad", rules[0].Field.Path)
}

func TestInterfaceRepositoryMappingsRejectsMalformedSelector(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormInterfaceRepository(db)
	ctx := context.Background()

	seeded := seedInterface(t, db)
	broken := mappingModel(seeded.ID, "geo", "plz@", "plz", 1)
	require.NoError(t, db.Create(broken).Error)

	_, err := repo.MappingsByInterface(ctx, seeded.ID)
	assert.ErrorIs(t, err, shared.ErrInvalidSelector)
}

func TestInterfaceRepositoryMappingsRejectsUnknownAttribute(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormInterfaceRepository(db)
	ctx := context.Background()

	seeded := seedInterface(t, db)
	unknown := mappingModel(seeded.ID, "geo", "plz", "noSuchAttribute", 1)
	require.NoError(t, db.Create(unknown).Error)

	_, err := repo.MappingsByInterface(ctx, seeded.ID)
	assert.ErrorIs(t, err, shared.ErrUnknownAttribute)
}

func TestInterfaceRepositoryStampLastSync(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormInterfaceRepository(db)
	ctx := context.Background()

	seeded := seedInterface(t, db)
	at := time.Now().Truncate(time.Second)

	require.NoError(t, repo.StampLastSync(ctx, seeded.ID, at))

	iface, err := repo.FindByID(ctx, seeded.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, at, iface.LastSync, time.Second)

	assert.ErrorIs(t, repo.StampLastSync(ctx, uuid.New(), at), shared.ErrNotFound)
}
