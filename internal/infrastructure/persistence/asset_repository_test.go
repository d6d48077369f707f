package persistence

import (
	"context"
	"testing"

	"github.com/estatecms/backend/internal/domain/catalog"
	"github.com/estatecms/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetRepositoryRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormAssetRepository(db)
	ctx := context.Background()

	asset := catalog.NewAsset("files/AAA/OBJ-1/bild1.jpg", "bild1.jpg", "d41d8cd98f00b204e9800998ecf8427e")
	asset.Title = "Titelbild"
	asset.Alt = "Titelbild"
	require.NoError(t, repo.Save(ctx, asset))

	loaded, err := repo.FindByPath(ctx, "files/AAA/OBJ-1/bild1.jpg")
	require.NoError(t, err)
	assert.Equal(t, asset.ID, loaded.ID)
	assert.Equal(t, "Titelbild", loaded.Title)

	loaded.Hash = "900150983cd24fb0d6963f7d28e17f72"
	require.NoError(t, repo.Save(ctx, loaded))

	reloaded, err := repo.FindByPath(ctx, "files/AAA/OBJ-1/bild1.jpg")
	require.NoError(t, err)
	assert.Equal(t, "900150983cd24fb0d6963f7d28e17f72", reloaded.Hash)

	_, err = repo.FindByPath(ctx, "files/AAA/OBJ-1/missing.jpg")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestAssetRepositoryDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormAssetRepository(db)
	ctx := context.Background()

	asset := catalog.NewAsset("files/AAA/OBJ-1/bild1.jpg", "bild1.jpg", "d41d8cd98f00b204e9800998ecf8427e")
	require.NoError(t, repo.Save(ctx, asset))

	require.NoError(t, repo.Delete(ctx, asset.ID))
	assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), shared.ErrNotFound)
}

func TestAssetRepositoryDeleteByPathPrefix(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormAssetRepository(db)
	ctx := context.Background()

	inside1 := catalog.NewAsset("files/AAA/OBJ-1/bild1.jpg", "bild1.jpg", "d41d8cd98f00b204e9800998ecf8427e")
	inside2 := catalog.NewAsset("files/AAA/OBJ-1/bild2.jpg", "bild2.jpg", "900150983cd24fb0d6963f7d28e17f72")
	outside := catalog.NewAsset("files/AAA/OBJ-10/bild1.jpg", "bild1.jpg", "ab56b4d92b40713acc5af89985d4b786")
	for _, a := range []*catalog.Asset{inside1, inside2, outside} {
		require.NoError(t, repo.Save(ctx, a))
	}

	require.NoError(t, repo.DeleteByPathPrefix(ctx, "files/AAA/OBJ-1/"))

	_, err := repo.FindByPath(ctx, inside1.Path)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	_, err = repo.FindByPath(ctx, inside2.Path)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	kept, err := repo.FindByPath(ctx, outside.Path)
	require.NoError(t, err)
	assert.Equal(t, outside.ID, kept.ID)
}
