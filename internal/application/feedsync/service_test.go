package feedsync

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/estatecms/backend/internal/domain/catalog"
	"github.com/estatecms/backend/internal/domain/feed"
	"github.com/estatecms/backend/internal/domain/shared"
	"github.com/estatecms/backend/internal/infrastructure/config"
	"github.com/estatecms/backend/internal/infrastructure/feedfs"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type importerFixture struct {
	interfaces *mockInterfaceRepo
	history    *mockHistoryRepo
	providers  *mockProviderRepo
	contacts   *mockContactPersonRepo
	estates    *mockRealEstateRepo
	assets     *mockAssetRepo

	iface    *feed.Interface
	provider *catalog.Provider
	importer *Importer
}

func newImporterFixture(t *testing.T, opts ...ImporterOption) *importerFixture {
	t.Helper()

	f := &importerFixture{
		interfaces: new(mockInterfaceRepo),
		history:    new(mockHistoryRepo),
		providers:  new(mockProviderRepo),
		contacts:   new(mockContactPersonRepo),
		estates:    new(mockRealEstateRepo),
		assets:     new(mockAssetRepo),
	}

	f.iface = testInterface()
	f.iface.ID = uuid.New()
	f.iface.ProviderID = uuid.New()
	f.iface.ImportFolder = t.TempDir()
	f.iface.FilesFolder = t.TempDir()

	f.provider = &catalog.Provider{ID: f.iface.ProviderID, Anbieternr: "AAA", Published: true}

	f.importer = NewImporter(
		f.interfaces, f.history, f.providers, f.contacts, f.estates, f.assets,
		config.ImportConfig{MaxAssetSize: 3_000_000},
		zap.NewNop(),
		opts...,
	)
	return f
}

func (f *importerFixture) writeFeed(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(f.iface.ImportFolder, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const serviceFeedXML = `<openimmo><anbieter><anbieternr>AAA</anbieternr><immobilie>
	<verwaltung_techn><objektnr_extern>OBJ-1</objektnr_extern></verwaltung_techn>
</immobilie></anbieter></openimmo>`

func TestImporterInitialize(t *testing.T) {
	ctx := context.Background()
	rules := []feed.MappingRule{textRule("verwaltung_techn", "objektnr_extern", "objektnrExtern")}

	t.Run("success", func(t *testing.T) {
		f := newImporterFixture(t)
		f.interfaces.On("FindByID", mock.Anything, f.iface.ID).Return(f.iface, nil)
		f.interfaces.On("MappingsByInterface", mock.Anything, f.iface.ID).Return(rules, nil)

		run, err := f.importer.Initialize(ctx, f.iface.ID)
		require.NoError(t, err)
		assert.Equal(t, f.iface, run.Interface)
		assert.Len(t, run.Rules, 1)
		assert.True(t, run.UpdateSyncTime)
	})

	t.Run("interface not found", func(t *testing.T) {
		f := newImporterFixture(t)
		f.interfaces.On("FindByID", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

		_, err := f.importer.Initialize(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("incomplete configuration", func(t *testing.T) {
		f := newImporterFixture(t)
		f.iface.UniqueField = ""
		f.interfaces.On("FindByID", mock.Anything, f.iface.ID).Return(f.iface, nil)

		_, err := f.importer.Initialize(ctx, f.iface.ID)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("no mapping rules", func(t *testing.T) {
		f := newImporterFixture(t)
		f.interfaces.On("FindByID", mock.Anything, f.iface.ID).Return(f.iface, nil)
		f.interfaces.On("MappingsByInterface", mock.Anything, f.iface.ID).Return([]feed.MappingRule{}, nil)

		_, err := f.importer.Initialize(ctx, f.iface.ID)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestImporterSyncSuccess(t *testing.T) {
	f := newImporterFixture(t)
	source := f.writeFeed(t, "feed.xml", serviceFeedXML)

	// A leftover from a previous run; the scratch directory is purged at end.
	tmpDir := filepath.Join(f.iface.ImportFolder, feedfs.TmpDirName)
	require.NoError(t, os.MkdirAll(tmpDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "stale.jpg"), []byte("x"), 0o644))

	f.providers.On("FindByID", mock.Anything, f.iface.ProviderID).Return(f.provider, nil)
	f.estates.On("FindOneByField", mock.Anything, "objektnrExtern", "OBJ-1").Return(nil, shared.ErrNotFound)
	f.estates.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.history.On("Append", mock.Anything, mock.Anything).Return(nil)
	f.interfaces.On("StampLastSync", mock.Anything, f.iface.ID, mock.Anything).Return(nil)

	run := &Run{
		Interface:      f.iface,
		Rules:          []feed.MappingRule{textRule("verwaltung_techn", "objektnr_extern", "objektnrExtern")},
		UpdateSyncTime: true,
	}
	require.NoError(t, f.importer.Sync(context.Background(), run, source, "admin"))

	entry := f.history.Calls[0].Arguments.Get(1).(*feed.SyncHistoryEntry)
	assert.Equal(t, feed.SyncStatusSuccess, entry.Status)
	assert.Equal(t, source, entry.Source)
	assert.Equal(t, "admin", entry.Username)
	assert.Contains(t, entry.Text, "1 listings created")

	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	f.interfaces.AssertCalled(t, "StampLastSync", mock.Anything, f.iface.ID, mock.Anything)
}

func TestImporterSyncSkipsTimestampWhenDisabled(t *testing.T) {
	f := newImporterFixture(t)
	source := f.writeFeed(t, "feed.xml", serviceFeedXML)

	f.providers.On("FindByID", mock.Anything, f.iface.ProviderID).Return(f.provider, nil)
	f.estates.On("FindOneByField", mock.Anything, "objektnrExtern", "OBJ-1").Return(nil, shared.ErrNotFound)
	f.estates.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.history.On("Append", mock.Anything, mock.Anything).Return(nil)

	run := &Run{
		Interface: f.iface,
		Rules:     []feed.MappingRule{textRule("verwaltung_techn", "objektnr_extern", "objektnrExtern")},
	}
	require.NoError(t, f.importer.Sync(context.Background(), run, source, "admin"))

	entry := f.history.Calls[0].Arguments.Get(1).(*feed.SyncHistoryEntry)
	assert.Equal(t, feed.SyncStatusSuccess, entry.Status)

	f.interfaces.AssertNotCalled(t, "StampLastSync", mock.Anything, mock.Anything, mock.Anything)
}

func TestImporterSyncFailureWritesHistory(t *testing.T) {
	f := newImporterFixture(t)
	source := f.writeFeed(t, "broken.xml", "<openimmo><anbieter>")

	f.history.On("Append", mock.Anything, mock.Anything).Return(nil)

	run := &Run{
		Interface: f.iface,
		Rules:     []feed.MappingRule{textRule("verwaltung_techn", "objektnr_extern", "objektnrExtern")},
	}
	err := f.importer.Sync(context.Background(), run, source, "admin")
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInvalidFeed)

	entry := f.history.Calls[0].Arguments.Get(1).(*feed.SyncHistoryEntry)
	assert.Equal(t, feed.SyncStatusFailed, entry.Status)
	assert.NotEmpty(t, entry.Text)

	f.interfaces.AssertNotCalled(t, "StampLastSync", mock.Anything, mock.Anything, mock.Anything)
}

type failingBeforeSync struct{}

func (failingBeforeSync) BeforeSync(_ context.Context, _ *Run) error {
	return errors.New("maintenance window")
}

func TestImporterSyncAbortedByCallback(t *testing.T) {
	f := newImporterFixture(t, WithHooks(&Hooks{BeforeSync: []BeforeSyncHook{failingBeforeSync{}}}))
	source := f.writeFeed(t, "feed.xml", serviceFeedXML)

	f.history.On("Append", mock.Anything, mock.Anything).Return(nil)

	run := &Run{
		Interface: f.iface,
		Rules:     []feed.MappingRule{textRule("verwaltung_techn", "objektnr_extern", "objektnrExtern")},
	}
	err := f.importer.Sync(context.Background(), run, source, "admin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sync aborted by callback")

	entry := f.history.Calls[0].Arguments.Get(1).(*feed.SyncHistoryEntry)
	assert.Equal(t, feed.SyncStatusFailed, entry.Status)
}

func TestImporterSyncRequiresInitializedRun(t *testing.T) {
	f := newImporterFixture(t)

	err := f.importer.Sync(context.Background(), nil, "feed.xml", "admin")
	assert.ErrorIs(t, err, shared.ErrNotInitialized)

	_, err = f.importer.SyncFiles(context.Background(), nil)
	assert.ErrorIs(t, err, shared.ErrNotInitialized)
}
