package feedsync

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/estatecms/backend/internal/domain/catalog"
	"github.com/estatecms/backend/internal/domain/shared"
	"github.com/estatecms/backend/internal/infrastructure/feedfs"
	"go.uber.org/zap"
)

// AssetManager stages media files from the extracted transfer into the
// interface's files folders and deduplicates them by content hash.
type AssetManager struct {
	staging *feedfs.Staging
	assets  catalog.AssetRepository
	maxSize int64
	logger  *zap.Logger
}

// NewAssetManager creates an asset manager. maxSize bounds the accepted
// file size in bytes.
func NewAssetManager(staging *feedfs.Staging, assets catalog.AssetRepository, maxSize int64, logger *zap.Logger) *AssetManager {
	return &AssetManager{staging: staging, assets: assets, maxSize: maxSize, logger: logger}
}

// SaveAssetParams describes one media file of a listing or contact person.
type SaveAssetParams struct {
	// StagingDir is the scratch directory holding the extracted transfer.
	StagingDir string
	FileName   string

	// Checksum is the md5 the feed declares for the file; empty or invalid
	// checksums disable verification.
	Checksum string
	// Title is the feed caption, stored as title and alt metadata.
	Title string

	FilesFolder string
	ProviderKey string
	// ListingKey adds the per-listing path segment; empty for contact-person
	// media.
	ListingKey string
}

// logicalPath builds the stable storage path of the asset.
func (p SaveAssetParams) logicalPath() string {
	if p.ListingKey != "" {
		return filepath.Join(p.FilesFolder, p.ProviderKey, p.ListingKey, p.FileName)
	}
	return filepath.Join(p.FilesFolder, p.ProviderKey, p.FileName)
}

// SaveAsset places one staged media file under its logical path and returns
// the registered asset. An existing asset with a matching content hash is
// reused without touching the file system. A fresh copy whose hash
// contradicts the declared checksum is removed again and the save fails.
func (m *AssetManager) SaveAsset(ctx context.Context, p SaveAssetParams) (*catalog.Asset, error) {
	staged := filepath.Join(p.StagingDir, p.FileName)

	size := m.staging.FileSize(staged)
	if size == 0 {
		return nil, fmt.Errorf("%w: media file %s is missing or empty", shared.ErrInvalidInput, p.FileName)
	}
	if size > m.maxSize {
		return nil, fmt.Errorf("%w: media file %s exceeds %s", shared.ErrInvalidInput, p.FileName, feedfs.FormatSize(m.maxSize))
	}

	checksum := p.Checksum
	if checksum != "" && !feedfs.IsValidMD5(checksum) {
		m.logger.Info("ignoring malformed checksum", zap.String("file", p.FileName), zap.String("checksum", checksum))
		checksum = ""
	}

	target := p.logicalPath()

	existing, err := m.assets.FindByPath(ctx, target)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		stagedHash, err := m.staging.Hash(staged)
		if err != nil {
			return nil, err
		}
		if stagedHash == existing.Hash {
			return existing, nil
		}
	}

	if err := m.staging.Copy(staged, target); err != nil {
		return nil, err
	}
	hash, err := m.staging.Hash(target)
	if err != nil {
		return nil, err
	}
	if checksum != "" && hash != checksum {
		if rmErr := m.staging.Remove(target); rmErr != nil {
			m.logger.Warn("failed to remove corrupt media copy", zap.String("path", target), zap.Error(rmErr))
		}
		return nil, fmt.Errorf("%w: media file %s failed checksum verification", shared.ErrInvalidInput, p.FileName)
	}

	asset := existing
	if asset == nil {
		asset = catalog.NewAsset(target, p.FileName, hash)
	}
	asset.Hash = hash
	asset.Title = p.Title
	asset.Alt = p.Title
	if err := m.assets.Save(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

// RemoveListingAssets drops all assets below the listing's media directory,
// on disk and in the registry.
func (m *AssetManager) RemoveListingAssets(ctx context.Context, filesFolder, providerKey, listingKey string) error {
	dir := filepath.Join(filesFolder, providerKey, listingKey)
	if err := m.staging.RemoveDir(dir); err != nil {
		m.logger.Warn("failed to remove media directory", zap.String("dir", dir), zap.Error(err))
	}
	return m.assets.DeleteByPathPrefix(ctx, dir+string(filepath.Separator))
}
