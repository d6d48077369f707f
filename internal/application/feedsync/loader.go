package feedsync

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/estatecms/backend/internal/domain/feed"
	"github.com/estatecms/backend/internal/domain/shared"
	"github.com/estatecms/backend/internal/infrastructure/feedfs"
	"github.com/estatecms/backend/internal/infrastructure/openimmo"
	"go.uber.org/zap"
)

// transferExtensions are the file types accepted in the import folder.
var transferExtensions = []string{"zip", "xml", "data"}

// RootElement is the required root of a transfer document.
const RootElement = "openimmo"

// SyncFile is one candidate transfer file of the operator view, annotated
// with its most recent sync outcome.
type SyncFile struct {
	Path    string
	Name    string
	Size    string
	ModTime time.Time

	// Synced reports whether the file appears in the history; the remaining
	// fields describe the newest entry.
	Synced   bool
	SyncedAt time.Time
	SyncedBy string
	Status   int
}

// Loader lists and resolves transfer files and decodes them into the
// navigable document tree.
type Loader struct {
	staging *feedfs.Staging
	history feed.SyncHistoryRepository
	logger  *zap.Logger
}

// NewLoader creates a feed loader
func NewLoader(staging *feedfs.Staging, history feed.SyncHistoryRepository, logger *zap.Logger) *Loader {
	return &Loader{staging: staging, history: history, logger: logger}
}

// SyncFiles returns the candidate transfer files of the interface, newest
// modification time first, each annotated with size and prior sync outcome.
func (l *Loader) SyncFiles(ctx context.Context, iface *feed.Interface) ([]SyncFile, error) {
	paths, err := l.staging.ListByExt(iface.ImportFolder, transferExtensions)
	if err != nil {
		return nil, err
	}

	files := make([]SyncFile, 0, len(paths))
	sources := make([]string, 0, len(paths))
	for _, path := range paths {
		meta, err := l.staging.Meta(path)
		if err != nil {
			l.logger.Warn("skipping unreadable transfer file", zap.String("path", path), zap.Error(err))
			continue
		}
		files = append(files, SyncFile{
			Path:    path,
			Name:    filepath.Base(path),
			Size:    feedfs.FormatSize(meta.Size),
			ModTime: meta.ModTime,
		})
		sources = append(sources, path)
	}

	entries, err := l.history.FindBySources(ctx, iface.ID, sources)
	if err != nil {
		return nil, err
	}
	for i := range files {
		if entry, ok := entries[files[i].Path]; ok {
			files[i].Synced = true
			files[i].SyncedAt = entry.Tstamp
			files[i].SyncedBy = entry.Username
			files[i].Status = entry.Status
		}
	}

	sort.SliceStable(files, func(i, j int) bool {
		return files[i].ModTime.After(files[j].ModTime)
	})
	return files, nil
}

// ResolveSyncFile turns the chosen transfer file into the XML document to
// parse. Archives are extracted into the scratch directory and must contain
// exactly one XML member.
func (l *Loader) ResolveSyncFile(path, importFolder string) (string, error) {
	if strings.ToLower(filepath.Ext(path)) != ".zip" {
		return path, nil
	}

	tmpDir := filepath.Join(importFolder, feedfs.TmpDirName)
	members, err := l.staging.ExtractArchive(path, tmpDir)
	if err != nil {
		return "", fmt.Errorf("%w: %s", shared.ErrInvalidFeed, err)
	}

	var xmlFiles []string
	for _, member := range members {
		if strings.ToLower(filepath.Ext(member)) == ".xml" {
			xmlFiles = append(xmlFiles, member)
		}
	}
	if len(xmlFiles) != 1 {
		return "", fmt.Errorf("%w: archive %s contains %d xml files, expected exactly one",
			shared.ErrInvalidFeed, filepath.Base(path), len(xmlFiles))
	}
	return xmlFiles[0], nil
}

// LoadDocument parses the transfer document and verifies its root element.
func (l *Loader) LoadDocument(path string) (*openimmo.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrInvalidFeed, err)
	}
	defer f.Close()

	doc, err := openimmo.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrInvalidFeed, err)
	}
	if doc.Name != RootElement {
		return nil, fmt.Errorf("%w: unexpected root element %q", shared.ErrInvalidFeed, doc.Name)
	}
	return doc, nil
}
