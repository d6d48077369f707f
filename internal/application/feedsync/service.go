package feedsync

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/estatecms/backend/internal/domain/catalog"
	"github.com/estatecms/backend/internal/domain/feed"
	"github.com/estatecms/backend/internal/domain/shared"
	"github.com/estatecms/backend/internal/infrastructure/config"
	"github.com/estatecms/backend/internal/infrastructure/feedfs"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Importer is the entry point of the import workflow. Initialize loads and
// validates the interface configuration; Sync executes one run end to end.
// One run executes at a time per instance.
type Importer struct {
	interfaces feed.InterfaceRepository
	history    feed.SyncHistoryRepository

	loader     *Loader
	builder    *Builder
	reconciler *Reconciler
	staging    *feedfs.Staging
	telemetry  *Telemetry
	hooks      *Hooks
	validate   *validator.Validate
	logger     *zap.Logger

	mu sync.Mutex
}

// ImporterOption configures optional collaborators of the importer.
type ImporterOption func(*Importer)

// WithHooks installs the injected callback set
func WithHooks(h *Hooks) ImporterOption {
	return func(s *Importer) {
		s.hooks = h
	}
}

// WithTelemetry replaces the default post-run reporter
func WithTelemetry(t *Telemetry) ImporterOption {
	return func(s *Importer) {
		s.telemetry = t
	}
}

// NewImporter wires the import workflow from its repositories and the
// import configuration.
func NewImporter(
	interfaces feed.InterfaceRepository,
	history feed.SyncHistoryRepository,
	providers catalog.ProviderRepository,
	contacts catalog.ContactPersonRepository,
	estates catalog.RealEstateRepository,
	assets catalog.AssetRepository,
	cfg config.ImportConfig,
	logger *zap.Logger,
	opts ...ImporterOption,
) *Importer {
	s := &Importer{
		interfaces: interfaces,
		history:    history,
		staging:    feedfs.NewStaging(),
		hooks:      &Hooks{},
		validate:   validator.New(),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.telemetry == nil {
		s.telemetry = NewTelemetry(cfg, logger)
	}

	assetManager := NewAssetManager(s.staging, assets, cfg.MaxAssetSize, logger)
	s.loader = NewLoader(s.staging, history, logger)
	s.builder = NewBuilder(assetManager, s.hooks, logger)
	s.reconciler = NewReconciler(providers, contacts, estates, assetManager, s.hooks, logger)
	return s
}

// Initialize loads the interface and its mapping rules and validates the
// configuration. The returned run state feeds SyncFiles and Sync.
func (s *Importer) Initialize(ctx context.Context, interfaceID uuid.UUID) (*Run, error) {
	iface, err := s.interfaces.FindByID(ctx, interfaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load interface %s: %w", interfaceID, err)
	}

	required := map[string]string{
		"unique_field":          iface.UniqueField,
		"unique_provider_field": iface.UniqueProviderField,
		"import_folder":         iface.ImportFolder,
		"files_folder":          iface.FilesFolder,
	}
	for name, value := range required {
		if err := s.validate.Var(value, "required"); err != nil {
			return nil, fmt.Errorf("%w: interface %s has no %s", shared.ErrInvalidInput, iface.Name, name)
		}
	}

	rules, err := s.interfaces.MappingsByInterface(ctx, interfaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load mappings of interface %s: %w", interfaceID, err)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("%w: interface %s has no mapping rules", shared.ErrInvalidInput, iface.Name)
	}

	return &Run{Interface: iface, Rules: rules, UpdateSyncTime: true}, nil
}

// SyncFiles lists the candidate transfer files of an initialized run
func (s *Importer) SyncFiles(ctx context.Context, run *Run) ([]SyncFile, error) {
	if run == nil || run.Interface == nil {
		return nil, shared.ErrNotInitialized
	}
	return s.loader.SyncFiles(ctx, run.Interface)
}

// Sync executes one import run on the chosen transfer file. Exactly one
// history entry is written per run, also when the run fails. The scratch
// directory is purged unconditionally at run end.
func (s *Importer) Sync(ctx context.Context, run *Run, sourcePath, username string) error {
	if run == nil || run.Interface == nil {
		return shared.ErrNotInitialized
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	run.Source = sourcePath
	run.Username = username
	run.StartedAt = time.Now()

	defer func() {
		tmpDir := filepath.Join(run.Interface.ImportFolder, feedfs.TmpDirName)
		if err := s.staging.Purge(tmpDir); err != nil {
			s.logger.Warn("failed to purge scratch directory", zap.String("dir", tmpDir), zap.Error(err))
		}
	}()

	s.logger.Info("starting import run",
		zap.String("interface", run.Interface.Name),
		zap.String("source", filepath.Base(sourcePath)))

	result, err := s.run(ctx, run)
	if err != nil {
		run.AddMessage(err.Error())
		s.appendHistory(ctx, run, feed.SyncStatusFailed)
		return err
	}

	s.appendHistory(ctx, run, run.Status())

	if run.UpdateSyncTime {
		if err := s.interfaces.StampLastSync(ctx, run.Interface.ID, time.Now()); err != nil {
			s.logger.Warn("failed to stamp last sync", zap.Error(err))
		}
	}

	s.telemetry.Report(ctx, run, result.Estates)

	s.logger.Info("import run finished",
		zap.String("interface", run.Interface.Name),
		zap.Bool("partial", run.Partial()),
		zap.Duration("took", time.Since(run.StartedAt)))
	return nil
}

// run executes the load, build and reconcile stages.
func (s *Importer) run(ctx context.Context, run *Run) (*BuildResult, error) {
	if err := s.hooks.runBeforeSync(ctx, run); err != nil {
		return nil, fmt.Errorf("sync aborted by callback: %w", err)
	}

	docPath, err := s.loader.ResolveSyncFile(run.Source, run.Interface.ImportFolder)
	if err != nil {
		return nil, err
	}
	run.Document = docPath

	doc, err := s.loader.LoadDocument(docPath)
	if err != nil {
		return nil, err
	}

	proceed, err := s.hooks.runBeforeLoad(ctx, run, doc)
	if err != nil {
		return nil, fmt.Errorf("load aborted by callback: %w", err)
	}
	if !proceed {
		return nil, fmt.Errorf("%w: load rejected by callback", shared.ErrInvalidFeed)
	}

	result, err := s.builder.BuildRecords(ctx, run, doc)
	if err != nil {
		return nil, err
	}

	if err := s.reconciler.Reconcile(ctx, run, result); err != nil {
		return nil, err
	}
	return result, nil
}

// appendHistory writes the single history entry of the run
func (s *Importer) appendHistory(ctx context.Context, run *Run, status int) {
	entry := feed.NewSyncHistoryEntry(run.Interface.ID, run.Source, run.Username, run.Summary(), status)
	if err := s.history.Append(ctx, entry); err != nil {
		s.logger.Error("failed to append sync history entry", zap.Error(err))
	}
}

// History returns the newest history entries of the interface
func (s *Importer) History(ctx context.Context, interfaceID uuid.UUID, limit int) ([]*feed.SyncHistoryEntry, error) {
	return s.history.FindByInterface(ctx, interfaceID, limit)
}
