package feed

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// InterfaceRepository provides access to operator-authored feed
// configuration. Implementations parse and validate mapping selectors at
// load time.
type InterfaceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Interface, error)
	MappingsByInterface(ctx context.Context, id uuid.UUID) ([]MappingRule, error)
	StampLastSync(ctx context.Context, id uuid.UUID, at time.Time) error
}

// SyncHistoryRepository provides access to the append-only sync log
type SyncHistoryRepository interface {
	Append(ctx context.Context, entry *SyncHistoryEntry) error
	// FindBySources returns the most recent entry per source file, used to
	// annotate the candidate file list.
	FindBySources(ctx context.Context, interfaceID uuid.UUID, sources []string) (map[string]*SyncHistoryEntry, error)
	FindByInterface(ctx context.Context, interfaceID uuid.UUID, limit int) ([]*SyncHistoryEntry, error)
}
