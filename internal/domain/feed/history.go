package feed

import (
	"time"

	"github.com/google/uuid"
)

// Sync outcome status codes persisted with each history entry.
const (
	SyncStatusFailed  = 0
	SyncStatusSuccess = 1
	SyncStatusPartial = 2
)

// SyncHistoryEntry is one append-only record of a completed sync run.
type SyncHistoryEntry struct {
	ID          uuid.UUID
	InterfaceID uuid.UUID
	Tstamp      time.Time
	Source      string
	Username    string
	Text        string
	Status      int
}

// NewSyncHistoryEntry creates a history entry for a finished run
func NewSyncHistoryEntry(interfaceID uuid.UUID, source, username, text string, status int) *SyncHistoryEntry {
	return &SyncHistoryEntry{
		ID:          uuid.New(),
		InterfaceID: interfaceID,
		Tstamp:      time.Now(),
		Source:      source,
		Username:    username,
		Text:        text,
		Status:      status,
	}
}
