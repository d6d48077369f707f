// Package feedsync orchestrates one import run: loading the transfer file,
// building records through the mapping rules, persisting media assets and
// reconciling the result into the catalog.
package feedsync

import (
	"strings"
	"time"

	"github.com/estatecms/backend/internal/domain/feed"
)

// Run is the state of one import run. It is created by Initialize and
// carries the loaded configuration plus the messages and status accumulated
// while the run proceeds.
type Run struct {
	Interface *feed.Interface
	Rules     []feed.MappingRule

	// Source is the transfer file chosen by the operator; Document is the
	// XML file actually parsed (the archive member for zip transfers).
	Source   string
	Document string
	Username string

	// UpdateSyncTime controls whether a successful run stamps the
	// interface's last-sync timestamp. Initialize enables it; callbacks
	// may clear it to leave the timestamp untouched.
	UpdateSyncTime bool

	StartedAt time.Time

	messages []string
	partial  bool
}

// AddMessage appends a message to the operator-facing run log
func (r *Run) AddMessage(msg string) {
	r.messages = append(r.messages, msg)
}

// Messages returns the accumulated run log
func (r *Run) Messages() []string {
	return r.messages
}

// Summary joins the run log into the text stored with the history entry
func (r *Run) Summary() string {
	return strings.Join(r.messages, "\n")
}

// MarkPartial degrades the run outcome to "partially imported"
func (r *Run) MarkPartial() {
	r.partial = true
}

// Partial reports whether any listing was skipped during the run
func (r *Run) Partial() bool {
	return r.partial
}

// Status returns the history status code for a completed run
func (r *Run) Status() int {
	if r.partial {
		return feed.SyncStatusPartial
	}
	return feed.SyncStatusSuccess
}
