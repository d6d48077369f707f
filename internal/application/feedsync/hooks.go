package feedsync

import (
	"context"

	"github.com/estatecms/backend/internal/domain/catalog"
	"github.com/estatecms/backend/internal/infrastructure/openimmo"
)

// ContactDecision is the outcome of the AssignContactPerson stage.
type ContactDecision int

const (
	// ContactProceed continues with the regular contact resolution.
	ContactProceed ContactDecision = iota
	// ContactSkip imports the listing without a contact person.
	ContactSkip
	// ContactSkipRecord drops the whole listing.
	ContactSkipRecord
)

// BeforeSyncHook runs once before any file is touched.
type BeforeSyncHook interface {
	BeforeSync(ctx context.Context, run *Run) error
}

// BeforeLoadHook runs after the document is parsed and may abort the load.
type BeforeLoadHook interface {
	BeforeLoad(ctx context.Context, run *Run, doc *openimmo.Node) (proceed bool, err error)
}

// PrePrepareRecordHook runs per source listing before any rule is applied
// and may skip the listing entirely.
type PrePrepareRecordHook interface {
	PrePrepareRecord(ctx context.Context, run *Run, listing *openimmo.Node) (skip bool)
}

// SaveImageHook runs per media file before it is staged into the files
// folder and may skip the asset.
type SaveImageHook interface {
	SaveImage(ctx context.Context, run *Run, record catalog.Record, fileName string) (skip bool)
}

// AssignContactPersonHook runs per listing before contact resolution. The
// contact record is mutable; changes are visible to later callbacks and to
// the resolution itself.
type AssignContactPersonHook interface {
	AssignContactPerson(ctx context.Context, run *Run, contact catalog.Record, listing catalog.Record) ContactDecision
}

// BeforeDeleteHook runs before a DELETE-action listing is removed and may
// prevent the deletion.
type BeforeDeleteHook interface {
	BeforeDelete(ctx context.Context, run *Run, estate *catalog.RealEstate) (prevent bool)
}

// BeforeImportHook runs after the entity is assembled, right before it is
// saved.
type BeforeImportHook interface {
	BeforeImport(ctx context.Context, run *Run, record catalog.Record, estate *catalog.RealEstate)
}

// Hooks collects the injected callbacks of all stages. Each slice runs in
// registration order; a zero Hooks value disables every stage.
type Hooks struct {
	BeforeSync          []BeforeSyncHook
	BeforeLoad          []BeforeLoadHook
	PrePrepareRecord    []PrePrepareRecordHook
	SaveImage           []SaveImageHook
	AssignContactPerson []AssignContactPersonHook
	BeforeDelete        []BeforeDeleteHook
	BeforeImport        []BeforeImportHook
}

func (h *Hooks) runBeforeSync(ctx context.Context, run *Run) error {
	for _, hook := range h.BeforeSync {
		if err := hook.BeforeSync(ctx, run); err != nil {
			return err
		}
	}
	return nil
}

func (h *Hooks) runBeforeLoad(ctx context.Context, run *Run, doc *openimmo.Node) (bool, error) {
	for _, hook := range h.BeforeLoad {
		proceed, err := hook.BeforeLoad(ctx, run, doc)
		if err != nil {
			return false, err
		}
		if !proceed {
			return false, nil
		}
	}
	return true, nil
}

func (h *Hooks) runPrePrepareRecord(ctx context.Context, run *Run, listing *openimmo.Node) bool {
	for _, hook := range h.PrePrepareRecord {
		if hook.PrePrepareRecord(ctx, run, listing) {
			return true
		}
	}
	return false
}

func (h *Hooks) runSaveImage(ctx context.Context, run *Run, record catalog.Record, fileName string) bool {
	for _, hook := range h.SaveImage {
		if hook.SaveImage(ctx, run, record, fileName) {
			return true
		}
	}
	return false
}

func (h *Hooks) runAssignContactPerson(ctx context.Context, run *Run, contact, listing catalog.Record) ContactDecision {
	for _, hook := range h.AssignContactPerson {
		if decision := hook.AssignContactPerson(ctx, run, contact, listing); decision != ContactProceed {
			return decision
		}
	}
	return ContactProceed
}

func (h *Hooks) runBeforeDelete(ctx context.Context, run *Run, estate *catalog.RealEstate) bool {
	for _, hook := range h.BeforeDelete {
		if hook.BeforeDelete(ctx, run, estate) {
			return true
		}
	}
	return false
}

func (h *Hooks) runBeforeImport(ctx context.Context, run *Run, record catalog.Record, estate *catalog.RealEstate) {
	for _, hook := range h.BeforeImport {
		hook.BeforeImport(ctx, run, record, estate)
	}
}
