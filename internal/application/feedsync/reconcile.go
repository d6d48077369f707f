package feedsync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/estatecms/backend/internal/domain/catalog"
	"github.com/estatecms/backend/internal/domain/feed"
	"github.com/estatecms/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Contact-person reconciliation actions enabled per interface.
const (
	ContactActionCreate = "create"
	ContactActionUpdate = "update"
)

// Reconciler applies the accumulated records to the catalog: upserts keyed
// by the configured unique field, DELETE and REFERENZ action handling and
// contact-person resolution per third-party policy.
type Reconciler struct {
	providers catalog.ProviderRepository
	contacts  catalog.ContactPersonRepository
	estates   catalog.RealEstateRepository
	assets    *AssetManager
	hooks     *Hooks
	logger    *zap.Logger
}

// NewReconciler creates a reconciler
func NewReconciler(
	providers catalog.ProviderRepository,
	contacts catalog.ContactPersonRepository,
	estates catalog.RealEstateRepository,
	assets *AssetManager,
	hooks *Hooks,
	logger *zap.Logger,
) *Reconciler {
	return &Reconciler{
		providers: providers,
		contacts:  contacts,
		estates:   estates,
		assets:    assets,
		hooks:     hooks,
		logger:    logger,
	}
}

// Reconcile writes the build result into the catalog. Per-listing problems
// skip the listing and degrade the run to partial; only failures before any
// write, like an unknown own provider, abort the run.
func (r *Reconciler) Reconcile(ctx context.Context, run *Run, result *BuildResult) error {
	iface := run.Interface

	ownProvider, err := r.providers.FindByID(ctx, iface.ProviderID)
	if err != nil {
		return fmt.Errorf("failed to load own provider: %w", err)
	}

	var created, updated, deleted int

	for i, record := range result.Estates {
		providerKey := record.ProviderKey()
		action := record.Action()

		provider := ownProvider
		if iface.ThirdPartyPolicy == feed.PolicyImport && providerKey != iface.Anbieternr {
			foreign, err := r.providers.FindByAnbieternr(ctx, providerKey)
			if err != nil {
				r.skip(run, fmt.Sprintf("unknown provider %s, listing skipped", providerKey), err)
				continue
			}
			provider = foreign
		}

		uniqueValue := record.Get(iface.UniqueField)
		if uniqueValue == "" {
			r.skip(run, fmt.Sprintf("listing without %s value skipped", iface.UniqueField), nil)
			continue
		}

		existing, err := r.estates.FindOneByField(ctx, iface.UniqueField, uniqueValue)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			r.skip(run, fmt.Sprintf("lookup of listing %s failed", uniqueValue), err)
			continue
		}

		if action == catalog.ActionDelete {
			if existing == nil {
				continue
			}
			if r.hooks.runBeforeDelete(ctx, run, existing) {
				continue
			}
			if err := r.assets.RemoveListingAssets(ctx, iface.FilesFolder, providerKey, uniqueValue); err != nil {
				r.logger.Warn("failed to drop listing assets", zap.String("listing", uniqueValue), zap.Error(err))
			}
			if err := r.estates.Delete(ctx, existing.ID); err != nil {
				r.skip(run, fmt.Sprintf("deletion of listing %s failed", uniqueValue), err)
				continue
			}
			deleted++
			continue
		}

		contactID, ok := r.resolveContact(ctx, run, provider, record, result.Contacts[i])
		if !ok {
			continue
		}

		record.StripControlKeys()

		entity := existing
		if entity == nil {
			entity = catalog.NewRealEstate(!iface.DontPublishRecords)
		}
		entity.Referenz = action == catalog.ActionReference
		entity.Assign(record)
		entity.ProviderID = provider.ID
		entity.ContactPersonID = contactID
		entity.Tstamp = time.Now()

		r.hooks.runBeforeImport(ctx, run, record, entity)

		if err := r.estates.Save(ctx, entity); err != nil {
			r.skip(run, fmt.Sprintf("saving listing %s failed", uniqueValue), err)
			continue
		}
		if existing == nil {
			created++
		} else {
			updated++
		}
	}

	run.AddMessage(fmt.Sprintf("%d listings created, %d updated, %d deleted", created, updated, deleted))
	return nil
}

// resolveContact determines the contact person of one listing. The returned
// id is uuid.Nil when the listing imports without a contact person; ok is
// false when the whole listing must be skipped.
func (r *Reconciler) resolveContact(ctx context.Context, run *Run, provider *catalog.Provider, record, contactRec catalog.Record) (uuid.UUID, bool) {
	iface := run.Interface

	// The predefined assignment covers foreign listings only; the own
	// provider's listings resolve their contact person from the record.
	if iface.ThirdPartyPolicy == feed.PolicyAssign && record.ProviderKey() != iface.Anbieternr {
		return pickAssignment(record, iface.ContactAssignments), true
	}

	switch r.hooks.runAssignContactPerson(ctx, run, contactRec, record) {
	case ContactSkipRecord:
		r.skip(run, "listing skipped by contact assignment callback", nil)
		return uuid.Nil, false
	case ContactSkip:
		return uuid.Nil, true
	}

	predicate := contactPredicate(iface.ContactPersonUniqueField, contactRec)
	if len(predicate) == 0 {
		return uuid.Nil, true
	}

	existing, err := r.contacts.FindOneByFields(ctx, provider.ID, predicate)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		r.skip(run, "contact person lookup failed", err)
		return uuid.Nil, false
	}

	if existing != nil {
		if iface.AllowsContactAction(ContactActionUpdate) {
			existing.Assign(contactRec)
			if err := r.contacts.Save(ctx, existing); err != nil {
				r.skip(run, "contact person update failed", err)
				return uuid.Nil, false
			}
		}
		return existing.ID, true
	}

	if !iface.AllowsContactAction(ContactActionCreate) {
		r.skip(run, "listing without existing contact person skipped", nil)
		return uuid.Nil, false
	}

	person := catalog.NewContactPerson(provider.ID, contactRec)
	person.Published = true
	if err := r.contacts.Save(ctx, person); err != nil {
		r.skip(run, "contact person creation failed", err)
		return uuid.Nil, false
	}
	return person.ID, true
}

// skip records one skipped listing and degrades the run to partial.
func (r *Reconciler) skip(run *Run, msg string, err error) {
	run.MarkPartial()
	run.AddMessage(msg)
	r.logger.Info(msg, zap.Error(err))
}

// pickAssignment returns the predefined contact person of the first truthy
// marketing flag of the listing record.
func pickAssignment(record catalog.Record, a feed.ContactAssignments) uuid.UUID {
	switch {
	case record.Truthy("vermarktungsartKauf"):
		return a.Kauf
	case record.Truthy("vermarktungsartMietePacht"):
		return a.MietePacht
	case record.Truthy("vermarktungsartErbpacht"):
		return a.Erbpacht
	case record.Truthy("vermarktungsartLeasing"):
		return a.Leasing
	}
	return uuid.Nil
}

// contactPredicate builds the uniqueness lookup of the configured strategy.
// Empty attribute values never participate; an empty predicate means the
// listing has no identifiable contact person.
func contactPredicate(strategy string, contactRec catalog.Record) map[string]string {
	fields := []string{strategy}
	if strategy == feed.ContactUniqueCompound {
		fields = []string{"name", "vorname"}
	}

	predicate := make(map[string]string, len(fields))
	for _, f := range fields {
		if f == "" {
			continue
		}
		if v := contactRec.Get(f); v != "" {
			predicate[f] = v
		}
	}
	if strategy == feed.ContactUniqueCompound && len(predicate) != 2 {
		return nil
	}
	return predicate
}
