package feedsync

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/estatecms/backend/internal/domain/catalog"
	"github.com/estatecms/backend/internal/domain/feed"
	"github.com/estatecms/backend/internal/domain/shared"
	"github.com/estatecms/backend/internal/infrastructure/feedfs"
	"github.com/estatecms/backend/internal/infrastructure/openimmo"
	"go.uber.org/zap"
)

// Builder walks the provider and listing elements of a transfer document and
// accumulates one listing record and one contact-person record per source
// listing by applying the interface's mapping rules.
type Builder struct {
	assets *AssetManager
	hooks  *Hooks
	logger *zap.Logger
}

// NewBuilder creates a record builder
func NewBuilder(assets *AssetManager, hooks *Hooks, logger *zap.Logger) *Builder {
	return &Builder{assets: assets, hooks: hooks, logger: logger}
}

// BuildResult holds the accumulated records of one run. Estates and
// Contacts are index-aligned per source listing.
type BuildResult struct {
	Estates  []catalog.Record
	Contacts []catalog.Record
}

// BuildRecords applies the mapping rules to every listing of every included
// provider. A document without provider elements is a hard error; foreign
// providers are skipped or included per the third-party policy.
func (b *Builder) BuildRecords(ctx context.Context, run *Run, doc *openimmo.Node) (*BuildResult, error) {
	providers := doc.Find("anbieter")
	if len(providers) == 0 {
		return nil, fmt.Errorf("%w: document contains no provider elements", shared.ErrInvalidFeed)
	}

	iface := run.Interface
	result := &BuildResult{}

	for _, provider := range providers {
		providerKey := provider.ChildText(iface.UniqueProviderField)
		if providerKey == "" {
			providerKey = iface.Anbieternr
		}

		if iface.ThirdPartyPolicy == feed.PolicyOwnOnly && providerKey != iface.Anbieternr {
			b.logger.Debug("skipping foreign provider", zap.String("provider", providerKey))
			continue
		}

		for _, listing := range provider.Find("immobilie") {
			if b.hooks.runPrePrepareRecord(ctx, run, listing) {
				continue
			}
			estate, contact, ok := b.buildListing(ctx, run, listing, providerKey)
			if !ok {
				continue
			}
			result.Estates = append(result.Estates, estate)
			result.Contacts = append(result.Contacts, contact)
		}
	}

	return result, nil
}

// buildListing accumulates the two records of one source listing. The third
// return value is false when a configured skip field stayed falsy and the
// listing is dropped.
func (b *Builder) buildListing(ctx context.Context, run *Run, listing *openimmo.Node, providerKey string) (catalog.Record, catalog.Record, bool) {
	iface := run.Interface

	estate := catalog.NewRecord()
	contact := catalog.NewRecord()

	estate.Set(catalog.ControlProvider, providerKey)
	if aktion := listing.First("verwaltung_techn/aktion"); aktion != nil {
		if art, ok := aktion.Attr("aktionart"); ok {
			estate.Set(catalog.ControlAction, art)
		}
	}
	if auftragsart := listing.ChildText("verwaltung_objekt/auftragsart"); auftragsart != "" {
		estate.Set(catalog.ControlOrderType, auftragsart)
	}

	listingKey := listing.ChildText("verwaltung_techn/objektnr_extern")

	for _, rule := range run.Rules {
		dest := estate
		if rule.Kind == catalog.KindContactPerson {
			dest = contact
		}

		values, forced := b.applyRule(ctx, run, rule, listing, estate, dest, providerKey, listingKey)

		if iface.IsSkipField(rule.Attribute) && allFalsy(values) {
			b.logger.Debug("skipping listing with falsy skip field",
				zap.String("attribute", rule.Attribute), zap.String("listing", listingKey))
			return nil, nil, false
		}

		switch {
		case len(values) == 0:
			if !forced {
				catalog.SchemaFor(rule.Kind).ApplyDefault(dest, rule.Attribute)
			}
		case rule.Serialize || len(values) > 1:
			dest.Set(rule.Attribute, openimmo.EncodeList(values))
		default:
			dest.Set(rule.Attribute, values[0])
		}
	}

	return estate, contact, true
}

// applyRule evaluates one mapping rule against all matched groups of the
// listing and returns the accumulated values. A forced value is written to
// the destination attribute right away and never joins the accumulation, so
// it cannot end up in a serialized list or count for the skip-field check.
func (b *Builder) applyRule(ctx context.Context, run *Run, rule feed.MappingRule, listing *openimmo.Node, estate, dest catalog.Record, providerKey, listingKey string) ([]string, bool) {
	var values []string
	var forced bool
	for _, group := range listing.Find(rule.GroupSelector) {
		if rule.HasCondition() {
			condValue := openimmo.Resolve(group, rule.Condition).Scalar()
			if !rule.MatchesCondition(condValue) {
				if rule.ForceActive {
					dest.Set(rule.Attribute, rule.ForceValue)
					forced = true
				}
				continue
			}
		}

		resolved := openimmo.Resolve(group, rule.Field)
		if resolved.IsNil() {
			continue
		}

		if rule.SaveImage {
			if estate.Action() == catalog.ActionDelete {
				continue
			}
			if id, ok := b.saveAsset(ctx, run, rule, group, dest, resolved.Scalar(), providerKey, listingKey); ok {
				values = append(values, id)
			}
			continue
		}

		for _, item := range resolved.Items() {
			values = append(values, applyTransform(rule, item))
		}
	}
	return values, forced
}

// saveAsset stages one media file of a matched attachment group. Failures
// drop the value only; the listing itself proceeds.
func (b *Builder) saveAsset(ctx context.Context, run *Run, rule feed.MappingRule, group *openimmo.Node, dest catalog.Record, path, providerKey, listingKey string) (string, bool) {
	fileName := filepath.Base(path)
	if fileName == "" || fileName == "." {
		return "", false
	}
	if b.hooks.runSaveImage(ctx, run, dest, fileName) {
		return "", false
	}

	iface := run.Interface
	params := SaveAssetParams{
		StagingDir:  filepath.Join(iface.ImportFolder, feedfs.TmpDirName),
		FileName:    fileName,
		Checksum:    group.ChildText("check"),
		Title:       group.ChildText("anhangtitel"),
		FilesFolder: iface.FilesFolder,
		ProviderKey: providerKey,
		ListingKey:  listingKey,
	}
	if rule.Kind == catalog.KindContactPerson {
		params.FilesFolder = iface.FilesFolderContactPerson
		params.ListingKey = ""
	}

	asset, err := b.assets.SaveAsset(ctx, params)
	if err != nil {
		b.logger.Info("dropping media value", zap.String("file", fileName), zap.Error(err))
		run.AddMessage(fmt.Sprintf("media file %s skipped: %s", fileName, err))
		return "", false
	}
	return asset.ID.String(), true
}

// allFalsy reports whether no accumulated value is non-empty and non-zero
func allFalsy(values []string) bool {
	for _, v := range values {
		if v != "" && v != "0" {
			return false
		}
	}
	return true
}
