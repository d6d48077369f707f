package feed

import (
	"time"

	"github.com/google/uuid"
)

// ThirdPartyPolicy controls how listings from foreign providers are handled.
type ThirdPartyPolicy string

const (
	// PolicyOwnOnly silently skips providers other than the interface's own.
	PolicyOwnOnly ThirdPartyPolicy = ""
	// PolicyImport imports foreign listings when the provider is known to the
	// catalog; unknown providers degrade the run to "partially imported".
	PolicyImport ThirdPartyPolicy = "import"
	// PolicyAssign keeps the interface's own provider and assigns a
	// predefined contact person by marketing type.
	PolicyAssign ThirdPartyPolicy = "assign"
)

// ContactUniqueCompound selects the compound name+firstname uniqueness
// strategy for contact persons.
const ContactUniqueCompound = "name_vorname"

// ContactAssignments holds the predefined contact persons used by
// PolicyAssign, one per marketing type. The first matching non-empty
// marketing flag of the listing record wins.
type ContactAssignments struct {
	Kauf       uuid.UUID
	MietePacht uuid.UUID
	Erbpacht   uuid.UUID
	Leasing    uuid.UUID
}

// Interface describes one configured feed source. It is operator-authored
// and read-only during a sync run except for LastSync, which is stamped at
// run end.
type Interface struct {
	ID   uuid.UUID
	Name string

	// ProviderID references the interface's own provider; Anbieternr is the
	// matching provider number used as fallback and for the inclusion policy.
	ProviderID uuid.UUID
	Anbieternr string

	// UniqueField is the listing attribute used for upsert matching;
	// UniqueProviderField is the provider element queried per feed provider.
	UniqueField         string
	UniqueProviderField string

	ThirdPartyPolicy ThirdPartyPolicy

	// ContactPersonActions lists the reconciliation actions allowed for
	// contact persons ("create", "update").
	ContactPersonActions []string
	// ContactPersonUniqueField is either a single attribute name or the
	// compound ContactUniqueCompound strategy.
	ContactPersonUniqueField string
	ContactAssignments       ContactAssignments

	// SkipFields aborts a whole listing when the named destination attribute
	// accumulates no truthy value.
	SkipFields []string

	// ImportFolder holds incoming transfer files; FilesFolder and
	// FilesFolderContactPerson are the asset target folders per record kind.
	ImportFolder             string
	FilesFolder              string
	FilesFolderContactPerson string

	DontPublishRecords bool
	LastSync           time.Time
}

// AllowsContactAction reports whether the given contact-person action is
// enabled on the interface.
func (i *Interface) AllowsContactAction(action string) bool {
	for _, a := range i.ContactPersonActions {
		if a == action {
			return true
		}
	}
	return false
}

// IsSkipField reports whether the attribute is part of the skip-field list
func (i *Interface) IsSkipField(attr string) bool {
	for _, f := range i.SkipFields {
		if f == attr {
			return true
		}
	}
	return false
}
