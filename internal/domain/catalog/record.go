package catalog

// RecordKind identifies the destination entity of a mapped field.
type RecordKind string

const (
	KindRealEstate    RecordKind = "real_estate"
	KindContactPerson RecordKind = "contact_person"
)

// IsValidRecordKind checks if the record kind is valid
func IsValidRecordKind(k string) bool {
	return RecordKind(k) == KindRealEstate || RecordKind(k) == KindContactPerson
}

// Transient control keys carried on a listing record during a sync run.
// They are stripped before the record is persisted.
const (
	ControlProvider  = "ANBIETER"
	ControlAction    = "AKTIONART"
	ControlOrderType = "AUFTRAGSART"
)

// Action codes read from the feed's administrative section.
const (
	ActionDelete    = "DELETE"
	ActionReference = "REFERENZ"
)

// PersistedProviderField is the attribute name the provider control key is
// rewritten to before the listing record is saved.
const PersistedProviderField = "anbieternr"

// Record is the transient key/value accumulator assembled for one source
// listing during a sync run. Keys are destination attribute names.
type Record map[string]string

// NewRecord creates an empty record
func NewRecord() Record {
	return make(Record)
}

// Set stores a value under the given attribute name
func (r Record) Set(attr, value string) {
	r[attr] = value
}

// Get returns the value stored under the given attribute name
func (r Record) Get(attr string) string {
	return r[attr]
}

// Has reports whether the attribute has been written
func (r Record) Has(attr string) bool {
	_, ok := r[attr]
	return ok
}

// Action returns the action code of the record
func (r Record) Action() string {
	return r[ControlAction]
}

// ProviderKey returns the provider control value of the record
func (r Record) ProviderKey() string {
	return r[ControlProvider]
}

// Truthy reports whether the attribute carries a non-empty, non-zero value.
func (r Record) Truthy(attr string) bool {
	v := r[attr]
	return v != "" && v != "0"
}

// Clone returns a shallow copy of the record
func (r Record) Clone() Record {
	c := make(Record, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// StripControlKeys removes the transient control keys and rewrites the
// provider key under its persisted attribute name.
func (r Record) StripControlKeys() {
	if v, ok := r[ControlProvider]; ok {
		r[PersistedProviderField] = v
	}
	delete(r, ControlProvider)
	delete(r, ControlAction)
	delete(r, ControlOrderType)
}
