package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Provider is a feed supplier persisted in the catalog, keyed by its
// OpenImmo provider number.
type Provider struct {
	ID          uuid.UUID
	Anbieternr  string
	Firma       string
	Published   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ContactPerson belongs to a provider. Mapped attributes live in Fields;
// the identity-relevant ones (name, vorname, email, ...) are addressed by
// the interface's contact uniqueness strategy.
type ContactPerson struct {
	ID         uuid.UUID
	ProviderID uuid.UUID
	Published  bool
	Fields     Record
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewContactPerson creates a contact person for the given provider
func NewContactPerson(providerID uuid.UUID, fields Record) *ContactPerson {
	return &ContactPerson{
		ID:         uuid.New(),
		ProviderID: providerID,
		Fields:     fields.Clone(),
	}
}

// Assign copies all record fields onto the contact person
func (c *ContactPerson) Assign(fields Record) {
	if c.Fields == nil {
		c.Fields = NewRecord()
	}
	for k, v := range fields {
		c.Fields[k] = v
	}
}

// RealEstate is a persisted listing. It belongs to a provider and a contact
// person and is addressed by the interface's configured unique field, which
// lives inside Fields.
type RealEstate struct {
	ID              uuid.UUID
	ProviderID      uuid.UUID
	ContactPersonID uuid.UUID
	Referenz        bool
	Published       bool
	Fields          Record
	DateAdded       time.Time
	Tstamp          time.Time
}

// NewRealEstate creates a listing with a fresh creation timestamp
func NewRealEstate(published bool) *RealEstate {
	return &RealEstate{
		ID:        uuid.New(),
		Published: published,
		Fields:    NewRecord(),
		DateAdded: time.Now(),
	}
}

// Assign copies all record fields onto the listing
func (r *RealEstate) Assign(fields Record) {
	if r.Fields == nil {
		r.Fields = NewRecord()
	}
	for k, v := range fields {
		r.Fields[k] = v
	}
}

// Asset is a stored media file, keyed by its logical path and carrying the
// md5 content hash used for deduplication.
type Asset struct {
	ID        uuid.UUID
	Path      string
	Name      string
	Hash      string
	Title     string
	Alt       string
	CreatedAt time.Time
}

// NewAsset creates an asset handle for the given logical path
func NewAsset(path, name, hash string) *Asset {
	return &Asset{
		ID:   uuid.New(),
		Path: path,
		Name: name,
		Hash: hash,
	}
}
