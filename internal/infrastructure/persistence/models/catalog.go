package models

import (
	"time"

	"github.com/estatecms/backend/internal/domain/catalog"
	"github.com/google/uuid"
)

// ProviderModel is the persistence model for the Provider domain entity.
type ProviderModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Anbieternr string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	Firma      string    `gorm:"type:varchar(255)"`
	Published  bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName returns the table name for GORM
func (ProviderModel) TableName() string {
	return "providers"
}

// ToDomain converts the persistence model to a domain Provider entity.
func (m *ProviderModel) ToDomain() *catalog.Provider {
	return &catalog.Provider{
		ID:         m.ID,
		Anbieternr: m.Anbieternr,
		Firma:      m.Firma,
		Published:  m.Published,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// ContactPersonModel is the persistence model for the ContactPerson entity.
type ContactPersonModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProviderID uuid.UUID `gorm:"type:uuid;index;not null"`
	Published  bool      `gorm:"not null;default:false"`
	Fields     FieldMap  `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName returns the table name for GORM
func (ContactPersonModel) TableName() string {
	return "contact_persons"
}

// ToDomain converts the persistence model to a domain ContactPerson entity.
func (m *ContactPersonModel) ToDomain() *catalog.ContactPerson {
	return &catalog.ContactPerson{
		ID:         m.ID,
		ProviderID: m.ProviderID,
		Published:  m.Published,
		Fields:     catalog.Record(m.Fields),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// ContactPersonModelFromDomain builds the persistence model from the entity.
func ContactPersonModelFromDomain(p *catalog.ContactPerson) *ContactPersonModel {
	return &ContactPersonModel{
		ID:         p.ID,
		ProviderID: p.ProviderID,
		Published:  p.Published,
		Fields:     FieldMap(p.Fields),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// RealEstateModel is the persistence model for the RealEstate entity.
type RealEstateModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProviderID      uuid.UUID `gorm:"type:uuid;index;not null"`
	ContactPersonID uuid.UUID `gorm:"type:uuid;index"`
	Referenz        bool      `gorm:"not null;default:false"`
	Published       bool      `gorm:"not null;default:false"`
	Fields          FieldMap  `gorm:"type:jsonb;not null;default:'{}'"`
	DateAdded       time.Time
	Tstamp          time.Time
}

// TableName returns the table name for GORM
func (RealEstateModel) TableName() string {
	return "real_estates"
}

// ToDomain converts the persistence model to a domain RealEstate entity.
func (m *RealEstateModel) ToDomain() *catalog.RealEstate {
	return &catalog.RealEstate{
		ID:              m.ID,
		ProviderID:      m.ProviderID,
		ContactPersonID: m.ContactPersonID,
		Referenz:        m.Referenz,
		Published:       m.Published,
		Fields:          catalog.Record(m.Fields),
		DateAdded:       m.DateAdded,
		Tstamp:          m.Tstamp,
	}
}

// RealEstateModelFromDomain builds the persistence model from the entity.
func RealEstateModelFromDomain(e *catalog.RealEstate) *RealEstateModel {
	return &RealEstateModel{
		ID:              e.ID,
		ProviderID:      e.ProviderID,
		ContactPersonID: e.ContactPersonID,
		Referenz:        e.Referenz,
		Published:       e.Published,
		Fields:          FieldMap(e.Fields),
		DateAdded:       e.DateAdded,
		Tstamp:          e.Tstamp,
	}
}

// AssetModel is the persistence model for stored media assets.
type AssetModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Path      string    `gorm:"type:varchar(512);uniqueIndex;not null"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Hash      string    `gorm:"type:char(32);index;not null"`
	Title     string    `gorm:"type:varchar(255)"`
	Alt       string    `gorm:"type:varchar(255)"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (AssetModel) TableName() string {
	return "assets"
}

// ToDomain converts the persistence model to a domain Asset entity.
func (m *AssetModel) ToDomain() *catalog.Asset {
	return &catalog.Asset{
		ID:        m.ID,
		Path:      m.Path,
		Name:      m.Name,
		Hash:      m.Hash,
		Title:     m.Title,
		Alt:       m.Alt,
		CreatedAt: m.CreatedAt,
	}
}

// AssetModelFromDomain builds the persistence model from the entity.
func AssetModelFromDomain(a *catalog.Asset) *AssetModel {
	return &AssetModel{
		ID:        a.ID,
		Path:      a.Path,
		Name:      a.Name,
		Hash:      a.Hash,
		Title:     a.Title,
		Alt:       a.Alt,
		CreatedAt: a.CreatedAt,
	}
}
