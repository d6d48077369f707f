package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/estatecms/backend/internal/domain/catalog"
	"github.com/estatecms/backend/internal/domain/feed"
	"github.com/google/uuid"
)

// StringList stores a list of strings as a JSON column.
type StringList []string

// Scan implements sql.Scanner
func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("string list: value is neither []byte nor string")
	}
	return json.Unmarshal(bytes, l)
}

// Value implements driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// InterfaceModel is the persistence model for a configured feed source.
type InterfaceModel struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"type:varchar(255);not null"`

	ProviderID uuid.UUID `gorm:"type:uuid;not null"`
	Anbieternr string    `gorm:"type:varchar(64);not null"`

	UniqueField         string `gorm:"type:varchar(64);not null"`
	UniqueProviderField string `gorm:"type:varchar(64);not null"`

	ThirdPartyPolicy string `gorm:"type:varchar(16);not null;default:''"`

	ContactPersonActions     StringList `gorm:"type:jsonb;not null;default:'[]'"`
	ContactPersonUniqueField string     `gorm:"type:varchar(64)"`

	AssignContactPersonKauf       uuid.UUID `gorm:"type:uuid"`
	AssignContactPersonMietePacht uuid.UUID `gorm:"type:uuid"`
	AssignContactPersonErbpacht   uuid.UUID `gorm:"type:uuid"`
	AssignContactPersonLeasing    uuid.UUID `gorm:"type:uuid"`

	SkipFields StringList `gorm:"type:jsonb;not null;default:'[]'"`

	ImportFolder             string `gorm:"type:varchar(512);not null"`
	FilesFolder              string `gorm:"type:varchar(512);not null"`
	FilesFolderContactPerson string `gorm:"type:varchar(512)"`

	DontPublishRecords bool `gorm:"not null;default:false"`
	LastSync           time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName returns the table name for GORM
func (InterfaceModel) TableName() string {
	return "feed_interfaces"
}

// ToDomain converts the persistence model to a domain Interface.
func (m *InterfaceModel) ToDomain() *feed.Interface {
	return &feed.Interface{
		ID:                       m.ID,
		Name:                     m.Name,
		ProviderID:               m.ProviderID,
		Anbieternr:               m.Anbieternr,
		UniqueField:              m.UniqueField,
		UniqueProviderField:      m.UniqueProviderField,
		ThirdPartyPolicy:         feed.ThirdPartyPolicy(m.ThirdPartyPolicy),
		ContactPersonActions:     m.ContactPersonActions,
		ContactPersonUniqueField: m.ContactPersonUniqueField,
		ContactAssignments: feed.ContactAssignments{
			Kauf:       m.AssignContactPersonKauf,
			MietePacht: m.AssignContactPersonMietePacht,
			Erbpacht:   m.AssignContactPersonErbpacht,
			Leasing:    m.AssignContactPersonLeasing,
		},
		SkipFields:               m.SkipFields,
		ImportFolder:             m.ImportFolder,
		FilesFolder:              m.FilesFolder,
		FilesFolderContactPerson: m.FilesFolderContactPerson,
		DontPublishRecords:       m.DontPublishRecords,
		LastSync:                 m.LastSync,
	}
}

// InterfaceMappingModel is the persistence model for one mapping rule. The
// selector columns hold the raw syntax; parsing happens when the rule is
// loaded into its domain form.
type InterfaceMappingModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	InterfaceID uuid.UUID `gorm:"type:uuid;index;not null"`

	OiFieldGroup string `gorm:"type:varchar(255);not null"`
	OiField      string `gorm:"type:varchar(255);not null"`

	Type      string `gorm:"type:varchar(32);not null"`
	Attribute string `gorm:"type:varchar(64);not null"`

	OiConditionField string `gorm:"type:varchar(255)"`
	OiConditionValue string `gorm:"type:varchar(255)"`
	ForceActive      bool   `gorm:"not null;default:false"`
	ForceValue       string `gorm:"type:varchar(255)"`

	FormatType          string `gorm:"type:varchar(16)"`
	Decimals            int    `gorm:"not null;default:0"`
	TextTransform       string `gorm:"type:varchar(32)"`
	Trim                bool   `gorm:"not null;default:false"`
	BooleanCompareValue string `gorm:"type:varchar(64)"`

	SaveImage bool `gorm:"not null;default:false"`
	Serialize bool `gorm:"not null;default:false"`
	Sorting   int  `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (InterfaceMappingModel) TableName() string {
	return "feed_interface_mappings"
}

// ToDomain converts the persistence model to a domain MappingRule, parsing
// the selector columns. Malformed selectors surface as errors here so an
// invalid configuration never reaches a run.
func (m *InterfaceMappingModel) ToDomain() (feed.MappingRule, error) {
	fieldSel, err := feed.ParseSelector(m.OiField)
	if err != nil {
		return feed.MappingRule{}, err
	}

	var condSel feed.Selector
	if m.OiConditionField != "" {
		condSel, err = feed.ParseSelector(m.OiConditionField)
		if err != nil {
			return feed.MappingRule{}, err
		}
	}

	return feed.MappingRule{
		ID:             m.ID,
		InterfaceID:    m.InterfaceID,
		GroupSelector:  m.OiFieldGroup,
		Field:          fieldSel,
		Kind:           catalog.RecordKind(m.Type),
		Attribute:      m.Attribute,
		Condition:      condSel,
		ConditionValue: m.OiConditionValue,
		ForceActive:    m.ForceActive,
		ForceValue:     m.ForceValue,
		Transform:      feed.TransformType(m.FormatType),
		Decimals:       m.Decimals,
		TextTransform:  m.TextTransform,
		Trim:           m.Trim,
		BooleanCompare: m.BooleanCompareValue,
		SaveImage:      m.SaveImage,
		Serialize:      m.Serialize,
	}, nil
}

// SyncHistoryModel is the persistence model for the append-only sync log.
type SyncHistoryModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	InterfaceID uuid.UUID `gorm:"type:uuid;index;not null"`
	Tstamp      time.Time `gorm:"index;not null"`
	Source      string    `gorm:"type:varchar(512);index;not null"`
	Username    string    `gorm:"type:varchar(128)"`
	Text        string    `gorm:"type:text"`
	Status      int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (SyncHistoryModel) TableName() string {
	return "feed_sync_histories"
}

// ToDomain converts the persistence model to a domain SyncHistoryEntry.
func (m *SyncHistoryModel) ToDomain() *feed.SyncHistoryEntry {
	return &feed.SyncHistoryEntry{
		ID:          m.ID,
		InterfaceID: m.InterfaceID,
		Tstamp:      m.Tstamp,
		Source:      m.Source,
		Username:    m.Username,
		Text:        m.Text,
		Status:      m.Status,
	}
}

// SyncHistoryModelFromDomain builds the persistence model from the entry.
func SyncHistoryModelFromDomain(e *feed.SyncHistoryEntry) *SyncHistoryModel {
	return &SyncHistoryModel{
		ID:          e.ID,
		InterfaceID: e.InterfaceID,
		Tstamp:      e.Tstamp,
		Source:      e.Source,
		Username:    e.Username,
		Text:        e.Text,
		Status:      e.Status,
	}
}
