package feed

import (
	"fmt"
	"strings"

	"github.com/estatecms/backend/internal/domain/catalog"
	"github.com/estatecms/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TransformType enumerates the per-field value transforms.
type TransformType string

const (
	TransformNone    TransformType = ""
	TransformNumber  TransformType = "number"
	TransformDate    TransformType = "date"
	TransformText    TransformType = "text"
	TransformBoolean TransformType = "boolean"
)

// Text transform options for TransformText.
const (
	TextLowercase         = "lowercase"
	TextUppercase         = "uppercase"
	TextCapitalize        = "capitalize"
	TextRemoveSpecialChar = "removespecialchar"
)

// MappingRule maps one feed selector onto one destination attribute. Rules
// are applied in save-image-first order so asset references are available to
// later rules of the same listing.
type MappingRule struct {
	ID          uuid.UUID
	InterfaceID uuid.UUID

	// GroupSelector matches the source groups below a listing element;
	// Field extracts the value from each matched group.
	GroupSelector string
	Field         Selector

	Kind      catalog.RecordKind
	Attribute string

	// Condition gates the rule per matched group. ConditionValue supports
	// '|'-delimited alternation. When the condition fails and ForceActive is
	// set, ForceValue is written instead of skipping the rule.
	Condition      Selector
	ConditionValue string
	ForceActive    bool
	ForceValue     string

	Transform      TransformType
	Decimals       int
	TextTransform  string
	Trim           bool
	BooleanCompare string

	SaveImage bool
	Serialize bool
}

// HasCondition reports whether the rule carries a condition
func (m *MappingRule) HasCondition() bool {
	return !m.Condition.IsZero() && m.ConditionValue != ""
}

// MatchesCondition checks the resolved condition field value against the
// rule's expected value, honoring '|'-delimited alternation.
func (m *MappingRule) MatchesCondition(fieldValue string) bool {
	alternatives := strings.Split(m.ConditionValue, "|")
	if len(alternatives) > 1 {
		for _, alt := range alternatives {
			if alt == fieldValue {
				return true
			}
		}
		return false
	}
	return m.ConditionValue == fieldValue
}

// Validate checks the rule against the destination schema of its record
// kind. Unknown destination attributes are rejected here, at load time,
// rather than when the record is written.
func (m *MappingRule) Validate() error {
	if !catalog.IsValidRecordKind(string(m.Kind)) {
		return fmt.Errorf("%w: mapping %s has unknown record kind %q", shared.ErrInvalidInput, m.ID, m.Kind)
	}
	if m.GroupSelector == "" {
		return fmt.Errorf("%w: mapping %s has no group selector", shared.ErrInvalidInput, m.ID)
	}
	if m.Attribute == "" {
		return fmt.Errorf("%w: mapping %s has no destination attribute", shared.ErrInvalidInput, m.ID)
	}
	if !catalog.SchemaFor(m.Kind).Has(m.Attribute) {
		return fmt.Errorf("%w: mapping %s targets %q (%s)", shared.ErrUnknownAttribute, m.ID, m.Attribute, m.Kind)
	}
	switch m.Transform {
	case TransformNone, TransformNumber, TransformDate, TransformText, TransformBoolean:
	default:
		return fmt.Errorf("%w: mapping %s has unknown transform %q", shared.ErrInvalidInput, m.ID, m.Transform)
	}
	if m.Decimals < 0 {
		return fmt.Errorf("%w: mapping %s has negative decimals", shared.ErrInvalidInput, m.ID)
	}
	return nil
}

// SortRules orders mapping rules save-image-first, keeping the configured
// order within each partition stable. Asset rules must run before rules that
// depend on accumulated values of the same listing.
func SortRules(rules []MappingRule) []MappingRule {
	sorted := make([]MappingRule, 0, len(rules))
	for _, r := range rules {
		if r.SaveImage {
			sorted = append(sorted, r)
		}
	}
	for _, r := range rules {
		if !r.SaveImage {
			sorted = append(sorted, r)
		}
	}
	return sorted
}
