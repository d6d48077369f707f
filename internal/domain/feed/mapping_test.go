package feed

import (
	"errors"
	"testing"

	"github.com/estatecms/backend/internal/domain/catalog"
	"github.com/estatecms/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRule() MappingRule {
	return MappingRule{
		ID:            uuid.New(),
		GroupSelector: "geo",
		Field:         Selector{Path: "plz", Kind: SelectElementText},
		Kind:          catalog.KindRealEstate,
		Attribute:     "plz",
	}
}

func TestMappingRuleMatchesCondition(t *testing.T) {
	rule := validRule()
	rule.Condition = Selector{Path: "vermarktungsart", Kind: SelectAttrLiteral, Attr: "KAUF"}

	t.Run("single value", func(t *testing.T) {
		rule.ConditionValue = "true"
		assert.True(t, rule.MatchesCondition("true"))
		assert.False(t, rule.MatchesCondition("false"))
	})

	t.Run("alternation", func(t *testing.T) {
		rule.ConditionValue = "haus|wohnung|grundstueck"
		assert.True(t, rule.MatchesCondition("wohnung"))
		assert.False(t, rule.MatchesCondition("buero"))
	})

	t.Run("has condition requires value", func(t *testing.T) {
		rule.ConditionValue = ""
		assert.False(t, rule.HasCondition())
		rule.ConditionValue = "true"
		assert.True(t, rule.HasCondition())
	})
}

func TestMappingRuleValidate(t *testing.T) {
	t.Run("valid rule", func(t *testing.T) {
		rule := validRule()
		require.NoError(t, rule.Validate())
	})

	t.Run("unknown record kind", func(t *testing.T) {
		rule := validRule()
		rule.Kind = "supplier"
		assert.Error(t, rule.Validate())
	})

	t.Run("missing group selector", func(t *testing.T) {
		rule := validRule()
		rule.GroupSelector = ""
		assert.Error(t, rule.Validate())
	})

	t.Run("unknown destination attribute", func(t *testing.T) {
		rule := validRule()
		rule.Attribute = "doesNotExist"
		err := rule.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrUnknownAttribute))
	})

	t.Run("contact attribute on listing kind rejected", func(t *testing.T) {
		rule := validRule()
		rule.Attribute = "emailDirekt"
		assert.Error(t, rule.Validate())
	})

	t.Run("unknown transform", func(t *testing.T) {
		rule := validRule()
		rule.Transform = "currency"
		assert.Error(t, rule.Validate())
	})

	t.Run("negative decimals", func(t *testing.T) {
		rule := validRule()
		rule.Transform = TransformNumber
		rule.Decimals = -1
		assert.Error(t, rule.Validate())
	})
}

func TestSortRules(t *testing.T) {
	a := validRule()
	a.Attribute = "plz"
	b := validRule()
	b.Attribute = "titleImageSRC"
	b.SaveImage = true
	c := validRule()
	c.Attribute = "ort"
	d := validRule()
	d.Attribute = "imageSRC"
	d.SaveImage = true

	sorted := SortRules([]MappingRule{a, b, c, d})

	require.Len(t, sorted, 4)
	assert.Equal(t, "titleImageSRC", sorted[0].Attribute)
	assert.Equal(t, "imageSRC", sorted[1].Attribute)
	assert.Equal(t, "plz", sorted[2].Attribute)
	assert.Equal(t, "ort", sorted[3].Attribute)
}
