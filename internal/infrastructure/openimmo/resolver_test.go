package openimmo

import (
	"strings"
	"testing"

	"github.com/estatecms/backend/internal/domain/feed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingXML = `<?xml version="1.0" encoding="UTF-8"?>
<immobilie>
	<objektkategorie>
		<vermarktungsart KAUF="true" MIETE_PACHT="false"/>
		<nutzungsart WOHNEN="1" GEWERBE="0"/>
		<objektart>
			<wohnung wohnungtyp="ETAGE"/>
		</objektart>
	</objektkategorie>
	<geo>
		<plz> 20095 </plz>
		<ort>Hamburg</ort>
	</geo>
	<preise>
		<kaufpreis>250000.00</kaufpreis>
	</preise>
	<anhang>
		<anhangtitel>Titelbild</anhangtitel>
		<daten>
			<pfad>bild1.jpg</pfad>
		</daten>
	</anhang>
	<anhang>
		<daten>
			<pfad>bild2.jpg</pfad>
		</daten>
	</anhang>
</immobilie>`

func parseListing(t *testing.T) *Node {
	t.Helper()
	node, err := Parse(strings.NewReader(listingXML))
	require.NoError(t, err)
	return node
}

func mustSelector(t *testing.T, raw string) feed.Selector {
	t.Helper()
	sel, err := feed.ParseSelector(raw)
	require.NoError(t, err)
	return sel
}

func TestResolveElementText(t *testing.T) {
	listing := parseListing(t)

	t.Run("single match is trimmed scalar", func(t *testing.T) {
		v := Resolve(listing, mustSelector(t, "geo/plz"))
		assert.False(t, v.IsNil())
		assert.False(t, v.IsList())
		assert.Equal(t, "20095", v.Scalar())
	})

	t.Run("no match is nil", func(t *testing.T) {
		v := Resolve(listing, mustSelector(t, "geo/strasse"))
		assert.True(t, v.IsNil())
		assert.Equal(t, "", v.Scalar())
	})

	t.Run("multiple matches are a list", func(t *testing.T) {
		v := Resolve(listing, mustSelector(t, "anhang/daten/pfad"))
		assert.True(t, v.IsList())
		assert.Equal(t, []string{"bild1.jpg", "bild2.jpg"}, v.Items())
		assert.Equal(t, `["bild1.jpg","bild2.jpg"]`, v.Encode())
	})
}

func TestResolveAttributeModes(t *testing.T) {
	listing := parseListing(t)

	t.Run("literal attribute", func(t *testing.T) {
		v := Resolve(listing, mustSelector(t, "objektkategorie/vermarktungsart@KAUF"))
		assert.Equal(t, "true", v.Scalar())
	})

	t.Run("missing literal attribute is nil", func(t *testing.T) {
		v := Resolve(listing, mustSelector(t, "objektkategorie/vermarktungsart@ERBPACHT"))
		assert.True(t, v.IsNil())
	})

	t.Run("serialize all attributes", func(t *testing.T) {
		v := Resolve(listing, mustSelector(t, "objektkategorie/vermarktungsart@*"))
		assert.JSONEq(t, `{"KAUF":"true","MIETE_PACHT":"false"}`, v.Scalar())
	})

	t.Run("truthy attribute name", func(t *testing.T) {
		v := Resolve(listing, mustSelector(t, "objektkategorie/nutzungsart@+"))
		assert.Equal(t, "WOHNEN", v.Scalar())
	})

	t.Run("truthy attribute list", func(t *testing.T) {
		v := Resolve(listing, mustSelector(t, "objektkategorie/vermarktungsart@#"))
		assert.Equal(t, `["KAUF"]`, v.Scalar())
	})

	t.Run("nth child name", func(t *testing.T) {
		v := Resolve(listing, mustSelector(t, "objektkategorie/objektart@[1]"))
		assert.Equal(t, "wohnung", v.Scalar())

		out := Resolve(listing, mustSelector(t, "objektkategorie/objektart@[3]"))
		assert.True(t, out.IsNil())
	})
}

func TestResolveOnGroupElement(t *testing.T) {
	listing := parseListing(t)
	group := listing.First("objektkategorie/objektart/wohnung")
	require.NotNil(t, group)

	v := Resolve(group, mustSelector(t, "@wohnungtyp"))
	assert.Equal(t, "ETAGE", v.Scalar())
}

func TestParseErrors(t *testing.T) {
	t.Run("malformed document", func(t *testing.T) {
		_, err := Parse(strings.NewReader("<openimmo><anbieter></openimmo>"))
		assert.Error(t, err)
	})

	t.Run("empty document", func(t *testing.T) {
		_, err := Parse(strings.NewReader(""))
		assert.Error(t, err)
	})
}

func TestParseCharset(t *testing.T) {
	latin := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n<immobilie><geo><ort>M\xfcnchen</ort></geo></immobilie>"
	node, err := Parse(strings.NewReader(latin))
	require.NoError(t, err)
	assert.Equal(t, "München", node.ChildText("geo/ort"))
}

func TestNodeNavigation(t *testing.T) {
	listing := parseListing(t)

	assert.Len(t, listing.Find("anhang"), 2)
	assert.Nil(t, listing.Find("unknown"))
	assert.Equal(t, "Hamburg", listing.ChildText("geo/ort"))
	assert.Equal(t, "", listing.ChildText("geo/land"))
}
