package catalog

// Attribute declares one destination attribute of a record kind together
// with the default applied when a mapping rule resolves no value.
type Attribute struct {
	Name    string
	Default string
}

// AttributeSchema is the declared attribute set of one record kind. Mapping
// rules are validated against it at configuration-load time so that unknown
// destination attributes are rejected before a run starts.
type AttributeSchema struct {
	kind  RecordKind
	attrs map[string]Attribute
}

// NewAttributeSchema creates a schema for the given record kind
func NewAttributeSchema(kind RecordKind, attrs []Attribute) *AttributeSchema {
	m := make(map[string]Attribute, len(attrs))
	for _, a := range attrs {
		m[a.Name] = a
	}
	return &AttributeSchema{kind: kind, attrs: m}
}

// Kind returns the record kind the schema describes
func (s *AttributeSchema) Kind() RecordKind {
	return s.kind
}

// Has reports whether the attribute is declared
func (s *AttributeSchema) Has(name string) bool {
	_, ok := s.attrs[name]
	return ok
}

// Default returns the declared default for the attribute and whether the
// attribute exists in the schema.
func (s *AttributeSchema) Default(name string) (string, bool) {
	a, ok := s.attrs[name]
	return a.Default, ok
}

// ApplyDefault writes the schema default onto the record if the attribute is
// declared. Undeclared attributes are left untouched.
func (s *AttributeSchema) ApplyDefault(r Record, name string) {
	if a, ok := s.attrs[name]; ok {
		r.Set(name, a.Default)
	}
}

// RealEstateSchema returns the declared attribute set of listing records.
// Attribute names follow the OpenImmo vocabulary used by the catalog tables.
func RealEstateSchema() *AttributeSchema {
	return NewAttributeSchema(KindRealEstate, []Attribute{
		{Name: "objektnrExtern"},
		{Name: "objektnrIntern"},
		{Name: "anbieternr"},
		{Name: "alias"},
		{Name: "objekttitel"},
		{Name: "objektart"},
		{Name: "nutzungsart"},
		{Name: "vermarktungsartKauf", Default: "0"},
		{Name: "vermarktungsartMietePacht", Default: "0"},
		{Name: "vermarktungsartErbpacht", Default: "0"},
		{Name: "vermarktungsartLeasing", Default: "0"},
		{Name: "kaufpreis", Default: "0"},
		{Name: "mietpreisProQm", Default: "0"},
		{Name: "kaltmiete", Default: "0"},
		{Name: "warmmiete", Default: "0"},
		{Name: "nebenkosten", Default: "0"},
		{Name: "courtage"},
		{Name: "wohnflaeche", Default: "0"},
		{Name: "nutzflaeche", Default: "0"},
		{Name: "grundstuecksflaeche", Default: "0"},
		{Name: "anzahlZimmer", Default: "0"},
		{Name: "anzahlSchlafzimmer", Default: "0"},
		{Name: "anzahlBadezimmer", Default: "0"},
		{Name: "etage"},
		{Name: "anzahlEtagen"},
		{Name: "baujahr"},
		{Name: "zustand"},
		{Name: "heizungsart"},
		{Name: "energietraeger"},
		{Name: "energiepassEnergieverbrauchkennwert"},
		{Name: "plz"},
		{Name: "ort"},
		{Name: "strasse"},
		{Name: "hausnummer"},
		{Name: "land"},
		{Name: "breitengrad"},
		{Name: "laengengrad"},
		{Name: "objektbeschreibung"},
		{Name: "ausstattBeschr"},
		{Name: "lage"},
		{Name: "sonstigeAngaben"},
		{Name: "dreizeiler"},
		{Name: "objektText"},
		{Name: "verfuegbarAb"},
		{Name: "abdatum"},
		{Name: "balkon", Default: "0"},
		{Name: "terrasse", Default: "0"},
		{Name: "garten", Default: "0"},
		{Name: "keller", Default: "0"},
		{Name: "aufzug", Default: "0"},
		{Name: "barrierefrei", Default: "0"},
		{Name: "moebliert", Default: "0"},
		{Name: "stellplatzart"},
		{Name: "anzahlStellplaetze", Default: "0"},
		{Name: "titleImageSRC"},
		{Name: "imageSRC"},
		{Name: "planImageSRC"},
		{Name: "exteriorViewImageSRC"},
		{Name: "interiorViewImageSRC"},
		{Name: "mapViewImageSRC"},
		{Name: "panoramaImageSRC"},
		{Name: "epassSkalaImageSRC"},
		{Name: "logoImageSRC"},
		{Name: "qrImageSRC"},
		{Name: "documentSRC"},
		{Name: "linkVideotour"},
		{Name: "linkObjektUrl"},
	})
}

// ContactPersonSchema returns the declared attribute set of contact-person
// records.
func ContactPersonSchema() *AttributeSchema {
	return NewAttributeSchema(KindContactPerson, []Attribute{
		{Name: "anrede"},
		{Name: "titel"},
		{Name: "vorname"},
		{Name: "name"},
		{Name: "firma"},
		{Name: "position"},
		{Name: "strasse"},
		{Name: "hausnummer"},
		{Name: "plz"},
		{Name: "ort"},
		{Name: "land"},
		{Name: "telefonZentrale"},
		{Name: "telefonDurchwahl"},
		{Name: "telefonMobil"},
		{Name: "telefonPrivat"},
		{Name: "fax"},
		{Name: "email"},
		{Name: "emailDirekt"},
		{Name: "urlHomepage"},
		{Name: "personennummer"},
		{Name: "singleSRC"},
		{Name: "freitextfeld"},
	})
}

// SchemaFor returns the attribute schema for the given record kind.
func SchemaFor(kind RecordKind) *AttributeSchema {
	if kind == KindContactPerson {
		return ContactPersonSchema()
	}
	return RealEstateSchema()
}
