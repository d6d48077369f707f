package feed

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/estatecms/backend/internal/domain/shared"
)

// SelectorKind enumerates the extraction modes of a field selector.
type SelectorKind int

const (
	// SelectElementText extracts the text content of the matched elements.
	SelectElementText SelectorKind = iota
	// SelectAttrLiteral extracts the literal value of a named attribute.
	SelectAttrLiteral
	// SelectAttrAll serializes all attributes of the matched element ("@*").
	SelectAttrAll
	// SelectAttrTruthyName returns the single attribute name whose value is
	// truthy ("@+").
	SelectAttrTruthyName
	// SelectAttrTruthyList serializes the attribute names whose values are
	// truthy ("@#").
	SelectAttrTruthyList
	// SelectNthChildName returns the name of the nth child element ("@[n]").
	SelectNthChildName
)

// Selector is the parsed form of a field selector string. The raw syntax is
// an element path, optionally followed by "@" and an attribute mode. Parsing
// happens once at configuration load so malformed selectors are rejected
// before a run starts.
type Selector struct {
	// Path is the '/'-separated element path relative to the matched group.
	// An empty path addresses the group element itself.
	Path string
	Kind SelectorKind
	// Attr is the attribute name for SelectAttrLiteral.
	Attr string
	// Nth is the 1-based child index for SelectNthChildName.
	Nth int
}

// IsZero reports whether the selector is unset
func (s Selector) IsZero() bool {
	return s == Selector{}
}

// Segments returns the element path split into its segments
func (s Selector) Segments() []string {
	if s.Path == "" {
		return nil
	}
	return strings.Split(s.Path, "/")
}

// String reconstructs the raw selector syntax
func (s Selector) String() string {
	switch s.Kind {
	case SelectAttrLiteral:
		return s.Path + "@" + s.Attr
	case SelectAttrAll:
		return s.Path + "@*"
	case SelectAttrTruthyName:
		return s.Path + "@+"
	case SelectAttrTruthyList:
		return s.Path + "@#"
	case SelectNthChildName:
		return fmt.Sprintf("%s@[%d]", s.Path, s.Nth)
	default:
		return s.Path
	}
}

// ParseSelector parses a raw field selector into its typed form. The
// attribute part follows the last "@": "*", "+", "#", "[n]" or a literal
// attribute name.
func ParseSelector(raw string) (Selector, error) {
	raw = strings.TrimSpace(raw)

	at := strings.LastIndex(raw, "@")
	if at < 0 {
		if err := validatePath(raw); err != nil {
			return Selector{}, err
		}
		return Selector{Path: raw, Kind: SelectElementText}, nil
	}

	path, attr := raw[:at], raw[at+1:]
	if err := validatePath(path); err != nil {
		return Selector{}, err
	}
	if attr == "" {
		return Selector{}, fmt.Errorf("%w: %q has an empty attribute part", shared.ErrInvalidSelector, raw)
	}

	sel := Selector{Path: path}

	switch {
	case attr == "*":
		sel.Kind = SelectAttrAll
	case attr == "+":
		sel.Kind = SelectAttrTruthyName
	case attr == "#":
		sel.Kind = SelectAttrTruthyList
	case strings.HasPrefix(attr, "["):
		if !strings.HasSuffix(attr, "]") {
			return Selector{}, fmt.Errorf("%w: %q has an unterminated child index", shared.ErrInvalidSelector, raw)
		}
		n, err := strconv.Atoi(attr[1 : len(attr)-1])
		if err != nil || n < 1 {
			return Selector{}, fmt.Errorf("%w: %q has an invalid child index", shared.ErrInvalidSelector, raw)
		}
		sel.Kind = SelectNthChildName
		sel.Nth = n
	default:
		sel.Kind = SelectAttrLiteral
		sel.Attr = attr
	}

	return sel, nil
}

func validatePath(path string) error {
	if path == "" {
		return nil
	}
	for _, seg := range strings.Split(path, "/") {
		if strings.TrimSpace(seg) == "" {
			return fmt.Errorf("%w: path %q contains an empty segment", shared.ErrInvalidSelector, path)
		}
	}
	return nil
}
