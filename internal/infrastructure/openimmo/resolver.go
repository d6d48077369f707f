package openimmo

import (
	"encoding/json"
	"strings"

	"github.com/estatecms/backend/internal/domain/feed"
)

// Value is the result of resolving a selector against a group: nothing, one
// scalar, or a list of values.
type Value struct {
	items []string
}

// ValueOf builds a value from the given items
func ValueOf(items ...string) Value {
	return Value{items: items}
}

// IsNil reports whether the selector matched nothing
func (v Value) IsNil() bool {
	return len(v.items) == 0
}

// IsList reports whether more than one node matched
func (v Value) IsList() bool {
	return len(v.items) > 1
}

// Scalar returns the single result, or the first of a list
func (v Value) Scalar() string {
	if len(v.items) == 0 {
		return ""
	}
	return v.items[0]
}

// Items returns all matched values
func (v Value) Items() []string {
	return v.items
}

// Encode flattens the value to one string: the scalar itself, or a JSON
// array when more than one node matched.
func (v Value) Encode() string {
	if v.IsList() {
		return EncodeList(v.items)
	}
	return v.Scalar()
}

// EncodeList serializes multiple values into the single-string list form
// stored on record attributes.
func EncodeList(items []string) string {
	b, err := json.Marshal(items)
	if err != nil {
		return ""
	}
	return string(b)
}

// Resolve evaluates a parsed selector against a matched source group. It is
// pure: zero matches yield a nil value, exactly one a trimmed scalar, more
// than one a list.
func Resolve(group *Node, sel feed.Selector) Value {
	if group == nil {
		return Value{}
	}

	nodes := navigate(group, sel.Path)
	if len(nodes) == 0 {
		return Value{}
	}

	var items []string
	for _, node := range nodes {
		switch sel.Kind {
		case feed.SelectElementText:
			items = append(items, strings.TrimSpace(node.Text))
		case feed.SelectAttrLiteral:
			if v, ok := node.Attr(sel.Attr); ok {
				items = append(items, strings.TrimSpace(v))
			}
		case feed.SelectAttrAll:
			if len(node.Attrs) > 0 {
				items = append(items, encodeAttrs(node.Attrs))
			}
		case feed.SelectAttrTruthyName:
			if name := lastTruthyAttr(node.Attrs); name != "" {
				items = append(items, name)
			}
		case feed.SelectAttrTruthyList:
			if names := truthyAttrs(node.Attrs); len(names) > 0 {
				items = append(items, EncodeList(names))
			}
		case feed.SelectNthChildName:
			if sel.Nth >= 1 && sel.Nth <= len(node.Children) {
				items = append(items, node.Children[sel.Nth-1].Name)
			}
		}
	}

	return Value{items: items}
}

// navigate resolves the element path of a selector. A multi-segment path
// first descends to the parent group named by all but the last segment and
// resolves the final segment below the first such parent.
func navigate(group *Node, path string) []*Node {
	if path == "" {
		return []*Node{group}
	}
	slash := strings.LastIndex(path, "/")
	if slash < 0 {
		return group.Find(path)
	}
	parent := group.First(path[:slash])
	if parent == nil {
		return nil
	}
	return parent.Find(path[slash+1:])
}

func isTruthy(v string) bool {
	return v == "true" || v == "1"
}

func lastTruthyAttr(attrs []Attr) string {
	name := ""
	for _, a := range attrs {
		if isTruthy(a.Value) {
			name = a.Name
		}
	}
	return name
}

func truthyAttrs(attrs []Attr) []string {
	var names []string
	for _, a := range attrs {
		if isTruthy(a.Value) {
			names = append(names, a.Name)
		}
	}
	return names
}

func encodeAttrs(attrs []Attr) string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		m[a.Name] = a.Value
	}
	b, err := json.Marshal(m)
	if err != nil {
		return ""
	}
	return string(b)
}
