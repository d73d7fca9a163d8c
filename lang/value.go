package lang

import "iter"

// Type indicates the type of a value.
type Type int

const (
	// TypeInteger represents a 64-bit signed integer value.
	TypeInteger Type = iota

	// TypeText represents a text value.
	TypeText

	// TypeBoolean represents a boolean value.
	TypeBoolean

	// TypeList represents an ordered sequence of values.
	TypeList

	// TypeStruct represents an ordered mapping of field names to values.
	TypeStruct

	// TypeIdentifier represents a name with no resolvable binding, kept as
	// a literal placeholder.
	TypeIdentifier
)

// String returns a string representation of the value type.
func (t Type) String() string {
	switch t {
	case TypeInteger:
		return "Integer"
	case TypeText:
		return "Text"
	case TypeBoolean:
		return "Boolean"
	case TypeList:
		return "List"
	case TypeStruct:
		return "Struct"
	case TypeIdentifier:
		return "Identifier"
	default:
		return "Unknown"
	}
}

// Value is the tagged union produced by the parser. Exactly one of the
// payload fields is meaningful, selected by Type. Values are fully resolved
// when constructed; they hold no token references.
type Value struct {
	Type   Type
	Int    int64   // TypeInteger
	Text   string  // TypeText and TypeIdentifier
	Bool   bool    // TypeBoolean
	List   []Value // TypeList
	Struct *Struct // TypeStruct
}

// IntegerValue returns an integer value.
func IntegerValue(n int64) Value {
	return Value{Type: TypeInteger, Int: n}
}

// TextValue returns a text value.
func TextValue(s string) Value {
	return Value{Type: TypeText, Text: s}
}

// BooleanValue returns a boolean value.
func BooleanValue(b bool) Value {
	return Value{Type: TypeBoolean, Bool: b}
}

// ListValue returns a list value over the given elements.
func ListValue(elems ...Value) Value {
	return Value{Type: TypeList, List: elems}
}

// StructValue returns a struct value.
func StructValue(s *Struct) Value {
	return Value{Type: TypeStruct, Struct: s}
}

// IdentifierValue returns an identifier placeholder value.
func IdentifierValue(name string) Value {
	return Value{Type: TypeIdentifier, Text: name}
}

// Field is one name/value pair of a struct or document.
type Field struct {
	Name  string
	Value Value
}

// fieldList is an insertion-ordered name-to-value mapping. Re-assigning an
// existing name replaces the value but keeps the original position.
type fieldList struct {
	fields []Field
	index  map[string]int
}

// Set binds name to v, preserving insertion order across re-assignment.
func (m *fieldList) Set(name string, v Value) {
	if i, ok := m.index[name]; ok {
		m.fields[i].Value = v

		return
	}

	if m.index == nil {
		m.index = make(map[string]int)
	}

	m.index[name] = len(m.fields)
	m.fields = append(m.fields, Field{Name: name, Value: v})
}

// Get returns the value bound to name.
func (m *fieldList) Get(name string) (Value, bool) {
	i, ok := m.index[name]
	if !ok {
		return Value{}, false
	}

	return m.fields[i].Value, true
}

// Len returns the number of entries.
func (m *fieldList) Len() int { return len(m.fields) }

// Fields returns the entries in insertion order.
// The returned slice is shared; callers must not modify it.
func (m *fieldList) Fields() []Field { return m.fields }

// All returns an iterator over the entries in insertion order.
func (m *fieldList) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, f := range m.fields {
			if !yield(f.Name, f.Value) {
				return
			}
		}
	}
}

// Struct is an ordered struct literal: field names mapped to values with
// insertion order preserved.
type Struct struct {
	fieldList
}

// NewStruct creates an empty struct value.
func NewStruct() *Struct {
	return &Struct{}
}

// BareKey is the synthetic document key holding a bare top-level value that
// was not bound to any name.
const BareKey = "_value"

// Document is the top-level result of a parse: an ordered mapping of names
// to fully resolved values. A document with no named entries may contain a
// single BareKey entry holding a bare expression.
type Document struct {
	fieldList
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{}
}

// ConstTable holds the constants defined by ":=" statements during one
// parse session. Redefinition is permitted and overwrites silently; last
// write wins. Each parse invocation owns exactly one table.
type ConstTable struct {
	vals map[string]Value
}

// NewConstTable creates an empty constant table.
func NewConstTable() *ConstTable {
	return &ConstTable{vals: make(map[string]Value)}
}

// Define binds name to v, replacing any previous binding.
func (t *ConstTable) Define(name string, v Value) {
	t.vals[name] = v
}

// Lookup returns the value bound to name.
func (t *ConstTable) Lookup(name string) (Value, bool) {
	v, ok := t.vals[name]

	return v, ok
}

// Names returns the defined constant names in unspecified order.
func (t *ConstTable) Names() []string {
	names := make([]string, 0, len(t.vals))
	for name := range t.vals {
		names = append(names, name)
	}

	return names
}
