package lang

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"strux/pkg"
)

// EncodeJSON writes the document as JSON, preserving insertion order for
// document entries and struct fields. Non-ASCII text is rendered unescaped
// and no HTML escaping is applied. An indent of zero or less produces
// compact output; otherwise fields are indented by that many spaces.
//
// Encoding is a one-way transform: the output does not reconstruct the
// original source text.
func EncodeJSON(w io.Writer, doc *Document, indent int) error {
	data, err := doc.MarshalJSON()
	if err != nil {
		return pkg.ErrJSONMarshal.Wrap(err)
	}

	if indent > 0 {
		data = indentJSON(data, strings.Repeat(" ", indent))
	}

	if _, err := w.Write(append(data, '\n')); err != nil {
		return pkg.ErrWriteOutput.Wrap(err)
	}

	return nil
}

// EncodeYAML writes the document as YAML, preserving insertion order via
// ordered mapping nodes.
func EncodeYAML(ctx context.Context, w io.Writer, doc *Document, indent int) error {
	opts := []yaml.EncodeOption{}
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	}

	data, err := yaml.MarshalContext(ctx, doc.mapSlice(), opts...)
	if err != nil {
		return pkg.ErrYAMLMarshal.Wrap(err)
	}

	if _, err := w.Write(data); err != nil {
		return pkg.ErrWriteOutput.Wrap(err)
	}

	return nil
}

// MarshalJSON implements json.Marshaler for Document, emitting entries in
// insertion order.
func (d *Document) MarshalJSON() ([]byte, error) {
	return appendFields(nil, d.Fields()), nil
}

// MarshalJSON implements json.Marshaler for Struct, emitting fields in
// insertion order.
func (s *Struct) MarshalJSON() ([]byte, error) {
	return appendFields(nil, s.Fields()), nil
}

// MarshalJSON implements json.Marshaler for Value.
func (v Value) MarshalJSON() ([]byte, error) {
	return appendValue(nil, v), nil
}

func appendFields(dst []byte, fields []Field) []byte {
	dst = append(dst, '{')

	for i, f := range fields {
		if i > 0 {
			dst = append(dst, ',')
		}

		dst = appendQuoted(dst, f.Name)
		dst = append(dst, ':')
		dst = appendValue(dst, f.Value)
	}

	return append(dst, '}')
}

func appendValue(dst []byte, v Value) []byte {
	switch v.Type {
	case TypeInteger:
		return strconv.AppendInt(dst, v.Int, 10)

	case TypeText, TypeIdentifier:
		return appendQuoted(dst, v.Text)

	case TypeBoolean:
		return strconv.AppendBool(dst, v.Bool)

	case TypeList:
		dst = append(dst, '[')

		for i, elem := range v.List {
			if i > 0 {
				dst = append(dst, ',')
			}

			dst = appendValue(dst, elem)
		}

		return append(dst, ']')

	case TypeStruct:
		return appendFields(dst, v.Struct.Fields())

	default:
		return append(dst, "null"...)
	}
}

// appendQuoted appends s as a JSON string. Only the characters JSON
// requires to be escaped are escaped; non-ASCII runes pass through
// unmodified and HTML-significant characters are not escaped.
func appendQuoted(dst []byte, s string) []byte {
	dst = append(dst, '"')

	for _, c := range []byte(s) {
		switch {
		case c == '"':
			dst = append(dst, '\\', '"')
		case c == '\\':
			dst = append(dst, '\\', '\\')
		case c == '\n':
			dst = append(dst, '\\', 'n')
		case c == '\r':
			dst = append(dst, '\\', 'r')
		case c == '\t':
			dst = append(dst, '\\', 't')
		case c < 0x20:
			dst = append(dst, fmt.Sprintf(`\u%04x`, c)...)
		default:
			dst = append(dst, c)
		}
	}

	return append(dst, '"')
}

// indentJSON reformats compact JSON produced by the marshalers above.
// The input is trusted: it contains no insignificant whitespace, and the
// only quote handling required is tracking string boundaries.
func indentJSON(data []byte, indent string) []byte {
	var (
		out      []byte
		depth    int
		inString bool
		escaped  bool
	)

	newline := func() {
		out = append(out, '\n')
		for range depth {
			out = append(out, indent...)
		}
	}

	for i, c := range data {
		if inString {
			out = append(out, c)

			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}

			continue
		}

		switch c {
		case '"':
			inString = true

			out = append(out, c)

		case '{', '[':
			out = append(out, c)

			// Keep empty containers on one line.
			if i+1 < len(data) && (data[i+1] == '}' || data[i+1] == ']') {
				continue
			}

			depth++

			newline()

		case '}', ']':
			if i > 0 && data[i-1] != '{' && data[i-1] != '[' {
				depth--

				newline()
			}

			out = append(out, c)

		case ',':
			out = append(out, c)

			newline()

		case ':':
			out = append(out, c, ' ')

		default:
			out = append(out, c)
		}
	}

	return out
}

// mapSlice converts the document to an ordered YAML mapping.
func (d *Document) mapSlice() yaml.MapSlice {
	return fieldsToMapSlice(d.Fields())
}

func fieldsToMapSlice(fields []Field) yaml.MapSlice {
	ms := make(yaml.MapSlice, 0, len(fields))

	for _, f := range fields {
		ms = append(ms, yaml.MapItem{Key: f.Name, Value: f.Value.yamlValue()})
	}

	return ms
}

func (v Value) yamlValue() any {
	switch v.Type {
	case TypeInteger:
		return v.Int

	case TypeText, TypeIdentifier:
		return v.Text

	case TypeBoolean:
		return v.Bool

	case TypeList:
		elems := make([]any, 0, len(v.List))
		for _, elem := range v.List {
			elems = append(elems, elem.yamlValue())
		}

		return elems

	case TypeStruct:
		return fieldsToMapSlice(v.Struct.Fields())

	default:
		return nil
	}
}

// ToNative converts the document to native Go types for consumers that do
// not require insertion order, such as expression environments. Structs
// become map[string]any, lists become []any.
func (d *Document) ToNative() map[string]any {
	env := make(map[string]any, d.Len())

	for name, v := range d.All() {
		env[name] = v.ToNative()
	}

	return env
}

// ToNative converts a value to its native Go representation.
func (v Value) ToNative() any {
	switch v.Type {
	case TypeInteger:
		return v.Int

	case TypeText, TypeIdentifier:
		return v.Text

	case TypeBoolean:
		return v.Bool

	case TypeList:
		elems := make([]any, 0, len(v.List))
		for _, elem := range v.List {
			elems = append(elems, elem.ToNative())
		}

		return elems

	case TypeStruct:
		fields := make(map[string]any, v.Struct.Len())
		for name, fv := range v.Struct.All() {
			fields[name] = fv.ToNative()
		}

		return fields

	default:
		return nil
	}
}
