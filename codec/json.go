// Package codec transcodes instances to and from textual JSON and YAML.
// The core engine only produces and consumes in-memory trees; this layer is
// the thin textual boundary around it. JSON output is canonical: keys appear
// in declaration order, nested records recursively so.
package codec

import (
	"bytes"

	j "github.com/goccy/go-json"

	serializer "github.com/robertchase/serializer"
	"github.com/robertchase/serializer/i18n"
)

// DecodeJSON parses a JSON object and constructs an instance of schema s.
// Numbers are decoded as json.Number so integer text reaches the field types
// unrounded.
func DecodeJSON(s *serializer.Schema, data []byte) (*serializer.Instance, error) {
	dec := j.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, serializer.Issues{{
			Path: "/", Code: serializer.CodeParseError,
			Message: i18n.T(serializer.CodeParseError, nil), Cause: err,
		}}
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, serializer.Issues{{
			Path: "/", Code: serializer.CodeInvalidType,
			Message: i18n.T(serializer.CodeInvalidType, nil),
			Value:   serializer.ValueText(v), Hint: "expected object",
		}}
	}
	return serializer.Deserialize(s, m)
}

// EncodeJSON renders an instance as canonical JSON bytes with keys in
// declaration order. Unset optional fields are omitted.
func EncodeJSON(in *serializer.Instance) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := writeInstance(buf, in); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// elemTyped is implemented by sequence field types that know their element
// type (dsl.ListType).
type elemTyped interface {
	Elem() serializer.Type
}

func writeInstance(buf *bytes.Buffer, in *serializer.Instance) error {
	buf.WriteByte('{')
	first := true
	for _, f := range in.Schema().Fields() {
		if !in.Has(f.Name) {
			continue
		}
		v, err := in.Get(f.Name)
		if err != nil {
			return err
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		key, err := j.Marshal(f.Name)
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if err := writeValue(buf, f.Type, v); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

// writeValue recurses through records and sequences before falling back to
// go-json, so nested key order follows the nested schema rather than Go map
// iteration.
func writeValue(buf *bytes.Buffer, t serializer.Type, v any) error {
	switch x := v.(type) {
	case *serializer.Instance:
		return writeInstance(buf, x)
	case []any:
		var et serializer.Type
		if lt, ok := t.(elemTyped); ok {
			et = lt.Elem()
		}
		buf.WriteByte('[')
		for i, item := range x {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeValue(buf, et, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		if t != nil {
			v = t.Encode(v)
		}
		b, err := j.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(b)
		return nil
	}
}
