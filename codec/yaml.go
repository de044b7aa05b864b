package codec

import (
	"fmt"

	"gopkg.in/yaml.v3"

	serializer "github.com/robertchase/serializer"
	"github.com/robertchase/serializer/i18n"
)

// DecodeYAML parses a YAML mapping and constructs an instance of schema s.
func DecodeYAML(s *serializer.Schema, data []byte) (*serializer.Instance, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, serializer.Issues{{
			Path: "/", Code: serializer.CodeParseError,
			Message: i18n.T(serializer.CodeParseError, nil), Cause: err,
		}}
	}
	m, ok := normalizeYAML(v).(map[string]any)
	if !ok {
		return nil, serializer.Issues{{
			Path: "/", Code: serializer.CodeInvalidType,
			Message: i18n.T(serializer.CodeInvalidType, nil),
			Value:   serializer.ValueText(v), Hint: "expected mapping",
		}}
	}
	return serializer.Deserialize(s, m)
}

// EncodeYAML renders an instance as YAML with keys in declaration order.
func EncodeYAML(in *serializer.Instance) ([]byte, error) {
	node, err := yamlInstance(in)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(node)
}

// normalizeYAML rewrites any-keyed mappings to string keys so YAML input
// enters the same constructor path as JSON input.
func normalizeYAML(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = normalizeYAML(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = normalizeYAML(val)
		}
		return out
	default:
		return v
	}
}

func yamlInstance(in *serializer.Instance) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, f := range in.Schema().Fields() {
		if !in.Has(f.Name) {
			continue
		}
		v, err := in.Get(f.Name)
		if err != nil {
			return nil, err
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Name}
		val, err := yamlValue(f.Type, v)
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content, key, val)
	}
	return node, nil
}

func yamlValue(t serializer.Type, v any) (*yaml.Node, error) {
	switch x := v.(type) {
	case *serializer.Instance:
		return yamlInstance(x)
	case []any:
		var et serializer.Type
		if lt, ok := t.(elemTyped); ok {
			et = lt.Elem()
		}
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range x {
			child, err := yamlValue(et, item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	default:
		if t != nil {
			v = t.Encode(v)
		}
		node := &yaml.Node{}
		if err := node.Encode(v); err != nil {
			return nil, err
		}
		return node, nil
	}
}
