package codec_test

import (
	"strings"
	"testing"

	serializer "github.com/robertchase/serializer"
	"github.com/robertchase/serializer/codec"
	"github.com/robertchase/serializer/dsl"
)

func TestDecodeYAML(t *testing.T) {
	_, person := personSchemas(t)
	src := []byte("name: John Doe\naddress:\n  unit: A\n  floor: 3\n")
	in, err := codec.DecodeYAML(person, src)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	addr, _ := in.Get("address")
	if v, _ := addr.(*serializer.Instance).Get("floor"); v != int64(3) {
		t.Fatalf("floor = %v", v)
	}
}

func TestEncodeYAML_DeclarationOrder(t *testing.T) {
	_, person := personSchemas(t)
	in, err := serializer.Construct(person, nil, map[string]any{
		"address": map[string]any{"unit": "A", "floor": 3},
		"name":    "John Doe",
	})
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	out, err := codec.EncodeYAML(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := "name: John Doe\naddress:\n    floor: 3\n    unit: A\n"
	if string(out) != want {
		t.Fatalf("encode = %q, want %q", out, want)
	}
}

func TestEncodeYAML_Lists(t *testing.T) {
	team := dsl.Record("Team").
		Field("members", dsl.List(dsl.String())).
		MustBuild()
	in, err := serializer.Construct(team, nil, map[string]any{
		"members": []any{"a", "b"},
	})
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	out, err := codec.EncodeYAML(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	text := string(out)
	if !strings.Contains(text, "members:") || !strings.Contains(text, "- a") {
		t.Fatalf("encode = %q", text)
	}
}

func TestDecodeYAML_Errors(t *testing.T) {
	_, person := personSchemas(t)
	if _, err := codec.DecodeYAML(person, []byte("- 1\n- 2\n")); !serializer.IsCode(err, serializer.CodeInvalidType) {
		t.Fatalf("expected invalid_type, got %v", err)
	}
	if _, err := codec.DecodeYAML(person, []byte("name: [\n")); !serializer.IsCode(err, serializer.CodeParseError) {
		t.Fatalf("expected parse_error, got %v", err)
	}
}

func TestYAMLJSONAgree(t *testing.T) {
	_, person := personSchemas(t)
	fromJSON, err := codec.DecodeJSON(person, []byte(`{"name":"A","address":{"floor":2,"unit":"B"}}`))
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	fromYAML, err := codec.DecodeYAML(person, []byte("name: A\naddress: {floor: 2, unit: B}\n"))
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	j1, err := codec.EncodeJSON(fromJSON)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	j2, err := codec.EncodeJSON(fromYAML)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(j1) != string(j2) {
		t.Fatalf("%s != %s", j1, j2)
	}
}
