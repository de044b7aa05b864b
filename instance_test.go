package serializer_test

import (
	"testing"

	serializer "github.com/robertchase/serializer"
	"github.com/robertchase/serializer/dsl"
)

func TestInstance_GetSet(t *testing.T) {
	s := basicSchema(t)
	in, err := s.New(1)
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	if err := in.Set("attr_a", "42"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, _ := in.Get("attr_a"); v != int64(42) {
		t.Fatalf("attr_a = %v, want 42", v)
	}
}

func TestInstance_UndefinedField(t *testing.T) {
	s := basicSchema(t)
	in, _ := s.New(1)

	if _, err := in.Get("attr_b"); !serializer.IsCode(err, serializer.CodeUnknownField) {
		t.Fatalf("get: expected unknown_field, got %v", err)
	}
	if err := in.Set("attr_b", "error"); !serializer.IsCode(err, serializer.CodeUnknownField) {
		t.Fatalf("set: expected unknown_field, got %v", err)
	}
	if err := in.Unset("attr_b"); !serializer.IsCode(err, serializer.CodeUnknownField) {
		t.Fatalf("unset: expected unknown_field, got %v", err)
	}
	if in.Has("attr_b") {
		t.Fatalf("Has should be false for undefined names")
	}
}

func TestInstance_UnsetField(t *testing.T) {
	s, err := dsl.Record("Sparse").
		Field("opt", dsl.Int()).Optional().
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	in, err := s.New()
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	if _, err := in.Get("opt"); !serializer.IsCode(err, serializer.CodeUnsetField) {
		t.Fatalf("expected unset_field, got %v", err)
	}
	if err := in.Set("opt", 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, _ := in.Get("opt"); v != int64(0) {
		t.Fatalf("opt = %v, want 0", v)
	}
	if err := in.Unset("opt"); err != nil {
		t.Fatalf("unset: %v", err)
	}
	if in.Has("opt") {
		t.Fatalf("opt should be unset again")
	}
	if err := in.Unset("opt"); !serializer.IsCode(err, serializer.CodeUnsetField) {
		t.Fatalf("double unset: expected unset_field, got %v", err)
	}
}

func TestInstance_ReadOnlyFreeze(t *testing.T) {
	s, err := dsl.Record("Frozen").
		Field("attr_a", dsl.Int()).ReadOnly().
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	in, err := s.New(1)
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	if err := in.Set("attr_a", 2); !serializer.IsCode(err, serializer.CodeReadOnly) {
		t.Fatalf("expected read_only, got %v", err)
	}
	if v, _ := in.Get("attr_a"); v != int64(1) {
		t.Fatalf("attr_a = %v, want 1 (unchanged after rejected write)", v)
	}
	if err := in.Unset("attr_a"); !serializer.IsCode(err, serializer.CodeReadOnly) {
		t.Fatalf("unset: expected read_only, got %v", err)
	}
}

func TestInstance_ReadOnlyFirstWriteExempt(t *testing.T) {
	s, err := dsl.Record("LateFrozen").
		Field("attr_a", dsl.Int()).ReadOnly().Optional().
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	in, err := s.New()
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	// unset at construction, so the first write is allowed
	if err := in.Set("attr_a", 5); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := in.Set("attr_a", 6); !serializer.IsCode(err, serializer.CodeReadOnly) {
		t.Fatalf("second write: expected read_only, got %v", err)
	}
	if v, _ := in.Get("attr_a"); v != int64(5) {
		t.Fatalf("attr_a = %v, want 5", v)
	}
}

func TestInstance_TypeMismatchKeepsValue(t *testing.T) {
	s := basicSchema(t)
	in, _ := s.New(1)

	err := in.Set("attr_a", "three")
	if !serializer.IsCode(err, serializer.CodeInvalidType) {
		t.Fatalf("expected invalid_type, got %v", err)
	}
	iss, _ := serializer.AsIssues(err)
	it := iss[0]
	if it.Path != "/attr_a" || it.Type != "int" || it.Value != "three" {
		t.Fatalf("issue should name field, type, and value: %+v", it)
	}
	if v, _ := in.Get("attr_a"); v != int64(1) {
		t.Fatalf("attr_a = %v, want previous value 1", v)
	}
}

func TestInstance_NullWrite(t *testing.T) {
	s, err := dsl.Record("Mixed").
		Field("req", dsl.Int()).
		Field("opt", dsl.Int()).Optional().
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	in, err := s.FromMap(map[string]any{"req": 1, "opt": 2})
	if err != nil {
		t.Fatalf("construct: %v", err)
	}

	if err := in.Set("req", nil); !serializer.IsCode(err, serializer.CodeNullValue) {
		t.Fatalf("expected null_value, got %v", err)
	}
	if v, _ := in.Get("req"); v != int64(1) {
		t.Fatalf("req = %v, want 1", v)
	}

	if err := in.Set("opt", nil); err != nil {
		t.Fatalf("null to optional: %v", err)
	}
	if in.Has("opt") {
		t.Fatalf("null write should unset an optional field")
	}
}
