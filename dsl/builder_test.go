package dsl_test

import (
	"testing"

	serializer "github.com/robertchase/serializer"
	"github.com/robertchase/serializer/dsl"
)

func TestBuilder_FlagChaining(t *testing.T) {
	s, err := dsl.Record("Widget").
		Field("id", dsl.Int()).ReadOnly().
		Field("label", dsl.String()).Optional().
		Field("count", dsl.Int()).Default(0).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	fields := s.Fields()
	if !fields[0].Required || !fields[0].ReadOnly {
		t.Fatalf("id flags = %+v", fields[0])
	}
	if fields[1].Required {
		t.Fatalf("label should be optional")
	}
	if fields[2].Required || !fields[2].HasDefault {
		t.Fatalf("count flags = %+v", fields[2])
	}
}

func TestBuilder_DefaultValidatedAtBuild(t *testing.T) {
	_, err := dsl.Record("Widget").
		Field("count", dsl.Int()).Default("not an int").
		Build()
	iss, ok := serializer.AsIssues(err)
	if !ok {
		t.Fatalf("expected issues, got %v", err)
	}
	if iss[0].Path != "/count" || iss[0].Code != serializer.CodeInvalidType {
		t.Fatalf("issue = %+v", iss[0])
	}
}

func TestBuilder_Constant(t *testing.T) {
	s := dsl.Record("Doc").
		Field("version", dsl.Int()).Constant(2).
		Field("body", dsl.String()).Optional().
		MustBuild()

	in, err := serializer.Construct(s, nil, nil)
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	if v, _ := in.Get("version"); v != int64(2) {
		t.Fatalf("version = %v", v)
	}

	// a constant can never be supplied, even with the stored value
	if _, err := serializer.Construct(s, nil, map[string]any{"version": 2}); !serializer.IsCode(err, serializer.CodeReadOnly) {
		t.Fatalf("expected read_only, got %v", err)
	}
	if err := in.Set("version", 3); !serializer.IsCode(err, serializer.CodeReadOnly) {
		t.Fatalf("expected read_only on Set, got %v", err)
	}
}

func TestBuilder_ConstantDefaultMustCoerce(t *testing.T) {
	_, err := dsl.Record("Doc").
		Field("version", dsl.Int()).Constant("two").
		Build()
	iss, ok := serializer.AsIssues(err)
	if !ok {
		t.Fatalf("expected issues, got %v", err)
	}
	if iss[0].Code != serializer.CodeConstantDefault || iss[0].Path != "/version" {
		t.Fatalf("issue = %+v", iss[0])
	}
	if iss[0].Cause == nil {
		t.Fatalf("cause should carry the coercion failure")
	}
}

func TestBuilder_MustBuildPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	dsl.Record("Dup").
		Field("a", dsl.Int()).
		Field("a", dsl.Int()).
		MustBuild()
}

func TestBuilder_RegisterAndRef(t *testing.T) {
	reg := serializer.NewRegistry()

	leaf, err := dsl.Record("Leaf").
		Field("n", dsl.Int()).
		Build()
	if err != nil {
		t.Fatalf("build leaf: %v", err)
	}
	if err := reg.Register(leaf); err != nil {
		t.Fatalf("register: %v", err)
	}

	branch, err := dsl.Record("Branch").
		Field("leaf", dsl.RefIn(reg, "Leaf")).
		Build()
	if err != nil {
		t.Fatalf("build branch: %v", err)
	}

	in, err := serializer.Construct(branch, nil, map[string]any{
		"leaf": map[string]any{"n": 1},
	})
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	out := serializer.Serialize(in)
	nested := out["leaf"].(map[string]any)
	if nested["n"] != int64(1) {
		t.Fatalf("nested n = %v", nested["n"])
	}
}
