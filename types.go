package serializer

import "github.com/robertchase/serializer/i18n"

// Type validates and normalizes candidate values for one field. Implementations
// live in the dsl package; only the nested-record type is defined here because
// it routes through the constructor.
type Type interface {
	// Name is the declared type name used in diagnostics (for example "int").
	Name() string
	// Coerce validates a candidate and returns its normalized form. The narrow
	// convenience rule applies: only string->numeric and same-value
	// numeric->numeric conversions are permitted; anything else of the wrong
	// kind fails with an invalid_type Issue.
	Coerce(v any) (any, error)
	// Encode projects a previously coerced value onto the plain JSON-compatible
	// tree (primitives, sequences, mappings). It never fails: only normalized
	// values reach it.
	Encode(v any) any
}

// SchemaCarrier is implemented by field types that wrap a record schema
// (nested records, and containers of them). The declaration-time cycle walk
// uses it to traverse type references.
type SchemaCarrier interface {
	RecordSchema() *Schema
}

// Broken is implemented by placeholder types that failed to resolve (for
// example a dsl.Ref to an unregistered name). Schema construction surfaces the
// carried error as a declaration-time failure.
type Broken interface {
	BrokenErr() error
}

// Nested returns a field type whose values are records of schema s.
// Accepted candidates: an existing instance of s, a mapping (keyword-style
// construction), or a sequence (positional-style construction).
func Nested(s *Schema) Type { return nestedType{s: s} }

type nestedType struct {
	s *Schema
}

func (n nestedType) Name() string          { return n.s.Name() }
func (n nestedType) RecordSchema() *Schema { return n.s }

func (n nestedType) Coerce(v any) (any, error) {
	switch KindOf(v) {
	case KindRecord:
		inst := v.(*Instance)
		if inst.Schema() != n.s {
			return nil, Issues{{
				Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil),
				Type: n.s.Name(), Value: inst.Schema().Name(),
				Hint: "instance of a different record type",
			}}
		}
		return inst, nil
	case KindMapping:
		return Construct(n.s, nil, v.(map[string]any))
	case KindSequence:
		return Construct(n.s, []any{v}, nil)
	}
	return nil, Issues{{
		Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil),
		Type: n.s.Name(), Value: ValueText(v),
		Hint: "expected instance, mapping, or sequence",
	}}
}

func (n nestedType) Encode(v any) any {
	inst, ok := v.(*Instance)
	if !ok {
		return v
	}
	return Serialize(inst)
}
