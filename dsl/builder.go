package dsl

import (
	serializer "github.com/robertchase/serializer"
	"github.com/robertchase/serializer/i18n"
)

// RecordBuilder accumulates field declarations for one record type.
// Declaration order is preserved exactly; it governs positional binding and
// serialization key order.
type RecordBuilder struct {
	name   string
	fields []serializer.Field
}

// Record starts a builder for a record type named name.
func Record(name string) *RecordBuilder {
	return &RecordBuilder{name: name}
}

// Field declares a field. Fields are required until marked otherwise.
func (b *RecordBuilder) Field(name string, t serializer.Type) *FieldStep {
	b.fields = append(b.fields, serializer.Field{Name: name, Type: t, Required: true})
	return &FieldStep{b: b, i: len(b.fields) - 1}
}

// FieldStep scopes flag methods to the field just declared.
type FieldStep struct {
	b *RecordBuilder
	i int
}

// Required marks the field required (the default).
func (f *FieldStep) Required() *FieldStep {
	f.b.fields[f.i].Required = true
	return f
}

// Optional marks the field optional with no default: it may be absent, and
// while absent it is excluded from serialized output.
func (f *FieldStep) Optional() *FieldStep {
	f.b.fields[f.i].Required = false
	return f
}

// ReadOnly freezes the field once it holds a value.
func (f *FieldStep) ReadOnly() *FieldStep {
	f.b.fields[f.i].ReadOnly = true
	return f
}

// Default pre-populates the field when construction does not supply it.
// The value is validated against the field type at Build.
func (f *FieldStep) Default(v any) *FieldStep {
	fd := &f.b.fields[f.i]
	fd.HasDefault = true
	fd.Default = v
	fd.Required = false
	return f
}

// Constant declares a read-only field that always holds v and can never be
// supplied by a caller.
func (f *FieldStep) Constant(v any) *FieldStep {
	fd := &f.b.fields[f.i]
	fd.Constant = true
	fd.ReadOnly = true
	fd.HasDefault = true
	fd.Default = v
	fd.Required = false
	return f
}

// Field declares the next field, ending this step.
func (f *FieldStep) Field(name string, t serializer.Type) *FieldStep {
	return f.b.Field(name, t)
}

// Build derives the schema, ending this step.
func (f *FieldStep) Build() (*serializer.Schema, error) { return f.b.Build() }

// MustBuild derives the schema, panicking on declaration errors.
func (f *FieldStep) MustBuild() *serializer.Schema { return f.b.MustBuild() }

// Register builds the schema and registers it, ending this step.
func (f *FieldStep) Register() (*serializer.Schema, error) { return f.b.Register() }

// MustRegister builds and registers the schema, panicking on errors.
func (f *FieldStep) MustRegister() *serializer.Schema { return f.b.MustRegister() }

// Build derives the schema once: duplicate names, unresolved references,
// cyclic nesting, and invalid defaults are declaration-time errors.
func (b *RecordBuilder) Build() (*serializer.Schema, error) {
	s, err := serializer.NewSchema(b.name, b.fields)
	if err != nil {
		return nil, err
	}
	var iss serializer.Issues
	for _, fd := range s.Fields() {
		if !fd.HasDefault {
			continue
		}
		if _, err := fd.Type.Coerce(fd.Default); err != nil {
			if fd.Constant {
				iss = serializer.AppendIssues(iss, serializer.Issue{
					Path: "/" + fd.Name, Code: serializer.CodeConstantDefault,
					Message: i18n.T(serializer.CodeConstantDefault, nil),
					Type:    fd.Type.Name(), Value: serializer.ValueText(fd.Default),
					Cause: err,
				})
				continue
			}
			iss = serializer.AppendIssues(iss, rebase("/"+fd.Name, err)...)
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return s, nil
}

// MustBuild is Build panicking on error, for package-level schema variables.
func (b *RecordBuilder) MustBuild() *serializer.Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// Register builds the schema and stores it in the default registry so that
// Ref can resolve it.
func (b *RecordBuilder) Register() (*serializer.Schema, error) {
	s, err := b.Build()
	if err != nil {
		return nil, err
	}
	if err := serializer.DefaultRegistry.Register(s); err != nil {
		return nil, err
	}
	return s, nil
}

// MustRegister is Register panicking on error.
func (b *RecordBuilder) MustRegister() *serializer.Schema {
	s, err := b.Register()
	if err != nil {
		panic(err)
	}
	return s
}

// Nested returns a field type whose values are records of schema s.
func Nested(s *serializer.Schema) serializer.Type { return serializer.Nested(s) }

// Ref resolves a record type by name against the default registry. The name
// must already be registered: an unresolved reference is a declaration-time
// error surfaced when the referring schema is built.
func Ref(name string) serializer.Type {
	return RefIn(serializer.DefaultRegistry, name)
}

// RefIn resolves a record type by name against a specific registry.
func RefIn(r *serializer.Registry, name string) serializer.Type {
	if s, ok := r.Lookup(name); ok {
		return serializer.Nested(s)
	}
	return brokenRef{name: name}
}

type brokenRef struct {
	name string
}

func (b brokenRef) Name() string { return b.name }

func (b brokenRef) BrokenErr() error {
	return serializer.Issues{{
		Path: "/", Code: serializer.CodeUnresolvedRef,
		Message: i18n.T(serializer.CodeUnresolvedRef, nil),
		Type:    b.name,
	}}
}

func (b brokenRef) Coerce(v any) (any, error) { return nil, b.BrokenErr() }

func (b brokenRef) Encode(v any) any { return v }
