package serializer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/robertchase/serializer/i18n"
)

// Instance is one record value: its schema plus per-field storage. Every read
// and write goes through the schema gate; undefined fields are rejected and
// read-only fields freeze once they hold a value.
//
// An instance is private, mutable state with no built-in synchronization.
// Concurrent writers must be serialized by the embedding application.
type Instance struct {
	schema   *Schema
	values   map[string]any
	presence PresenceMap
}

func newInstance(s *Schema) *Instance {
	return &Instance{
		schema:   s,
		values:   make(map[string]any, s.Len()),
		presence: make(PresenceMap, s.Len()),
	}
}

// Schema returns the record type's schema.
func (in *Instance) Schema() *Schema { return in.schema }

// Has reports whether the named field currently holds a value. It is false
// both for unset optional fields and for names not in the schema.
func (in *Instance) Has(name string) bool {
	_, ok := in.values[name]
	return ok
}

// Get returns the stored value of the named field. Reading an undefined name
// fails with unknown_field; reading a declared-but-unset field fails with
// unset_field (distinct from the field holding a null-ish value).
func (in *Instance) Get(name string) (any, error) {
	if _, ok := in.schema.Lookup(name); !ok {
		return nil, in.unknownField(name)
	}
	v, ok := in.values[name]
	if !ok {
		return nil, Issues{{
			Path: "/" + name, Code: CodeUnsetField,
			Message: i18n.T(CodeUnsetField, nil),
		}}
	}
	return v, nil
}

// Set validates v and stores it in the named field. Writing an undefined name
// fails with unknown_field. Writing a read-only field fails with read_only
// once the field already holds a value; the very first assignment is exempt.
// A null value unsets an optional field and is rejected for a required one.
// On any failure the previously stored value is retained unchanged.
func (in *Instance) Set(name string, v any) error {
	f, ok := in.schema.Lookup(name)
	if !ok {
		return in.unknownField(name)
	}
	if f.ReadOnly && in.Has(name) {
		return Issues{{
			Path: "/" + name, Code: CodeReadOnly,
			Message: i18n.T(CodeReadOnly, nil),
			Type:    f.Type.Name(),
		}}
	}
	return in.assign(f, v)
}

// Unset removes the named field's value, returning it to the "unset" state.
// Read-only fields holding a value cannot be unset; unsetting an already
// unset field fails with unset_field.
func (in *Instance) Unset(name string) error {
	f, ok := in.schema.Lookup(name)
	if !ok {
		return in.unknownField(name)
	}
	if !in.Has(name) {
		return Issues{{
			Path: "/" + name, Code: CodeUnsetField,
			Message: i18n.T(CodeUnsetField, nil),
		}}
	}
	if f.ReadOnly {
		return Issues{{
			Path: "/" + name, Code: CodeReadOnly,
			Message: i18n.T(CodeReadOnly, nil),
			Type:    f.Type.Name(),
		}}
	}
	delete(in.values, name)
	delete(in.presence, name)
	return nil
}

// Presence returns a copy of the per-field assignment metadata: which fields
// were supplied by a caller, which received a declaration-time default, and
// which were explicitly null.
func (in *Instance) Presence() PresenceMap {
	return mergePresence(in.presence, nil)
}

// assign routes a write through the field's type. It is shared by Set and the
// constructor; the read-only gate is the caller's responsibility.
func (in *Instance) assign(f Field, v any) error {
	if v == nil {
		if f.Required {
			return Issues{{
				Path: "/" + f.Name, Code: CodeNullValue,
				Message: i18n.T(CodeNullValue, nil),
				Type:    f.Type.Name(), Value: "null",
			}}
		}
		delete(in.values, f.Name)
		in.presence[f.Name] |= PresenceSeen | PresenceWasNull
		return nil
	}
	normalized, err := f.Type.Coerce(v)
	if err != nil {
		return rebaseIssues("/"+f.Name, err)
	}
	in.values[f.Name] = normalized
	in.presence[f.Name] |= PresenceSeen
	return nil
}

// applyDefault stores the declaration-time default without marking the field
// as caller-supplied.
func (in *Instance) applyDefault(f Field) error {
	normalized, err := f.Type.Coerce(f.Default)
	if err != nil {
		return rebaseIssues("/"+f.Name, err)
	}
	in.values[f.Name] = normalized
	in.presence[f.Name] |= PresenceDefaultApplied
	return nil
}

func (in *Instance) unknownField(name string) error {
	return Issues{{
		Path: "/" + name, Code: CodeUnknownField,
		Message: i18n.T(CodeUnknownField, nil),
		Hint:    fmt.Sprintf("'%s' has no field '%s'", in.schema.Name(), name),
	}}
}

// String renders the record type name and stored fields. Handy, but a bad
// idea for sensitive data.
func (in *Instance) String() string {
	b := &strings.Builder{}
	b.WriteString(in.schema.Name())
	b.WriteString(": {")
	names := make([]string, 0, len(in.values))
	for name := range in.values {
		names = append(names, name)
	}
	sort.Strings(names)
	for i, name := range names {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "%s: %v", name, in.values[name])
	}
	b.WriteString("}")
	return b.String()
}
