package serializer

import (
	"sync"

	"github.com/robertchase/serializer/i18n"
)

// Field is the immutable descriptor of one declared field.
type Field struct {
	Name       string
	Type       Type
	Required   bool
	ReadOnly   bool
	Constant   bool // read-only with a mandatory default; never caller-supplied
	HasDefault bool
	Default    any // already coerced at declaration time
}

// Schema is the per-record-type ordered collection of field descriptors.
// Declaration order is significant: it is both the positional-argument order
// and the serialization key order. A Schema is never mutated after NewSchema.
type Schema struct {
	name   string
	fields []Field
	index  map[string]int
}

// NewSchema derives a schema from declared fields. It fails with a
// declaration-time error when two fields share a name, a constant field lacks
// a default, a nested reference did not resolve, or nesting reaches back into
// the record being declared.
func NewSchema(name string, fields []Field) (*Schema, error) {
	s := &Schema{
		name:   name,
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	var iss Issues
	for _, f := range fields {
		if _, dup := s.index[f.Name]; dup {
			iss = AppendIssues(iss, Issue{
				Path: "/" + f.Name, Code: CodeDuplicateField,
				Message: i18n.T(CodeDuplicateField, nil),
			})
			continue
		}
		if b, ok := f.Type.(Broken); ok {
			if err := b.BrokenErr(); err != nil {
				iss = AppendIssues(iss, rebaseIssues("/"+f.Name, err)...)
				continue
			}
		}
		if f.Constant && !f.HasDefault {
			iss = AppendIssues(iss, Issue{
				Path: "/" + f.Name, Code: CodeConstantDefault,
				Message: i18n.T(CodeConstantDefault, nil),
			})
			continue
		}
		s.index[f.Name] = len(s.fields)
		s.fields = append(s.fields, f)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	if err := checkCycles(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Name returns the record type name.
func (s *Schema) Name() string { return s.name }

// Len returns the number of declared fields.
func (s *Schema) Len() int { return len(s.fields) }

// Fields returns the field descriptors in declaration order. The returned
// slice is shared; callers must not modify it.
func (s *Schema) Fields() []Field { return s.fields }

// Lookup returns the descriptor for name.
func (s *Schema) Lookup(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// New constructs an instance from positional arguments (see Construct).
func (s *Schema) New(args ...any) (*Instance, error) {
	return Construct(s, args, nil)
}

// FromMap constructs an instance treating every entry of m as a keyword
// assignment.
func (s *Schema) FromMap(m map[string]any) (*Instance, error) {
	return Construct(s, nil, m)
}

// FromSeq constructs an instance binding seq elements to fields in
// declaration order.
func (s *Schema) FromSeq(seq []any) (*Instance, error) {
	return Construct(s, []any{seq}, nil)
}

// checkCycles walks nested record references depth-first. A path that
// re-enters a record type it already passed through is a declaration-time
// error. Reference resolution order makes this unreachable through the dsl;
// the walk guards hand-assembled schemas.
func checkCycles(s *Schema) error {
	return walkNested(s, map[*Schema]bool{}, "/"+s.name)
}

func walkNested(s *Schema, path map[*Schema]bool, at string) error {
	if path[s] {
		return Issues{{
			Path: at, Code: CodeNestedCycle,
			Message: i18n.T(CodeNestedCycle, nil),
			Type:    s.name,
		}}
	}
	path[s] = true
	defer delete(path, s)
	for _, f := range s.fields {
		c, ok := f.Type.(SchemaCarrier)
		if !ok {
			continue
		}
		nested := c.RecordSchema()
		if nested == nil {
			continue
		}
		if err := walkNested(nested, path, at+"/"+f.Name); err != nil {
			return err
		}
	}
	return nil
}

// Registry maps record type names to derived schemas. Derivation happens once
// per type; lookups after registration are safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]*Schema
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{schemas: map[string]*Schema{}}
}

// Register stores s under its record type name. Registering a second schema
// under the same name is an error.
func (r *Registry) Register(s *Schema) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.schemas[s.name]; dup {
		return Issues{{
			Path: "/", Code: CodeDuplicateSchema,
			Message: i18n.T(CodeDuplicateSchema, nil),
			Type:    s.name,
		}}
	}
	r.schemas[s.name] = s
	return nil
}

// Lookup returns the schema registered under name.
func (r *Registry) Lookup(name string) (*Schema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schemas[name]
	return s, ok
}

// DefaultRegistry is the process-wide registry consulted by dsl.Ref.
var DefaultRegistry = NewRegistry()
