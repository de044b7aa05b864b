// Package serializer provides:
//
// - Schema-backed record types with typed, constrained fields (required/optional/read-only/defaults)
// - Construction from positional, keyword, mapping, or sequence input with narrow convenience coercion
// - A guarded attribute surface (Get/Set/Unset) that enforces the schema on every access
// - Serialization to a plain, declaration-ordered, JSON-compatible tree and back (round-trip)
// - A stable error model via Issues (field path, code, declared type, rejected value)
//
// Design policy:
// - Keep only public APIs in the root package.
// - Place the record/type DSL under dsl/, transcoding under codec/, and range records under ranges/.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	apartment := dsl.Record("Apartment").
//		Field("floor", dsl.Int()).
//		Field("unit", dsl.String()).
//		MustBuild()
//
//	person := dsl.Record("Person").
//		Field("name", dsl.String()).
//		Field("address", dsl.Nested(apartment)).
//		MustBuild()
//
//	p, err := person.FromMap(map[string]any{
//		"name":    "John Doe",
//		"address": map[string]any{"floor": 3, "unit": "A"},
//	})
//
//	tree := serializer.Serialize(p)
//	q, err := serializer.Deserialize(person, tree)
package serializer
