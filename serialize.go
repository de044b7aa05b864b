package serializer

// Serialize walks the instance's stored fields and produces a plain,
// JSON-compatible tree: primitives, sequences, and mappings, with nested
// records recursively serialized. Unset optional fields are omitted entirely
// (never emitted as null). Key order in the returned map is Go map order;
// declaration-ordered output is the codec layer's concern.
func Serialize(in *Instance) map[string]any {
	out := make(map[string]any, len(in.values))
	for _, f := range in.schema.fields {
		v, ok := in.values[f.Name]
		if !ok {
			continue
		}
		out[f.Name] = f.Type.Encode(v)
	}
	return out
}

// Deserialize is the inverse of Serialize: the mapping is re-ingested as
// keyword-style construction input, recursing through nested schemas along
// the same path.
func Deserialize(s *Schema, m map[string]any) (*Instance, error) {
	return Construct(s, []any{m}, nil)
}
