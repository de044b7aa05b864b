package serializer

// Presence records how a field's value came to be assigned.
type Presence uint8

const (
	PresenceSeen           Presence = 1 << iota // Field was supplied by the caller.
	PresenceWasNull                             // Supplied value was null.
	PresenceDefaultApplied                      // Declaration-time default was applied.
)

// PresenceMap maps field names to Presence flags for one instance.
type PresenceMap map[string]Presence

// mergePresence returns the bitwise-OR merge of a and b.
func mergePresence(a, b PresenceMap) PresenceMap {
	if a == nil && b == nil {
		return nil
	}
	out := make(PresenceMap, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] |= v
	}
	return out
}
