package serializer

import "encoding/json"

// Kind enumerates the value shapes accepted by the engine. Every candidate
// value is classified exactly once and dispatched by variant; field types
// never probe beyond their accepted kinds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindNumber // json.Number: numeric text, interpretation deferred to the field type
	KindString
	KindSequence
	KindMapping
	KindRecord
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	case KindRecord:
		return "record"
	}
	return "other"
}

// KindOf classifies a candidate value.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return KindInt
	case float32, float64:
		return KindFloat
	case json.Number:
		return KindNumber
	case string:
		return KindString
	case []any:
		return KindSequence
	case map[string]any:
		return KindMapping
	case *Instance:
		return KindRecord
	}
	return KindOther
}

// AsInt64 widens any Go integer variant to int64. ok is false for non-integer
// input or a uint64 beyond the int64 range.
func AsInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), uint64(n) <= 1<<63-1
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), n <= 1<<63-1
	}
	return 0, false
}

// AsFloat64 widens a float variant to float64.
func AsFloat64(v any) (float64, bool) {
	switch f := v.(type) {
	case float32:
		return float64(f), true
	case float64:
		return f, true
	}
	return 0, false
}
