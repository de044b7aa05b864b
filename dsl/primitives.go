package dsl

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"time"

	serializer "github.com/robertchase/serializer"
	"github.com/robertchase/serializer/i18n"
)

// Coercion grammars are deliberately strict: exact literals only, no
// whitespace trimming, no exponent forms, no float truncation to int.
var (
	intLiteral   = regexp.MustCompile(`^[-+]?[0-9]+$`)
	floatLiteral = regexp.MustCompile(`^[-+]?([0-9]+|\.[0-9]+|[0-9]+\.[0-9]*)$`)
)

func issue(code, typeName string, v any) serializer.Issues {
	return serializer.Issues{{
		Path: "/", Code: code, Message: i18n.T(code, nil),
		Type: typeName, Value: serializer.ValueText(v),
	}}
}

func issueP(code, typeName string, v any, params map[string]any) serializer.Issues {
	iss := issue(code, typeName, v)
	iss[0].Params = params
	return iss
}

// ---- int ----

// IntType validates integer fields, with optional inclusive bounds.
type IntType struct {
	min, max *int64
	force    bool
}

// Int returns the integer field type.
func Int() IntType { return IntType{} }

// Min sets the inclusive lower bound.
func (t IntType) Min(n int64) IntType { t.min = &n; return t }

// Max sets the inclusive upper bound.
func (t IntType) Max(n int64) IntType { t.max = &n; return t }

// Force clamps out-of-bound values to the nearest bound instead of failing.
func (t IntType) Force() IntType { t.force = true; return t }

func (t IntType) Name() string { return "int" }

func (t IntType) Coerce(v any) (any, error) {
	var n int64
	switch serializer.KindOf(v) {
	case serializer.KindInt:
		i, ok := serializer.AsInt64(v)
		if !ok {
			return nil, issue(serializer.CodeTooBig, t.Name(), v)
		}
		n = i
	case serializer.KindFloat:
		f, _ := serializer.AsFloat64(v)
		if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return nil, issue(serializer.CodeInvalidType, t.Name(), v)
		}
		n = int64(f)
	case serializer.KindNumber, serializer.KindString:
		s := fmt.Sprint(v)
		if !intLiteral.MatchString(s) {
			return nil, issue(serializer.CodeInvalidType, t.Name(), v)
		}
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, issue(serializer.CodeInvalidType, t.Name(), v)
		}
		n = i
	default:
		return nil, issue(serializer.CodeInvalidType, t.Name(), v)
	}
	if t.min != nil && n < *t.min {
		if !t.force {
			return nil, issueP(serializer.CodeTooSmall, t.Name(), v, map[string]any{"min": *t.min})
		}
		n = *t.min
	}
	if t.max != nil && n > *t.max {
		if !t.force {
			return nil, issueP(serializer.CodeTooBig, t.Name(), v, map[string]any{"max": *t.max})
		}
		n = *t.max
	}
	return n, nil
}

func (t IntType) Encode(v any) any { return v }

// ---- float ----

// FloatType validates float fields, with optional bounds that may each be
// exclusive.
type FloatType struct {
	min, max                   *float64
	exclusiveMin, exclusiveMax bool
}

// Float returns the float field type.
func Float() FloatType { return FloatType{} }

// Min sets the lower bound (inclusive unless ExclusiveMin).
func (t FloatType) Min(f float64) FloatType { t.min = &f; return t }

// Max sets the upper bound (inclusive unless ExclusiveMax).
func (t FloatType) Max(f float64) FloatType { t.max = &f; return t }

// ExclusiveMin excludes the lower bound itself.
func (t FloatType) ExclusiveMin() FloatType { t.exclusiveMin = true; return t }

// ExclusiveMax excludes the upper bound itself.
func (t FloatType) ExclusiveMax() FloatType { t.exclusiveMax = true; return t }

func (t FloatType) Name() string { return "float" }

func (t FloatType) Coerce(v any) (any, error) {
	var f float64
	switch serializer.KindOf(v) {
	case serializer.KindFloat:
		f, _ = serializer.AsFloat64(v)
	case serializer.KindInt:
		i, ok := serializer.AsInt64(v)
		if !ok {
			return nil, issue(serializer.CodeTooBig, t.Name(), v)
		}
		f = float64(i)
	case serializer.KindNumber, serializer.KindString:
		s := fmt.Sprint(v)
		if !floatLiteral.MatchString(s) {
			return nil, issue(serializer.CodeInvalidType, t.Name(), v)
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, issue(serializer.CodeInvalidType, t.Name(), v)
		}
		f = parsed
	default:
		return nil, issue(serializer.CodeInvalidType, t.Name(), v)
	}
	if t.min != nil {
		if f < *t.min || (t.exclusiveMin && f == *t.min) {
			return nil, issueP(serializer.CodeTooSmall, t.Name(), v, map[string]any{"min": *t.min, "exclusive": t.exclusiveMin})
		}
	}
	if t.max != nil {
		if f > *t.max || (t.exclusiveMax && f == *t.max) {
			return nil, issueP(serializer.CodeTooBig, t.Name(), v, map[string]any{"max": *t.max, "exclusive": t.exclusiveMax})
		}
	}
	return f, nil
}

func (t FloatType) Encode(v any) any { return v }

// ---- string ----

// StringType validates string fields with optional length bounds.
type StringType struct {
	minLen int
	maxLen *int
	err    error
}

// String returns the string field type.
func String() StringType { return StringType{} }

// MinLen sets the minimum length in bytes.
func (t StringType) MinLen(n int) StringType {
	if n < 0 {
		t.err = issue(serializer.CodeTooSmall, t.Name(), n)
		return t
	}
	t.minLen = n
	return t
}

// MaxLen sets the maximum length in bytes.
func (t StringType) MaxLen(n int) StringType {
	if n < t.minLen {
		t.err = issueP(serializer.CodeTooSmall, t.Name(), n, map[string]any{"min": t.minLen})
		return t
	}
	t.maxLen = &n
	return t
}

func (t StringType) Name() string { return "string" }

// BrokenErr reports misuse of the length options at declaration time.
func (t StringType) BrokenErr() error { return t.err }

func (t StringType) Coerce(v any) (any, error) {
	if t.err != nil {
		return nil, t.err
	}
	s, ok := v.(string)
	if !ok {
		return nil, issue(serializer.CodeInvalidType, t.Name(), v)
	}
	if len(s) < t.minLen {
		return nil, issueP(serializer.CodeTooShort, t.Name(), v, map[string]any{"min": t.minLen})
	}
	if t.maxLen != nil && len(s) > *t.maxLen {
		return nil, issueP(serializer.CodeTooLong, t.Name(), v, map[string]any{"max": *t.maxLen})
	}
	return s, nil
}

func (t StringType) Encode(v any) any { return v }

// ---- bool ----

// BoolType validates bool fields. There is no convenience coercion: numeric
// and string forms are rejected.
type BoolType struct{}

// Bool returns the bool field type.
func Bool() BoolType { return BoolType{} }

func (BoolType) Name() string { return "bool" }

func (t BoolType) Coerce(v any) (any, error) {
	b, ok := v.(bool)
	if !ok {
		return nil, issue(serializer.CodeInvalidType, t.Name(), v)
	}
	return b, nil
}

func (BoolType) Encode(v any) any { return v }

// ---- time / date ----

// TimeType validates RFC 3339 timestamp fields backed by time.Time.
type TimeType struct{}

// TimeRFC3339 returns the timestamp field type. String candidates must be
// RFC 3339 (nanosecond precision accepted); values serialize as canonical
// UTC RFC 3339.
func TimeRFC3339() TimeType { return TimeType{} }

func (TimeType) Name() string { return "time" }

func (t TimeType) Coerce(v any) (any, error) {
	if ts, ok := v.(time.Time); ok {
		return ts, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, issue(serializer.CodeInvalidType, t.Name(), v)
	}
	ts, err := parseRFC3339(s)
	if err != nil {
		iss := issue(serializer.CodeInvalidFormat, t.Name(), v)
		iss[0].Cause = err
		return nil, iss
	}
	return ts, nil
}

func (TimeType) Encode(v any) any {
	ts, ok := v.(time.Time)
	if !ok {
		return v
	}
	return ts.UTC().Format(time.RFC3339Nano)
}

func parseRFC3339(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

const dateLayout = "2006-01-02"

// DateType validates calendar-date fields backed by time.Time (midnight UTC).
type DateType struct{}

// Date returns the calendar-date field type.
func Date() DateType { return DateType{} }

func (DateType) Name() string { return "date" }

func (t DateType) Coerce(v any) (any, error) {
	if ts, ok := v.(time.Time); ok {
		y, m, d := ts.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, issue(serializer.CodeInvalidType, t.Name(), v)
	}
	ts, err := time.Parse(dateLayout, s)
	if err != nil {
		iss := issue(serializer.CodeInvalidFormat, t.Name(), v)
		iss[0].Cause = err
		return nil, iss
	}
	return ts, nil
}

func (DateType) Encode(v any) any {
	ts, ok := v.(time.Time)
	if !ok {
		return v
	}
	return ts.Format(dateLayout)
}

// ---- enumerations ----

// OneOfType validates membership in a fixed set of values.
type OneOfType struct {
	allowed []any
	name    string
}

// OneOf returns a field type accepting exactly the given values.
func OneOf(vals ...any) OneOfType { return OneOfType{allowed: vals} }

// Named overrides the type name used in diagnostics.
func (t OneOfType) Named(name string) OneOfType { t.name = name; return t }

func (t OneOfType) Name() string {
	if t.name != "" {
		return t.name
	}
	return "one_of"
}

func (t OneOfType) Coerce(v any) (any, error) {
	for _, a := range t.allowed {
		if equalValue(v, a) {
			return a, nil
		}
	}
	iss := issue(serializer.CodeInvalidEnum, t.Name(), v)
	iss[0].Hint = fmt.Sprintf("allowed: %v", t.allowed)
	return nil, iss
}

func (t OneOfType) Encode(v any) any { return v }

// SomeOfType validates a sequence whose items form a unique subset of a fixed
// set of choices.
type SomeOfType struct {
	choices []any
	name    string
}

// SomeOf returns a field type accepting any duplicate-free subset of the
// given values.
func SomeOf(vals ...any) SomeOfType { return SomeOfType{choices: vals} }

// Named overrides the type name used in diagnostics.
func (t SomeOfType) Named(name string) SomeOfType { t.name = name; return t }

func (t SomeOfType) Name() string {
	if t.name != "" {
		return t.name
	}
	return "some_of"
}

func (t SomeOfType) Coerce(v any) (any, error) {
	seq, ok := v.([]any)
	if !ok {
		return nil, issue(serializer.CodeInvalidType, t.Name(), v)
	}
	out := make([]any, 0, len(seq))
	for i, item := range seq {
		matched := false
		for _, c := range t.choices {
			if equalValue(item, c) {
				item = c
				matched = true
				break
			}
		}
		if !matched {
			iss := issue(serializer.CodeInvalidEnum, t.Name(), item)
			iss[0].Path = "/" + strconv.Itoa(i)
			iss[0].Hint = fmt.Sprintf("allowed: %v", t.choices)
			return nil, iss
		}
		for _, prior := range out {
			if equalValue(item, prior) {
				iss := issue(serializer.CodeNotUnique, t.Name(), item)
				iss[0].Path = "/" + strconv.Itoa(i)
				return nil, iss
			}
		}
		out = append(out, item)
	}
	return out, nil
}

func (t SomeOfType) Encode(v any) any { return v }

// ---- map / any ----

// MapType validates free-form string-keyed mappings.
type MapType struct{}

// Map returns the mapping field type.
func Map() MapType { return MapType{} }

func (MapType) Name() string { return "map" }

func (t MapType) Coerce(v any) (any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, issue(serializer.CodeInvalidType, t.Name(), v)
	}
	return m, nil
}

func (MapType) Encode(v any) any { return v }

// AnyType accepts any value unchanged.
type AnyType struct{}

// Any returns the unconstrained field type.
func Any() AnyType { return AnyType{} }

func (AnyType) Name() string { return "any" }

func (AnyType) Coerce(v any) (any, error) { return v, nil }

func (AnyType) Encode(v any) any { return v }

// equalValue compares candidate values across the numeric kinds (an int
// candidate may match a float choice of the same value) and falls back to
// deep equality otherwise.
func equalValue(a, b any) bool {
	if n, ok := a.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			a = i
		} else if f, err := n.Float64(); err == nil {
			a = f
		}
	}
	if ai, ok := serializer.AsInt64(a); ok {
		if bi, ok := serializer.AsInt64(b); ok {
			return ai == bi
		}
		if bf, ok := serializer.AsFloat64(b); ok {
			return float64(ai) == bf
		}
		return false
	}
	if af, ok := serializer.AsFloat64(a); ok {
		if bf, ok := serializer.AsFloat64(b); ok {
			return af == bf
		}
		if bi, ok := serializer.AsInt64(b); ok {
			return af == float64(bi)
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}
