// Package ranges provides schema-backed range records: a lower and upper
// bound, either optionally exclusive, over ints, timestamps, or calendar
// dates. Time and date ranges parse from ISO 8601 interval strings where
// either side may be a duration anchored on the other side or on the current
// time.
package ranges

import (
	"regexp"
	"time"

	serializer "github.com/robertchase/serializer"
	"github.com/robertchase/serializer/dsl"
	"github.com/robertchase/serializer/i18n"
)

func boundsRecord(name string, bound serializer.Type) *serializer.Schema {
	return dsl.Record(name).
		Field("lower_bound", bound).Optional().
		Field("upper_bound", bound).Optional().
		Field("is_lower_exclusive", dsl.Bool()).Default(false).
		Field("is_upper_exclusive", dsl.Bool()).Default(false).
		MustBuild()
}

var (
	intSchema  = boundsRecord("IntRange", dsl.Int())
	timeSchema = boundsRecord("TimeRange", dsl.TimeRFC3339())
	dateSchema = boundsRecord("DateRange", dsl.Date())
)

// Int returns the integer range schema.
func Int() *serializer.Schema { return intSchema }

// Time returns the timestamp range schema.
func Time() *serializer.Schema { return timeSchema }

// Date returns the calendar-date range schema.
func Date() *serializer.Schema { return dateSchema }

// New constructs a range instance of schema s with the given bounds. A nil
// bound is left unset (unbounded in that direction); at least one bound must
// be present and lower must not exceed upper.
func New(s *serializer.Schema, lower, upper any) (*serializer.Instance, error) {
	m := map[string]any{}
	if lower != nil {
		m["lower_bound"] = lower
	}
	if upper != nil {
		m["upper_bound"] = upper
	}
	in, err := s.FromMap(m)
	if err != nil {
		return nil, err
	}
	if err := Validate(in); err != nil {
		return nil, err
	}
	return in, nil
}

// Validate checks the bound invariants of a range instance: at least one
// bound assigned, and lower_bound <= upper_bound when both are.
func Validate(in *serializer.Instance) error {
	hasLower := in.Has("lower_bound")
	hasUpper := in.Has("upper_bound")
	if !hasLower && !hasUpper {
		return boundsIssue("lower_bound or upper_bound must be assigned")
	}
	if hasLower && hasUpper {
		lower, _ := in.Get("lower_bound")
		upper, _ := in.Get("upper_bound")
		c, ok := compareBound(lower, upper)
		if !ok {
			return boundsIssue("bounds are not comparable")
		}
		if c > 0 {
			return boundsIssue("lower_bound cannot be greater than upper_bound")
		}
	}
	return nil
}

// Contains reports whether v falls within the range. v is normalized through
// the range's bound type first, so a time range accepts RFC 3339 strings.
func Contains(in *serializer.Instance, v any) (bool, error) {
	f, ok := in.Schema().Lookup("lower_bound")
	if !ok {
		return false, boundsIssue("not a range instance")
	}
	cv, err := f.Type.Coerce(v)
	if err != nil {
		return false, err
	}
	if in.Has("lower_bound") {
		lower, _ := in.Get("lower_bound")
		c, ok := compareBound(cv, lower)
		if !ok {
			return false, boundsIssue("bounds are not comparable")
		}
		exclV, _ := in.Get("is_lower_exclusive")
		excl, _ := exclV.(bool)
		if c < 0 || (c == 0 && excl) {
			return false, nil
		}
	}
	if in.Has("upper_bound") {
		upper, _ := in.Get("upper_bound")
		c, ok := compareBound(cv, upper)
		if !ok {
			return false, boundsIssue("bounds are not comparable")
		}
		exclV, _ := in.Get("is_upper_exclusive")
		excl, _ := exclV.(bool)
		if c > 0 || (c == 0 && excl) {
			return false, nil
		}
	}
	return true, nil
}

func compareBound(a, b any) (int, bool) {
	if at, ok := a.(time.Time); ok {
		bt, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		switch {
		case at.Before(bt):
			return -1, true
		case at.After(bt):
			return 1, true
		}
		return 0, true
	}
	ai, aok := serializer.AsInt64(a)
	bi, bok := serializer.AsInt64(b)
	if aok && bok {
		switch {
		case ai < bi:
			return -1, true
		case ai > bi:
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func boundsIssue(hint string) error {
	return serializer.Issues{{
		Path: "/", Code: serializer.CodeInvalidFormat,
		Message: i18n.T(serializer.CodeInvalidFormat, nil),
		Hint:    hint,
	}}
}

// ---- interval strings ----

var intervalSep = regexp.MustCompile(`/|--`)

// ParseTime parses an ISO 8601 interval string into a timestamp range.
// The two sides are separated by "/" or "--"; either side may be a duration
// anchored on the other side, and an empty or duration-only side is anchored
// on the current time:
//
//	2024-01-01T12:00:00Z/2024-01-01T13:00:00Z
//	PT1H/2024-01-01T13:00:00Z
//	2024-01-01T12:00:00Z--PT60M
//	PT10H/          (the previous ten hours)
//	PT1H/PT15M      (one hour back through fifteen minutes ahead)
func ParseTime(text string) (*serializer.Instance, error) {
	lo, hi, err := parseInterval(text, time.Now().UTC(), parseTimePoint, ParseDuration)
	if err != nil {
		return nil, err
	}
	return New(timeSchema, lo, hi)
}

// ParseDate parses an interval string into a calendar-date range. Duration
// sides ignore any time components.
func ParseDate(text string) (*serializer.Instance, error) {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	lo, hi, err := parseInterval(text, today, parseDatePoint, func(s string) (Duration, error) {
		d, err := ParseDuration(s)
		if err != nil {
			return Duration{}, err
		}
		return d.DateOnly(), nil
	})
	if err != nil {
		return nil, err
	}
	return New(dateSchema, lo, hi)
}

func parseInterval(
	text string,
	now time.Time,
	point func(string) (time.Time, error),
	duration func(string) (Duration, error),
) (time.Time, time.Time, error) {
	var zero time.Time
	parts := intervalSep.Split(text, -1)
	if len(parts) != 2 {
		return zero, zero, serializer.Issues{{
			Path: "/", Code: serializer.CodeInvalidFormat,
			Message: i18n.T(serializer.CodeInvalidFormat, nil),
			Value:   serializer.ValueText(text),
			Hint:    `expected two values separated by "/" or "--"`,
		}}
	}
	p1, p2 := parts[0], parts[1]
	isDur := func(s string) bool { return len(s) > 0 && s[0] == 'P' }

	switch {
	case isDur(p1) && isDur(p2):
		d1, err := duration(p1)
		if err != nil {
			return zero, zero, err
		}
		d2, err := duration(p2)
		if err != nil {
			return zero, zero, err
		}
		return d1.SubFrom(now), d2.AddTo(now), nil
	case isDur(p1):
		end := now
		if p2 != "" {
			var err error
			if end, err = point(p2); err != nil {
				return zero, zero, err
			}
		}
		d, err := duration(p1)
		if err != nil {
			return zero, zero, err
		}
		return d.SubFrom(end), end, nil
	case isDur(p2):
		start := now
		if p1 != "" {
			var err error
			if start, err = point(p1); err != nil {
				return zero, zero, err
			}
		}
		d, err := duration(p2)
		if err != nil {
			return zero, zero, err
		}
		return start, d.AddTo(start), nil
	default:
		start, end := now, now
		var err error
		if p1 != "" {
			if start, err = point(p1); err != nil {
				return zero, zero, err
			}
		}
		if p2 != "" {
			if end, err = point(p2); err != nil {
				return zero, zero, err
			}
		}
		return start, end, nil
	}
}

func parseTimePoint(s string) (time.Time, error) {
	for _, layout := range []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05.999999999", // naive timestamps assume UTC
		"2006-01-02",
	} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, serializer.Issues{{
		Path: "/", Code: serializer.CodeInvalidFormat,
		Message: i18n.T(serializer.CodeInvalidFormat, nil),
		Value:   serializer.ValueText(s),
		Hint:    "invalid datetime value",
	}}
}

func parseDatePoint(s string) (time.Time, error) {
	ts, err := parseTimePoint(s)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}
