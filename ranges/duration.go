package ranges

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	serializer "github.com/robertchase/serializer"
	"github.com/robertchase/serializer/i18n"
)

// Duration is a parsed ISO 8601 duration. Only the seconds component may be
// fractional.
type Duration struct {
	Years   int
	Months  int
	Weeks   int
	Days    int
	Hours   int
	Minutes int
	Seconds float64
}

// A valid duration is of the form PnYnMnWnDTnHnMnS: it must begin with "P",
// include at least one element, and use int values except for seconds. The
// decimal separator for seconds may be "." or ",".
var durationPattern = regexp.MustCompile(
	`^P(?:(\d+)Y)?` +
		`(?:(\d+)M)?` +
		`(?:(\d+)W)?` +
		`(?:(\d+)D)?` +
		`(?:T` +
		`(?:(\d+)H)?` +
		`(?:(\d+)M)?` +
		`(?:(\d+(?:[.,]\d+)?)S)?` +
		`)?$`)

// ParseDuration parses an ISO 8601 duration string.
func ParseDuration(value string) (Duration, error) {
	m := durationPattern.FindStringSubmatch(value)
	if m == nil {
		return Duration{}, durationIssue(value)
	}
	seen := false
	for _, g := range m[1:] {
		if g != "" {
			seen = true
			break
		}
	}
	if !seen {
		return Duration{}, durationIssue(value)
	}
	atoi := func(s string) int {
		if s == "" {
			return 0
		}
		n, _ := strconv.Atoi(s)
		return n
	}
	d := Duration{
		Years:   atoi(m[1]),
		Months:  atoi(m[2]),
		Weeks:   atoi(m[3]),
		Days:    atoi(m[4]),
		Hours:   atoi(m[5]),
		Minutes: atoi(m[6]),
	}
	if m[7] != "" {
		d.Seconds, _ = strconv.ParseFloat(strings.ReplaceAll(m[7], ",", "."), 64)
	}
	return d, nil
}

func durationIssue(value string) error {
	return serializer.Issues{{
		Path: "/", Code: serializer.CodeInvalidFormat,
		Message: i18n.T(serializer.CodeInvalidFormat, nil),
		Value:   serializer.ValueText(value),
		Hint:    "expected ISO 8601 duration (PnYnMnWnDTnHnMnS)",
	}}
}

// Neg negates every component.
func (d Duration) Neg() Duration {
	return Duration{
		Years:   -d.Years,
		Months:  -d.Months,
		Weeks:   -d.Weeks,
		Days:    -d.Days,
		Hours:   -d.Hours,
		Minutes: -d.Minutes,
		Seconds: -d.Seconds,
	}
}

// DateOnly drops the time components, for calendar-date arithmetic.
func (d Duration) DateOnly() Duration {
	d.Hours, d.Minutes, d.Seconds = 0, 0, 0
	return d
}

// AddTo advances ts by the duration. Calendar components go through AddDate
// (month overflow normalizes forward, the usual Go behavior); time components
// are exact.
func (d Duration) AddTo(ts time.Time) time.Time {
	ts = ts.AddDate(d.Years, d.Months, d.Weeks*7+d.Days)
	return ts.Add(time.Duration(d.Hours)*time.Hour +
		time.Duration(d.Minutes)*time.Minute +
		time.Duration(d.Seconds*float64(time.Second)))
}

// SubFrom moves ts back by the duration.
func (d Duration) SubFrom(ts time.Time) time.Time {
	return d.Neg().AddTo(ts)
}
