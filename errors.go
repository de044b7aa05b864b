package serializer

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType       = "invalid_type"
	CodeRequired          = "required"
	CodeNullValue         = "null_value"
	CodeDuplicateArgument = "duplicate_argument"
	CodeExtraArgument     = "extra_argument"
	CodeUnknownField      = "unknown_field"
	CodeUnsetField        = "unset_field"
	CodeReadOnly          = "read_only"
	// Declaration-time failures
	CodeDuplicateField  = "duplicate_field"
	CodeDuplicateSchema = "duplicate_schema"
	CodeUnresolvedRef   = "unresolved_ref"
	CodeNestedCycle     = "nested_cycle"
	CodeConstantDefault = "constant_default"
	// Constraint violations reported by field types
	CodeTooSmall      = "too_small"
	CodeTooBig        = "too_big"
	CodeTooShort      = "too_short"
	CodeTooLong       = "too_long"
	CodeInvalidEnum   = "invalid_enum"
	CodeInvalidFormat = "invalid_format"
	CodeNotUnique     = "not_unique"
	// Transcoding failures
	CodeParseError = "parse_error"
)

// Issue represents a single failure entry.
type Issue struct {
	Path    string // field path (for example: /address/floor).
	Code    string // One of the codes listed above.
	Message string
	Type    string // Declared type name of the offending field, when applicable.
	Value   string // Textual representation of the rejected value, when applicable.
	Hint    string // Optional: remediation hints, expected shapes, etc.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"min":1, "max":10})
	// for i18n and observability.
	Params map[string]any
}

// Issues is a collection of failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Value != "" {
			fmt.Fprintf(b, " (%s)", it.Value)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// IsCode reports whether err carries at least one Issue with the given code.
func IsCode(err error, code string) bool {
	iss, ok := AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

// rebaseIssues re-anchors child issue paths under base (e.g. "/address").
// A child path of "" or "/" collapses to base itself.
func rebaseIssues(base string, err error) Issues {
	child, ok := AsIssues(err)
	if !ok {
		return Issues{{Path: base, Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	out := make(Issues, 0, len(child))
	for _, it := range child {
		p := it.Path
		if p == "" || p == "/" {
			p = base
		} else if p[0] == '/' {
			p = base + p
		} else {
			p = base + "/" + p
		}
		it.Path = p
		out = append(out, it)
	}
	return out
}

// ValueText renders a rejected value for inclusion in an Issue. Long values
// are truncated; rendering is best-effort and never fails.
func ValueText(v any) string {
	if v == nil {
		return "null"
	}
	s := fmt.Sprintf("%v", v)
	const maxLen = 64
	if len(s) > maxLen {
		s = s[:maxLen] + "..."
	}
	return s
}
