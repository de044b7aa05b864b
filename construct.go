package serializer

import (
	"sort"

	"github.com/robertchase/serializer/i18n"
)

// Construct resolves positional args and keyword args into a fully validated
// instance of schema s.
//
// Resolution order:
//  1. A single positional argument that is a mapping contributes every entry
//     as a keyword assignment; explicit keyword args win on conflict.
//  2. A single positional argument that is a sequence binds its elements to
//     fields in declaration order; remaining fields fall through to keyword
//     args and defaults.
//  3. Otherwise positional args bind to fields in declaration order; a field
//     named both positionally and by keyword is a duplicate_argument error.
//  4. Unassigned fields receive their default when one exists; required
//     fields without a value fail with required; optional fields stay unset.
//
// Every assigned value passes through its field type before being stored.
// Construction is all-or-nothing: no partially constructed instance escapes.
func Construct(s *Schema, args []any, kwargs map[string]any) (*Instance, error) {
	kw := make(map[string]any, len(kwargs))
	for k, v := range kwargs {
		kw[k] = v
	}

	if len(args) == 1 {
		switch KindOf(args[0]) {
		case KindMapping:
			for k, v := range args[0].(map[string]any) {
				if _, explicit := kw[k]; !explicit {
					kw[k] = v
				}
			}
			args = nil
		case KindSequence:
			args = args[0].([]any)
		}
	}

	fields := s.Fields()
	var iss Issues

	if len(args) > len(fields) {
		iss = AppendIssues(iss, Issue{
			Path: "/", Code: CodeExtraArgument,
			Message: i18n.T(CodeExtraArgument, nil),
			Value:   ValueText(args[len(fields):]),
			Params:  map[string]any{"want": len(fields), "got": len(args)},
		})
		args = args[:len(fields)]
	}
	for i, v := range args {
		name := fields[i].Name
		if _, dup := kw[name]; dup {
			iss = AppendIssues(iss, Issue{
				Path: "/" + name, Code: CodeDuplicateArgument,
				Message: i18n.T(CodeDuplicateArgument, nil),
			})
			continue
		}
		kw[name] = v
	}

	// unknown keys in sorted order for deterministic issue output
	var unknown []string
	for name := range kw {
		if _, known := s.Lookup(name); !known {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		iss = AppendIssues(iss, Issue{
			Path: "/" + name, Code: CodeUnknownField,
			Message: i18n.T(CodeUnknownField, nil),
		})
	}

	in := newInstance(s)
	for _, f := range fields {
		v, supplied := kw[f.Name]
		switch {
		case supplied && f.Constant:
			iss = AppendIssues(iss, Issue{
				Path: "/" + f.Name, Code: CodeReadOnly,
				Message: i18n.T(CodeReadOnly, nil),
				Type:    f.Type.Name(), Value: ValueText(v),
				Hint: "constant fields cannot be supplied",
			})
		case supplied:
			if err := in.assign(f, v); err != nil {
				iss = AppendIssues(iss, toIssues(err)...)
			}
		case f.HasDefault:
			if err := in.applyDefault(f); err != nil {
				iss = AppendIssues(iss, toIssues(err)...)
			}
		case f.Required:
			iss = AppendIssues(iss, Issue{
				Path: "/" + f.Name, Code: CodeRequired,
				Message: i18n.T(CodeRequired, nil),
				Type:    f.Type.Name(),
			})
		}
	}

	if len(iss) > 0 {
		return nil, iss
	}
	return in, nil
}

func toIssues(err error) Issues {
	if iss, ok := AsIssues(err); ok {
		return iss
	}
	return Issues{{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}}
}
