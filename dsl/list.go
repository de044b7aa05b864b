package dsl

import (
	"strconv"

	serializer "github.com/robertchase/serializer"
)

// ListType validates ordered sequences with per-element coercion through the
// element type, optional length bounds, and optional duplicate rejection.
type ListType struct {
	elem   serializer.Type
	minLen int
	maxLen *int
	unique bool
}

// List returns a sequence field type over the given element type.
func List(elem serializer.Type) ListType { return ListType{elem: elem} }

// MinLen sets the minimum element count.
func (t ListType) MinLen(n int) ListType { t.minLen = n; return t }

// MaxLen sets the maximum element count.
func (t ListType) MaxLen(n int) ListType { t.maxLen = &n; return t }

// Unique rejects sequences containing equal elements.
func (t ListType) Unique() ListType { t.unique = true; return t }

func (t ListType) Name() string { return "[]" + t.elem.Name() }

// Elem returns the element type. The codec layer uses it to recurse with
// type information intact.
func (t ListType) Elem() serializer.Type { return t.elem }

// RecordSchema forwards the element's nested schema, if any, for the
// declaration-time cycle walk.
func (t ListType) RecordSchema() *serializer.Schema {
	if c, ok := t.elem.(serializer.SchemaCarrier); ok {
		return c.RecordSchema()
	}
	return nil
}

// BrokenErr forwards a broken element type (e.g. an unresolved Ref).
func (t ListType) BrokenErr() error {
	if b, ok := t.elem.(serializer.Broken); ok {
		return b.BrokenErr()
	}
	return nil
}

func (t ListType) Coerce(v any) (any, error) {
	seq, ok := v.([]any)
	if !ok {
		return nil, issue(serializer.CodeInvalidType, t.Name(), v)
	}
	if len(seq) < t.minLen {
		return nil, issueP(serializer.CodeTooShort, t.Name(), v, map[string]any{"min": t.minLen})
	}
	if t.maxLen != nil && len(seq) > *t.maxLen {
		return nil, issueP(serializer.CodeTooLong, t.Name(), v, map[string]any{"max": *t.maxLen})
	}
	out := make([]any, 0, len(seq))
	var iss serializer.Issues
	for i, item := range seq {
		ev, err := t.elem.Coerce(item)
		if err != nil {
			iss = serializer.AppendIssues(iss, rebase("/"+strconv.Itoa(i), err)...)
			continue
		}
		if t.unique {
			dup := false
			for _, prior := range out {
				if equalValue(ev, prior) {
					child := issue(serializer.CodeNotUnique, t.Name(), item)
					child[0].Path = "/" + strconv.Itoa(i)
					iss = serializer.AppendIssues(iss, child...)
					dup = true
					break
				}
			}
			if dup {
				continue
			}
		}
		out = append(out, ev)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (t ListType) Encode(v any) any {
	seq, ok := v.([]any)
	if !ok {
		return v
	}
	out := make([]any, len(seq))
	for i, item := range seq {
		out[i] = t.elem.Encode(item)
	}
	return out
}

// rebase re-anchors child issue paths under base.
func rebase(base string, err error) serializer.Issues {
	child, ok := serializer.AsIssues(err)
	if !ok {
		return serializer.Issues{{Path: base, Code: serializer.CodeParseError, Message: err.Error(), Cause: err}}
	}
	out := make(serializer.Issues, 0, len(child))
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
