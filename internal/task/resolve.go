package task

import (
	"fmt"
	"slices"
	"strings"

	"github.com/korpuslab/taskweave/internal/pathspec"
)

// Bindings are the wildcard values the scheduler supplies when it
// instantiates a task: the document id under "doc" plus any other named
// wildcards.
type Bindings map[string]string

// Resolver instantiates a task's parameters for one concrete document.
// It is pure: every invocation starts from a fresh copy of the template
// parameter map, so concurrent instantiation for different documents is
// safe and order-independent.
type Resolver func(b Bindings) (map[string]any, error)

// Resolver returns the wildcard-resolution closure for the task. The
// document binding is applied first: document slots receive the id
// verbatim and {doc} templates are substring-replaced. Remaining named
// wildcards are then replaced from the bindings; a wildcard with no
// binding is an error, never an empty substitution.
func (t *Task) Resolver() Resolver {
	return func(b Bindings) (map[string]any, error) {
		params := copyParams(t.Params)

		doc, hasDoc := b[pathspec.DocWildcard]
		if hasDoc && t.Annotator() {
			// The scheduler addresses annotator instances by their
			// annotation-dir path; strip the prefix back off to recover
			// the document id.
			doc = strings.TrimPrefix(doc, t.layout.AnnotationDir+"/")
		}

		for _, name := range t.DocSlots {
			if !hasDoc {
				return nil, fmt.Errorf("task %s: parameter %q needs a document binding", t.TargetName(), name)
			}
			params[name] = doc
		}

		for _, name := range t.DocTemplated {
			if !hasDoc {
				return nil, fmt.Errorf("task %s: parameter %q needs a document binding", t.TargetName(), name)
			}
			s, ok := params[name].(string)
			if !ok {
				return nil, fmt.Errorf("task %s: parameter %q is not a string template", t.TargetName(), name)
			}
			params[name] = strings.ReplaceAll(s, pathspec.DocToken, doc)
		}

		for _, name := range t.Wildcarded {
			switch v := params[name].(type) {
			case string:
				resolved, err := t.substitute(v, name, b)
				if err != nil {
					return nil, err
				}
				params[name] = resolved
			case []string:
				for i, s := range v {
					resolved, err := t.substitute(s, name, b)
					if err != nil {
						return nil, err
					}
					v[i] = resolved
				}
			default:
				return nil, fmt.Errorf("task %s: parameter %q is not a string template", t.TargetName(), name)
			}
		}
		return params, nil
	}
}

// substitute replaces every named wildcard in s from the bindings,
// leaving {doc} alone.
func (t *Task) substitute(s, param string, b Bindings) (string, error) {
	for _, wc := range pathspec.Wildcards(s) {
		val, ok := b[wc]
		if !ok {
			return "", fmt.Errorf("task %s: unresolved wildcard {%s} in parameter %q", t.TargetName(), wc, param)
		}
		s = strings.ReplaceAll(s, "{"+wc+"}", val)
	}
	return s, nil
}

// copyParams deep-copies a template parameter map. Parameter values are
// scalars, strings or string lists, so a structural copy is cheap.
func copyParams(params map[string]any) map[string]any {
	out := make(map[string]any, len(params))
	for k, v := range params {
		switch vv := v.(type) {
		case []string:
			out[k] = slices.Clone(vv)
		case []any:
			out[k] = slices.Clone(vv)
		default:
			out[k] = v
		}
	}
	return out
}
