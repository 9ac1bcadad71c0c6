// Package pathspec turns annotation and export declarations into the path
// templates that make up a task's input and output sets. Templates may
// carry brace wildcards; the reserved wildcard {doc} is bound to one
// document identifier when a task instance is created, every other
// wildcard is bound later by the scheduler.
package pathspec

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

const (
	// DocWildcard is the reserved wildcard name bound to a document id.
	DocWildcard = "doc"

	// DocToken is the literal form of the document wildcard in templates.
	DocToken = "{doc}"

	// SpanAnnotation is the attribute used when an annotation declares an
	// element but no attribute, i.e. the annotation describes spans only.
	SpanAnnotation = "@span"

	// TextFile is the corpus text output every importer guarantees.
	TextFile = "@text"
)

var (
	wildcardRe  = regexp.MustCompile(`\{([^{}]+)\}`)
	configRefRe = regexp.MustCompile(`\[([^\[\]=]+)(?:=([^\[\]]*))?\]`)
)

// SplitAnnotation splits an "element:attribute" template into its parts.
// The attribute part may be empty. More than one separator is malformed.
func SplitAnnotation(annotation string) (elem, attr string, err error) {
	if annotation == "" {
		return "", "", fmt.Errorf("empty annotation template")
	}
	parts := strings.SplitN(annotation, ":", 3)
	if len(parts) > 2 {
		return "", "", fmt.Errorf("malformed annotation template %q: more than one ':' separator", annotation)
	}
	elem = parts[0]
	if len(parts) == 2 {
		attr = parts[1]
	}
	if elem == "" {
		return "", "", fmt.Errorf("malformed annotation template %q: missing element", annotation)
	}
	return elem, attr, nil
}

// AnnotationPath constructs the file path for an annotation template.
// Span annotations become <elem>/<attr> with SpanAnnotation filling in a
// missing attribute; data annotations drop the attribute part entirely.
// Unless the annotation is corpus-common the path nests under {doc}.
func AnnotationPath(annotation string, data, common bool) (string, error) {
	elem, attr, err := SplitAnnotation(annotation)
	if err != nil {
		return "", err
	}
	p := elem
	if !data && !common {
		if attr == "" {
			attr = SpanAnnotation
		}
		p = path.Join(p, attr)
	}
	if !common {
		p = path.Join(DocToken, p)
	}
	return p, nil
}

// Wildcards returns the names of all brace wildcards in s except {doc}.
func Wildcards(s string) []string {
	var names []string
	for _, m := range wildcardRe.FindAllStringSubmatch(s, -1) {
		if m[1] == DocWildcard {
			continue
		}
		names = append(names, m[1])
	}
	return names
}

// HasWildcard reports whether s contains any brace wildcard, including {doc}.
func HasWildcard(s string) bool {
	return wildcardRe.MatchString(s)
}

// ExpandDocs eagerly expands the {doc} wildcard in template against every
// known document, yielding one concrete path per document. Other wildcards
// are left untouched.
func ExpandDocs(template string, docs []string) []string {
	expanded := make([]string, 0, len(docs))
	for _, doc := range docs {
		expanded = append(expanded, strings.ReplaceAll(template, DocToken, doc))
	}
	return expanded
}

// ExpandConfigRefs substitutes every [key=default] reference in template
// with the configuration value for key, or the literal default when the
// key is unset. A reference without a default for an unset key is an
// error. Config references resolve before any wildcard handling, so a
// configuration value may itself introduce a wildcard.
func ExpandConfigRefs(template string, lookup func(key string) (string, bool)) (string, error) {
	var refErr error
	out := configRefRe.ReplaceAllStringFunc(template, func(ref string) string {
		m := configRefRe.FindStringSubmatch(ref)
		key := m[1]
		if val, ok := lookup(key); ok {
			return val
		}
		if strings.Contains(ref, "=") {
			return m[2]
		}
		if refErr == nil {
			refErr = fmt.Errorf("configuration key %q referenced in %q is unset and has no default", key, template)
		}
		return ""
	})
	if refErr != nil {
		return "", refErr
	}
	return out, nil
}
