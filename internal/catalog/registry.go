package catalog

import "fmt"

// Category classifies a catalog entry. The categories are mutually
// exclusive and decide which target list the resulting task lands in.
type Category int

const (
	Annotator Category = iota
	Importer
	Exporter
	Installer
	ModelBuilder
)

// String implements fmt.Stringer.
func (c Category) String() string {
	switch c {
	case Annotator:
		return "annotator"
	case Importer:
		return "importer"
	case Exporter:
		return "exporter"
	case Installer:
		return "installer"
	case ModelBuilder:
		return "modelbuilder"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

func (c Category) valid() bool {
	return c >= Annotator && c <= ModelBuilder
}

// Param is one function parameter in declaration order. Value is either a
// Descriptor or a literal default.
type Param struct {
	Name  string
	Value any
}

// Entry is the metadata for one processing function.
type Entry struct {
	Module      string
	Function    string
	Description string
	Category    Category

	// Params are processed in declaration order.
	Params []Param

	// Order disambiguates entries producing the same output; nil means
	// unordered.
	Order *int

	// Languages restricts the entry to corpora in these languages.
	// Empty means unrestricted.
	Languages []string

	// SourceType is the file extension an importer consumes.
	SourceType string

	// ImportOutputs lists annotations an importer guarantees to produce.
	ImportOutputs []string

	// ImportOutputsKey, when set, reads the guaranteed output list from
	// the corpus configuration instead of ImportOutputs.
	ImportOutputsKey string
}

// TargetName is the user-facing name of the entry, "module:function".
func (e *Entry) TargetName() string {
	return e.Module + ":" + e.Function
}

// RuleName is the internal graph node name, "module::function".
func (e *Entry) RuleName() string {
	return e.Module + "::" + e.Function
}

// Registry is the catalog of processing functions known to the engine.
// It is constructed once at startup and passed by handle into the task
// builder; there is no ambient global registry.
type Registry struct {
	entries []*Entry
	byName  map[string]*Entry
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{byName: make(map[string]*Entry)}
}

// Register validates and adds one entry. Registration order is preserved
// and becomes the task construction order.
func (r *Registry) Register(e *Entry) error {
	if e.Module == "" || e.Function == "" {
		return fmt.Errorf("catalog entry must have both module and function names, got %q", e.TargetName())
	}
	if !e.Category.valid() {
		return fmt.Errorf("catalog entry %s has invalid category %d", e.TargetName(), int(e.Category))
	}
	if _, exists := r.byName[e.RuleName()]; exists {
		return fmt.Errorf("catalog entry %s registered twice", e.TargetName())
	}
	seen := make(map[string]struct{}, len(e.Params))
	for _, p := range e.Params {
		if p.Name == "" {
			return fmt.Errorf("catalog entry %s has an unnamed parameter", e.TargetName())
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("catalog entry %s declares parameter %q twice", e.TargetName(), p.Name)
		}
		seen[p.Name] = struct{}{}
	}
	r.entries = append(r.entries, e)
	r.byName[e.RuleName()] = e
	return nil
}

// Entries returns all registered entries in registration order.
func (r *Registry) Entries() []*Entry {
	return r.entries
}

// Lookup finds an entry by its rule name.
func (r *Registry) Lookup(ruleName string) (*Entry, bool) {
	e, ok := r.byName[ruleName]
	return e, ok
}
