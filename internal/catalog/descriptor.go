package catalog

// Descriptor is the closed set of declaration kinds a task function
// parameter can carry. Each variant tells the task builder whether the
// parameter contributes a file to the task's input or output set, or a
// scalar value to its parameter map.
//
// The set is sealed: only types in this package implement it, and the
// builder dispatches over it exhaustively. A parameter whose default is
// not a Descriptor is treated as a literal value.
type Descriptor interface {
	descriptor()
}

// Output declares an annotation file this task produces.
type Output struct {
	// Name is the "element:attribute" template, possibly carrying
	// wildcards and [config.key=default] references.
	Name string
	// AllDocs expands the per-document path across every known document
	// at build time.
	AllDocs bool
	// Common scopes the output to the corpus root instead of a document.
	Common bool
	// Data marks the output as an opaque blob rather than a span
	// annotation; no attribute suffix is added to its path.
	Data bool
	// Description is shown in annotation listings.
	Description string
}

// Annotation declares an annotation file this task reads. The attributes
// mirror Output.
type Annotation struct {
	Name    string
	AllDocs bool
	Common  bool
	Data    bool
}

// Model declares a precomputed resource file this task reads.
type Model struct {
	Name string
}

// Models declares a list of model inputs under one parameter.
type Models []Model

// ModelOutput declares a resource file this task produces, typically from
// a model-builder.
type ModelOutput struct {
	Name string
}

// Binary declares an external executable the task depends on.
type Binary struct {
	Name string
}

// ConfigValue resolves to a configuration-derived scalar.
type ConfigValue struct {
	Key     string
	Default string
}

// Corpus resolves to the corpus id.
type Corpus struct{}

// Language resolves to the corpus language.
type Language struct{}

// Document marks a parameter slot filled verbatim with the document id of
// the task instance.
type Document struct{}

// Source resolves to the source directory path.
type Source struct{}

// AllDocuments resolves to the full list of document ids in the corpus.
type AllDocuments struct{}

// Export declares an output under the export root, or at the literal
// template path when AbsolutePath is set.
type Export struct {
	Name         string
	AbsolutePath bool
}

// ExportInput declares an input under the export root.
type ExportInput struct {
	Name         string
	AbsolutePath bool
	AllDocs      bool
}

// ExportAnnotations resolves to the list of annotations the corpus
// configuration selects for one export format. With IsInput set, each
// selected annotation is also added to the task's input set.
type ExportAnnotations struct {
	Format  string
	IsInput bool
}

func (Output) descriptor()            {}
func (Annotation) descriptor()        {}
func (Model) descriptor()             {}
func (Models) descriptor()            {}
func (ModelOutput) descriptor()       {}
func (Binary) descriptor()            {}
func (ConfigValue) descriptor()       {}
func (Corpus) descriptor()            {}
func (Language) descriptor()          {}
func (Document) descriptor()          {}
func (Source) descriptor()            {}
func (AllDocuments) descriptor()      {}
func (Export) descriptor()            {}
func (ExportInput) descriptor()       {}
func (ExportAnnotations) descriptor() {}
