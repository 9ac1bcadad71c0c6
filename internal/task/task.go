// Package task compiles catalog entries into task descriptors: the
// concrete input/output path sets and parameter maps the external
// scheduler needs to run one function per document. It also provides the
// per-document resolution closure that instantiates a descriptor's
// parameters for one concrete document at execution time.
package task

import (
	"github.com/korpuslab/taskweave/internal/catalog"
	"github.com/korpuslab/taskweave/internal/pathspec"
)

// AnnotationDecl records one output annotation a task makes available,
// used for the annotation listings.
type AnnotationDecl struct {
	Name        string
	Description string
}

// Task is the descriptor built from one catalog entry. It is constructed
// once at graph-construction time and immutable thereafter; the per-
// document parameter map handed to the scheduler is always a fresh copy
// made by the resolver.
type Task struct {
	Module      string
	Function    string
	Description string
	Category    catalog.Category
	SourceType  string

	// Order disambiguates tasks with overlapping outputs; nil means
	// unordered.
	Order *int

	// Languages carries the entry's language restriction for target
	// listings.
	Languages []string

	// Inputs and Outputs are path templates in parameter declaration
	// order; both may still carry wildcards.
	Inputs  []string
	Outputs []string

	// Params is the template parameter map. Values are scalars, strings
	// or string lists; strings may carry unresolved wildcards.
	Params map[string]any

	// DocSlots names parameters filled verbatim with the document id.
	DocSlots []string

	// DocTemplated names string parameters carrying the {doc} wildcard,
	// resolved by substring replacement.
	DocTemplated []string

	// Wildcarded names parameters carrying wildcards other than {doc},
	// resolved against scheduler-supplied bindings.
	Wildcarded []string

	// ModelOutputs are the model files this task produces.
	ModelOutputs []string

	// InstallOutputs are the corpus-common outputs of an installer task.
	InstallOutputs []string

	// Annotations lists the output annotations for listings.
	Annotations []AnnotationDecl

	layout pathspec.Layout
}

// TargetName is the user-facing task name, "module:function".
func (t *Task) TargetName() string {
	return t.Module + ":" + t.Function
}

// RuleName is the graph node name, "module::function".
func (t *Task) RuleName() string {
	return t.Module + "::" + t.Function
}

// Annotator reports whether the task is an annotator.
func (t *Task) Annotator() bool { return t.Category == catalog.Annotator }

// Importer reports whether the task is an importer.
func (t *Task) Importer() bool { return t.Category == catalog.Importer }

// Exporter reports whether the task is an exporter.
func (t *Task) Exporter() bool { return t.Category == catalog.Exporter }

// Installer reports whether the task is an installer.
func (t *Task) Installer() bool { return t.Category == catalog.Installer }

// ModelBuilder reports whether the task is a model-builder.
func (t *Task) ModelBuilder() bool { return t.Category == catalog.ModelBuilder }

// Layout returns the workspace layout the task's paths were synthesized
// against.
func (t *Task) Layout() pathspec.Layout { return t.layout }
