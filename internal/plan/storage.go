// Package plan aggregates task descriptors into the structure handed to
// the external scheduler: the target category lists, the precedence
// edges derived from task order, and any unresolved output collisions.
package plan

import (
	"github.com/korpuslab/taskweave/internal/task"
)

// Target is one selectable entry in a target category list.
type Target struct {
	Name        string
	Description string
	Languages   []string
}

// AnnotationListing groups the output annotations of one function for
// presentation.
type AnnotationListing struct {
	Module      string
	Function    string
	Description string
	Annotations []task.AnnotationDecl
}

// Storage owns the full set of task descriptors and their classification
// into target categories. It is filled incrementally during graph
// construction and treated as read-only by every consumer afterwards.
type Storage struct {
	// Tasks holds every accepted task in construction order.
	Tasks []*task.Task

	// Target category lists. Annotators and importers land in
	// NamedTargets, the other categories each have their own list.
	NamedTargets   []Target
	ExportTargets  []Target
	InstallTargets []Target
	ModelTargets   []Target

	// ModelOutputs are all files produced by model-builders.
	ModelOutputs []string

	// InstallOutputs maps installer target names to the files their
	// installation needs.
	InstallOutputs map[string][]string

	// Annotations lists output annotations per function, in construction
	// order.
	Annotations []AnnotationListing
}

// NewStorage creates an empty Storage.
func NewStorage() *Storage {
	return &Storage{InstallOutputs: make(map[string][]string)}
}

// Add accepts one task descriptor, classifying it into exactly one
// target category and harvesting its model and install outputs.
func (s *Storage) Add(t *task.Task) {
	s.Tasks = append(s.Tasks, t)

	target := Target{Name: t.TargetName(), Description: t.Description, Languages: t.Languages}
	switch {
	case t.Exporter():
		s.ExportTargets = append(s.ExportTargets, target)
	case t.Installer():
		s.InstallTargets = append(s.InstallTargets, target)
	case t.ModelBuilder():
		s.ModelTargets = append(s.ModelTargets, target)
	default:
		s.NamedTargets = append(s.NamedTargets, target)
	}

	s.ModelOutputs = append(s.ModelOutputs, t.ModelOutputs...)
	if len(t.InstallOutputs) > 0 {
		s.InstallOutputs[t.TargetName()] = append(s.InstallOutputs[t.TargetName()], t.InstallOutputs...)
	}
	if len(t.Annotations) > 0 {
		s.Annotations = append(s.Annotations, AnnotationListing{
			Module:      t.Module,
			Function:    t.Function,
			Description: t.Description,
			Annotations: t.Annotations,
		})
	}
}

// InstallInputs flattens the files needed by the selected installations,
// in selection order.
func (s *Storage) InstallInputs(selected []string) []string {
	var inputs []string
	for _, name := range selected {
		inputs = append(inputs, s.InstallOutputs[name]...)
	}
	return inputs
}
