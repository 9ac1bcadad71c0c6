package task

import (
	"context"
	"fmt"
	"path"
	"slices"
	"sort"
	"strings"

	"github.com/korpuslab/taskweave/internal/catalog"
	"github.com/korpuslab/taskweave/internal/config"
	"github.com/korpuslab/taskweave/internal/ctxlog"
	"github.com/korpuslab/taskweave/internal/pathspec"
)

// Env bundles the collaborators the builder needs: the corpus
// configuration, the workspace layout, and a document enumerator.
// Documents is only invoked when a declaration actually needs the full
// document list.
type Env struct {
	Config        *config.Config
	ConfigMissing bool
	Layout        pathspec.Layout
	Documents     func(context.Context) ([]string, error)
}

// Build compiles one catalog entry into a task descriptor. It returns
// (nil, nil) when the entry is skipped: annotating tasks without corpus
// configuration, or entries restricted to languages the corpus is not in.
// Malformed templates fail with an error naming the task and parameter.
func Build(ctx context.Context, entry *catalog.Entry, env *Env) (*Task, error) {
	logger := ctxlog.FromContext(ctx)

	// Without corpus configuration only model-builder tasks make sense.
	if env.ConfigMissing && entry.Category != catalog.ModelBuilder {
		logger.Debug("Skipping task, corpus config missing.", "task", entry.TargetName())
		return nil, nil
	}
	if len(entry.Languages) > 0 && !slices.Contains(entry.Languages, env.Config.Language()) {
		logger.Debug("Skipping task, corpus language not supported.",
			"task", entry.TargetName(), "languages", entry.Languages, "corpus_language", env.Config.Language())
		return nil, nil
	}

	t := &Task{
		Module:      entry.Module,
		Function:    entry.Function,
		Description: entry.Description,
		Category:    entry.Category,
		SourceType:  entry.SourceType,
		Order:       entry.Order,
		Languages:   entry.Languages,
		Params:      make(map[string]any),
		layout:      env.Layout,
	}

	if entry.Category == catalog.Importer {
		if err := buildImporter(entry, env, t); err != nil {
			return nil, err
		}
	}

	for _, p := range entry.Params {
		if err := buildParam(ctx, entry, env, t, p); err != nil {
			return nil, fmt.Errorf("task %s, parameter %q: %w", entry.TargetName(), p.Name, err)
		}
	}

	logger.Debug("Task built.", "task", t.TargetName(),
		"inputs", len(t.Inputs), "outputs", len(t.Outputs), "params", len(t.Params))
	return t, nil
}

// buildImporter adds the implicit importer input and guaranteed outputs:
// the source file itself, the corpus text file, and any annotations the
// importer declares it always produces.
func buildImporter(entry *catalog.Entry, env *Env, t *Task) error {
	t.Inputs = append(t.Inputs, path.Join(env.Config.SourceDir(), pathspec.DocToken+"."+entry.SourceType))

	if entry.SourceType != env.Config.SourceType() {
		return nil
	}
	t.Outputs = append(t.Outputs, env.Layout.AnnotationFile(path.Join(pathspec.DocToken, pathspec.TextFile)))

	guaranteed := entry.ImportOutputs
	if entry.ImportOutputsKey != "" {
		guaranteed = env.Config.GetList(entry.ImportOutputsKey)
	}
	if len(guaranteed) == 0 {
		return nil
	}

	// Each guaranteed annotation also implies its bare element.
	names := make(map[string]struct{})
	for _, annotation := range guaranteed {
		elem, _, err := pathspec.SplitAnnotation(annotation)
		if err != nil {
			return fmt.Errorf("task %s, import output %q: %w", entry.TargetName(), annotation, err)
		}
		names[annotation] = struct{}{}
		names[elem] = struct{}{}
	}
	ordered := make([]string, 0, len(names))
	for name := range names {
		ordered = append(ordered, name)
	}
	sort.Strings(ordered)
	for _, name := range ordered {
		p, err := pathspec.AnnotationPath(name, false, false)
		if err != nil {
			return fmt.Errorf("task %s, import output %q: %w", entry.TargetName(), name, err)
		}
		t.Outputs = append(t.Outputs, env.Layout.AnnotationFile(p))
	}
	return nil
}

// buildParam dispatches one parameter on its descriptor variant. The
// descriptor set is closed; an unhandled variant is a build error.
func buildParam(ctx context.Context, entry *catalog.Entry, env *Env, t *Task, p catalog.Param) error {
	lookup := env.Config.Lookup

	switch v := p.Value.(type) {
	case catalog.Output:
		value, err := pathspec.ExpandConfigRefs(v.Name, lookup)
		if err != nil {
			return err
		}
		annPath, err := pathspec.AnnotationPath(value, v.Data, v.Common)
		if err != nil {
			return err
		}
		switch {
		case v.AllDocs:
			docs, err := env.Documents(ctx)
			if err != nil {
				return err
			}
			t.Outputs = append(t.Outputs, pathspec.ExpandDocs(env.Layout.AnnotationFile(annPath), docs)...)
		case v.Common:
			full := env.Layout.AnnotationFile(annPath)
			t.Outputs = append(t.Outputs, full)
			if t.Installer() {
				t.InstallOutputs = append(t.InstallOutputs, full)
			}
		default:
			t.Outputs = append(t.Outputs, annPath)
		}
		t.Params[p.Name] = value
		markWildcards(t, p.Name, value)
		t.Annotations = append(t.Annotations, AnnotationDecl{Name: value, Description: v.Description})

	case catalog.Annotation:
		value, err := pathspec.ExpandConfigRefs(v.Name, lookup)
		if err != nil {
			return err
		}
		annPath, err := pathspec.AnnotationPath(value, v.Data, v.Common)
		if err != nil {
			return err
		}
		switch {
		case v.AllDocs:
			docs, err := env.Documents(ctx)
			if err != nil {
				return err
			}
			t.Inputs = append(t.Inputs, pathspec.ExpandDocs(env.Layout.AnnotationFile(annPath), docs)...)
		case t.Exporter() || t.Installer() || v.Common:
			t.Inputs = append(t.Inputs, env.Layout.AnnotationFile(annPath))
		default:
			t.Inputs = append(t.Inputs, annPath)
		}
		t.Params[p.Name] = value
		markWildcards(t, p.Name, value)

	case catalog.Model:
		value, err := pathspec.ExpandConfigRefs(v.Name, lookup)
		if err != nil {
			return err
		}
		model := env.Layout.ModelFile(value)
		t.Inputs = append(t.Inputs, model)
		t.Params[p.Name] = model

	case catalog.Models:
		models := make([]string, 0, len(v))
		for _, m := range v {
			value, err := pathspec.ExpandConfigRefs(m.Name, lookup)
			if err != nil {
				return err
			}
			model := env.Layout.ModelFile(value)
			t.Inputs = append(t.Inputs, model)
			models = append(models, model)
		}
		t.Params[p.Name] = models

	case catalog.ModelOutput:
		value, err := pathspec.ExpandConfigRefs(v.Name, lookup)
		if err != nil {
			return err
		}
		model := env.Layout.ModelFile(value)
		t.Outputs = append(t.Outputs, model)
		t.Params[p.Name] = model
		t.ModelOutputs = append(t.ModelOutputs, model)

	case catalog.Binary:
		value, err := pathspec.ExpandConfigRefs(v.Name, lookup)
		if err != nil {
			return err
		}
		bin := env.Layout.BinFile(value)
		t.Inputs = append(t.Inputs, bin)
		t.Params[p.Name] = bin

	case catalog.ConfigValue:
		t.Params[p.Name] = env.Config.Get(v.Key, v.Default)

	case catalog.Corpus:
		t.Params[p.Name] = env.Config.CorpusID()

	case catalog.Language:
		t.Params[p.Name] = env.Config.Language()

	case catalog.Document:
		t.DocSlots = append(t.DocSlots, p.Name)

	case catalog.Source:
		t.Params[p.Name] = env.Config.SourceDir()

	case catalog.AllDocuments:
		docs, err := env.Documents(ctx)
		if err != nil {
			return err
		}
		t.Params[p.Name] = slices.Clone(docs)

	case catalog.Export:
		value, err := pathspec.ExpandConfigRefs(v.Name, lookup)
		if err != nil {
			return err
		}
		exportPath := value
		if !v.AbsolutePath {
			exportPath = env.Layout.ExportFile(value)
		}
		t.Outputs = append(t.Outputs, exportPath)
		t.Params[p.Name] = exportPath
		if strings.Contains(exportPath, pathspec.DocToken) {
			t.DocTemplated = append(t.DocTemplated, p.Name)
		}
		markWildcards(t, p.Name, exportPath)

	case catalog.ExportInput:
		value, err := pathspec.ExpandConfigRefs(v.Name, lookup)
		if err != nil {
			return err
		}
		inputPath := value
		if !v.AbsolutePath {
			inputPath = env.Layout.ExportFile(value)
		}
		t.Params[p.Name] = inputPath
		if v.AllDocs {
			docs, err := env.Documents(ctx)
			if err != nil {
				return err
			}
			t.Inputs = append(t.Inputs, pathspec.ExpandDocs(inputPath, docs)...)
		} else {
			t.Inputs = append(t.Inputs, inputPath)
		}
		markWildcards(t, p.Name, inputPath)

	case catalog.ExportAnnotations:
		selected := env.Config.ExportAnnotations(v.Format)
		values := make([]string, 0, len(selected))
		for _, annotation := range selected {
			name, rename := splitRename(annotation)
			expanded, err := pathspec.ExpandConfigRefs(name, lookup)
			if err != nil {
				return err
			}
			if v.IsInput {
				annPath, err := pathspec.AnnotationPath(expanded, false, false)
				if err != nil {
					return err
				}
				t.Inputs = append(t.Inputs, env.Layout.AnnotationFile(annPath))
			}
			if rename != "" {
				expanded = expanded + " as " + rename
			}
			values = append(values, expanded)
		}
		t.Params[p.Name] = values

	case catalog.Descriptor:
		// Guard against a variant added to the catalog but not handled
		// above.
		return fmt.Errorf("unhandled parameter descriptor %T", v)

	default:
		if p.Value != nil {
			t.Params[p.Name] = p.Value
		}
	}
	return nil
}

// markWildcards records the parameter as wildcard-bearing when its value
// still contains brace wildcards other than {doc}.
func markWildcards(t *Task, param, value string) {
	if len(pathspec.Wildcards(value)) > 0 {
		t.Wildcarded = append(t.Wildcarded, param)
	}
}

// splitRename splits an "annotation as name" selection into its parts.
func splitRename(annotation string) (name, rename string) {
	name, rename, _ = strings.Cut(annotation, " as ")
	return name, rename
}
