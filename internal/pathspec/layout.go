package pathspec

import "path"

// Layout holds the directory roots a corpus workspace is organised under.
// All paths are slash-separated and relative to the corpus root unless the
// corpus configuration overrides them with absolute paths.
type Layout struct {
	AnnotationDir string
	ExportDir     string
	ModelDir      string
	BinDir        string
}

// DefaultLayout returns the standard workspace layout.
func DefaultLayout() Layout {
	return Layout{
		AnnotationDir: "annotations",
		ExportDir:     "export",
		ModelDir:      "models",
		BinDir:        "bin",
	}
}

// AnnotationFile roots an annotation path under the annotation directory.
func (l Layout) AnnotationFile(rel string) string {
	return path.Join(l.AnnotationDir, rel)
}

// ExportFile roots an export path under the export directory.
func (l Layout) ExportFile(rel string) string {
	return path.Join(l.ExportDir, rel)
}

// ModelFile roots a model name under the model directory.
func (l Layout) ModelFile(name string) string {
	return path.Join(l.ModelDir, name)
}

// BinFile roots a binary name under the binary directory.
func (l Layout) BinFile(name string) string {
	return path.Join(l.BinDir, name)
}
