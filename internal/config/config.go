package config

import (
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/korpuslab/taskweave/internal/pathspec"
)

// Metadata identifies the corpus.
type Metadata struct {
	ID       string `hcl:"id"`
	Language string `hcl:"language,optional"`
}

// Source describes where source documents live and what type they are.
type Source struct {
	Dir  string `hcl:"dir,optional"`
	Type string `hcl:"type,optional"`
}

// Dirs optionally overrides the workspace layout.
type Dirs struct {
	Annotations string `hcl:"annotations,optional"`
	Export      string `hcl:"export,optional"`
	Models      string `hcl:"models,optional"`
	Bin         string `hcl:"bin,optional"`
}

// ExportFormat selects the annotations one export format includes. An
// entry may carry an "ann as name" rename suffix.
type ExportFormat struct {
	Format      string   `hcl:"format,label"`
	Annotations []string `hcl:"annotations"`
}

// Config is the decoded corpus configuration. Settings carries the
// free-form dotted keys that back ConfigValue descriptors and
// [key=default] template references.
type Config struct {
	Metadata *Metadata
	Source   *Source
	Dirs     *Dirs
	Settings map[string]cty.Value
	Exports  []*ExportFormat
	Install  []string
}

const (
	defaultSourceDir  = "source"
	defaultSourceType = "xml"
)

// CorpusID returns the corpus id, empty when no metadata is configured.
func (c *Config) CorpusID() string {
	if c.Metadata == nil {
		return ""
	}
	return c.Metadata.ID
}

// Language returns the corpus language, empty when unset.
func (c *Config) Language() string {
	if c.Metadata == nil {
		return ""
	}
	return c.Metadata.Language
}

// SourceDir returns the source document directory.
func (c *Config) SourceDir() string {
	if c.Source == nil || c.Source.Dir == "" {
		return defaultSourceDir
	}
	return c.Source.Dir
}

// SourceType returns the source document file type.
func (c *Config) SourceType() string {
	if c.Source == nil || c.Source.Type == "" {
		return defaultSourceType
	}
	return c.Source.Type
}

// Layout returns the workspace layout, with any configured overrides
// applied on top of the defaults.
func (c *Config) Layout() pathspec.Layout {
	l := pathspec.DefaultLayout()
	if c.Dirs == nil {
		return l
	}
	if c.Dirs.Annotations != "" {
		l.AnnotationDir = c.Dirs.Annotations
	}
	if c.Dirs.Export != "" {
		l.ExportDir = c.Dirs.Export
	}
	if c.Dirs.Models != "" {
		l.ModelDir = c.Dirs.Models
	}
	if c.Dirs.Bin != "" {
		l.BinDir = c.Dirs.Bin
	}
	return l
}

// Lookup finds the string value for a dotted configuration key. A few
// well-known keys map onto the structured blocks; everything else is read
// from the settings map.
func (c *Config) Lookup(key string) (string, bool) {
	switch key {
	case "metadata.id":
		if v := c.CorpusID(); v != "" {
			return v, true
		}
		return "", false
	case "metadata.language":
		if v := c.Language(); v != "" {
			return v, true
		}
		return "", false
	case "source.dir":
		return c.SourceDir(), true
	case "source.type":
		return c.SourceType(), true
	}
	v, ok := c.Settings[key]
	if !ok {
		return "", false
	}
	s, err := convert.Convert(v, cty.String)
	if err != nil || s.IsNull() {
		return "", false
	}
	return s.AsString(), true
}

// Get returns the value for key, or def when the key is unset.
func (c *Config) Get(key, def string) string {
	if v, ok := c.Lookup(key); ok {
		return v
	}
	return def
}

// GetList returns the string list stored under key, or nil when unset.
// A scalar value yields a one-element list.
func (c *Config) GetList(key string) []string {
	v, ok := c.Settings[key]
	if !ok || v.IsNull() {
		return nil
	}
	if v.Type().IsTupleType() || v.Type().IsListType() || v.Type().IsSetType() {
		var out []string
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			s, err := convert.Convert(ev, cty.String)
			if err != nil || s.IsNull() {
				continue
			}
			out = append(out, s.AsString())
		}
		return out
	}
	if s, err := convert.Convert(v, cty.String); err == nil && !s.IsNull() {
		return []string{s.AsString()}
	}
	return nil
}

// ExportAnnotations returns the annotation selection for one export
// format, including any "ann as name" rename suffixes.
func (c *Config) ExportAnnotations(format string) []string {
	for _, e := range c.Exports {
		if strings.EqualFold(e.Format, format) {
			return e.Annotations
		}
	}
	return nil
}
