// Package corpus exposes the corpus-metadata collaborator: identity,
// language, and the enumerable set of source documents the path
// synthesizer expands all-documents declarations against.
package corpus

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/korpuslab/taskweave/internal/config"
	"github.com/korpuslab/taskweave/internal/ctxlog"
)

// Corpus wraps the corpus configuration with document enumeration. The
// document list is read from disk once and memoized; graph construction
// is the only caller and runs as a single synchronous pass.
type Corpus struct {
	cfg *config.Config

	once sync.Once
	docs []string
	err  error
}

// New creates a Corpus over the given configuration.
func New(cfg *config.Config) *Corpus {
	return &Corpus{cfg: cfg}
}

// ID returns the corpus id.
func (c *Corpus) ID() string { return c.cfg.CorpusID() }

// Language returns the corpus language.
func (c *Corpus) Language() string { return c.cfg.Language() }

// SourceDir returns the source document directory.
func (c *Corpus) SourceDir() string { return c.cfg.SourceDir() }

// SourceType returns the source document file type.
func (c *Corpus) SourceType() string { return c.cfg.SourceType() }

// Documents enumerates the ids of all source documents: files under the
// source directory with the configured type, identified by their path
// relative to the source directory without the extension. The result is
// sorted and memoized.
func (c *Corpus) Documents(ctx context.Context) ([]string, error) {
	c.once.Do(func() {
		c.docs, c.err = c.enumerate(ctx)
	})
	return c.docs, c.err
}

func (c *Corpus) enumerate(ctx context.Context) ([]string, error) {
	logger := ctxlog.FromContext(ctx)
	root := c.SourceDir()
	suffix := "." + c.SourceType()

	var docs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), suffix) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		docs = append(docs, strings.TrimSuffix(rel, suffix))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(docs)
	logger.Debug("Source documents enumerated.", "dir", root, "type", c.SourceType(), "count", len(docs))
	return docs, nil
}
