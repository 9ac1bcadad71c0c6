package config

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/korpuslab/taskweave/internal/ctxlog"
)

// hclConfig is the raw decode target for a corpus config file.
type hclConfig struct {
	Metadata *Metadata       `hcl:"metadata,block"`
	Source   *Source         `hcl:"source,block"`
	Dirs     *Dirs           `hcl:"dirs,block"`
	Settings cty.Value       `hcl:"settings,optional"`
	Exports  []*ExportFormat `hcl:"export,block"`
	Install  []string        `hcl:"install,optional"`
}

// Load reads the corpus configuration from path. A missing file is not an
// error: the engine still builds model-builder tasks without corpus
// configuration, so Load returns an empty config and missing=true.
func Load(ctx context.Context, path string) (cfg *Config, missing bool, err error) {
	logger := ctxlog.FromContext(ctx)
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		logger.Warn("Corpus config file not found, building model targets only.", "path", path)
		return &Config{}, true, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, false, fmt.Errorf("failed to parse corpus config %s: %w", path, diags)
	}

	var raw hclConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, false, fmt.Errorf("failed to decode corpus config %s: %w", path, diags)
	}

	cfg, err = fromRaw(&raw)
	if err != nil {
		return nil, false, fmt.Errorf("invalid corpus config %s: %w", path, err)
	}
	logger.Debug("Corpus config loaded.", "path", path, "corpus", cfg.CorpusID(), "language", cfg.Language())
	return cfg, false, nil
}

// Parse decodes a corpus configuration from an in-memory source. The
// filename is used in diagnostics only.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse corpus config %s: %w", filename, diags)
	}
	var raw hclConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode corpus config %s: %w", filename, diags)
	}
	return fromRaw(&raw)
}

func fromRaw(raw *hclConfig) (*Config, error) {
	cfg := &Config{
		Metadata: raw.Metadata,
		Source:   raw.Source,
		Dirs:     raw.Dirs,
		Exports:  raw.Exports,
		Install:  raw.Install,
	}
	if raw.Settings != cty.NilVal && !raw.Settings.IsNull() {
		if !raw.Settings.Type().IsObjectType() && !raw.Settings.Type().IsMapType() {
			return nil, fmt.Errorf("settings must be an object of key/value pairs")
		}
		cfg.Settings = raw.Settings.AsValueMap()
	}
	return cfg, nil
}
