package app_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/korpuslab/taskweave/internal/app"
	"github.com/korpuslab/taskweave/internal/catalog"
)

const runConfig = `
metadata {
  id       = "minicorpus"
  language = "swe"
}

source {
  dir  = "SOURCEDIR"
  type = "xml"
}
`

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	sourceDir := filepath.Join(dir, "source")
	require.NoError(t, os.MkdirAll(sourceDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "d1.xml"), []byte("<text/>"), 0o644))

	cfgPath := filepath.Join(dir, "corpus.hcl")
	content := bytes.ReplaceAll([]byte(runConfig), []byte("SOURCEDIR"), []byte(filepath.ToSlash(sourceDir)))
	require.NoError(t, os.WriteFile(cfgPath, content, 0o644))
	return cfgPath
}

func registryWithExporters(t *testing.T, orderA, orderB *int) *catalog.Registry {
	t.Helper()
	r := catalog.New()
	require.NoError(t, r.Register(&catalog.Entry{
		Module: "a", Function: "export", Category: catalog.Exporter,
		Order: orderA,
		Params: []catalog.Param{
			{Name: "out", Value: catalog.Output{Name: "text:pos"}},
		},
	}))
	require.NoError(t, r.Register(&catalog.Entry{
		Module: "b", Function: "export", Category: catalog.Exporter,
		Order: orderB,
		Params: []catalog.Param{
			{Name: "out", Value: catalog.Output{Name: "text:pos"}},
		},
	}))
	return r
}

func intp(i int) *int { return &i }

func TestRun_OrderedOverlapSucceeds(t *testing.T) {
	t.Parallel()

	cfg, err := app.NewConfig(app.Config{
		ConfigPath: writeConfig(t),
		List:       "targets",
		LogLevel:   "error",
	})
	require.NoError(t, err)

	var out, errOut bytes.Buffer
	a := app.New(cfg, registryWithExporters(t, intp(1), intp(2)), &out, &errOut)
	require.NoError(t, a.Run(context.Background()))

	require.Contains(t, out.String(), "a:export")
	require.Contains(t, out.String(), "b:export")
	require.NotContains(t, errOut.String(), "WARNING")
}

func TestRun_UnorderedOverlapWarns(t *testing.T) {
	t.Parallel()

	cfg, err := app.NewConfig(app.Config{
		ConfigPath: writeConfig(t),
		LogLevel:   "error",
	})
	require.NoError(t, err)

	var out, errOut bytes.Buffer
	a := app.New(cfg, registryWithExporters(t, nil, nil), &out, &errOut)
	require.NoError(t, a.Run(context.Background()))
	require.Contains(t, errOut.String(), "a:export")
	require.Contains(t, errOut.String(), "b:export")
}

func TestRun_StrictOrderFails(t *testing.T) {
	t.Parallel()

	cfg, err := app.NewConfig(app.Config{
		ConfigPath:  writeConfig(t),
		StrictOrder: true,
		LogLevel:    "error",
	})
	require.NoError(t, err)

	var out, errOut bytes.Buffer
	a := app.New(cfg, registryWithExporters(t, nil, nil), &out, &errOut)
	err = a.Run(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "collision")
}

func TestRun_MissingConfigBuildsModelTargetsOnly(t *testing.T) {
	t.Parallel()

	cfg, err := app.NewConfig(app.Config{
		ConfigPath: filepath.Join(t.TempDir(), "absent.hcl"),
		List:       "targets",
		LogLevel:   "error",
	})
	require.NoError(t, err)

	r := catalog.New()
	require.NoError(t, r.Register(&catalog.Entry{
		Module: "hunpos", Function: "postag", Category: catalog.Annotator,
	}))
	require.NoError(t, r.Register(&catalog.Entry{
		Module: "hunpos", Function: "buildmodel", Category: catalog.ModelBuilder,
		Params: []catalog.Param{
			{Name: "out", Value: catalog.ModelOutput{Name: "hunpos/suc3.model"}},
		},
	}))

	var out, errOut bytes.Buffer
	a := app.New(cfg, r, &out, &errOut)
	require.NoError(t, a.Run(context.Background()))

	require.Contains(t, out.String(), "hunpos:buildmodel")
	require.NotContains(t, out.String(), "hunpos:postag")
}

func TestNewConfig_Validation(t *testing.T) {
	t.Parallel()

	_, err := app.NewConfig(app.Config{})
	require.Error(t, err)

	_, err = app.NewConfig(app.Config{ConfigPath: "corpus.hcl", List: "everything"})
	require.Error(t, err)
}
