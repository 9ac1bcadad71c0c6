package task

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/korpuslab/taskweave/internal/catalog"
	"github.com/korpuslab/taskweave/internal/pathspec"
)

func exporterTask() *Task {
	return &Task{
		Module: "xmlexport", Function: "pretty",
		Category: catalog.Exporter,
		Params: map[string]any{
			"out":    "export/xml/{doc}_export.xml",
			"chunks": "{doc}/sentence.{chunk}",
			"corpus": "minicorpus",
		},
		DocTemplated: []string{"out"},
		Wildcarded:   []string{"chunks"},
		layout:       pathspec.DefaultLayout(),
	}
}

func TestResolver_DocBeforeNamedWildcards(t *testing.T) {
	t.Parallel()

	resolve := exporterTask().Resolver()
	params, err := resolve(Bindings{"doc": "text42", "chunk": "ne"})
	require.NoError(t, err)

	require.Equal(t, "export/xml/text42_export.xml", params["out"])
	// {doc} is already bound when the named-wildcard pass runs and is
	// never touched by it.
	require.Equal(t, "text42/sentence.ne", params["chunks"])
	require.Equal(t, "minicorpus", params["corpus"])
}

func TestResolver_FillsDocumentSlots(t *testing.T) {
	t.Parallel()

	tsk := &Task{
		Module: "hunpos", Function: "postag",
		Category: catalog.Annotator,
		Params:   map[string]any{"out": "token:pos"},
		DocSlots: []string{"doc"},
		layout:   pathspec.DefaultLayout(),
	}
	resolve := tsk.Resolver()

	// Annotator instances are addressed by their annotation-dir path;
	// the resolver recovers the bare document id.
	params, err := resolve(Bindings{"doc": "annotations/text42"})
	require.NoError(t, err)
	require.Equal(t, "text42", params["doc"])
}

func TestResolver_UnresolvedWildcardIsAnError(t *testing.T) {
	t.Parallel()

	resolve := exporterTask().Resolver()
	_, err := resolve(Bindings{"doc": "text42"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "{chunk}")
	require.Contains(t, err.Error(), "xmlexport:pretty")
}

func TestResolver_MissingDocBindingIsAnError(t *testing.T) {
	t.Parallel()

	resolve := exporterTask().Resolver()
	_, err := resolve(Bindings{"chunk": "ne"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "document binding")
}

func TestResolver_PureAndIdempotent(t *testing.T) {
	t.Parallel()

	tsk := exporterTask()
	before := copyParams(tsk.Params)
	resolve := tsk.Resolver()

	first, err := resolve(Bindings{"doc": "d1", "chunk": "ne"})
	require.NoError(t, err)
	second, err := resolve(Bindings{"doc": "d1", "chunk": "ne"})
	require.NoError(t, err)

	require.Empty(t, cmp.Diff(first, second))
	// The template map is never mutated by resolution.
	require.Empty(t, cmp.Diff(before, tsk.Params))
}

func TestResolver_ListParameters(t *testing.T) {
	t.Parallel()

	tsk := &Task{
		Module: "cwb", Function: "encode",
		Category: catalog.Exporter,
		Params: map[string]any{
			"files": []string{"vrt/{part}.vrt", "vrt/index.{part}"},
		},
		Wildcarded: []string{"files"},
		layout:     pathspec.DefaultLayout(),
	}
	resolve := tsk.Resolver()

	params, err := resolve(Bindings{"part": "p1"})
	require.NoError(t, err)
	require.Equal(t, []string{"vrt/p1.vrt", "vrt/index.p1"}, params["files"])
	// The template list is untouched.
	require.Equal(t, []string{"vrt/{part}.vrt", "vrt/index.{part}"}, tsk.Params["files"])
}

func TestResolver_ConcurrentInstantiation(t *testing.T) {
	t.Parallel()

	tsk := exporterTask()
	resolve := tsk.Resolver()

	var wg sync.WaitGroup
	for _, doc := range []string{"d1", "d2", "d3", "d4"} {
		wg.Add(1)
		go func(doc string) {
			defer wg.Done()
			params, err := resolve(Bindings{"doc": doc, "chunk": "ne"})
			if err != nil {
				t.Error(err)
				return
			}
			if params["out"] != "export/xml/"+doc+"_export.xml" {
				t.Errorf("wrong resolution for %s: %v", doc, params["out"])
			}
		}(doc)
	}
	wg.Wait()
}
