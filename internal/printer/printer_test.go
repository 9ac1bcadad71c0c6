package printer_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/korpuslab/taskweave/internal/catalog"
	"github.com/korpuslab/taskweave/internal/plan"
	"github.com/korpuslab/taskweave/internal/printer"
	"github.com/korpuslab/taskweave/internal/task"
)

func storageWithTargets() *plan.Storage {
	s := plan.NewStorage()
	s.Add(&task.Task{
		Module: "hunpos", Function: "postag",
		Category:    catalog.Annotator,
		Description: "Part-of-speech tagging.",
		Annotations: []task.AnnotationDecl{{Name: "token:pos", Description: "POS tag"}},
	})
	s.Add(&task.Task{
		Module: "xmlexport", Function: "pretty",
		Category:    catalog.Exporter,
		Description: "Pretty-printed XML export.",
		Languages:   []string{"swe"},
	})
	return s
}

func TestTargets(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printer.Targets(&buf, storageWithTargets())
	out := buf.String()

	require.Contains(t, out, "hunpos:postag")
	require.Contains(t, out, "Part-of-speech tagging.")
	require.Contains(t, out, "xmlexport:pretty")
	require.Contains(t, out, "swe")
	// Empty categories print nothing.
	require.NotContains(t, out, "INSTALL")
}

func TestAnnotations(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printer.Annotations(&buf, storageWithTargets())
	out := buf.String()

	require.Contains(t, out, "hunpos:postag")
	require.Contains(t, out, "token:pos")
	require.Contains(t, out, "POS tag")
}

func TestCollisions(t *testing.T) {
	t.Parallel()

	a := &task.Task{Module: "a", Function: "f", Category: catalog.Exporter}
	b := &task.Task{Module: "b", Function: "f", Category: catalog.Exporter}

	var buf bytes.Buffer
	printer.Collisions(&buf, []plan.Collision{{A: a, B: b, Outputs: []string{"export/x.xml"}}})
	out := buf.String()

	require.Contains(t, out, "a:f")
	require.Contains(t, out, "b:f")
	require.Contains(t, out, "export/x.xml")
	require.Contains(t, out, "order")
}
