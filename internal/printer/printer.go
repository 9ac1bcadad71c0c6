// Package printer renders the target category lists, annotation listings
// and collision warnings for the CLI.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/korpuslab/taskweave/internal/plan"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Reverse(true).Padding(0, 1)
	nameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
)

// Targets prints every target category with its descriptions.
func Targets(w io.Writer, s *plan.Storage) {
	printTargetSection(w, "ANNOTATE TARGETS", s.NamedTargets)
	printTargetSection(w, "EXPORT TARGETS", s.ExportTargets)
	printTargetSection(w, "INSTALL TARGETS", s.InstallTargets)
	printTargetSection(w, "MODEL TARGETS", s.ModelTargets)
}

func printTargetSection(w io.Writer, header string, targets []plan.Target) {
	if len(targets) == 0 {
		return
	}
	fmt.Fprintln(w, headerStyle.Render(header))
	width := 0
	for _, t := range targets {
		if len(t.Name) > width {
			width = len(t.Name)
		}
	}
	for _, t := range targets {
		name := nameStyle.Render(t.Name) + strings.Repeat(" ", width-len(t.Name))
		line := "  " + name + "  " + t.Description
		if len(t.Languages) > 0 {
			line += " " + dimStyle.Render("("+strings.Join(t.Languages, ", ")+")")
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)
}

// Annotations prints the output annotations available per function.
func Annotations(w io.Writer, s *plan.Storage) {
	fmt.Fprintln(w, headerStyle.Render("ANNOTATIONS"))
	for _, listing := range s.Annotations {
		fmt.Fprintln(w, "  "+nameStyle.Render(listing.Module+":"+listing.Function)+"  "+dimStyle.Render(listing.Description))
		for _, a := range listing.Annotations {
			line := "    " + a.Name
			if a.Description != "" {
				line += "  " + dimStyle.Render(a.Description)
			}
			fmt.Fprintln(w, line)
		}
	}
	fmt.Fprintln(w)
}

// Collisions prints each unresolved output collision as a warning.
func Collisions(w io.Writer, collisions []plan.Collision) {
	for _, c := range collisions {
		fmt.Fprintf(w, "%s %s and %s have common outputs (%s); set their 'order' values to different numbers.\n",
			warnStyle.Render("WARNING:"),
			nameStyle.Render(c.A.TargetName()),
			nameStyle.Render(c.B.TargetName()),
			strings.Join(c.Outputs, ", "))
	}
}
