package ui

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"

	"gint/internal/domain"
)

// ListEntry is one discovered definition shown by the list command
type ListEntry struct {
	Path string
	Name string
	Err  error
}

// Formatter formats and displays run summaries and test lists
type Formatter struct {
	w io.Writer
}

// NewFormatter creates a new Formatter
func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

// PrintSummary prints the aggregate outcome of a run
func (f *Formatter) PrintSummary(outcome *domain.RunOutcome) {
	if outcome == nil || len(outcome.Tests) == 0 {
		return
	}

	fmt.Fprintln(f.w)
	fmt.Fprintln(f.w, "┌─────────────────────────────────┬─────────────────────────────┐")
	f.row("Total Tests", fmt.Sprintf("%d", len(outcome.Tests)), color.WhiteString)
	fmt.Fprintln(f.w, "├─────────────────────────────────┼─────────────────────────────┤")
	f.row("Passed Tests", fmt.Sprintf("%d", outcome.Passed()), color.GreenString)
	fmt.Fprintln(f.w, "├─────────────────────────────────┼─────────────────────────────┤")
	f.row("Failed Tests", fmt.Sprintf("%d", outcome.Failed()), color.RedString)
	fmt.Fprintln(f.w, "└─────────────────────────────────┴─────────────────────────────┘")
	fmt.Fprintln(f.w)

	if outcome.Success() {
		fmt.Fprintln(f.w, color.GreenString("✓ All tests passed!"))
		return
	}

	fmt.Fprintln(f.w, color.RedString("✗ %d test(s) failed:", outcome.Failed()))
	for _, t := range outcome.Tests {
		if t.Passing {
			continue
		}
		name := t.Name
		if name == "" {
			name = filepath.Base(t.Path)
		}
		line := "  |_ " + color.YellowString(name)
		if t.Err != nil {
			line += " " + color.RedString("(%v)", t.Err)
		} else if t.ResultFile != "" {
			line += " -> " + t.ResultFile
		}
		fmt.Fprintln(f.w, line)
	}
}

func (f *Formatter) row(label, value string, paint func(string, ...interface{}) string) {
	fmt.Fprintf(f.w, "│ %-31s │ %s │\n", label, paint("%-27s", value))
}

// PrintTestList prints discovered definitions as a tree
func (f *Formatter) PrintTestList(entries []ListEntry) {
	fmt.Fprintln(f.w, color.GreenString("Found %d test file(s):\n", len(entries)))

	for i, e := range entries {
		connector := "├── "
		if i == len(entries)-1 {
			connector = "└── "
		}

		detail := color.YellowString(e.Name)
		if e.Err != nil {
			detail = color.RedString("(%v)", e.Err)
		}
		fmt.Fprintf(f.w, "%s%s %s\n", connector, color.CyanString(e.Path), detail)
	}
}
