package commands

import (
	"io"

	"gint/internal/config"
	"gint/internal/discovery"
	"gint/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ListCommand handles the list command
type ListCommand struct {
	out io.Writer
}

// NewListCommand creates a new ListCommand
func NewListCommand(out io.Writer) *ListCommand {
	return &ListCommand{out: out}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string, flags config.Flags) error {
	cfg := config.New()
	cfg.ApplyFlags(flags)
	cfg.SetPaths(args[0], "")

	files, err := discovery.NewScanner(cfg.Flags.NameFilter).Discover(cfg.TestsPath)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		color.New(color.FgYellow).Fprintln(lc.out, "No tests found")
		return nil
	}

	parser := discovery.NewParser()
	entries := make([]ui.ListEntry, 0, len(files))
	for _, file := range files {
		entry := ui.ListEntry{Path: file}
		if def, err := parser.Load(file); err != nil {
			entry.Err = err
		} else {
			entry.Name = def.Name
		}
		entries = append(entries, entry)
	}

	ui.NewFormatter(lc.out).PrintTestList(entries)
	return nil
}
