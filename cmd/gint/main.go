package main

import (
	"errors"
	"fmt"
	"os"

	"gint/internal/cli"
	"gint/internal/cli/commands"
	"gint/internal/domain"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:           "gint",
		Short:         "Run Ghost Inspector tests against a local app through ngrok",
		Long:          `Open an ngrok tunnel to a locally running application and execute Ghost Inspector tests against the public URL, with optional setup and teardown scripts around the batch.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Spinners only make sense on a terminal; color detection already checks that
	cmds := commands.NewCommands(os.Stdout, !color.NoColor)
	cmds.Register(rootCmd, &flags)

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, domain.ErrTestsFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
