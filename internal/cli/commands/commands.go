package commands

import (
	"io"

	"gint/internal/cli"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Run  *RunCommand
	List *ListCommand
}

// NewCommands creates all commands. out receives status lines and summaries;
// interactive enables spinners.
func NewCommands(out io.Writer, interactive bool) *Commands {
	return &Commands{
		Run:  NewRunCommand(out, interactive),
		List: NewListCommand(out),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags) {
	// Run command
	runCmd := &cobra.Command{
		Use:   "run <testsPath> <outputDir>",
		Short: "Run Ghost Inspector tests through an ngrok tunnel",
		Long: `Expose a local port through an ngrok tunnel, then execute every Ghost Inspector
test definition found under testsPath against the tunnel URL, one at a time.
Each test result is written to outputDir, which must already exist, as a JSON file.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Run.Execute(cmd, args, flags.ToConfigFlags())
		},
	}
	runCmd.Flags().StringVar(&flags.SetupScript, "setup-script", "", "Script executed with the tunnel URL before the tests run")
	runCmd.Flags().StringVar(&flags.TeardownScript, "teardown-script", "", "Script executed with the tunnel URL after the tests ran")
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter definition files by name pattern (supports wildcards, e.g., 'login*' or '*checkout*')")
	runCmd.Flags().StringVar(&flags.EnvFile, "env-file", "", "Dotenv file to load (defaults to .env when present)")
	runCmd.Flags().StringVar(&flags.LogLevel, "log-level", "", "Log level: debug, info, warn or error")
	runCmd.Flags().StringVar(&flags.LogFormat, "log-format", "", "Log format: console or json")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list <testsPath>",
		Short: "List discovered test definitions",
		Long:  "Scan testsPath and list the test definitions that would run, without opening a tunnel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.List.Execute(cmd, args, flags.ToConfigFlags())
		},
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter definition files by name pattern (supports wildcards, e.g., 'login*' or '*checkout*')")
	rootCmd.AddCommand(listCmd)
}
