package commands

import (
	"io"
	"os"
	"os/signal"
	"syscall"

	"gint/internal/config"
	"gint/internal/controller"
	"gint/internal/discovery"
	"gint/internal/domain"
	"gint/internal/execution"
	"gint/internal/hooks"
	"gint/internal/logging"
	"gint/internal/storage"
	"gint/internal/tunnel"
	"gint/internal/ui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RunCommand handles the run command
type RunCommand struct {
	out         io.Writer
	interactive bool
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(out io.Writer, interactive bool) *RunCommand {
	return &RunCommand{out: out, interactive: interactive}
}

// Execute runs the command. It returns domain.ErrTestsFailed when every step
// succeeded but at least one test did not pass.
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string, flags config.Flags) error {
	cfg, err := config.Load(flags)
	if err != nil {
		return err
	}
	cfg.SetPaths(args[0], args[1])

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctrl := controller.New(*cfg, controller.Deps{
		Discoverer: discovery.NewScanner(cfg.Flags.NameFilter),
		Loader:     discovery.NewParser(),
		Tunnels:    tunnel.NewManager(tunnel.NewNgrokDialer(log), log),
		Hooks:      hooks.NewRunner(cfg.SetupScript, cfg.TeardownScript, log),
		Executor:   execution.NewGhostInspector(cfg.APIURL, cfg.APIKey, log),
		Recorder:   storage.NewJSONStorage(),
		Status:     ui.NewConsole(rc.out, rc.interactive),
		Log:        log,
	})

	outcome, err := ctrl.Run(ctx)
	ui.NewFormatter(rc.out).PrintSummary(outcome)
	if err != nil {
		log.Error("run aborted", zap.Error(err))
		return err
	}
	if !outcome.Success() {
		return domain.ErrTestsFailed
	}
	return nil
}

