// Package hooks runs the optional setup and teardown scripts around a run.
package hooks

import (
	"context"
	"errors"
	"os"
	"os/exec"

	"go.uber.org/zap"

	"gint/internal/domain"
)

// Stages recorded on a domain.HookError
const (
	// StageSetup runs once the tunnel is open, before the first test
	StageSetup = "setup"
	// StageTeardown runs after the last test, before the tunnel closes
	StageTeardown = "teardown"
)

// Hook is an external command receiving the tunnel URL as its only argument.
// A nil error means it succeeded.
type Hook interface {
	Name() string
	Run(ctx context.Context, arg string) error
}

// Script is a Hook backed by an executable on disk
type Script struct {
	Path string
}

// Name returns the script path
func (s Script) Name() string { return s.Path }

// Run executes the script with arg and waits for it to exit.
func (s Script) Run(ctx context.Context, arg string) error {
	cmd := exec.CommandContext(ctx, s.Path, arg)
	cmd.Env = os.Environ()

	output, err := cmd.CombinedOutput()
	if err == nil {
		return nil
	}

	hookErr := &domain.HookError{Script: s.Path, ExitCode: -1, Output: string(output), Err: err}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		hookErr.ExitCode = exitErr.ExitCode()
	}
	return hookErr
}

// Runner invokes the configured setup and teardown hooks
type Runner struct {
	setup    Hook
	teardown Hook
	log      *zap.Logger
}

// NewRunner creates a Runner for the given script paths. Empty paths disable the hook.
func NewRunner(setupScript, teardownScript string, log *zap.Logger) *Runner {
	r := &Runner{log: log.Named("hooks")}
	if setupScript != "" {
		r.setup = Script{Path: setupScript}
	}
	if teardownScript != "" {
		r.teardown = Script{Path: teardownScript}
	}
	return r
}

// NewRunnerWithHooks creates a Runner from arbitrary hooks; nil disables a stage.
func NewRunnerWithHooks(setup, teardown Hook, log *zap.Logger) *Runner {
	return &Runner{setup: setup, teardown: teardown, log: log.Named("hooks")}
}

// HasSetup reports whether a setup hook is configured
func (r *Runner) HasSetup() bool { return r.setup != nil }

// HasTeardown reports whether a teardown hook is configured
func (r *Runner) HasTeardown() bool { return r.teardown != nil }

// SetupName returns the configured setup hook name, or "".
func (r *Runner) SetupName() string { return hookName(r.setup) }

// TeardownName returns the configured teardown hook name, or "".
func (r *Runner) TeardownName() string { return hookName(r.teardown) }

// RunSetup runs the setup hook, if any, with the tunnel URL.
func (r *Runner) RunSetup(ctx context.Context, url string) error {
	return r.run(ctx, StageSetup, r.setup, url)
}

// RunTeardown runs the teardown hook, if any, with the tunnel URL.
func (r *Runner) RunTeardown(ctx context.Context, url string) error {
	return r.run(ctx, StageTeardown, r.teardown, url)
}

func (r *Runner) run(ctx context.Context, stage string, hook Hook, url string) error {
	if hook == nil {
		return nil
	}

	log := r.log.With(zap.String("stage", stage), zap.String("script", hook.Name()))
	log.Debug("running hook", zap.String("url", url))

	if err := hook.Run(ctx, url); err != nil {
		var hookErr *domain.HookError
		if !errors.As(err, &hookErr) {
			hookErr = &domain.HookError{Script: hook.Name(), ExitCode: -1, Err: err}
		}
		hookErr.Stage = stage
		log.Error("hook failed", zap.Int("exit_code", hookErr.ExitCode), zap.Error(hookErr.Err))
		return hookErr
	}

	log.Info("hook succeeded")
	return nil
}

func hookName(h Hook) string {
	if h == nil {
		return ""
	}
	return h.Name()
}
