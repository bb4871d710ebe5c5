// Package controller drives one invocation end to end: discovery, tunnel,
// hooks, sequential execution and result persistence.
package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gint/internal/config"
	"gint/internal/domain"
	"gint/internal/execution"
	"gint/internal/hooks"
	"gint/internal/storage"
	"gint/internal/ui"
)

// Discoverer finds the definition files to run
type Discoverer interface {
	Discover(path string) ([]string, error)
}

// Loader reads one definition file
type Loader interface {
	Load(path string) (*domain.TestDefinition, error)
}

// TunnelManager owns the run's public tunnel
type TunnelManager interface {
	Open(ctx context.Context, cfg config.Tunnel) (string, error)
	Close(ctx context.Context) error
}

// HookRunner runs the optional setup and teardown hooks
type HookRunner interface {
	HasSetup() bool
	HasTeardown() bool
	SetupName() string
	TeardownName() string
	RunSetup(ctx context.Context, url string) error
	RunTeardown(ctx context.Context, url string) error
}

// Deps are the collaborators a Controller composes
type Deps struct {
	Discoverer Discoverer
	Loader     Loader
	Tunnels    TunnelManager
	Hooks      HookRunner
	Executor   execution.Executor
	Recorder   storage.Storage
	Status     ui.Reporter
	Log        *zap.Logger
}

// Controller runs a batch of tests behind a single tunnel
type Controller struct {
	cfg config.Config
	Deps
}

// New creates a Controller for cfg
func New(cfg config.Config, deps Deps) *Controller {
	return &Controller{cfg: cfg, Deps: deps}
}

// Run executes the whole batch. The returned outcome holds every test that
// ran; a non-nil error means an infrastructure step failed. Once the tunnel
// has been opened it is closed before Run returns, whatever happened.
func (c *Controller) Run(ctx context.Context) (*domain.RunOutcome, error) {
	outcome := &domain.RunOutcome{}
	log := c.Log.With(zap.String("run_id", uuid.New().String()))

	if c.cfg.OutputDir != "" {
		if err := c.Recorder.ValidateDir(c.cfg.OutputDir); err != nil {
			return outcome, err
		}
	}

	files, err := c.Discoverer.Discover(c.cfg.TestsPath)
	if err != nil {
		return outcome, err
	}
	c.Status.Info("Found %d test file(s).", len(files))
	log.Info("discovered tests", zap.String("path", c.cfg.TestsPath), zap.Int("count", len(files)))
	if len(files) == 0 {
		return outcome, nil
	}

	if err := c.cfg.Validate(); err != nil {
		return outcome, err
	}

	url, err := c.openTunnel(ctx)
	if err != nil {
		return outcome, err
	}
	defer c.closeTunnel(context.WithoutCancel(ctx), log)

	if c.Hooks.HasSetup() {
		if err := c.runHook(ctx, hooks.StageSetup, c.Hooks.SetupName(), url, c.Hooks.RunSetup); err != nil {
			return outcome, err
		}
	}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return outcome, c.interrupted(log, err)
		}
		rec, err := c.runTest(ctx, log, file, url)
		if err != nil {
			return outcome, c.interrupted(log, err)
		}
		outcome.Add(rec)
	}

	if err := ctx.Err(); err != nil {
		return outcome, c.interrupted(log, err)
	}
	if c.Hooks.HasTeardown() {
		if err := c.runHook(ctx, hooks.StageTeardown, c.Hooks.TeardownName(), url, c.Hooks.RunTeardown); err != nil {
			return outcome, err
		}
	}

	log.Info("run finished", zap.Int("passed", outcome.Passed()), zap.Int("failed", outcome.Failed()))
	return outcome, nil
}

func (c *Controller) openTunnel(ctx context.Context) (string, error) {
	step := c.Status.Start("Creating ngrok tunnel...")
	url, err := c.Tunnels.Open(ctx, c.cfg.Tunnel)
	if err != nil {
		step.Fail("Could not open ngrok tunnel.")
		return "", err
	}
	step.Succeed(fmt.Sprintf("ngrok tunnel successfully opened at %q", url))
	return url, nil
}

// closeTunnel is best effort: a failure is reported but never changes the outcome.
func (c *Controller) closeTunnel(ctx context.Context, log *zap.Logger) {
	step := c.Status.Start("Closing ngrok tunnel...")
	if err := c.Tunnels.Close(ctx); err != nil {
		log.Warn("failed to close tunnel", zap.Error(err))
		step.Fail(fmt.Sprintf("Could not close ngrok tunnel: %v", err))
		return
	}
	step.Succeed("ngrok tunnel closed")
}

// interrupted reports a cancelled run. Tests that did not finish are neither
// recorded nor persisted.
func (c *Controller) interrupted(log *zap.Logger, cause error) error {
	log.Warn("run interrupted", zap.Error(cause))
	c.Status.Warn("Run interrupted, remaining tests were skipped.")
	return fmt.Errorf("run interrupted: %w", cause)
}

var stageText = map[string]struct{ label, title string }{
	hooks.StageSetup:    {label: "setup", title: "Setup"},
	hooks.StageTeardown: {label: "tear down", title: "Tear down"},
}

func (c *Controller) runHook(ctx context.Context, stage, script, url string, run func(context.Context, string) error) error {
	text := stageText[stage]
	step := c.Status.Start(fmt.Sprintf("Executing %s script %q...", text.label, script))
	if err := run(ctx, url); err != nil {
		step.Fail(fmt.Sprintf("%s script %q failed.", text.title, script))
		return err
	}
	step.Succeed(fmt.Sprintf("Successfully executed %s script %q.", text.label, script))
	return nil
}

// runTest loads, executes and persists one test. The error is only set when
// ctx was cancelled before the test finished.
func (c *Controller) runTest(ctx context.Context, log *zap.Logger, file, url string) (domain.TestRecord, error) {
	rec := domain.TestRecord{Path: file}

	test, err := c.Loader.Load(file)
	if err != nil {
		log.Error("failed to load test definition", zap.String("file", file), zap.Error(err))
		c.Status.Start(fmt.Sprintf("Loading %s...", filepath.Base(file))).
			Fail(fmt.Sprintf("Test file %q could not be loaded: %v", file, err))
		rec.Err = err
		return rec, nil
	}
	rec.Name = test.Name
	test.StartURL = url

	tlog := log.With(zap.String("test", test.Name), zap.String("file", file))
	step := c.Status.Start(fmt.Sprintf("Running test %q...", test.Name))

	result, err := c.Executor.Run(ctx, c.cfg.OrganizationID, test)
	if err != nil && ctx.Err() != nil {
		step.Fail(fmt.Sprintf("Test %q was interrupted", test.Name))
		return rec, ctx.Err()
	}
	if err != nil {
		tlog.Error("test execution failed", zap.Error(err))
		step.Fail(fmt.Sprintf("Test %q could not be executed: %v", test.Name, err))
		rec.Err = err
		result = errorResult(err)
	} else if result.Passing {
		step.Succeed(fmt.Sprintf("Test %q passed", test.Name))
	} else {
		step.Fail(fmt.Sprintf("Test %q failed", test.Name))
	}
	rec.Passing = err == nil && result.Passing
	tlog.Info("test completed", zap.Bool("passing", rec.Passing))

	if c.cfg.OutputDir != "" {
		path, serr := c.Recorder.Save(c.cfg.OutputDir, test.Name, result)
		if serr != nil {
			tlog.Error("failed to save result", zap.Error(serr))
			c.Status.Warn("Could not save result of %q: %v", test.Name, serr)
			rec.Passing = false
			if rec.Err == nil {
				rec.Err = serr
			}
		} else {
			rec.ResultFile = path
			tlog.Debug("result saved", zap.String("path", path))
		}
	}

	return rec, nil
}

// errorResult is what gets persisted for a test the service could not run.
func errorResult(err error) *domain.TestResult {
	payload, _ := json.Marshal(map[string]any{
		"passing": false,
		"error":   err.Error(),
	})
	return &domain.TestResult{Passing: false, Payload: payload}
}
