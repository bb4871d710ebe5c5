package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTestsFailed is returned by the run command when the batch completed but
// at least one test failed.
var ErrTestsFailed = errors.New("one or more tests failed")

// NotFoundError reports a tests path that does not exist
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("tests path does not exist: %s", e.Path)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// InvalidOutputDirError reports an output directory that is missing or not a directory
type InvalidOutputDirError struct {
	Path   string
	Reason string
	Err    error
}

func (e *InvalidOutputDirError) Error() string {
	return fmt.Sprintf("invalid output directory %q: %s", e.Path, e.Reason)
}

func (e *InvalidOutputDirError) Unwrap() error { return e.Err }

// TunnelError reports a failure to open or close the public tunnel
type TunnelError struct {
	Op  string // "open" or "close"
	Err error
}

func (e *TunnelError) Error() string {
	return fmt.Sprintf("tunnel %s failed: %v", e.Op, e.Err)
}

func (e *TunnelError) Unwrap() error { return e.Err }

// HookError reports a setup or teardown script that could not be spawned or exited non-zero
type HookError struct {
	Stage    string // "setup" or "teardown"
	Script   string
	ExitCode int // -1 when the script could not be started
	Output   string
	Err      error
}

func (e *HookError) Error() string {
	msg := fmt.Sprintf("%s script %q failed", e.Stage, e.Script)
	if e.ExitCode >= 0 {
		msg += fmt.Sprintf(" with exit code %d", e.ExitCode)
	} else if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + out
	}
	return msg
}

func (e *HookError) Unwrap() error { return e.Err }

// ExecutionError reports a failed submission to the remote execution service
type ExecutionError struct {
	Test       string
	StatusCode int // HTTP status, 0 when no response was received
	Err        error
}

func (e *ExecutionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("executing test %q failed (HTTP %d): %v", e.Test, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("executing test %q failed: %v", e.Test, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// ConfigError reports missing or malformed configuration
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", strings.Join(e.Missing, ", "))
}
