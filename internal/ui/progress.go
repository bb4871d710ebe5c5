package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// Step is a status line for one blocking operation
type Step interface {
	Succeed(msg string)
	Fail(msg string)
}

// Reporter prints textual status lines
type Reporter interface {
	Start(msg string) Step
	Info(format string, a ...any)
	Warn(format string, a ...any)
}

// Console writes status lines to a terminal, with a spinner while a step is running
type Console struct {
	w           io.Writer
	interactive bool
}

// NewConsole creates a Console. Spinners are only drawn when interactive is true.
func NewConsole(w io.Writer, interactive bool) *Console {
	return &Console{w: w, interactive: interactive}
}

// Start begins a step and returns the handle used to finish it
func (c *Console) Start(msg string) Step {
	if !c.interactive {
		fmt.Fprintf(c.w, "%s %s\n", color.CyanString("•"), msg)
		return &spinner{w: c.w}
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(msg),
		progressbar.OptionSetWriter(c.w),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSpinnerChangeInterval(100*time.Millisecond),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetRenderBlankState(true),
	)
	return &spinner{w: c.w, bar: bar}
}

// Info prints a neutral status line
func (c *Console) Info(format string, a ...any) {
	fmt.Fprintln(c.w, fmt.Sprintf(format, a...))
}

// Warn prints a yellow status line
func (c *Console) Warn(format string, a ...any) {
	fmt.Fprintln(c.w, color.YellowString(format, a...))
}

type spinner struct {
	w    io.Writer
	bar  *progressbar.ProgressBar
	done bool
}

func (s *spinner) Succeed(msg string) {
	s.finish(color.GreenString("✔"), msg)
}

func (s *spinner) Fail(msg string) {
	s.finish(color.RedString("✖"), msg)
}

func (s *spinner) finish(symbol, msg string) {
	if s.done {
		return
	}
	s.done = true
	if s.bar != nil {
		_ = s.bar.Finish()
		_ = s.bar.Clear()
	}
	fmt.Fprintf(s.w, "%s %s\n", symbol, msg)
}
