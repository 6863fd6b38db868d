package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/zkreview/zkr-cli/internal/usecase"
)

// SpinnerProgressReporter shows a spinner while a step runs and prints a line once it completes
type SpinnerProgressReporter struct {
	spinner *spinner.Spinner
	out     io.Writer
}

// NewSpinnerProgressReporterWithWriter creates a spinner-based progress reporter writing to out.
// The spinner only animates when out is a terminal.
func NewSpinnerProgressReporterWithWriter(out io.Writer) *SpinnerProgressReporter {
	var s *spinner.Spinner
	if f, ok := out.(*os.File); ok {
		s = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriterFile(f))
	} else {
		s = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
		s.Disable()
	}
	s.HideCursor = false

	return &SpinnerProgressReporter{
		spinner: s,
		out:     out,
	}
}

// OnProgress handles progress events
func (r *SpinnerProgressReporter) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if event.Spinner {
		r.spinner.Suffix = " " + event.Message
		if !r.spinner.Active() {
			r.spinner.Start()
		}
		return
	}

	r.stop()
	if event.Message != "" {
		fmt.Fprintf(r.out, "%s %s\n", color.New(color.FgGreen).Sprint("✓"), event.Message)
	}
}

// Info prints an info message
func (r *SpinnerProgressReporter) Info(message string) {
	r.println(color.New(color.FgCyan), message)
}

// Error stops the spinner for good and prints an error message
func (r *SpinnerProgressReporter) Error(message string) {
	r.stop()
	r.spinner.Suffix = ""
	fmt.Fprintln(r.out, color.New(color.FgRed).Sprint(message))
}

// println prints above the spinner, pausing it if needed
func (r *SpinnerProgressReporter) println(c *color.Color, message string) {
	wasActive := r.spinner.Active()
	r.stop()

	fmt.Fprintln(r.out, c.Sprint(message))

	if wasActive {
		r.spinner.Start()
	}
}

func (r *SpinnerProgressReporter) stop() {
	if r.spinner.Active() {
		r.spinner.Stop()
	}
}

// Ensure SpinnerProgressReporter implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerProgressReporter)(nil)
