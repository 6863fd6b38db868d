package progress

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/zkreview/zkr-cli/internal/usecase"
)

// DeployProgress prefixes deployment steps with their position, e.g. "[2/6] Deploying ZKReviewDAO"
type DeployProgress struct {
	spinner *SpinnerProgressReporter
}

// NewDeployProgress creates a deploy progress sink on top of a spinner reporter
func NewDeployProgress(spinner *SpinnerProgressReporter) *DeployProgress {
	return &DeployProgress{spinner: spinner}
}

// OnProgress forwards the event with a step counter
func (p *DeployProgress) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if event.Total > 0 && event.Message != "" {
		counter := color.New(color.Faint).Sprintf("[%d/%d]", event.Current, event.Total)
		event.Message = fmt.Sprintf("%s %s", counter, event.Message)
	}
	p.spinner.OnProgress(ctx, event)
}

// Info prints an info message
func (p *DeployProgress) Info(message string) {
	p.spinner.Info(message)
}

// Error prints an error message
func (p *DeployProgress) Error(message string) {
	p.spinner.Error(message)
}

// Ensure DeployProgress implements ProgressSink
var _ usecase.ProgressSink = (*DeployProgress)(nil)
