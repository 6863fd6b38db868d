package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/zkreview/zkr-cli/internal/domain"
	"github.com/zkreview/zkr-cli/internal/usecase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DeployRenderer renders the plan and outcome of a protocol deployment
type DeployRenderer struct {
	out io.Writer
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer) *DeployRenderer {
	return &DeployRenderer{out: out}
}

// Render renders a dry-run plan or a completed deployment
func (r *DeployRenderer) Render(result *usecase.DeployProtocolResult) error {
	if result.DryRun {
		r.renderPlan(result.Plan)
		return nil
	}

	fmt.Fprintln(r.out)
	t := newPlainTable()
	for _, entry := range result.Summary.Entries() {
		t.AppendRow(table.Row{keyStyle.Sprint(entry.Key), addressStyle.Sprint(entry.Address)})
	}
	fmt.Fprintln(r.out, t.Render())
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Deployed %d contracts to %s in %s",
		len(result.Summary.Entries()), result.Plan.Network.Name, result.Duration.Round(time.Millisecond))))
	return nil
}

func (r *DeployRenderer) renderPlan(plan *usecase.DeployPlan) {
	headerStyle.Fprintln(r.out, "Deployment plan")
	fmt.Fprintf(r.out, "  Network:  %s (chain %d)\n", plan.Network.Name, plan.Network.ChainID)
	fmt.Fprintf(r.out, "  Deployer: %s %s\n", plan.Signer.Address.Hex(), color.New(color.Faint).Sprintf("(%s)", plan.Signer.Source))
	fmt.Fprintf(r.out, "  Output:   %s\n", plan.OutputFile)
	fmt.Fprintln(r.out)

	title := cases.Title(language.English)
	for i, step := range plan.Steps {
		kind, target, _ := strings.Cut(string(step.Step), ":")
		args := lo.Map(step.Args, func(arg any, _ int) string {
			if s, ok := arg.(string); ok && !strings.HasPrefix(s, "<") {
				return fmt.Sprintf("%q", s)
			}
			return fmt.Sprint(arg)
		})

		call := fmt.Sprintf("%s(%s)", target, strings.Join(args, ", "))
		if step.Step == domain.StepSetZKReviewContract || step.Step == domain.StepRegisterCircuit {
			call = step.Contract + "." + call
		}
		fmt.Fprintf(r.out, "  %d. %-7s %s\n", i+1, title.String(kind), call)
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, FormatWarning("Dry run: nothing was broadcast"))
}

var _ Renderer[*usecase.DeployProtocolResult] = (*DeployRenderer)(nil)
