package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/zkreview/zkr-cli/internal/usecase"
	"gopkg.in/yaml.v3"
)

var (
	keyStyle     = color.New(color.FgYellow)
	addressStyle = color.New(color.FgWhite)
	okStyle      = color.New(color.FgGreen)
	missingStyle = color.New(color.FgRed)
	headerStyle  = color.New(color.FgCyan, color.Bold)
)

// DeploymentRenderer renders a stored deployment summary
type DeploymentRenderer struct {
	out    io.Writer
	format string
}

// NewDeploymentRenderer creates a new deployment renderer for the given output format
func NewDeploymentRenderer(out io.Writer, format string) *DeploymentRenderer {
	return &DeploymentRenderer{
		out:    out,
		format: format,
	}
}

// checkOutput is the machine-readable form of a summary with on-chain checks
type checkOutput struct {
	Key     string `json:"key" yaml:"key"`
	Address string `json:"address" yaml:"address"`
	Exists  bool   `json:"exists" yaml:"exists"`
	Reason  string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

type showOutput struct {
	Network string        `json:"network" yaml:"network"`
	ChainID uint64        `json:"chainId" yaml:"chainId"`
	Checks  []checkOutput `json:"checks" yaml:"checks"`
}

// Render renders the summary in the configured format
func (r *DeploymentRenderer) Render(result *usecase.ShowDeploymentResult) error {
	switch r.format {
	case FormatJSON:
		return r.renderJSON(result)
	case FormatYAML:
		return r.renderYAML(result)
	case FormatTable, "":
		return r.renderTable(result)
	default:
		return ValidateFormat(r.format)
	}
}

func (r *DeploymentRenderer) machineOutput(result *usecase.ShowDeploymentResult) any {
	if len(result.Checks) == 0 {
		return result.Summary
	}
	out := showOutput{
		Network: result.Network.Name,
		ChainID: result.Network.ChainID,
	}
	for _, check := range result.Checks {
		out.Checks = append(out.Checks, checkOutput(check))
	}
	return out
}

func (r *DeploymentRenderer) renderJSON(result *usecase.ShowDeploymentResult) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r.machineOutput(result))
}

func (r *DeploymentRenderer) renderYAML(result *usecase.ShowDeploymentResult) error {
	encoder := yaml.NewEncoder(r.out)
	encoder.SetIndent(2)
	if err := encoder.Encode(r.machineOutput(result)); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return encoder.Close()
}

func (r *DeploymentRenderer) renderTable(result *usecase.ShowDeploymentResult) error {
	headerStyle.Fprintf(r.out, "Deployment: %s\n", result.Path)
	if result.Network != nil {
		fmt.Fprintf(r.out, "Network: %s (chain %d)\n", result.Network.Name, result.Network.ChainID)
	}
	fmt.Fprintln(r.out)

	t := newPlainTable()
	if len(result.Checks) == 0 {
		for _, entry := range result.Summary.Entries() {
			t.AppendRow(table.Row{keyStyle.Sprint(entry.Key), addressStyle.Sprint(entry.Address)})
		}
	} else {
		for _, check := range result.Checks {
			status := okStyle.Sprint("✓ deployed")
			if !check.Exists {
				status = missingStyle.Sprintf("✗ %s", check.Reason)
			}
			t.AppendRow(table.Row{keyStyle.Sprint(check.Key), addressStyle.Sprint(check.Address), status})
		}
	}

	fmt.Fprintln(r.out, t.Render())
	return nil
}

// newPlainTable returns a borderless left-aligned table
func newPlainTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateHeader = false
	t.Style().Options.SeparateColumns = false
	t.Style().Box = table.BoxStyle{
		PaddingLeft:  "  ",
		PaddingRight: "  ",
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft},
	})
	return t
}

var _ Renderer[*usecase.ShowDeploymentResult] = (*DeploymentRenderer)(nil)
