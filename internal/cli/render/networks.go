package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/zkreview/zkr-cli/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

// Render renders the list of configured networks
func (r *NetworksRenderer) Render(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured in foundry.toml [rpc_endpoints]")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	faint := color.New(color.Faint)
	for _, network := range result.Networks {
		envHint := ""
		if network.EnvVar != "" {
			envHint = faint.Sprintf(" (${%s})", network.EnvVar)
		}
		if network.Error != nil {
			fmt.Fprintf(r.out, "  ❌ %s%s - Error: %v\n", network.Name, envHint, network.Error)
		} else {
			fmt.Fprintf(r.out, "  ✅ %s%s - Chain ID: %d\n", network.Name, envHint, network.ChainID)
		}
	}

	return nil
}

var _ Renderer[*usecase.ListNetworksResult] = (*NetworksRenderer)(nil)
