package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/zkreview/zkr-cli/internal/domain/config"
	"github.com/zkreview/zkr-cli/internal/usecase"
)

// SelectorAdapter handles interactive network selection and deploy confirmation
type SelectorAdapter struct {
	config *config.RuntimeConfig
	out    io.Writer
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg, out: os.Stderr}
}

// SelectNetwork lets the user pick one of the configured networks
func (s *SelectorAdapter) SelectNetwork(ctx context.Context, networks []string) (string, error) {
	if s.config.NonInteractive {
		return "", fmt.Errorf("interactive selection not available in non-interactive mode")
	}

	if len(networks) == 0 {
		return "", fmt.Errorf("no networks provided for selection")
	}

	if len(networks) == 1 {
		return networks[0], nil
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, type to search, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:             "Select network",
		Items:             networks,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          createFuzzySearchFunc(networks),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return "", fmt.Errorf("selection cancelled: %w", err)
	}

	return networks[index], nil
}

// ConfirmDeploy shows where the suite is about to be deployed and asks for approval
func (s *SelectorAdapter) ConfirmDeploy(ctx context.Context, plan *usecase.DeployPlan) (bool, error) {
	if s.config.NonInteractive {
		return false, fmt.Errorf("confirmation not available in non-interactive mode, pass --yes")
	}

	fmt.Fprintln(s.out, formatPlanHeader(plan))

	prompt := promptui.Prompt{
		Label:     confirmLabel(plan),
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, fmt.Errorf("confirmation cancelled: %w", err)
	}
	return true, nil
}

func formatPlanHeader(plan *usecase.DeployPlan) string {
	yellow := color.New(color.FgYellow, color.Bold)
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", yellow.Sprint("About to broadcast to a non-local network"))
	fmt.Fprintf(&b, "  Network:  %s (chain %d)\n", plan.Network.Name, plan.Network.ChainID)
	fmt.Fprintf(&b, "  Deployer: %s\n", plan.Signer.Address.Hex())
	fmt.Fprintf(&b, "  Steps:    %d transactions", len(plan.Steps))
	return b.String()
}

func confirmLabel(plan *usecase.DeployPlan) string {
	return fmt.Sprintf("Deploy ZKReview contracts to %s", plan.Network.Name)
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		if strings.Contains(item, input) {
			return true
		}

		return len(fuzzy.Find(input, []string{item})) > 0
	}
}

// Ensure the adapter implements the interfaces
var (
	_ usecase.NetworkSelector = (*SelectorAdapter)(nil)
	_ usecase.DeployConfirmer = (*SelectorAdapter)(nil)
)
