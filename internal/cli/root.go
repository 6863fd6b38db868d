package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zkreview/zkr-cli/internal/adapters/progress"
	"github.com/zkreview/zkr-cli/internal/app"
	"github.com/zkreview/zkr-cli/internal/config"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "zkr",
		Short: "Deploy the ZKReview contract suite",
		Long: `zkr deploys the ZKReview contracts (DAOToken, ZKReviewDAO, ZKCodeReview and a
sample Verifier) to an EVM network, links them together and records their
addresses in a deployment summary file.

Networks are read from the [rpc_endpoints] section of foundry.toml.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipAppInit(cmd) {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot, cmd)

			sink := progress.NewNopSink()
			if cmd.Name() == "deploy" {
				sink = progress.NewDeployProgress(progress.NewSpinnerProgressReporterWithWriter(cmd.OutOrStdout()))
			}

			appInstance, err := app.InitApp(v, sink)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			cmd.SetContext(context.WithValue(cmd.Context(), appKey, appInstance))
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().StringP("namespace", "s", "", "Foundry profile to read [profile.<name>.zkr] from (default \"default\")")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network from foundry.toml [rpc_endpoints], or an RPC URL")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Abort after this long (0 waits forever)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	deployCmd := NewDeployCmd()
	deployCmd.GroupID = "main"
	rootCmd.AddCommand(deployCmd)

	showCmd := NewShowCmd()
	showCmd.GroupID = "main"
	rootCmd.AddCommand(showCmd)

	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "management"
	rootCmd.AddCommand(networksCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// skipAppInit reports whether a command runs without a project
func skipAppInit(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	return false
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}

// runContext returns the command context bounded by --timeout; callers must defer cancel
func runContext(cmd *cobra.Command, appInstance *app.App) (context.Context, context.CancelFunc) {
	if timeout := appInstance.Config.Timeout; timeout > 0 {
		return context.WithTimeout(cmd.Context(), timeout)
	}
	return context.WithCancel(cmd.Context())
}
