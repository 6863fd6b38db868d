package cli

import (
	"github.com/spf13/cobra"
	"github.com/zkreview/zkr-cli/internal/cli/render"
	"github.com/zkreview/zkr-cli/internal/usecase"
)

// NewShowCmd creates the show command
func NewShowCmd() *cobra.Command {
	var file string
	var check bool
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the addresses of a deployment summary",
		Long: `Show the contract addresses recorded by the last deployment.

With --check, every address is looked up on the selected network and reported
as deployed or missing.

Examples:
  zkr show
  zkr show --file deployments/sepolia.json --format json
  zkr show --network sepolia --check`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return render.ValidateFormat(format)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := runContext(cmd, app)
			defer cancel()

			result, err := app.ShowDeployment.Run(ctx, usecase.ShowDeploymentParams{
				Path:  file,
				Check: check,
			})
			if err != nil {
				return err
			}

			return render.NewDeploymentRenderer(cmd.OutOrStdout(), format).Render(result)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Summary file to read (defaults to the configured output file)")
	cmd.Flags().BoolVar(&check, "check", false, "Check that every contract has code on the network")
	cmd.Flags().StringVar(&format, "format", render.FormatTable, "Output format: table, json or yaml")

	return cmd
}
