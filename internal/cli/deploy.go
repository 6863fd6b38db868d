package cli

import (
	"github.com/spf13/cobra"
	"github.com/zkreview/zkr-cli/internal/cli/render"
	"github.com/zkreview/zkr-cli/internal/usecase"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy and link the ZKReview contracts",
		Long: `Deploy the ZKReview contract suite and write the deployment summary.

Steps, in order:
  1. Deploy DAOToken(name, symbol)
  2. Deploy ZKReviewDAO(DAOToken)
  3. Deploy ZKCodeReview(ZKReviewDAO)
  4. ZKReviewDAO.setZKReviewContract(ZKCodeReview)
  5. Deploy the sample Verifier
  6. ZKCodeReview.registerCircuit(name, description, ipfsCid, Verifier)

Any failure stops the deployment before the summary is written. Every run deploys
fresh contracts.

The signer is read from --private-key, ZKR_PRIVATE_KEY or private_key in the
[profile.<namespace>.zkr] section of foundry.toml. On a local chain (31337) the
default anvil account is used when no key is configured.

Examples:
  zkr deploy --network anvil
  zkr deploy --network sepolia --output deployments/sepolia.json
  zkr deploy --network sepolia --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := runContext(cmd, app)
			defer cancel()

			result, err := app.DeployProtocol.Run(ctx, usecase.DeployProtocolParams{
				DryRun: app.Config.DryRun,
			})
			if err != nil {
				return err
			}

			return render.NewDeployRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	// Values are read through viper, so ZKR_* environment variables work for every flag
	cmd.Flags().String("private-key", "", "Private key of the deployer (hex)")
	cmd.Flags().StringP("output", "o", "", "Where to write the deployment summary (default \"deployment-info.json\")")
	cmd.Flags().String("artifacts", "", "Directory with compiled artifacts (default: out/ or artifacts/)")
	cmd.Flags().String("token-name", "", "DAOToken name (default \"ZKReview Token\")")
	cmd.Flags().String("token-symbol", "", "DAOToken symbol (default \"ZKR\")")
	cmd.Flags().String("circuit-name", "", "Name of the sample circuit (default \"SampleCircuit\")")
	cmd.Flags().String("circuit-description", "", "Description of the sample circuit")
	cmd.Flags().String("circuit-cid", "", "IPFS CID of the sample circuit (default \"QmSampleCID\")")
	cmd.Flags().Bool("dry-run", false, "Resolve network, signer and artifacts, then print the plan without broadcasting")
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt on non-local networks")

	return cmd
}
