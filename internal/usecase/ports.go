package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/zkreview/zkr-cli/internal/domain"
	"github.com/zkreview/zkr-cli/internal/domain/config"
	"github.com/zkreview/zkr-cli/internal/domain/models"
)

// ArtifactRepository provides compiled contracts by name
type ArtifactRepository interface {
	GetArtifact(ctx context.Context, name string) (*models.Artifact, error)
}

// SignerResolver resolves the identity that signs deployment transactions
type SignerResolver interface {
	ResolveSigner(ctx context.Context, network *config.Network) (*models.Signer, error)
}

// ContractDeployer creates contracts and sends transactions to them.
// Every method blocks until the chain confirmed the transaction.
type ContractDeployer interface {
	Connect(ctx context.Context, network *config.Network, signer *models.Signer) error
	Deploy(ctx context.Context, artifact *models.Artifact, args ...any) (*models.DeployedContract, error)
	Transact(ctx context.Context, address common.Address, artifact *models.Artifact, method string, args ...any) (common.Hash, error)
	Close()
}

// DeploymentStore persists deployment summaries
type DeploymentStore interface {
	Save(ctx context.Context, path string, summary *domain.DeploymentSummary) error
	Load(ctx context.Context, path string) (*domain.DeploymentSummary, error)
}

// BlockchainChecker checks on-chain state of contracts
type BlockchainChecker interface {
	Connect(ctx context.Context, rpcURL string, chainID uint64) error
	CheckDeploymentExists(ctx context.Context, address string) (exists bool, reason string, err error)
	Close()
}

// NetworkResolver handles network configuration resolution
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, networkName string) (*config.Network, error)
	// RefreshNetwork drops any cached chain id for the network and asks the node again
	RefreshNetwork(ctx context.Context, network *config.Network) (*config.Network, error)
	// RPCEnvVar returns the env var an endpoint is read from, or "" for literal URLs
	RPCEnvVar(ctx context.Context, networkName string) string
}

// NetworkSelector lets the user pick a network interactively
type NetworkSelector interface {
	SelectNetwork(ctx context.Context, networks []string) (string, error)
}

// DeployConfirmer asks the user to approve broadcasting a plan
type DeployConfirmer interface {
	ConfirmDeploy(ctx context.Context, plan *DeployPlan) (bool, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
