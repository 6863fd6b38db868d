package adapters

import (
	"github.com/google/wire"
	"github.com/zkreview/zkr-cli/internal/adapters/blockchain"
	internalconfig "github.com/zkreview/zkr-cli/internal/adapters/config"
	"github.com/zkreview/zkr-cli/internal/adapters/contracts"
	"github.com/zkreview/zkr-cli/internal/adapters/fs"
	"github.com/zkreview/zkr-cli/internal/adapters/interactive"
	"github.com/zkreview/zkr-cli/internal/adapters/senders"
	"github.com/zkreview/zkr-cli/internal/config"
	"github.com/zkreview/zkr-cli/internal/usecase"
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewDeploymentStoreAdapter,
	wire.Bind(new(usecase.DeploymentStore), new(*fs.DeploymentStoreAdapter)),
)

// ContractsSet provides compiled artifact lookup
var ContractsSet = wire.NewSet(
	contracts.NewArtifactRepository,
	wire.Bind(new(usecase.ArtifactRepository), new(*contracts.ArtifactRepository)),
)

// SendersSet provides signer resolution
var SendersSet = wire.NewSet(
	senders.NewSignerResolverAdapter,
	wire.Bind(new(usecase.SignerResolver), new(*senders.SignerResolverAdapter)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.NetworkSelector), new(*interactive.SelectorAdapter)),
	wire.Bind(new(usecase.DeployConfirmer), new(*interactive.SelectorAdapter)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	config.ProvideNetworkResolver,
	internalconfig.NewNetworkResolverAdapter,
	wire.Bind(new(usecase.NetworkResolver), new(*internalconfig.NetworkResolverAdapter)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewCheckerAdapter,
	wire.Bind(new(usecase.BlockchainChecker), new(*blockchain.CheckerAdapter)),

	blockchain.NewDeployerAdapter,
	wire.Bind(new(usecase.ContractDeployer), new(*blockchain.DeployerAdapter)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	ContractsSet,
	SendersSet,
	InteractiveSet,
	ConfigSet,
	BlockchainSet,
)
