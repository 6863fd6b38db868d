package config

import (
	"time"

	"github.com/zkreview/zkr-cli/internal/domain"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string

	// Context settings
	Namespace string   // Maps to foundry profile
	Network   *Network // nil if not specified

	// Execution settings
	Debug          bool
	NonInteractive bool
	Timeout        time.Duration

	// Deploy settings
	DryRun       bool
	AssumeYes    bool
	PrivateKey   string //nolint:gosec // resolved key material, never logged
	ArtifactsDir string
	OutputFile   string
	Params       domain.DeployParams

	// Resolved configurations
	FoundryConfig *FoundryConfig
	ZkrConfig     *ZkrConfig // Profile-specific zkr config, nil if absent
}

// Network represents network configuration
type Network struct {
	ChainID     uint64 `json:"chainId"`
	Name        string `json:"name"`
	RPCURL      string `json:"rpcUrl"`
	ExplorerURL string `json:"explorerUrl,omitempty"`
}

// LocalChainID is the chain id of anvil and hardhat development nodes
const LocalChainID uint64 = 31337

// IsLocal reports whether the network is a local development chain.
func (n *Network) IsLocal() bool {
	return n != nil && n.ChainID == LocalChainID
}
