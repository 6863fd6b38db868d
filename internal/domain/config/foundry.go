package config

import "github.com/zkreview/zkr-cli/internal/domain"

// FoundryConfig represents the parts of foundry.toml zkr reads
type FoundryConfig struct {
	Profile      map[string]ProfileConfig   `toml:"profile"`
	RpcEndpoints map[string]string          `toml:"rpc_endpoints"`
	Etherscan    map[string]EtherscanConfig `toml:"etherscan,omitempty"`
}

// EtherscanConfig represents Etherscan configuration for a network
type EtherscanConfig struct {
	Key string `toml:"key,omitempty"`
	URL string `toml:"url,omitempty"`
}

// ProfileConfig represents a foundry profile
type ProfileConfig struct {
	SrcPath string     `toml:"src,omitempty"`
	OutPath string     `toml:"out,omitempty"`
	Zkr     *ZkrConfig `toml:"zkr,omitempty"`
}

// ZkrConfig is the [profile.<name>.zkr] section of foundry.toml
type ZkrConfig struct {
	PrivateKey string              `toml:"private_key,omitempty"` //nolint:gosec // usually an env var reference
	Output     string              `toml:"output,omitempty"`
	Deploy     domain.DeployParams `toml:"deploy"`
}
